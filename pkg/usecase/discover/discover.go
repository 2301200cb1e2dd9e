package discover

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/repository"
)

// UseCase reads the discovery reference collections
type UseCase struct {
	repo repository.Repository
}

// New creates a discover UseCase instance
func New(repo repository.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Trending returns the current trending movies
func (u *UseCase) Trending(ctx context.Context) ([]*model.TrendingMovie, error) {
	movies, err := u.repo.ListTrendingMovies(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch trending movies")
	}
	return movies, nil
}

// Genres returns the genre catalog
func (u *UseCase) Genres(ctx context.Context) ([]*model.Genre, error) {
	genres, err := u.repo.ListGenres(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch genres")
	}
	return genres, nil
}

// MoviesByGenre returns discovery movies tagged with one genre
func (u *UseCase) MoviesByGenre(ctx context.Context, genreID int64) ([]*model.DiscoverMovie, error) {
	movies, err := u.repo.ListMoviesByGenre(ctx, genreID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch movies by genre", goerr.V("genre_id", genreID))
	}
	return movies, nil
}
