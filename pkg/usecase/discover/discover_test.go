package discover_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/repository"
	"github.com/reelid/reelid/pkg/usecase/discover"
)

func TestTrending(t *testing.T) {
	repo := repository.NewMemory()
	repo.SetTrendingMovies([]*model.TrendingMovie{
		{Title: "Dune: Part Two", VoteAverage: 8.2},
		{Title: "Oppenheimer", VoteAverage: 8.1},
	})

	movies, err := discover.New(repo).Trending(context.Background())
	gt.NoError(t, err)
	gt.A(t, movies).Length(2)
	gt.Equal(t, movies[0].Title, "Dune: Part Two")
}

func TestGenres(t *testing.T) {
	repo := repository.NewMemory()
	repo.SetGenres([]*model.Genre{
		{ID: 28, Name: "Action"},
		{ID: 35, Name: "Comedy"},
	})

	genres, err := discover.New(repo).Genres(context.Background())
	gt.NoError(t, err)
	gt.A(t, genres).Length(2)
	gt.Equal(t, genres[1].Name, "Comedy")
}

func TestMoviesByGenre(t *testing.T) {
	repo := repository.NewMemory()
	repo.SetDiscoverMovies([]*model.DiscoverMovie{
		{Title: "Mad Max: Fury Road", GenreID: 28},
		{Title: "The Grand Budapest Hotel", GenreID: 35},
		{Title: "John Wick", GenreID: 28},
	})

	uc := discover.New(repo)

	action, err := uc.MoviesByGenre(context.Background(), 28)
	gt.NoError(t, err)
	gt.A(t, action).Length(2)

	horror, err := uc.MoviesByGenre(context.Background(), 27)
	gt.NoError(t, err)
	gt.A(t, horror).Length(0)
}
