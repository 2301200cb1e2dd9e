package repository

import (
	"context"

	"github.com/reelid/reelid/pkg/model"
)

// Repository defines the interface for the backing document store. The store
// is multi-writer; consistency relies on its atomic per-document writes, so
// no method takes any client-side lock.
type Repository interface {
	// GetMovie resolves a tconst to its metadata record. A missing document
	// is a miss, not an error: it returns (nil, nil).
	GetMovie(ctx context.Context, tconst string) (*model.Movie, error)

	// GetUser retrieves a user document, (nil, nil) if it does not exist
	GetUser(ctx context.Context, uid string) (*model.User, error)

	// PutUser creates or replaces a user document
	PutUser(ctx context.Context, user *model.User) error

	// DeleteUser removes a user document
	DeleteUser(ctx context.Context, uid string) error

	// GetPrediction retrieves one prediction record, (nil, nil) if missing.
	// Orphaned ids in a user's prediction list resolve through this as skips.
	GetPrediction(ctx context.Context, id model.PredictionID) (*model.Prediction, error)

	// PutPrediction stores a new prediction record and returns the id the
	// store assigned to it
	PutPrediction(ctx context.Context, p *model.Prediction) (model.PredictionID, error)

	// DeletePrediction removes a prediction record; deleting a missing
	// document is not an error
	DeletePrediction(ctx context.Context, id model.PredictionID) error

	// ListRecentPredictions returns up to limit records ordered by created_at
	// descending
	ListRecentPredictions(ctx context.Context, limit int) ([]*model.Prediction, error)

	// AppendUserPrediction atomically appends a prediction id to the user's
	// list and refreshes the modification timestamp
	AppendUserPrediction(ctx context.Context, uid string, id model.PredictionID) error

	// WatchRecentPredictions emits the current top-limit record set on every
	// change to the predictions collection, starting with the current state.
	// Both channels close when ctx is cancelled; a stream failure is sent on
	// the error channel and ends the watch.
	WatchRecentPredictions(ctx context.Context, limit int) (<-chan []*model.Prediction, <-chan error)

	// WatchUser emits the user document on every change, starting with the
	// current state. A missing document is emitted as nil. Channel semantics
	// match WatchRecentPredictions.
	WatchUser(ctx context.Context, uid string) (<-chan *model.User, <-chan error)

	// ListTrendingMovies reads the trending_movies reference collection
	ListTrendingMovies(ctx context.Context) ([]*model.TrendingMovie, error)

	// ListGenres reads the genres reference collection
	ListGenres(ctx context.Context) ([]*model.Genre, error)

	// ListMoviesByGenre reads tmdb_movies entries matching one genre
	ListMoviesByGenre(ctx context.Context, genreID int64) ([]*model.DiscoverMovie, error)
}
