package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionUsers       = "users"
	collectionPredictions = "predictions"
	collectionMovies      = "movies_data"
	collectionTrending    = "trending_movies"
	collectionGenres      = "genres"
	collectionTMDB        = "tmdb_movies"

	fieldCreatedAt = "created_at"
)

// Firestore implements Repository on Cloud Firestore
type Firestore struct {
	client *firestore.Client
}

// New creates a Firestore-backed repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) GetMovie(ctx context.Context, tconst string) (*model.Movie, error) {
	doc, err := r.client.Collection(collectionMovies).Doc(tconst).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get movie", goerr.V("tconst", tconst))
	}

	var movie model.Movie
	if err := doc.DataTo(&movie); err != nil {
		return nil, goerr.Wrap(err, "failed to parse movie document", goerr.V("tconst", tconst))
	}
	return &movie, nil
}

func (r *Firestore) GetUser(ctx context.Context, uid string) (*model.User, error) {
	doc, err := r.client.Collection(collectionUsers).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("uid", uid))
	}

	user, err := parseUser(doc)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Firestore) PutUser(ctx context.Context, user *model.User) error {
	if _, err := r.client.Collection(collectionUsers).Doc(user.UID).Set(ctx, user); err != nil {
		return goerr.Wrap(err, "failed to put user", goerr.V("uid", user.UID))
	}
	return nil
}

func (r *Firestore) DeleteUser(ctx context.Context, uid string) error {
	if _, err := r.client.Collection(collectionUsers).Doc(uid).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("uid", uid))
	}
	return nil
}

func (r *Firestore) GetPrediction(ctx context.Context, id model.PredictionID) (*model.Prediction, error) {
	doc, err := r.client.Collection(collectionPredictions).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get prediction", goerr.V("id", id))
	}

	return parsePrediction(doc)
}

func (r *Firestore) PutPrediction(ctx context.Context, p *model.Prediction) (model.PredictionID, error) {
	doc, _, err := r.client.Collection(collectionPredictions).Add(ctx, p)
	if err != nil {
		return "", goerr.Wrap(err, "failed to put prediction", goerr.V("user_id", p.UserID))
	}
	return model.PredictionID(doc.ID), nil
}

func (r *Firestore) DeletePrediction(ctx context.Context, id model.PredictionID) error {
	if _, err := r.client.Collection(collectionPredictions).Doc(string(id)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete prediction", goerr.V("id", id))
	}
	return nil
}

func (r *Firestore) ListRecentPredictions(ctx context.Context, limit int) ([]*model.Prediction, error) {
	iter := r.client.Collection(collectionPredictions).
		OrderBy(fieldCreatedAt, firestore.Desc).
		Limit(limit).
		Documents(ctx)

	return collectPredictions(iter)
}

func (r *Firestore) AppendUserPrediction(ctx context.Context, uid string, id model.PredictionID) error {
	_, err := r.client.Collection(collectionUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "predictions", Value: firestore.ArrayUnion(string(id))},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to link prediction to user",
			goerr.V("uid", uid), goerr.V("id", id))
	}
	return nil
}

func (r *Firestore) WatchRecentPredictions(ctx context.Context, limit int) (<-chan []*model.Prediction, <-chan error) {
	values := make(chan []*model.Prediction)
	errs := make(chan error, 1)

	snaps := r.client.Collection(collectionPredictions).
		OrderBy(fieldCreatedAt, firestore.Desc).
		Limit(limit).
		Snapshots(ctx)

	go func() {
		defer close(values)
		defer close(errs)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				errs <- goerr.Wrap(err, "prediction stream failed")
				return
			}

			records, err := collectPredictions(snap.Documents)
			if err != nil {
				errs <- err
				return
			}

			select {
			case values <- records:
			case <-ctx.Done():
				return
			}
		}
	}()

	return values, errs
}

func (r *Firestore) WatchUser(ctx context.Context, uid string) (<-chan *model.User, <-chan error) {
	values := make(chan *model.User)
	errs := make(chan error, 1)

	snaps := r.client.Collection(collectionUsers).Doc(uid).Snapshots(ctx)

	go func() {
		defer close(values)
		defer close(errs)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				errs <- goerr.Wrap(err, "user stream failed", goerr.V("uid", uid))
				return
			}

			var user *model.User
			if snap.Exists() {
				if user, err = parseUser(snap); err != nil {
					errs <- err
					return
				}
			}

			select {
			case values <- user:
			case <-ctx.Done():
				return
			}
		}
	}()

	return values, errs
}

func (r *Firestore) ListTrendingMovies(ctx context.Context) ([]*model.TrendingMovie, error) {
	iter := r.client.Collection(collectionTrending).Documents(ctx)

	var movies []*model.TrendingMovie
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list trending movies")
		}

		var movie model.TrendingMovie
		if err := doc.DataTo(&movie); err != nil {
			return nil, goerr.Wrap(err, "failed to parse trending movie", goerr.V("id", doc.Ref.ID))
		}
		movie.ID = doc.Ref.ID
		movies = append(movies, &movie)
	}
	return movies, nil
}

func (r *Firestore) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	iter := r.client.Collection(collectionGenres).Documents(ctx)

	var genres []*model.Genre
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list genres")
		}

		var genre model.Genre
		if err := doc.DataTo(&genre); err != nil {
			return nil, goerr.Wrap(err, "failed to parse genre", goerr.V("id", doc.Ref.ID))
		}
		genres = append(genres, &genre)
	}
	return genres, nil
}

func (r *Firestore) ListMoviesByGenre(ctx context.Context, genreID int64) ([]*model.DiscoverMovie, error) {
	iter := r.client.Collection(collectionTMDB).Where("genre_id", "==", genreID).Documents(ctx)

	var movies []*model.DiscoverMovie
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list movies by genre", goerr.V("genre_id", genreID))
		}

		var movie model.DiscoverMovie
		if err := doc.DataTo(&movie); err != nil {
			return nil, goerr.Wrap(err, "failed to parse movie", goerr.V("id", doc.Ref.ID))
		}
		movies = append(movies, &movie)
	}
	return movies, nil
}

func parsePrediction(doc *firestore.DocumentSnapshot) (*model.Prediction, error) {
	var p model.Prediction
	if err := doc.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to parse prediction document", goerr.V("id", doc.Ref.ID))
	}
	p.ID = model.PredictionID(doc.Ref.ID)
	return &p, nil
}

func parseUser(doc *firestore.DocumentSnapshot) (*model.User, error) {
	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to parse user document", goerr.V("uid", doc.Ref.ID))
	}
	user.UID = doc.Ref.ID
	return &user, nil
}

func collectPredictions(iter *firestore.DocumentIterator) ([]*model.Prediction, error) {
	var records []*model.Prediction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate predictions")
		}

		p, err := parsePrediction(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, nil
}
