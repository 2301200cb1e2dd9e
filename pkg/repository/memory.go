package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
)

// Memory implements Repository in process memory. It mirrors the store's
// change-stream behavior: a watcher receives the current state immediately
// and a fresh snapshot after every write.
type Memory struct {
	mu          sync.RWMutex
	users       map[string]*model.User
	predictions map[model.PredictionID]*model.Prediction
	movies      map[string]*model.Movie
	trending    []*model.TrendingMovie
	genres      []*model.Genre
	discover    []*model.DiscoverMovie

	watchers    map[int]chan struct{}
	nextWatcher int
}

// NewMemory creates an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{
		users:       make(map[string]*model.User),
		predictions: make(map[model.PredictionID]*model.Prediction),
		movies:      make(map[string]*model.Movie),
		watchers:    make(map[int]chan struct{}),
	}
}

// SetMovie seeds a metadata document. The movies_data collection is read-only
// for clients, so this is not part of the Repository interface.
func (r *Memory) SetMovie(tconst string, movie *model.Movie) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies[tconst] = movie
}

// SetTrendingMovies seeds the trending_movies collection
func (r *Memory) SetTrendingMovies(movies []*model.TrendingMovie) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trending = movies
}

// SetGenres seeds the genres collection
func (r *Memory) SetGenres(genres []*model.Genre) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.genres = genres
}

// SetDiscoverMovies seeds the tmdb_movies collection
func (r *Memory) SetDiscoverMovies(movies []*model.DiscoverMovie) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discover = movies
}

func (r *Memory) GetMovie(ctx context.Context, tconst string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.movies[tconst], nil
}

func (r *Memory) GetUser(ctx context.Context, uid string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.users[uid]), nil
}

func (r *Memory) PutUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	u := cloneUser(user)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.users[u.UID] = u
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *Memory) DeleteUser(ctx context.Context, uid string) error {
	r.mu.Lock()
	delete(r.users, uid)
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *Memory) GetPrediction(ctx context.Context, id model.PredictionID) (*model.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clonePrediction(r.predictions[id]), nil
}

func (r *Memory) PutPrediction(ctx context.Context, p *model.Prediction) (model.PredictionID, error) {
	record := clonePrediction(p)
	record.ID = model.PredictionID(uuid.New().String())
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	r.mu.Lock()
	r.predictions[record.ID] = record
	r.mu.Unlock()

	r.notify()
	return record.ID, nil
}

func (r *Memory) DeletePrediction(ctx context.Context, id model.PredictionID) error {
	r.mu.Lock()
	delete(r.predictions, id)
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *Memory) ListRecentPredictions(ctx context.Context, limit int) ([]*model.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recentLocked(limit), nil
}

func (r *Memory) AppendUserPrediction(ctx context.Context, uid string, id model.PredictionID) error {
	r.mu.Lock()
	user, ok := r.users[uid]
	if !ok {
		r.mu.Unlock()
		return goerr.New("user not found", goerr.V("uid", uid))
	}
	user.PredictionIDs = append(user.PredictionIDs, id)
	user.UpdatedAt = time.Now()
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *Memory) WatchRecentPredictions(ctx context.Context, limit int) (<-chan []*model.Prediction, <-chan error) {
	values := make(chan []*model.Prediction)
	errs := make(chan error, 1)

	id, changes := r.addWatcher()
	go func() {
		defer close(values)
		defer close(errs)
		defer r.removeWatcher(id)

		for {
			r.mu.RLock()
			records := r.recentLocked(limit)
			r.mu.RUnlock()

			select {
			case values <- records:
			case <-ctx.Done():
				return
			}

			select {
			case <-changes:
			case <-ctx.Done():
				return
			}
		}
	}()

	return values, errs
}

func (r *Memory) WatchUser(ctx context.Context, uid string) (<-chan *model.User, <-chan error) {
	values := make(chan *model.User)
	errs := make(chan error, 1)

	id, changes := r.addWatcher()
	go func() {
		defer close(values)
		defer close(errs)
		defer r.removeWatcher(id)

		for {
			r.mu.RLock()
			user := cloneUser(r.users[uid])
			r.mu.RUnlock()

			select {
			case values <- user:
			case <-ctx.Done():
				return
			}

			select {
			case <-changes:
			case <-ctx.Done():
				return
			}
		}
	}()

	return values, errs
}

func (r *Memory) ListTrendingMovies(ctx context.Context) ([]*model.TrendingMovie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trending, nil
}

func (r *Memory) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.genres, nil
}

func (r *Memory) ListMoviesByGenre(ctx context.Context, genreID int64) ([]*model.DiscoverMovie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var movies []*model.DiscoverMovie
	for _, m := range r.discover {
		if m.GenreID == genreID {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

func (r *Memory) recentLocked(limit int) []*model.Prediction {
	records := make([]*model.Prediction, 0, len(r.predictions))
	for _, p := range r.predictions {
		records = append(records, clonePrediction(p))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records
}

func (r *Memory) addWatcher() (int, chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextWatcher
	r.nextWatcher++
	ch := make(chan struct{}, 1)
	r.watchers[id] = ch
	return id, ch
}

func (r *Memory) removeWatcher(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.watchers, id)
}

// notify wakes every watcher; the buffered channel coalesces bursts
func (r *Memory) notify() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ch := range r.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	c.PredictionIDs = append([]model.PredictionID(nil), u.PredictionIDs...)
	return &c
}

func clonePrediction(p *model.Prediction) *model.Prediction {
	if p == nil {
		return nil
	}
	c := *p
	c.Candidates = make([]*model.Candidate, len(p.Candidates))
	for i, cand := range p.Candidates {
		cc := *cand
		c.Candidates[i] = &cc
	}
	return &c
}
