package movie

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/repository"
)

const (
	cacheTTL     = 10 * time.Minute
	cacheCleanup = 20 * time.Minute
)

// Lookup resolves a tconst to its metadata record. Results, including
// misses, are cached so feed re-enrichment does not re-read the store.
// Safe for concurrent use.
type Lookup struct {
	repo  repository.Repository
	cache *cache.Cache
}

// NewLookup creates a Lookup backed by repo
func NewLookup(repo repository.Repository) *Lookup {
	return &Lookup{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

// Resolve returns the metadata record for tconst, or (nil, nil) when tconst
// is absent or the document does not exist. It returns an error only on
// transport failure, which callers treat as a miss for filtering purposes.
func (l *Lookup) Resolve(ctx context.Context, tconst *string) (*model.Movie, error) {
	if tconst == nil || *tconst == "" {
		return nil, nil
	}

	if v, ok := l.cache.Get(*tconst); ok {
		m, _ := v.(*model.Movie)
		return m, nil
	}

	m, err := l.repo.GetMovie(ctx, *tconst)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up movie", goerr.V("tconst", *tconst))
	}

	l.cache.Set(*tconst, m, cache.DefaultExpiration)
	return m, nil
}
