package movie

import (
	"context"
	"sync"

	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/utils/logging"
)

// Enricher attaches movie details to ranked candidates. Lookups run
// concurrently and reassemble positionally, so the rank order of the input
// is always the order of the output.
type Enricher struct {
	lookup *Lookup
}

// NewEnricher creates an Enricher on top of lookup
func NewEnricher(lookup *Lookup) *Enricher {
	return &Enricher{lookup: lookup}
}

// Enrich decorates every candidate with its metadata record. A failed or
// missed lookup leaves that candidate's MovieDetails nil and never fails the
// batch. The returned slice is the input slice.
func (e *Enricher) Enrich(ctx context.Context, candidates []*model.Candidate) []*model.Candidate {
	var wg sync.WaitGroup
	for _, c := range candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()

			details, err := e.lookup.Resolve(ctx, c.Tconst)
			if err != nil {
				logging.From(ctx).Warn("movie lookup failed, leaving candidate bare",
					"title", c.Title, "error", err)
				return
			}
			c.MovieDetails = details
		}()
	}
	wg.Wait()

	return candidates
}

// EnrichRecords enriches the candidate lists of many records concurrently.
// Record order is untouched; completion order never reorders anything.
func (e *Enricher) EnrichRecords(ctx context.Context, records []*model.Prediction) {
	var wg sync.WaitGroup
	for _, p := range records {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Enrich(ctx, p.Candidates)
		}()
	}
	wg.Wait()
}
