package feed

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/utils/logging"
)

// FetchCommunity returns the latest community predictions as a one-shot
// snapshot, enriched and soft-filtered.
func (u *UseCase) FetchCommunity(ctx context.Context, limit int) ([]*model.Prediction, error) {
	if limit <= 0 {
		limit = CommunityFetchLimit
	}

	records, err := u.repo.ListRecentPredictions(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch recent predictions")
	}
	return u.buildSnapshot(ctx, records), nil
}

// FetchUser returns one user's full prediction history as a one-shot
// snapshot. A missing user yields an empty snapshot.
func (u *UseCase) FetchUser(ctx context.Context, uid string) ([]*model.Prediction, error) {
	user, err := u.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch user", goerr.V("uid", uid))
	}
	return u.materializeUser(ctx, user)
}

// buildSnapshot enriches records concurrently, drops those with no
// resolvable metadata, and re-asserts created_at descending order, since
// enrichment completion order must never leak into the result.
func (u *UseCase) buildSnapshot(ctx context.Context, records []*model.Prediction) []*model.Prediction {
	u.enricher.EnrichRecords(ctx, records)

	snapshot := make([]*model.Prediction, 0, len(records))
	for _, p := range records {
		if p.HasMetadata() {
			snapshot = append(snapshot, p)
		}
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].CreatedAt.After(snapshot[j].CreatedAt)
	})
	return snapshot
}

// materializeUser resolves every id in the user's history, skipping ids
// whose documents no longer exist, then builds the usual snapshot.
func (u *UseCase) materializeUser(ctx context.Context, user *model.User) ([]*model.Prediction, error) {
	if user == nil || len(user.PredictionIDs) == 0 {
		return []*model.Prediction{}, nil
	}

	records := make([]*model.Prediction, len(user.PredictionIDs))
	var wg sync.WaitGroup
	for i, id := range user.PredictionIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			p, err := u.repo.GetPrediction(ctx, id)
			if err != nil {
				logging.From(ctx).Warn("failed to fetch prediction, skipping",
					"id", id, "error", err)
				return
			}
			records[i] = p
		}()
	}
	wg.Wait()

	present := make([]*model.Prediction, 0, len(records))
	for _, p := range records {
		if p != nil {
			present = append(present, p)
		}
	}
	return u.buildSnapshot(ctx, present), nil
}
