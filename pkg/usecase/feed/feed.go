package feed

import (
	"context"

	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/repository"
	"github.com/reelid/reelid/pkg/usecase/movie"
)

const (
	// CommunityFeedLimit is the live community feed window
	CommunityFeedLimit = 30
	// CommunityFetchLimit is the one-shot community fetch window
	CommunityFetchLimit = 50
)

// UseCase provides live and one-shot prediction feeds. Every delivery is a
// full snapshot: enriched, soft-filtered, and ordered by creation time
// descending.
type UseCase struct {
	repo     repository.Repository
	enricher *movie.Enricher
}

// New creates a feed UseCase instance
func New(repo repository.Repository, enricher *movie.Enricher) *UseCase {
	return &UseCase{
		repo:     repo,
		enricher: enricher,
	}
}

// Subscription is the cancellation handle of a live feed. After Stop
// returns, no further deliveries happen; an enrichment already in flight
// completes but its snapshot is discarded.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop detaches the subscription from the change stream
func (s *Subscription) Stop() {
	s.cancel()
}

// Done is closed once the subscription's delivery loop has exited
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// SubscribeCommunity delivers the latest community predictions on every
// change to the predictions collection.
func (u *UseCase) SubscribeCommunity(ctx context.Context, onData func([]*model.Prediction), onError func(error)) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	values, errs := u.repo.WatchRecentPredictions(ctx, CommunityFeedLimit)

	go func() {
		defer close(sub.done)
		for {
			select {
			case <-ctx.Done():
				return

			case err, ok := <-errs:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
				return

			case records, ok := <-values:
				if !ok {
					return
				}
				snapshot := u.buildSnapshot(ctx, records)
				if ctx.Err() != nil {
					return
				}
				onData(snapshot)
			}
		}
	}()

	return sub
}

// SubscribeUser delivers one user's prediction history on every change to
// their user document.
func (u *UseCase) SubscribeUser(ctx context.Context, uid string, onData func([]*model.Prediction), onError func(error)) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	values, errs := u.repo.WatchUser(ctx, uid)

	go func() {
		defer close(sub.done)
		for {
			select {
			case <-ctx.Done():
				return

			case err, ok := <-errs:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
				return

			case user, ok := <-values:
				if !ok {
					return
				}
				snapshot, err := u.materializeUser(ctx, user)
				if err != nil {
					if ctx.Err() == nil && onError != nil {
						onError(err)
					}
					continue
				}
				if ctx.Err() != nil {
					return
				}
				onData(snapshot)
			}
		}
	}()

	return sub
}
