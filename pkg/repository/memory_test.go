package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/repository"
)

func TestMemoryUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	gt.NoError(t, repo.PutUser(ctx, &model.User{
		UID:      "user-1",
		Email:    "user1@example.com",
		Username: "moviefan",
	}))

	user, err := repo.GetUser(ctx, "user-1")
	gt.NoError(t, err)
	gt.V(t, user).NotNil()
	gt.Equal(t, user.Username, "moviefan")
	gt.False(t, user.CreatedAt.IsZero())

	missing, err := repo.GetUser(ctx, "user-2")
	gt.NoError(t, err)
	gt.V(t, missing).Nil()
}

func TestMemoryPredictionAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	id, err := repo.PutPrediction(ctx, &model.Prediction{Platform: model.PlatformTikTok})
	gt.NoError(t, err)
	gt.True(t, id != "")

	p, err := repo.GetPrediction(ctx, id)
	gt.NoError(t, err)
	gt.V(t, p).NotNil()
	gt.Equal(t, p.ID, id)
	gt.False(t, p.CreatedAt.IsZero())
}

func TestMemoryListRecentOrdersAndLimits(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	now := time.Now()

	for i := 0; i < 5; i++ {
		_, err := repo.PutPrediction(ctx, &model.Prediction{
			URL:       "https://example.com/" + string(rune('a'+i)),
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
		gt.NoError(t, err)
	}

	records, err := repo.ListRecentPredictions(ctx, 3)
	gt.NoError(t, err)
	gt.A(t, records).Length(3)
	gt.Equal(t, records[0].URL, "https://example.com/e")
	gt.Equal(t, records[1].URL, "https://example.com/d")
	gt.Equal(t, records[2].URL, "https://example.com/c")
}

func TestMemoryAppendUserPrediction(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	gt.NoError(t, repo.PutUser(ctx, &model.User{UID: "user-1", Username: "moviefan"}))
	gt.NoError(t, repo.AppendUserPrediction(ctx, "user-1", "p1"))
	gt.NoError(t, repo.AppendUserPrediction(ctx, "user-1", "p2"))

	user, err := repo.GetUser(ctx, "user-1")
	gt.NoError(t, err)
	gt.Equal(t, user.PredictionIDs, []model.PredictionID{"p1", "p2"})

	gt.Error(t, repo.AppendUserPrediction(ctx, "ghost", "p3"))
}

func TestMemoryReadsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	id, err := repo.PutPrediction(ctx, &model.Prediction{
		Candidates: []*model.Candidate{{Title: "original"}},
	})
	gt.NoError(t, err)

	first, err := repo.GetPrediction(ctx, id)
	gt.NoError(t, err)
	first.Candidates[0].Title = "mutated"
	first.Candidates[0].MovieDetails = &model.Movie{Title: "mutated"}

	second, err := repo.GetPrediction(ctx, id)
	gt.NoError(t, err)
	gt.Equal(t, second.Candidates[0].Title, "original")
	gt.V(t, second.Candidates[0].MovieDetails).Nil()
}

func TestMemoryWatchRecentPredictions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := repository.NewMemory()

	values, _ := repo.WatchRecentPredictions(ctx, 10)

	select {
	case records := <-values:
		gt.A(t, records).Length(0)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial snapshot")
	}

	_, err := repo.PutPrediction(ctx, &model.Prediction{Platform: model.PlatformInstagram})
	gt.NoError(t, err)

	select {
	case records := <-values:
		gt.A(t, records).Length(1)
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot after write")
	}

	cancel()
	for range values {
	}
}

func TestMemoryWatchUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := repository.NewMemory()

	values, _ := repo.WatchUser(ctx, "user-1")

	select {
	case user := <-values:
		gt.V(t, user).Nil()
	case <-time.After(5 * time.Second):
		t.Fatal("no initial snapshot")
	}

	gt.NoError(t, repo.PutUser(ctx, &model.User{UID: "user-1", Username: "moviefan"}))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case user := <-values:
			if user == nil {
				continue
			}
			gt.Equal(t, user.Username, "moviefan")
			cancel()
			for range values {
			}
			return
		case <-deadline:
			t.Fatal("no snapshot after write")
		}
	}
}
