package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/repository"
	"github.com/reelid/reelid/pkg/usecase/account"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	user, err := account.New(repo).SignUp(ctx, "user-1", "user1@example.com", "moviefan")
	gt.NoError(t, err)
	gt.Equal(t, user.UID, "user-1")
	gt.Equal(t, user.Email, "user1@example.com")
	gt.Equal(t, user.Username, "moviefan")
	gt.A(t, user.PredictionIDs).Length(0)

	stored := gt.R1(repo.GetUser(ctx, "user-1")).NoError(t)
	gt.V(t, stored).NotNil()
	gt.Equal(t, stored.Username, "moviefan")
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	uc := account.New(repository.NewMemory())

	_, err := uc.SignUp(ctx, "", "a@example.com", "name")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = uc.SignUp(ctx, "user-1", "a@example.com", "")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	uc := account.New(repo)

	_, err := uc.SignUp(ctx, "user-1", "user1@example.com", "moviefan")
	gt.NoError(t, err)

	var ids []model.PredictionID
	for i := 0; i < 3; i++ {
		id, err := repo.PutPrediction(ctx, &model.Prediction{
			Platform: model.PlatformTikTok,
			UserID:   "user-1",
		})
		gt.NoError(t, err)
		gt.NoError(t, repo.AppendUserPrediction(ctx, "user-1", id))
		ids = append(ids, id)
	}

	gt.NoError(t, uc.Delete(ctx, "user-1"))

	for _, id := range ids {
		p := gt.R1(repo.GetPrediction(ctx, id)).NoError(t)
		gt.V(t, p).Nil()
	}
	user := gt.R1(repo.GetUser(ctx, "user-1")).NoError(t)
	gt.V(t, user).Nil()
}

func TestDeleteToleratesMissingPredictions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	uc := account.New(repo)

	_, err := uc.SignUp(ctx, "user-1", "user1@example.com", "moviefan")
	gt.NoError(t, err)

	id, err := repo.PutPrediction(ctx, &model.Prediction{UserID: "user-1"})
	gt.NoError(t, err)
	gt.NoError(t, repo.AppendUserPrediction(ctx, "user-1", id))
	gt.NoError(t, repo.DeletePrediction(ctx, id))

	gt.NoError(t, uc.Delete(ctx, "user-1"))
}

func TestDeleteUnknownUser(t *testing.T) {
	err := account.New(repository.NewMemory()).Delete(context.Background(), "nobody")
	gt.Error(t, err)
}
