package account

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/repository"
	"github.com/reelid/reelid/pkg/utils/logging"
)

// UseCase provides account lifecycle operations on the document store. The
// identity provider account itself is owned by the identity capability and
// out of scope here.
type UseCase struct {
	repo repository.Repository
}

// New creates an account UseCase instance
func New(repo repository.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// SignUp creates the user document for a freshly registered identity
func (u *UseCase) SignUp(ctx context.Context, uid, email, username string) (*model.User, error) {
	if uid == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "uid is empty")
	}
	if username == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "username is empty")
	}

	user := &model.User{
		UID:           uid,
		Email:         email,
		Username:      username,
		PredictionIDs: []model.PredictionID{},
	}
	if err := u.repo.PutUser(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("uid", uid))
	}
	return user, nil
}

// Delete removes the account's data: every linked prediction first, then the
// user document. Already-deleted predictions are tolerated.
func (u *UseCase) Delete(ctx context.Context, uid string) error {
	user, err := u.repo.GetUser(ctx, uid)
	if err != nil {
		return goerr.Wrap(err, "failed to load user for deletion", goerr.V("uid", uid))
	}
	if user == nil {
		return goerr.New("user not found", goerr.V("uid", uid))
	}

	for _, id := range user.PredictionIDs {
		if err := u.repo.DeletePrediction(ctx, id); err != nil {
			return goerr.Wrap(err, "failed to delete prediction", goerr.V("id", id))
		}
	}

	if err := u.repo.DeleteUser(ctx, uid); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("uid", uid))
	}

	logging.From(ctx).Info("account deleted",
		"uid", uid, "predictions", len(user.PredictionIDs))
	return nil
}
