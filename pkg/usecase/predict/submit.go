package predict

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/adapter"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/utils/logging"
)

// Result is a completed submission. Attempts counts the submission calls
// actually made, so Attempts-1 is the number of retries. LinkWarning is set
// when the record was created but could not be appended to the user's
// history; the submission itself still succeeded.
type Result struct {
	Prediction  *model.Prediction
	Attempts    int
	LinkWarning error
}

// Submit runs one end-to-end prediction: health check, authenticated
// submission with bounded retry, enrichment, persistence, and history
// linkage. Candidate rank order is preserved through every step.
func (u *UseCase) Submit(ctx context.Context, url string, platform model.Platform) (*Result, error) {
	logger := logging.From(ctx)

	if url == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "video link is empty")
	}
	if platform == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "platform is empty")
	}
	if err := platform.Validate(); err != nil {
		return nil, err
	}

	u.setState(StateHealthChecking)
	if !u.predictor.Health(ctx) {
		u.setState(StateFailed)
		return nil, goerr.Wrap(model.ErrServiceUnavailable, "health check failed")
	}

	token, err := u.session.IDToken(ctx)
	if err != nil {
		u.setState(StateFailed)
		return nil, err
	}

	u.setState(StateSubmitting)
	var resp *adapter.PredictionResponse
	attempts, err := u.policy.Do(ctx, func(ctx context.Context) error {
		r, perr := u.predictor.Predict(ctx, token, url, platform)
		if perr != nil {
			return perr
		}
		resp = r
		return nil
	}, func(attempt, max int) {
		u.setState(StateRetrying)
		logger.Warn("prediction attempt failed, retrying", "attempt", attempt, "max", max)
		if u.onRetry != nil {
			u.onRetry(attempt, max)
		}
	})
	if err != nil {
		u.setState(StateFailed)
		return nil, err
	}

	u.setState(StateEnriching)
	u.enricher.Enrich(ctx, resp.Candidates)

	userName := u.session.Username()
	if user, uerr := u.repo.GetUser(ctx, u.session.UID()); uerr == nil && user != nil {
		userName = user.Username
	}

	recordURL := resp.ExpandedURL
	if recordURL == "" {
		recordURL = url
	}

	u.setState(StatePersisting)
	record := &model.Prediction{
		Candidates:            resp.Candidates,
		PredictionTimeSeconds: resp.PredictionTimeSeconds,
		Platform:              platform,
		URL:                   recordURL,
		UserID:                u.session.UID(),
		UserName:              userName,
	}
	id, err := u.repo.PutPrediction(ctx, record)
	if err != nil {
		u.setState(StateFailed)
		return nil, goerr.Wrap(err, "failed to persist prediction")
	}
	record.ID = id

	// The append happens strictly after persistence, so a failure here can
	// orphan the record but never leave the user referencing a missing one.
	u.setState(StateLinking)
	result := &Result{Prediction: record, Attempts: attempts}
	if err := u.repo.AppendUserPrediction(ctx, u.session.UID(), id); err != nil {
		logger.Warn("prediction saved but not linked to user history",
			"id", id, "uid", u.session.UID(), "error", err)
		result.LinkWarning = err
	}

	u.setState(StateDone)
	return result, nil
}
