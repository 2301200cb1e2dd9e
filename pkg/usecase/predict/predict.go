package predict

import (
	"github.com/reelid/reelid/pkg/adapter"
	"github.com/reelid/reelid/pkg/repository"
	"github.com/reelid/reelid/pkg/usecase/movie"
)

// State is the observable phase of a submission
type State string

const (
	StateIdle           State = "idle"
	StateHealthChecking State = "health_checking"
	StateSubmitting     State = "submitting"
	StateRetrying       State = "retrying"
	StateEnriching      State = "enriching"
	StatePersisting     State = "persisting"
	StateLinking        State = "linking"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// UseCase runs end-to-end prediction submissions
type UseCase struct {
	repo      repository.Repository
	predictor adapter.Predictor
	session   adapter.Session
	enricher  *movie.Enricher
	policy    Policy

	onState func(State)
	onRetry func(attempt, max int)
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithPolicy replaces the default retry policy
func WithPolicy(p Policy) Option {
	return func(uc *UseCase) {
		uc.policy = p
	}
}

// WithStateCallback observes state transitions, e.g. for progress display
func WithStateCallback(fn func(State)) Option {
	return func(uc *UseCase) {
		uc.onState = fn
	}
}

// WithRetryCallback observes retries; attempt is the upcoming attempt number
func WithRetryCallback(fn func(attempt, max int)) Option {
	return func(uc *UseCase) {
		uc.onRetry = fn
	}
}

// New creates a prediction UseCase instance
func New(
	repo repository.Repository,
	predictor adapter.Predictor,
	session adapter.Session,
	enricher *movie.Enricher,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		repo:      repo,
		predictor: predictor,
		session:   session,
		enricher:  enricher,
		policy:    DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func (u *UseCase) setState(s State) {
	if u.onState != nil {
		u.onState(s)
	}
}
