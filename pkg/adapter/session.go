package adapter

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
)

// Session exposes the signed-in identity the pipeline needs: who is
// submitting, and a bearer token for the prediction service. It is injected
// explicitly rather than read from ambient state.
type Session interface {
	UID() string
	Username() string
	IDToken(ctx context.Context) (string, error)
}

// StaticSession carries a pre-issued identity, as supplied by CLI flags or
// tests. A real identity provider implementation would refresh the token.
type StaticSession struct {
	UserID string
	Name   string
	Token  string
}

func (s *StaticSession) UID() string      { return s.UserID }
func (s *StaticSession) Username() string { return s.Name }

func (s *StaticSession) IDToken(ctx context.Context) (string, error) {
	if s.Token == "" {
		return "", goerr.Wrap(model.ErrUnauthorized, "no ID token configured")
	}
	return s.Token, nil
}
