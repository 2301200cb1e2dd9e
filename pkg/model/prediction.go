package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

type PredictionID string

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformFacebook  Platform = "facebook"
)

// Validate checks if the platform is one of the supported share sources
func (p Platform) Validate() error {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformFacebook:
		return nil
	default:
		return goerr.Wrap(ErrInvalidInput, "unsupported platform", goerr.V("platform", p))
	}
}

type Tier string

const (
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"
)

// Candidate is one ranked guess returned by the prediction service for a
// submitted link. Tconst may be nil; such candidates never resolve metadata.
type Candidate struct {
	Tconst      *string `firestore:"tconst" json:"tconst"`
	Title       string  `firestore:"title" json:"title"`
	Probability float64 `firestore:"probability" json:"probability"`

	// MovieDetails is attached in memory by enrichment, nil until resolved and
	// nil forever on a lookup miss. Not persisted.
	MovieDetails *Movie `firestore:"-" json:"movieDetails,omitempty"`
}

// Tier buckets the match probability for presentation
func (c *Candidate) Tier() Tier {
	switch {
	case c.Probability <= 0.33:
		return TierLow
	case c.Probability <= 0.66:
		return TierMid
	default:
		return TierHigh
	}
}

// Prediction mirrors a predictions/{id} document. Candidates keep the rank
// order assigned by the prediction service; nothing may re-sort them.
type Prediction struct {
	ID                    PredictionID `firestore:"-"`
	Candidates            []*Candidate `firestore:"all_predictions"`
	PredictionTimeSeconds float64      `firestore:"prediction_time_seconds"`
	Platform              Platform     `firestore:"platform"`
	URL                   string       `firestore:"url"`
	UserID                string       `firestore:"user_id"`
	UserName              string       `firestore:"user_name"`
	CreatedAt             time.Time    `firestore:"created_at,serverTimestamp"`
}

// HasMetadata reports whether at least one candidate resolved movie details.
// Records failing this check are kept in storage but excluded from display.
func (p *Prediction) HasMetadata() bool {
	for _, c := range p.Candidates {
		if c.MovieDetails != nil {
			return true
		}
	}
	return false
}
