package model

import "time"

// User mirrors a users/{uid} document. PredictionIDs is append-only during
// normal operation; the whole document is removed only on account deletion.
type User struct {
	UID           string         `firestore:"-"`
	Email         string         `firestore:"email"`
	Username      string         `firestore:"username"`
	PredictionIDs []PredictionID `firestore:"predictions"`
	CreatedAt     time.Time      `firestore:"createdAt,serverTimestamp"`
	UpdatedAt     time.Time      `firestore:"updatedAt,serverTimestamp"`
}
