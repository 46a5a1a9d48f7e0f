package models

import "time"

// RefreshSession binds an opaque refresh token to a user and an expiry window.
// Rows are immutable after creation: they are deleted on logout or lazily once
// an access attempt discovers them expired, never updated.
type RefreshSession struct {
	RefreshToken string        `json:"refresh_token"`
	UserID       int64         `json:"user_id"`
	ExpiresIn    time.Duration `json:"expires_in"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ExpiresAt is the end of the session's validity window. Validity is always
// recomputed from it against the current clock, never stored as a flag.
func (s *RefreshSession) ExpiresAt() time.Time {
	return s.CreatedAt.Add(s.ExpiresIn)
}
