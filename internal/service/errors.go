package service

import "errors"

// Business outcomes, not faults: they propagate unchanged to the caller and
// are matched with errors.Is. Store faults are wrapped separately and never
// coerced into one of these.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	ErrInvalidSignature     = errors.New("invalid token signature")
	ErrAccessTokenExpired   = errors.New("access token expired")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
)
