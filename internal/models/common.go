package models

// Echo context keys shared between middleware and handlers.
const (
	MwUserIDKey = "userID"
)
