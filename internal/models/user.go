package models

// User is owned by a separate user subsystem; this service only reads it.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
}
