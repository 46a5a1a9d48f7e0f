package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelichko/authd/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUserNotFound    = errors.New("user not found")
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SessionRepository persists refresh sessions keyed by their opaque token.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.RefreshSession) error
	FindSession(ctx context.Context, refreshToken string) (*models.RefreshSession, error)
	DeleteSession(ctx context.Context, refreshToken string) error
}

// UserRepository is read-only here: user provisioning belongs to a separate
// subsystem.
type UserRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

type Repositories interface {
	SessionRepository
	UserRepository
}

// Storage adds the transaction boundary. Every authentication flow runs its
// repository calls through exactly one InTx scope; the transaction commits
// only when fn returns nil and rolls back otherwise.
type Storage interface {
	Repositories
	InTx(ctx context.Context, fn func(r Repositories) error) error
}
