package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/authd/internal/models"
	"github.com/avelichko/authd/internal/storage"
)

type SessionRepository struct {
	db storage.DBTX
}

func NewSessionRepository(db storage.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session models.RefreshSession) error {
	query := `INSERT INTO sessions (refresh_token, user_id, expires_in, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		session.RefreshToken,
		session.UserID,
		int64(session.ExpiresIn/time.Second),
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindSession(ctx context.Context, refreshToken string) (*models.RefreshSession, error) {
	var (
		session   models.RefreshSession
		expiresIn int64
	)
	query := `SELECT refresh_token, user_id, expires_in, created_at FROM sessions WHERE refresh_token = $1`
	err := r.db.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.RefreshToken,
		&session.UserID,
		&expiresIn,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	session.ExpiresIn = time.Duration(expiresIn) * time.Second
	return &session, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	query := `DELETE FROM sessions WHERE refresh_token = $1`
	if _, err := r.db.ExecContext(ctx, query, refreshToken); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
