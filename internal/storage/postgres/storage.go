package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelichko/authd/internal/storage"
)

type Storage struct {
	db *sql.DB
	*UserRepository
	*SessionRepository
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{
		db:                db,
		UserRepository:    NewUserRepository(db),
		SessionRepository: NewSessionRepository(db),
	}
}

type txRepositories struct {
	*UserRepository
	*SessionRepository
}

// InTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back on error or panic;
// panics are rethrown after the rollback.
func (s *Storage) InTx(ctx context.Context, fn func(r storage.Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("commit transaction: %w", commitErr)
		}
	}()

	err = fn(&txRepositories{
		UserRepository:    NewUserRepository(tx),
		SessionRepository: NewSessionRepository(tx),
	})
	return err
}
