package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/authd/internal/storage"
)

func TestUserRepository_FindUserByEmail(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash"}).
		AddRow(int64(1), "u@example.com", "$2a$10$hash")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash FROM users WHERE email = $1`)).
		WithArgs("u@example.com").
		WillReturnRows(rows)

	user, err := repo.FindUserByEmail(context.Background(), "u@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "$2a$10$hash", user.HashedPassword)
}

func TestUserRepository_FindUserByID_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash FROM users WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), 99)
	require.ErrorIs(t, err, storage.ErrUserNotFound)
}
