package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/authd/internal/storage"
)

func TestInTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newSQLMockDB(t)
	st := NewStorage(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE refresh_token = $1`)).
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.InTx(context.Background(), func(r storage.Repositories) error {
		return r.DeleteSession(context.Background(), "tok")
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackOnError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	st := NewStorage(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := st.InTx(context.Background(), func(r storage.Repositories) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackAndRethrowsOnPanic(t *testing.T) {
	db, mock := newSQLMockDB(t)
	st := NewStorage(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	require.PanicsWithValue(t, "boom", func() {
		_ = st.InTx(context.Background(), func(r storage.Repositories) error {
			panic("boom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}
