package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

const (
	pgGet          = `(?s)^SELECT\s+value\s+FROM\s+kv\s+WHERE\s+key\s*=\s*\$1$`
	pgGetForUpdate = `(?s)^SELECT\s+value\s+FROM\s+kv\s+WHERE\s+key\s*=\s*\$1\s+FOR\s+UPDATE$`
	pgUpsert       = `(?s)^INSERT\s+INTO\s+kv\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s+ON\s+CONFLICT\s*\(key\)\s+DO\s+UPDATE\s+SET\s+value\s*=\s*EXCLUDED\.value$`
	pgDelete       = `(?s)^DELETE\s+FROM\s+kv\s+WHERE\s+key\s*=\s*\$1$`
	pgLock         = `(?s)^SELECT\s+pg_advisory_xact_lock\(hashtext\(\$1\)\)$`
)

func TestPostgres_Get_Found(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGet).WithArgs("learnify_users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{}`)))

	v, err := repo.Get(context.Background(), "learnify_users")
	require.NoError(t, err)
	require.Equal(t, []byte(`{}`), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_NotFound(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGet).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	v, err := repo.Get(context.Background(), "ghost")
	require.NoError(t, err)
	require.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_DBError(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGet).WithArgs("k").WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "k")
	require.ErrorContains(t, err, "failed to get slot[k]: db down")
}

func TestPostgres_Set(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectExec(pgUpsert).WithArgs("k", []byte("v")).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Delete(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectExec(pgDelete).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "k"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Update_LocksAndWrites(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(pgLock).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(pgGetForUpdate).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("old")))
	mock.ExpectExec(pgUpsert).WithArgs("k", []byte("old+new")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "k", func(cur []byte) ([]byte, error) {
		return append(cur, []byte("+new")...), nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Update_MissingRowThenDeleteIsNoop(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(pgLock).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(pgGetForUpdate).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "k", func(cur []byte) ([]byte, error) {
		require.Nil(t, cur)
		return nil, nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Update_FnErrorRollsBack(t *testing.T) {
	repo, mock := newPostgresWithMock(t)
	errAbort := errors.New("abort")

	mock.ExpectBegin()
	mock.ExpectExec(pgLock).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(pgGetForUpdate).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("old")))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), "k", func([]byte) ([]byte, error) { return nil, errAbort })
	require.ErrorIs(t, err, errAbort)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Update_FirstWriteTakesKeyLock(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(pgLock).WithArgs("learnify_data_v1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(pgGetForUpdate).WithArgs("learnify_data_v1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec(pgUpsert).WithArgs("learnify_data_v1", []byte(`{"users":{}}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "learnify_data_v1", func(cur []byte) ([]byte, error) {
		require.Nil(t, cur)
		return []byte(`{"users":{}}`), nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Update_LockErrorRollsBack(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(pgLock).WithArgs("k").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), "k", func(cur []byte) ([]byte, error) {
		t.Fatal("fn must not run without the lock")
		return nil, nil
	})
	require.ErrorContains(t, err, "failed to lock slot[k]: lock timeout")
	require.NoError(t, mock.ExpectationsWereMet())
}
