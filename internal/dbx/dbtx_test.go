package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSlots(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func slotCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	return n
}

func insertSlot(ctx context.Context, q Querier, key string) error {
	_, err := q.ExecContext(ctx, `INSERT INTO kv(key, value) VALUES (?, ?)`, key, []byte("{}"))
	return err
}

func TestInTx(t *testing.T) {
	errQuota := errors.New("quota exceeded")

	tests := []struct {
		name    string
		fn      func(ctx context.Context, q Querier) error
		wantErr error
		rows    int
	}{
		{
			name: "commit",
			fn: func(ctx context.Context, q Querier) error {
				return insertSlot(ctx, q, "learnify_progress")
			},
			rows: 1,
		},
		{
			name: "fn error rolls back and is returned unwrapped",
			fn: func(ctx context.Context, q Querier) error {
				if err := insertSlot(ctx, q, "learnify_users"); err != nil {
					return err
				}
				return errQuota
			},
			wantErr: errQuota,
			rows:    0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := openSlots(t)

			err := InTx(context.Background(), db, tc.fn)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.rows, slotCount(t, db))
		})
	}
}

func TestInTx_PanicRollsBack(t *testing.T) {
	db := openSlots(t)

	require.Panics(t, func() {
		_ = InTx(context.Background(), db, func(ctx context.Context, q Querier) error {
			require.NoError(t, insertSlot(ctx, q, "learnify_session"))
			panic("boom")
		})
	})
	assert.Equal(t, 0, slotCount(t, db))
}

func TestInTx_BeginFails(t *testing.T) {
	db := openSlots(t)
	require.NoError(t, db.Close())

	err := InTx(context.Background(), db, func(ctx context.Context, q Querier) error { return nil })
	require.ErrorContains(t, err, "begin tx")
}

func TestInTx_CommitFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk I/O error"))

	err = InTx(context.Background(), db, func(ctx context.Context, q Querier) error { return nil })
	require.ErrorContains(t, err, "commit tx")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollbackFailureIsJoined(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	errFn := errors.New("fn failed")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

	err = InTx(context.Background(), db, func(ctx context.Context, q Querier) error { return errFn })
	require.ErrorIs(t, err, errFn)
	require.ErrorContains(t, err, "rollback tx")
	require.NoError(t, mock.ExpectationsWereMet())
}
