package kv

import "database/sql"

// SQLiteRepository stores slots in a SQLite database (modernc.org/sqlite).
// SQLite has no row locks; Update relies on the connection being opened with
// _txlock=immediate so the transaction takes the write lock up front.
type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: queries{
		get:          `SELECT value FROM kv WHERE key = ?`,
		getForUpdate: `SELECT value FROM kv WHERE key = ?`,
		set: `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		del: `DELETE FROM kv WHERE key = ?`,
	}}}
}
