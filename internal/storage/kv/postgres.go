package kv

import "database/sql"

// PostgresRepository stores slots in PostgreSQL through the pgx stdlib
// driver. Update takes a transaction-scoped advisory lock on the key before
// reading, so two first writes of the same slot are serialized even though
// there is no row yet for FOR UPDATE to lock.
type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: queries{
		lock:         `SELECT pg_advisory_xact_lock(hashtext($1))`,
		get:          `SELECT value FROM kv WHERE key = $1`,
		getForUpdate: `SELECT value FROM kv WHERE key = $1 FOR UPDATE`,
		set: `INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		del: `DELETE FROM kv WHERE key = $1`,
	}}}
}
