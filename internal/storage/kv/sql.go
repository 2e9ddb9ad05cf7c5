package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/learnify/internal/dbx"
)

// queries holds the dialect-specific statements of a SQL-backed repository.
type queries struct {
	// lock, if set, runs first in Update with the key as its only argument.
	lock         string
	get          string
	getForUpdate string
	set          string
	del          string
}

type sqlRepository struct {
	db *sql.DB
	q  queries
}

func getValue(ctx context.Context, db dbx.Querier, query, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return value, nil
}

func setValue(ctx context.Context, db dbx.Querier, query, key string, value []byte) error {
	if _, err := db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", key, err)
	}
	return nil
}

func deleteValue(ctx context.Context, db dbx.Querier, query, key string) error {
	if _, err := db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete slot[%s]: %w", key, err)
	}
	return nil
}

func (r *sqlRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return getValue(ctx, r.db, r.q.get, key)
}

func (r *sqlRepository) Set(ctx context.Context, key string, value []byte) error {
	return setValue(ctx, r.db, r.q.set, key, value)
}

func (r *sqlRepository) Delete(ctx context.Context, key string) error {
	return deleteValue(ctx, r.db, r.q.del, key)
}

// Update reads the slot with the dialect's locking read, hands it to fn and
// writes the outcome back in the same transaction.
func (r *sqlRepository) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.Querier) error {
		if r.q.lock != "" {
			if _, err := tx.ExecContext(ctx, r.q.lock, key); err != nil {
				return fmt.Errorf("failed to lock slot[%s]: %w", key, err)
			}
		}

		current, err := getValue(ctx, tx, r.q.getForUpdate, key)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		if next == nil {
			if current == nil {
				return nil
			}
			return deleteValue(ctx, tx, r.q.del, key)
		}
		return setValue(ctx, tx, r.q.set, key, next)
	})
}
