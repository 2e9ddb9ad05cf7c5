// Package kv implements the slot storage Learnify keeps its state in: a
// single table of key → value pairs, the equivalent of the browser's
// localStorage. SQLite and PostgreSQL implementations share the same SQL
// shape; MemoryRepository serves tests and throwaway sessions.
package kv

import (
	"context"
)

// UpdateFunc receives the current value of a slot (nil when absent) and
// returns the value to store. Returning a nil slice deletes the slot.
// Returning an error aborts the update without touching the slot.
type UpdateFunc func(current []byte) ([]byte, error)

// Repository is the contract of the slot storage.
//
// Get returns (nil, nil) for a missing key. Update performs a
// read-modify-write of one key atomically with respect to other Update calls
// on the same storage, including calls from other processes sharing it.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Delete(ctx context.Context, key string) error
}
