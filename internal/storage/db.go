// Package storage opens the slot storage selected by configuration and keeps
// its schema current with the embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/learnify/internal/filex"
	"github.com/dmitrijs2005/learnify/internal/storage/kv"
	"github.com/dmitrijs2005/learnify/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// sqliteParams make every transaction take the write lock at BEGIN and wait
// for a busy database instead of failing at once.
const sqliteParams = "_txlock=immediate&_pragma=busy_timeout(5000)"

// Storage is an opened slot storage. DB is nil for the memory driver.
type Storage struct {
	DB *sql.DB
	KV kv.Repository
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the given driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	var dialect, dir string
	switch driver {
	case DriverSQLite:
		dialect, dir = "sqlite3", "sqlite"
	case DriverPostgres:
		dialect, dir = "postgres", "postgres"
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SQLiteDSN appends the locking parameters to a SQLite file name unless the
// caller already supplied a query string.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?" + sqliteParams
}

// sqliteFile returns the on-disk path named by a SQLite DSN, or "" for
// in-memory and URI forms.
func sqliteFile(dsn string) string {
	name, _, _ := strings.Cut(dsn, "?")
	if name == "" || name == ":memory:" || strings.HasPrefix(name, "file:") {
		return ""
	}
	return name
}

// Open connects to the storage named by driver, migrates it and returns the
// matching kv repository.
func Open(ctx context.Context, driver, dsn string) (*Storage, error) {
	switch driver {
	case DriverMemory:
		return &Storage{KV: kv.NewMemoryRepository()}, nil
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	sqlDriver := "pgx"
	if driver == DriverSQLite {
		sqlDriver = "sqlite"
		if file := sqliteFile(dsn); file != "" {
			if err := filex.EnsureParentDir(file); err != nil {
				return nil, fmt.Errorf("failed to prepare sqlite file: %w", err)
			}
		}
		dsn = SQLiteDSN(dsn)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", driver, err)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	var repo kv.Repository
	if driver == DriverSQLite {
		repo = kv.NewSQLiteRepository(db)
	} else {
		repo = kv.NewPostgresRepository(db)
	}

	return &Storage{DB: db, KV: repo}, nil
}
