package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

const (
	// DriverPostgres production driver (jackc/pgx stdlib)
	DriverPostgres = "pgx"
	// DriverSQLite offline snapshot driver
	DriverSQLite = "sqlite3"
)

var (
	// ErrConnection the database could not be opened or pinged
	ErrConnection = errors.New("database connection failed")
	// ErrQuery a statement failed
	ErrQuery = errors.New("database query failed")
)

// Options connection options
type Options struct {
	Driver         string
	DSN            string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
}

// Store read access to inv_naps and clusters
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// New opens and pings a database. SQLite databases get the embedded schema;
// PostgreSQL is treated as read-only and never migrated.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Driver == DriverSQLite {
		// snapshot directory
		if dir := filepath.Dir(opts.DSN); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("%w: create data directory: %w", ErrConnection, err)
			}
		}
	}

	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrConnection, opts.Driver, err)
	}

	pingCtx := ctx
	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrConnection, opts.Driver, err)
	}

	// one connection per logical operation
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db, queryTimeout: opts.QueryTimeout}

	if opts.Driver == DriverSQLite {
		if err := store.initSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return store, nil
}

// initSchema creates the snapshot tables
func (s *Store) initSchema(ctx context.Context) error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Close closes the connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB raw connection, used by tests to seed snapshots
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// placeholders "$from, $from+1, ..." for n parameters
func placeholders(from, n int) string {
	b := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, fmt.Sprintf("$%d", from+i)...)
	}
	return string(b)
}
