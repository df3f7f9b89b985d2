package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"napsync/internal/config"
)

// Connector opens a fresh Store per logical operation. Callers must Close it.
type Connector struct {
	driver          string
	credentialsPath string
	sqlitePath      string
	opts            Options
	logger          *zap.Logger
}

// NewConnector builds a connector from the database section of the app config.
// A nil logger discards output.
func NewConnector(cfg config.DatabaseConfig, logger *zap.Logger) *Connector {
	if logger == nil {
		logger = zap.NewNop()
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
	}
	return &Connector{
		driver:          driver,
		credentialsPath: cfg.Credentials,
		sqlitePath:      cfg.SQLitePath,
		opts: Options{
			Driver:         driver,
			ConnectTimeout: cfg.ConnectTimeout.Duration,
			QueryTimeout:   cfg.QueryTimeout.Duration,
		},
		logger: logger,
	}
}

// NewSQLiteConnector connector for an offline snapshot file.
func NewSQLiteConnector(path string) *Connector {
	return &Connector{
		driver:     DriverSQLite,
		sqlitePath: path,
		opts:       Options{Driver: DriverSQLite},
		logger:     zap.NewNop(),
	}
}

// Open connects. Credentials are re-read on every attempt.
func (c *Connector) Open(ctx context.Context) (*Store, error) {
	opts := c.opts
	target := c.Describe()
	switch c.driver {
	case DriverSQLite:
		if c.sqlitePath == "" {
			return nil, fmt.Errorf("%w: sqlite_path is empty", ErrConnection)
		}
		opts.DSN = c.sqlitePath
	case DriverPostgres:
		creds, err := config.LoadCredentials(c.credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		}
		opts.DSN = creds.DSN(opts.ConnectTimeout)
		target = DriverPostgres + ":" + creds.Redacted()
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrConnection, c.driver)
	}

	st, err := New(ctx, opts)
	if err != nil {
		c.logger.Warn("Database connection failed", zap.String("target", target), zap.Error(err))
		return nil, err
	}
	c.logger.Debug("Database connection opened", zap.String("target", target))
	return st, nil
}

// Describe connection target before credentials are read, without secrets.
func (c *Connector) Describe() string {
	if c.driver == DriverSQLite {
		return "sqlite3:" + c.sqlitePath
	}
	return "pgx:" + c.credentialsPath
}
