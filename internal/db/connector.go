package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vvka-141/retailsql/internal/retry"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// sqliteBusyTimeout lets a reader wait out a concurrent writer instead of failing.
const sqliteBusyTimeout = 5 * time.Second

// Open connects to an existing store. A missing SQLite file is reported as
// retailsql.ErrStoreNotFound rather than silently creating an empty database.
func Open(ctx context.Context, cfg retailsql.StoreConfig, logger retailsql.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Driver == retailsql.DriverSQLite {
		if _, err := os.Stat(cfg.Path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s does not exist, run `retailsql load` first: %w", cfg.Path, retailsql.ErrStoreNotFound)
			}
			return nil, fmt.Errorf("stat %s: %w", cfg.Path, err)
		}
	}
	return connect(ctx, cfg, logger)
}

// Create opens a fresh store for loading. For SQLite any existing database file
// is deleted first; for PostgreSQL the table is replaced later by ReplaceTable.
func Create(ctx context.Context, cfg retailsql.StoreConfig, logger retailsql.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Driver == retailsql.DriverSQLite {
		if err := os.Remove(cfg.Path); err == nil {
			logger.Verbose("Removed existing database %s", cfg.Path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("removing existing database %s: %w", cfg.Path, err)
		}
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating directory for %s: %w", cfg.Path, err)
			}
		}
	}
	return connect(ctx, cfg, logger)
}

func connect(ctx context.Context, cfg retailsql.StoreConfig, logger retailsql.Logger) (*Store, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var handle *sql.DB
	release := func() error { return nil }
	if cfg.Driver == retailsql.DriverPostgres {
		handle, release, err = openPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	} else {
		handle, err = sql.Open(dialect.SQLDriver(), cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening %s store: %w: %w", dialect.Name(), retailsql.ErrConnectionFailed, err)
		}
	}
	// Every stage is strictly sequential.
	handle.SetMaxOpenConns(1)

	executor := retry.NewExecutor(
		retry.NewStoreErrorClassifier(),
		retry.StoreBackoff(),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("Store not ready (attempt %d): %v; retrying in %s", attempt+1, err, delay)
	})

	if err := executor.Execute(ctx, handle.PingContext); err != nil {
		handle.Close()
		release() //nolint:errcheck
		return nil, wrapConnectionError(err, cfg)
	}

	if cfg.Driver == retailsql.DriverSQLite {
		pragma := fmt.Sprintf("PRAGMA busy_timeout = %d", sqliteBusyTimeout.Milliseconds())
		if _, err := handle.ExecContext(ctx, pragma); err != nil {
			handle.Close()
			return nil, fmt.Errorf("configuring sqlite: %w", err)
		}
	}

	logger.Verbose("Connected to %s store (%s)", dialect.Name(), cfg.Location())
	return &Store{db: handle, dialect: dialect, table: cfg.Table, logger: logger, release: release}, nil
}

// wrapConnectionError adds actionable guidance to raw driver errors.
func wrapConnectionError(err error, cfg retailsql.StoreConfig) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "connection refused"):
		return fmt.Errorf(`connection refused

Possible causes:
  - PostgreSQL is not running
  - Wrong host or port in the DSN

%w: %w`, retailsql.ErrConnectionFailed, err)

	case strings.Contains(msg, "password authentication failed"):
		return fmt.Errorf(`password authentication failed

Check the user and password in --dsn or $RETAILSQL_DSN.

%w: %w`, retailsql.ErrConnectionFailed, err)

	case strings.Contains(msg, "does not exist"):
		return fmt.Errorf(`database does not exist

Create it first (createdb) or point --dsn at an existing database.

%w: %w`, retailsql.ErrConnectionFailed, err)

	case strings.Contains(msg, "unable to open database file") || strings.Contains(msg, "out of memory (14)"):
		return fmt.Errorf("cannot open sqlite file %s: %w: %w", cfg.Path, retailsql.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("failed to connect to %s store: %w: %w", cfg.Driver, retailsql.ErrConnectionFailed, err)
	}
}
