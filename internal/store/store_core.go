package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"videocatalog/internal/config"
	"videocatalog/internal/logging"
)

func init() {
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Store manages video persistence backed by SQLite or PostgreSQL.
type Store struct {
	db          *sqlx.DB
	driver      string
	path        string
	lockPath    string
	lockTimeout time.Duration
	logger      *slog.Logger
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open connects to the configured database and prepares the schema. When
// cfg.Database.RecreateOnOpen is set every table is dropped and recreated.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("store requires config")
	}
	ctx = ensureContext(ctx)
	logger = logging.NewComponentLogger(logger, "store")

	var (
		dsn string
		s   = &Store{
			driver:      cfg.Database.Driver,
			lockTimeout: time.Duration(cfg.Database.BusyTimeoutMS) * time.Millisecond,
			logger:      logger,
		}
	)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, fmt.Errorf("ensure directories: %w", err)
		}
		s.path = cfg.Database.Path
		s.lockPath = cfg.Database.Path + ".lock"
		dsn = sqliteDSN(cfg.Database.Path, cfg.Database.BusyTimeoutMS)
	case config.DriverPostgres:
		dsn = cfg.Database.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := sqlx.Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", cfg.Database.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", cfg.Database.Driver, err)
	}
	s.db = db

	if cfg.Database.RecreateOnOpen {
		if err := s.Reset(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return s, nil
	}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// sqliteDSN applies pragmas through the DSN so every pooled connection gets
// them, not only the first.
func sqliteDSN(path string, busyTimeoutMS int) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMS))
	params.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + params.Encode()
}

// Driver reports the database driver in use.
func (s *Store) Driver() string {
	return s.driver
}

// Path returns the SQLite database file, or "" for postgres.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
