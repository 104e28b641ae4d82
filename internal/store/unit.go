package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/jmoiron/sqlx"

	"videocatalog/internal/config"
)

const lockRetryDelay = 25 * time.Millisecond

// Unit is a single unit of work. It is only valid inside the function passed
// to Do or View.
type Unit struct {
	tx *sqlx.Tx
}

// Do runs fn inside a read-write transaction. The transaction commits when fn
// returns nil and rolls back otherwise, including when fn panics. For SQLite
// an exclusive advisory lock on the database file is held for the duration.
// A unit that fails with SQLITE_BUSY is retried from the start, so fn must
// not depend on side effects of an earlier attempt.
func (s *Store) Do(ctx context.Context, fn func(*Unit) error) error {
	return s.run(ctx, false, fn)
}

// View runs fn inside a read-only transaction under a shared lock.
func (s *Store) View(ctx context.Context, fn func(*Unit) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) run(ctx context.Context, readOnly bool, fn func(*Unit) error) error {
	ctx = ensureContext(ctx)
	return s.withLock(ctx, readOnly, func() error {
		return retryOnBusy(ctx, func() error {
			return s.runOnce(ctx, readOnly, fn)
		})
	})
}

func (s *Store) runOnce(ctx context.Context, readOnly bool, fn func(*Unit) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: readOnly && s.driver != config.DriverSQLite})
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback unit of work: %w", rbErr))
		}
	}()

	if err := fn(&Unit{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	committed = true
	return nil
}

// withLock serializes writers across processes sharing one SQLite file.
// Postgres relies on its own row locking.
func (s *Store) withLock(ctx context.Context, shared bool, fn func() error) error {
	if s.lockPath == "" {
		return fn()
	}

	lock := flock.New(s.lockPath)
	lockCtx := ctx
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}

	var (
		ok  bool
		err error
	)
	if shared {
		ok, err = lock.TryRLockContext(lockCtx, lockRetryDelay)
	} else {
		ok, err = lock.TryLockContext(lockCtx, lockRetryDelay)
	}
	if err != nil {
		return fmt.Errorf("acquire database lock %s: %w", s.lockPath, err)
	}
	if !ok {
		return fmt.Errorf("acquire database lock %s: not acquired", s.lockPath)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			s.logger.Warn("failed to release database lock", "path", s.lockPath, "error", unlockErr)
		}
	}()
	return fn()
}
