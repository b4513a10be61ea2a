package pgutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/lucksy/internal/domain"
)

// Postgres error codes that mean "try again", not "you are wrong".
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"

	codeForeignKeyViolation = "23503"
)

// TxOptions tunes WithTxOpts.
type TxOptions struct {
	// LockTimeout bounds how long a statement waits for a row lock.
	// Zero keeps the server default.
	LockTimeout time.Duration
	Isolation   sql.IsolationLevel
}

// WithTx runs fn inside a transaction.
// It commits if fn returns nil, otherwise it rolls back.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	return WithTxOpts(ctx, db, TxOptions{}, fn)
}

// WithTxOpts is WithTx with a lock timeout and isolation level. Lock
// contention, deadlocks and serialization failures come back wrapped in
// domain.ErrTransient.
func WithTxOpts(ctx context.Context, db *sql.DB, opts TxOptions, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: opts.Isolation})
	if err != nil {
		return classify(fmt.Errorf("begin tx: %w", err))
	}

	if opts.LockTimeout > 0 {
		// SET does not take bind parameters.
		_, err = tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", opts.LockTimeout.Milliseconds()))
		if err != nil {
			_ = tx.Rollback()
			return classify(fmt.Errorf("set lock timeout: %w", err))
		}
	}

	err = fn(tx)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return classify(fmt.Errorf("rollback after fn error: %v (fn err: %w)", rbErr, err))
		}

		return classify(err)
	}

	err = tx.Commit()
	if err != nil {
		return classify(fmt.Errorf("commit tx: %w", err))
	}

	return nil
}

// IsRetryable reports whether err carries one of the retryable Postgres codes.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	default:
		return false
	}
}

// IsForeignKeyViolation reports whether err is a violation of the named
// foreign key constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == codeForeignKeyViolation && pgErr.ConstraintName == constraint
}

func classify(err error) error {
	if IsRetryable(err) && !errors.Is(err, domain.ErrTransient) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}

	return err
}
