package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("already exists")
)

// IsRetryable reports whether err is a transient database condition: a
// connection failure that happened before anything was sent, a postgres
// serialization failure or a locked sqlite database.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// Retry runs fn up to attempts times, sleeping backoff, 2*backoff, ...
// between tries. Only errors classified by IsRetryable, or any error when
// always is true, are retried.
func Retry(ctx context.Context, attempts int, backoff time.Duration, always bool, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if !always && !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		zap.S().Named("store").Warnw("retrying database operation", "attempt", i+1, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff * time.Duration(1<<i)):
		}
	}
	return err
}
