// Package store owns all persistence for orders, the sales ledger, the menu
// catalog and users. Every public method is bounded by the store timeout and
// retries once on a transient connectivity failure before surfacing a
// BackendUnavailableError.
package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"homefood-api/apperrors"

	"gorm.io/gorm"
)

type Store struct {
	db      *gorm.DB
	log     *slog.Logger
	timeout time.Duration
	feed    *Feed
}

func New(db *gorm.DB, log *slog.Logger, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{
		db:      db,
		log:     log.With("component", "store"),
		timeout: timeout,
		feed:    newFeed(),
	}
}

// Events exposes the change feed for live consumers
func (s *Store) Events() *Feed { return s.feed }

// run executes op with a bounded context, retrying exactly once when the
// failure looks like a connectivity problem rather than a logic error.
func (s *Store) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempt := func() error {
		bounded, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return fn(bounded)
	}

	err := attempt()
	if err == nil || !isTransient(err) {
		return err
	}
	s.log.Warn("transient store failure, retrying", "op", op, "error", err)
	if err = attempt(); err != nil && isTransient(err) {
		return &apperrors.BackendUnavailableError{Err: err}
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database is busy") ||
		strings.Contains(msg, "connection refused")
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
