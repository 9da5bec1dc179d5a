// Package travel implements the booking database behind the assistants:
// flights and tickets, car rentals, hotels and trip recommendations.
package travel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrNotTicketOwner    = errors.New("ticket does not belong to passenger")
	ErrRentalNotFound    = errors.New("car rental not found")
	ErrHotelNotFound     = errors.New("hotel not found")
	ErrExcursionNotFound = errors.New("trip recommendation not found")
)

// TooSoonError rejects a reschedule to a flight departing inside the cutoff
// window.
type TooSoonError struct {
	Departure time.Time
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("not permitted to reschedule to a flight departing at %s, less than %s from now", e.Departure, RescheduleCutoff)
}

// RescheduleCutoff is the minimum lead time for moving a ticket onto a flight.
const RescheduleCutoff = 3 * time.Hour

// Store wraps the travel booking database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

type StoreOption func(*Store)

// WithClock overrides the wall clock, used by the reschedule cutoff check.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(db *sql.DB, opts ...StoreOption) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// timestampLayouts covers the datetime encodings found in the travel dataset.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999+00:00",
	time.RFC3339,
}

func parseTimestamp(v string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000000-07:00")
}

// ParseWhen parses user-supplied dates and datetimes, accepting both plain
// dates and the dataset's timestamp encodings.
func ParseWhen(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
		return t, nil
	}
	return parseTimestamp(v)
}

// checkAffected maps a zero-row update onto the given not-found error.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func exists(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
