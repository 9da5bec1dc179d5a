package travel

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/brook-ai/brook/components/document"
)

// BootstrapConfig describes where the travel dataset lives and where to keep
// the working copy. The backup file preserves the pristine download so the
// working database can be reset.
type BootstrapConfig struct {
	DatabaseURL string
	LocalFile   string
	BackupFile  string
	Overwrite   bool
}

// Download fetches the travel database when the working copy is missing, and
// keeps an untouched backup next to it.
func Download(ctx context.Context, cfg BootstrapConfig) error {
	if !cfg.Overwrite {
		if _, err := os.Stat(cfg.LocalFile); err == nil {
			slog.Debug("travel database already present", slog.String("file", cfg.LocalFile))
			return nil
		}
	}
	slog.Info("downloading travel database", slog.String("url", cfg.DatabaseURL))
	doc, err := document.NewHttp(document.WithHttpURL(cfg.DatabaseURL))
	if err != nil {
		return err
	}
	if err := doc.ReadAll(); err != nil {
		return fmt.Errorf("download travel database: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LocalFile), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.LocalFile, doc.Buffer().Bytes(), 0o644); err != nil {
		return err
	}
	if cfg.BackupFile != "" {
		if err := copyFile(cfg.LocalFile, cfg.BackupFile); err != nil {
			return fmt.Errorf("backup travel database: %w", err)
		}
	}
	return nil
}

// Restore resets the working database from the pristine backup.
func Restore(cfg BootstrapConfig) error {
	return copyFile(cfg.BackupFile, cfg.LocalFile)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// nullValue is how the dataset encodes missing datetimes.
const nullValue = `\N`

// ShiftToPresent rewrites the dataset's datetimes so the most recent actual
// departure lands on now. The tutorial dataset is a historical snapshot;
// shifting it keeps "flights departing soon" scenarios meaningful.
func ShiftToPresent(ctx context.Context, db *sql.DB, now time.Time) error {
	var latest time.Time
	rows, err := db.QueryContext(ctx, "SELECT actual_departure FROM flights")
	if err != nil {
		return err
	}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return err
		}
		if v == "" || v == nullValue {
			continue
		}
		t, err := parseTimestamp(v)
		if err != nil {
			continue
		}
		if t.After(latest) {
			latest = t
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if latest.IsZero() {
		return fmt.Errorf("no actual departures found, cannot shift dataset")
	}
	diff := now.Sub(latest)
	slog.Info("shifting travel dataset to present", slog.Duration("offset", diff))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := shiftFlights(ctx, tx, diff); err != nil {
		return err
	}
	if err := shiftBookings(ctx, tx, diff); err != nil {
		return err
	}
	return tx.Commit()
}

func shiftFlights(ctx context.Context, tx *sql.Tx, diff time.Duration) error {
	type flightTimes struct {
		id   int64
		cols [4]string
	}
	rows, err := tx.QueryContext(ctx,
		"SELECT flight_id, scheduled_departure, scheduled_arrival, COALESCE(actual_departure, ''), COALESCE(actual_arrival, '') FROM flights")
	if err != nil {
		return err
	}
	var flights []flightTimes
	for rows.Next() {
		var f flightTimes
		if err := rows.Scan(&f.id, &f.cols[0], &f.cols[1], &f.cols[2], &f.cols[3]); err != nil {
			rows.Close()
			return err
		}
		flights = append(flights, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for _, f := range flights {
		shifted := make([]any, 0, 5)
		for _, v := range f.cols {
			shifted = append(shifted, shiftValue(v, diff))
		}
		shifted = append(shifted, f.id)
		if _, err := tx.ExecContext(ctx,
			"UPDATE flights SET scheduled_departure = ?, scheduled_arrival = ?, actual_departure = ?, actual_arrival = ? WHERE flight_id = ?",
			shifted...); err != nil {
			return err
		}
	}
	return nil
}

func shiftBookings(ctx context.Context, tx *sql.Tx, diff time.Duration) error {
	type booking struct {
		ref  string
		date string
	}
	rows, err := tx.QueryContext(ctx, "SELECT book_ref, book_date FROM bookings")
	if err != nil {
		return err
	}
	var bookings []booking
	for rows.Next() {
		var b booking
		if err := rows.Scan(&b.ref, &b.date); err != nil {
			rows.Close()
			return err
		}
		bookings = append(bookings, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for _, b := range bookings {
		if _, err := tx.ExecContext(ctx,
			"UPDATE bookings SET book_date = ? WHERE book_ref = ?",
			shiftValue(b.date, diff), b.ref); err != nil {
			return err
		}
	}
	return nil
}

func shiftValue(v string, diff time.Duration) string {
	if v == "" || v == nullValue {
		return v
	}
	t, err := parseTimestamp(v)
	if err != nil {
		return v
	}
	return formatTimestamp(t.Add(diff))
}
