package travel

import (
	"context"
	"testing"
	"time"
)

func TestShiftToPresent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// mark flight 1 as departed a week before the reference time
	departed := testNow.Add(-7 * 24 * time.Hour)
	if _, err := s.DB().Exec("UPDATE flights SET actual_departure = ? WHERE flight_id = 1", formatTimestamp(departed)); err != nil {
		t.Fatal(err)
	}

	target := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	if err := ShiftToPresent(ctx, s.DB(), target); err != nil {
		t.Fatal(err)
	}

	var shifted string
	if err := s.DB().QueryRow("SELECT actual_departure FROM flights WHERE flight_id = 1").Scan(&shifted); err != nil {
		t.Fatal(err)
	}
	got, err := parseTimestamp(shifted)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(target) {
		t.Errorf("latest departure must land on target: got %v want %v", got, target)
	}

	// null markers stay untouched
	var nullDep string
	if err := s.DB().QueryRow("SELECT actual_departure FROM flights WHERE flight_id = 2").Scan(&nullDep); err != nil {
		t.Fatal(err)
	}
	if nullDep != nullValue {
		t.Errorf("null marker rewritten: %q", nullDep)
	}

	// bookings shifted by the same offset
	var bookDate string
	if err := s.DB().QueryRow("SELECT book_date FROM bookings WHERE book_ref = 'C0E5F2'").Scan(&bookDate); err != nil {
		t.Fatal(err)
	}
	gotBook, err := parseTimestamp(bookDate)
	if err != nil {
		t.Fatal(err)
	}
	wantBook := testNow.Add(-48 * time.Hour).Add(target.Sub(departed))
	if !gotBook.Equal(wantBook) {
		t.Errorf("booking date offset wrong: got %v want %v", gotBook, wantBook)
	}
}
