package travel

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	schema := []string{
		`CREATE TABLE tickets (ticket_no TEXT PRIMARY KEY, book_ref TEXT, passenger_id TEXT)`,
		`CREATE TABLE ticket_flights (ticket_no TEXT, flight_id INTEGER, fare_conditions TEXT)`,
		`CREATE TABLE flights (flight_id INTEGER PRIMARY KEY, flight_no TEXT, scheduled_departure TEXT, scheduled_arrival TEXT,
			departure_airport TEXT, arrival_airport TEXT, status TEXT, aircraft_code TEXT, actual_departure TEXT, actual_arrival TEXT)`,
		`CREATE TABLE boarding_passes (ticket_no TEXT, flight_id INTEGER, boarding_no INTEGER, seat_no TEXT)`,
		`CREATE TABLE car_rentals (id INTEGER PRIMARY KEY, name TEXT, location TEXT, price_tier TEXT, start_date TEXT, end_date TEXT, booked INTEGER DEFAULT 0)`,
		`CREATE TABLE hotels (id INTEGER PRIMARY KEY, name TEXT, location TEXT, price_tier TEXT, checkin_date TEXT, checkout_date TEXT, booked INTEGER DEFAULT 0)`,
		`CREATE TABLE trip_recommendations (id INTEGER PRIMARY KEY, name TEXT, location TEXT, keywords TEXT, details TEXT, booked INTEGER DEFAULT 0)`,
		`CREATE TABLE bookings (book_ref TEXT PRIMARY KEY, book_date TEXT, total_amount INTEGER)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
	seedTravelData(t, db)
	return NewStore(db, WithClock(func() time.Time { return testNow }))
}

func seedTravelData(t *testing.T, db *sql.DB) {
	t.Helper()
	fixtures := []struct {
		stmt string
		args []any
	}{
		{`INSERT INTO flights VALUES (1, 'LX0112', ?, ?, 'CDG', 'BSL', 'Scheduled', '319', ?, '\N')`,
			[]any{formatTimestamp(testNow.Add(5 * time.Hour)), formatTimestamp(testNow.Add(7 * time.Hour)), `\N`}},
		{`INSERT INTO flights VALUES (2, 'LX0113', ?, ?, 'CDG', 'BSL', 'Scheduled', '319', '\N', '\N')`,
			[]any{formatTimestamp(testNow.Add(time.Hour)), formatTimestamp(testNow.Add(3 * time.Hour))}},
		{`INSERT INTO flights VALUES (3, 'LX0114', ?, ?, 'ZRH', 'VIE', 'Scheduled', '320', '\N', '\N')`,
			[]any{formatTimestamp(testNow.Add(30 * time.Hour)), formatTimestamp(testNow.Add(32 * time.Hour))}},
		{`INSERT INTO tickets VALUES ('7240005432906569', 'C0E5F2', '3442 587242')`, nil},
		{`INSERT INTO ticket_flights VALUES ('7240005432906569', 1, 'Economy')`, nil},
		{`INSERT INTO boarding_passes VALUES ('7240005432906569', 1, 12, '18B')`, nil},
		{`INSERT INTO car_rentals VALUES (1, 'Europcar', 'Basel', 'Economy', ?, ?, 0)`,
			[]any{formatTimestamp(testNow.Add(24 * time.Hour)), formatTimestamp(testNow.Add(72 * time.Hour))}},
		{`INSERT INTO car_rentals VALUES (2, 'Avis', 'Zurich', 'Luxury', ?, ?, 0)`,
			[]any{formatTimestamp(testNow.Add(24 * time.Hour)), formatTimestamp(testNow.Add(48 * time.Hour))}},
		{`INSERT INTO hotels VALUES (1, 'Hilton Basel', 'Basel', 'Luxury', ?, ?, 0)`,
			[]any{formatTimestamp(testNow.Add(24 * time.Hour)), formatTimestamp(testNow.Add(96 * time.Hour))}},
		{`INSERT INTO trip_recommendations VALUES (1, 'Basel Minster', 'Basel', 'landmark, history', 'Visit the gothic cathedral.', 0)`, nil},
		{`INSERT INTO trip_recommendations VALUES (2, 'Rhine Swimming', 'Basel', 'nature, swimming', 'Float down the Rhine.', 0)`, nil},
		{`INSERT INTO bookings VALUES ('C0E5F2', ?, 39000)`, []any{formatTimestamp(testNow.Add(-48 * time.Hour))}},
	}
	for _, f := range fixtures {
		if _, err := db.Exec(f.stmt, f.args...); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPassengerTickets(t *testing.T) {
	s := newTestStore(t)
	tickets, err := s.PassengerTickets(context.Background(), "3442 587242")
	if err != nil {
		t.Fatal(err)
	}
	if len(tickets) != 1 {
		t.Fatalf("want 1 ticket, got %d", len(tickets))
	}
	tk := tickets[0]
	if tk.TicketNo != "7240005432906569" || tk.FlightID != 1 || tk.SeatNo != "18B" || tk.FareConditions != "Economy" {
		t.Errorf("unexpected ticket: %+v", tk)
	}
	none, err := s.PassengerTickets(context.Background(), "0000 000000")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expect no tickets for unknown passenger, got %d", len(none))
	}
}

func TestSearchFlights(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	got, err := s.SearchFlights(ctx, FlightQuery{DepartureAirport: "CDG", ArrivalAirport: "BSL"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 flights, got %d", len(got))
	}
	start := testNow.Add(2 * time.Hour)
	got, err = s.SearchFlights(ctx, FlightQuery{DepartureAirport: "CDG", StartTime: &start})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].FlightID != 1 {
		t.Errorf("time filter failed: %+v", got)
	}
	got, err = s.SearchFlights(ctx, FlightQuery{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("limit not applied, got %d flights", len(got))
	}
}
