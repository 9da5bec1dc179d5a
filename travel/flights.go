package travel

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// TicketInfo joins a passenger ticket with its flight and seat assignment.
type TicketInfo struct {
	TicketNo           string `json:"ticket_no"`
	BookRef            string `json:"book_ref"`
	FlightID           int64  `json:"flight_id"`
	FlightNo           string `json:"flight_no"`
	DepartureAirport   string `json:"departure_airport"`
	ArrivalAirport     string `json:"arrival_airport"`
	ScheduledDeparture string `json:"scheduled_departure"`
	ScheduledArrival   string `json:"scheduled_arrival"`
	SeatNo             string `json:"seat_no"`
	FareConditions     string `json:"fare_conditions"`
}

// Flight is a row of the flights table.
type Flight struct {
	FlightID           int64  `json:"flight_id"`
	FlightNo           string `json:"flight_no"`
	ScheduledDeparture string `json:"scheduled_departure"`
	ScheduledArrival   string `json:"scheduled_arrival"`
	DepartureAirport   string `json:"departure_airport"`
	ArrivalAirport     string `json:"arrival_airport"`
	Status             string `json:"status"`
	AircraftCode       string `json:"aircraft_code"`
	ActualDeparture    string `json:"actual_departure,omitempty"`
	ActualArrival      string `json:"actual_arrival,omitempty"`
}

// FlightQuery filters SearchFlights. Zero fields are ignored.
type FlightQuery struct {
	DepartureAirport string
	ArrivalAirport   string
	StartTime        *time.Time
	EndTime          *time.Time
	Limit            int
}

// PassengerTickets fetches all tickets for the passenger along with the
// corresponding flight information and seat assignments.
func (s *Store) PassengerTickets(ctx context.Context, passengerID string) ([]TicketInfo, error) {
	const query = `
	SELECT
		t.ticket_no, t.book_ref,
		f.flight_id, f.flight_no, f.departure_airport, f.arrival_airport, f.scheduled_departure, f.scheduled_arrival,
		bp.seat_no, tf.fare_conditions
	FROM
		tickets t
		JOIN ticket_flights tf ON t.ticket_no = tf.ticket_no
		JOIN flights f ON tf.flight_id = f.flight_id
		JOIN boarding_passes bp ON bp.ticket_no = t.ticket_no AND bp.flight_id = f.flight_id
	WHERE
		t.passenger_id = ?`
	rows, err := s.db.QueryContext(ctx, query, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []TicketInfo
	for rows.Next() {
		var t TicketInfo
		if err := rows.Scan(
			&t.TicketNo, &t.BookRef,
			&t.FlightID, &t.FlightNo, &t.DepartureAirport, &t.ArrivalAirport, &t.ScheduledDeparture, &t.ScheduledArrival,
			&t.SeatNo, &t.FareConditions,
		); err != nil {
			return nil, err
		}
		ret = append(ret, t)
	}
	return ret, rows.Err()
}

// SearchFlights returns flights matching the query, capped at 20 results when
// no limit is given.
func (s *Store) SearchFlights(ctx context.Context, q FlightQuery) ([]Flight, error) {
	query := `SELECT flight_id, flight_no, scheduled_departure, scheduled_arrival, departure_airport, arrival_airport, status, aircraft_code,
		COALESCE(actual_departure, ''), COALESCE(actual_arrival, '')
		FROM flights WHERE 1 = 1`
	var params []any
	if q.DepartureAirport != "" {
		query += " AND departure_airport = ?"
		params = append(params, q.DepartureAirport)
	}
	if q.ArrivalAirport != "" {
		query += " AND arrival_airport = ?"
		params = append(params, q.ArrivalAirport)
	}
	if q.StartTime != nil {
		query += " AND scheduled_departure >= ?"
		params = append(params, formatTimestamp(*q.StartTime))
	}
	if q.EndTime != nil {
		query += " AND scheduled_departure <= ?"
		params = append(params, formatTimestamp(*q.EndTime))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	query += " LIMIT ?"
	params = append(params, limit)
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []Flight
	for rows.Next() {
		var f Flight
		if err := rows.Scan(
			&f.FlightID, &f.FlightNo, &f.ScheduledDeparture, &f.ScheduledArrival,
			&f.DepartureAirport, &f.ArrivalAirport, &f.Status, &f.AircraftCode,
			&f.ActualDeparture, &f.ActualArrival,
		); err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, rows.Err()
}

// RescheduleTicket moves the passenger's ticket onto another flight. The new
// flight must exist, depart at least RescheduleCutoff from now, and the
// ticket must belong to the passenger.
func (s *Store) RescheduleTicket(ctx context.Context, passengerID, ticketNo string, newFlightID int64) error {
	var scheduledDeparture string
	err := s.db.QueryRowContext(ctx,
		"SELECT scheduled_departure FROM flights WHERE flight_id = ?", newFlightID,
	).Scan(&scheduledDeparture)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFlightNotFound
	}
	if err != nil {
		return err
	}
	departure, err := parseTimestamp(scheduledDeparture)
	if err != nil {
		return err
	}
	if departure.Sub(s.now()) < RescheduleCutoff {
		return &TooSoonError{Departure: departure}
	}
	if ok, err := exists(ctx, s.db, "SELECT 1 FROM ticket_flights WHERE ticket_no = ?", ticketNo); err != nil {
		return err
	} else if !ok {
		return ErrTicketNotFound
	}
	if ok, err := exists(ctx, s.db, "SELECT 1 FROM tickets WHERE ticket_no = ? AND passenger_id = ?", ticketNo, passengerID); err != nil {
		return err
	} else if !ok {
		return ErrNotTicketOwner
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE ticket_flights SET flight_id = ? WHERE ticket_no = ?", newFlightID, ticketNo)
	return err
}

// CancelTicket removes the passenger's ticket from its flight.
func (s *Store) CancelTicket(ctx context.Context, passengerID, ticketNo string) error {
	if ok, err := exists(ctx, s.db, "SELECT 1 FROM ticket_flights WHERE ticket_no = ?", ticketNo); err != nil {
		return err
	} else if !ok {
		return ErrTicketNotFound
	}
	if ok, err := exists(ctx, s.db, "SELECT 1 FROM tickets WHERE ticket_no = ? AND passenger_id = ?", ticketNo, passengerID); err != nil {
		return err
	} else if !ok {
		return ErrNotTicketOwner
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM ticket_flights WHERE ticket_no = ?", ticketNo)
	return err
}
