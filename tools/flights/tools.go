// Package flights exposes the flight booking tools: looking up the
// passenger's tickets, searching the timetable, and rescheduling or
// cancelling tickets.
package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brook-ai/brook/schema"
	"github.com/brook-ai/brook/tools"
	"github.com/brook-ai/brook/travel"
)

// UserFlightsInput has no arguments, identity comes from the context.
type UserFlightsInput struct {
	schema.Base
}

type UserFlightsOutput struct {
	schema.Base
	Tickets []travel.TicketInfo `json:"tickets"`
}

func (o UserFlightsOutput) String() string {
	bs, _ := json.Marshal(o.Tickets)
	return string(bs)
}

// UserFlights fetches all tickets for the signed-in passenger along with the
// corresponding flight information and seat assignments.
type UserFlights struct {
	tools.Config
	store *travel.Store
}

func NewUserFlights(store *travel.Store, opts ...tools.Option) *UserFlights {
	ret := &UserFlights{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("fetch_user_flight_information")
	}
	return ret
}

func (t *UserFlights) Run(ctx context.Context, _ *UserFlightsInput) (*UserFlightsOutput, error) {
	passengerID, err := tools.PassengerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := t.store.PassengerTickets(ctx, passengerID)
	if err != nil {
		return nil, err
	}
	return &UserFlightsOutput{Tickets: tickets}, nil
}

type SearchInput struct {
	schema.Base
	DepartureAirport string `json:"departure_airport,omitempty" jsonschema:"title=departure_airport,description=The airport code the flight departs from."`
	ArrivalAirport   string `json:"arrival_airport,omitempty" jsonschema:"title=arrival_airport,description=The airport code the flight arrives at."`
	StartTime        string `json:"start_time,omitempty" jsonschema:"title=start_time,description=The earliest departure time to filter flights."`
	EndTime          string `json:"end_time,omitempty" jsonschema:"title=end_time,description=The latest departure time to filter flights."`
	Limit            int    `json:"limit,omitempty" jsonschema:"title=limit,default=20,description=The maximum number of flights to return."`
}

type SearchOutput struct {
	schema.Base
	Flights []travel.Flight `json:"flights"`
}

func (o SearchOutput) String() string {
	bs, _ := json.Marshal(o.Flights)
	return string(bs)
}

// Search queries the timetable by airports and departure time range.
type Search struct {
	tools.Config
	store *travel.Store
}

func NewSearch(store *travel.Store, opts ...tools.Option) *Search {
	ret := &Search{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("search_flights")
	}
	return ret
}

func (t *Search) Run(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	q := travel.FlightQuery{
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		Limit:            input.Limit,
	}
	if input.StartTime != "" {
		start, err := travel.ParseWhen(input.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid start_time: %w", err)
		}
		q.StartTime = &start
	}
	if input.EndTime != "" {
		end, err := travel.ParseWhen(input.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid end_time: %w", err)
		}
		q.EndTime = &end
	}
	flights, err := t.store.SearchFlights(ctx, q)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Flights: flights}, nil
}

type RescheduleInput struct {
	schema.Base
	TicketNo    string `json:"ticket_no" jsonschema:"title=ticket_no,description=The ticket number to be updated." validate:"required"`
	NewFlightID int64  `json:"new_flight_id" jsonschema:"title=new_flight_id,description=The ID of the new flight." validate:"required"`
}

// Reschedule moves the passenger's ticket onto a new valid flight.
type Reschedule struct {
	tools.Config
	store *travel.Store
}

func NewReschedule(store *travel.Store, opts ...tools.Option) *Reschedule {
	ret := &Reschedule{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("update_ticket_to_new_flight")
	}
	return ret
}

func (t *Reschedule) Run(ctx context.Context, input *RescheduleInput) (*schema.String, error) {
	passengerID, err := tools.PassengerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	err = t.store.RescheduleTicket(ctx, passengerID, input.TicketNo, input.NewFlightID)
	var tooSoon *travel.TooSoonError
	switch {
	case err == nil:
		return schema.NewString("Ticket successfully updated to new flight."), nil
	case errors.Is(err, travel.ErrFlightNotFound):
		return schema.NewString("Invalid new flight ID provided."), nil
	case errors.As(err, &tooSoon):
		return schema.NewString(fmt.Sprintf("Not permitted to reschedule to a flight that is less than 3 hours from the current time. Selected flight is at %s.", tooSoon.Departure)), nil
	case errors.Is(err, travel.ErrTicketNotFound):
		return schema.NewString("No existing ticket found for the given ticket number."), nil
	case errors.Is(err, travel.ErrNotTicketOwner):
		return schema.NewString(fmt.Sprintf("Current signed-in passenger with ID %s not the owner of ticket %s", passengerID, input.TicketNo)), nil
	default:
		return nil, err
	}
}

type CancelInput struct {
	schema.Base
	TicketNo string `json:"ticket_no" jsonschema:"title=ticket_no,description=The ticket number to be cancelled." validate:"required"`
}

// Cancel removes the passenger's ticket from its flight.
type Cancel struct {
	tools.Config
	store *travel.Store
}

func NewCancel(store *travel.Store, opts ...tools.Option) *Cancel {
	ret := &Cancel{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("cancel_ticket")
	}
	return ret
}

func (t *Cancel) Run(ctx context.Context, input *CancelInput) (*schema.String, error) {
	passengerID, err := tools.PassengerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	err = t.store.CancelTicket(ctx, passengerID, input.TicketNo)
	switch {
	case err == nil:
		return schema.NewString("Ticket successfully cancelled."), nil
	case errors.Is(err, travel.ErrTicketNotFound):
		return schema.NewString("No existing ticket found for the given ticket number."), nil
	case errors.Is(err, travel.ErrNotTicketOwner):
		return schema.NewString(fmt.Sprintf("Current signed-in passenger with ID %s not the owner of ticket %s", passengerID, input.TicketNo)), nil
	default:
		return nil, err
	}
}
