package flights

import (
	"encoding/json"

	"github.com/brook-ai/brook/tools"
	"github.com/brook-ai/brook/travel"
)

var (
	searchParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"departure_airport": {"type": "string", "description": "The airport code the flight departs from."},
			"arrival_airport": {"type": "string", "description": "The airport code the flight arrives at."},
			"start_time": {"type": "string", "description": "The earliest departure time to filter flights, e.g. 2024-05-01 or 2024-05-01 14:00:00."},
			"end_time": {"type": "string", "description": "The latest departure time to filter flights."},
			"limit": {"type": "integer", "description": "The maximum number of flights to return.", "default": 20}
		}
	}`)
	rescheduleParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"ticket_no": {"type": "string", "description": "The ticket number to be updated."},
			"new_flight_id": {"type": "integer", "description": "The ID of the new flight to which the ticket should be updated."}
		},
		"required": ["ticket_no", "new_flight_id"]
	}`)
	cancelParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"ticket_no": {"type": "string", "description": "The ticket number to be cancelled."}
		},
		"required": ["ticket_no"]
	}`)
	noParams = json.RawMessage(`{"type": "object", "properties": {}}`)
)

// RegisterReadOnly wires only the lookup tools, for assistants that must not
// change bookings.
func RegisterReadOnly(r *tools.Registry, store *travel.Store) {
	tools.Register(r, tools.Definition{
		Name:        "fetch_user_flight_information",
		Description: "Fetch all tickets for the user along with corresponding flight information and seat assignments.",
		Parameters:  noParams,
	}, NewUserFlights(store))
	tools.Register(r, tools.Definition{
		Name:        "search_flights",
		Description: "Search for flights based on departure airport, arrival airport, and departure time range.",
		Parameters:  searchParams,
	}, NewSearch(store))
}

// Register wires the flight tools into a registry. Reschedule and cancel
// change bookings, so they are marked sensitive and require approval.
func Register(r *tools.Registry, store *travel.Store) {
	RegisterReadOnly(r, store)
	tools.Register(r, tools.Definition{
		Name:        "update_ticket_to_new_flight",
		Description: "Update the user's ticket to a new valid flight.",
		Parameters:  rescheduleParams,
		Sensitive:   true,
	}, NewReschedule(store))
	tools.Register(r, tools.Definition{
		Name:        "cancel_ticket",
		Description: "Cancel the user's ticket and remove it from the database.",
		Parameters:  cancelParams,
		Sensitive:   true,
	}, NewCancel(store))
}
