package carrentals

import (
	"encoding/json"

	"github.com/brook-ai/brook/tools"
	"github.com/brook-ai/brook/travel"
)

var (
	searchParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"location": {"type": "string", "description": "The location of the car rental."},
			"name": {"type": "string", "description": "The name of the car rental company."}
		}
	}`)
	bookParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"rental_id": {"type": "integer", "description": "The ID of the car rental to book."}
		},
		"required": ["rental_id"]
	}`)
	updateParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"rental_id": {"type": "integer", "description": "The ID of the car rental to update."},
			"start_date": {"type": "string", "description": "The new start date of the rental."},
			"end_date": {"type": "string", "description": "The new end date of the rental."}
		},
		"required": ["rental_id"]
	}`)
	cancelParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"rental_id": {"type": "integer", "description": "The ID of the car rental to cancel."}
		},
		"required": ["rental_id"]
	}`)
)

// Register wires the car rental tools into a registry. Booking changes are
// sensitive and require approval.
func Register(r *tools.Registry, store *travel.Store) {
	tools.Register(r, tools.Definition{
		Name:        "search_car_rentals",
		Description: "Search for car rentals based on location and company name.",
		Parameters:  searchParams,
	}, NewSearch(store))
	tools.Register(r, tools.Definition{
		Name:        "book_car_rental",
		Description: "Book a car rental by its ID.",
		Parameters:  bookParams,
		Sensitive:   true,
	}, NewBook(store))
	tools.Register(r, tools.Definition{
		Name:        "update_car_rental",
		Description: "Update a car rental's start and end dates by its ID.",
		Parameters:  updateParams,
		Sensitive:   true,
	}, NewUpdate(store))
	tools.Register(r, tools.Definition{
		Name:        "cancel_car_rental",
		Description: "Cancel a car rental by its ID.",
		Parameters:  cancelParams,
		Sensitive:   true,
	}, NewCancel(store))
}
