package hotels

import (
	"encoding/json"

	"github.com/brook-ai/brook/tools"
	"github.com/brook-ai/brook/travel"
)

var (
	searchParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"location": {"type": "string", "description": "The location of the hotel."},
			"name": {"type": "string", "description": "The name of the hotel."}
		}
	}`)
	bookParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"hotel_id": {"type": "integer", "description": "The ID of the hotel to book."}
		},
		"required": ["hotel_id"]
	}`)
	updateParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"hotel_id": {"type": "integer", "description": "The ID of the hotel to update."},
			"checkin_date": {"type": "string", "description": "The new check-in date."},
			"checkout_date": {"type": "string", "description": "The new check-out date."}
		},
		"required": ["hotel_id"]
	}`)
	cancelParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"hotel_id": {"type": "integer", "description": "The ID of the hotel to cancel."}
		},
		"required": ["hotel_id"]
	}`)
)

// Register wires the hotel tools into a registry. Booking changes are
// sensitive and require approval.
func Register(r *tools.Registry, store *travel.Store) {
	tools.Register(r, tools.Definition{
		Name:        "search_hotels",
		Description: "Search for hotels based on location and name.",
		Parameters:  searchParams,
	}, NewSearch(store))
	tools.Register(r, tools.Definition{
		Name:        "book_hotel",
		Description: "Book a hotel by its ID.",
		Parameters:  bookParams,
		Sensitive:   true,
	}, NewBook(store))
	tools.Register(r, tools.Definition{
		Name:        "update_hotel",
		Description: "Update a hotel stay's check-in and check-out dates by its ID.",
		Parameters:  updateParams,
		Sensitive:   true,
	}, NewUpdate(store))
	tools.Register(r, tools.Definition{
		Name:        "cancel_hotel",
		Description: "Cancel a hotel booking by its ID.",
		Parameters:  cancelParams,
		Sensitive:   true,
	}, NewCancel(store))
}
