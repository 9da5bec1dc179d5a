package excursions

import (
	"encoding/json"

	"github.com/brook-ai/brook/tools"
	"github.com/brook-ai/brook/travel"
)

var (
	searchParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"location": {"type": "string", "description": "The location of the trip recommendation."},
			"name": {"type": "string", "description": "The name of the trip recommendation."},
			"keywords": {"type": "string", "description": "Comma separated keywords to match, e.g. 'history, nature'."}
		}
	}`)
	bookParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"recommendation_id": {"type": "integer", "description": "The ID of the trip recommendation to book."}
		},
		"required": ["recommendation_id"]
	}`)
	updateParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"recommendation_id": {"type": "integer", "description": "The ID of the trip recommendation to update."},
			"details": {"type": "string", "description": "The new details of the trip recommendation."}
		},
		"required": ["recommendation_id", "details"]
	}`)
	cancelParams = json.RawMessage(`{
		"type": "object",
		"properties": {
			"recommendation_id": {"type": "integer", "description": "The ID of the trip recommendation to cancel."}
		},
		"required": ["recommendation_id"]
	}`)
)

// Register wires the excursion tools into a registry. Booking changes are
// sensitive and require approval.
func Register(r *tools.Registry, store *travel.Store) {
	tools.Register(r, tools.Definition{
		Name:        "search_trip_recommendations",
		Description: "Search for trip recommendations based on location, name and keywords.",
		Parameters:  searchParams,
	}, NewSearch(store))
	tools.Register(r, tools.Definition{
		Name:        "book_excursion",
		Description: "Book an excursion by its recommendation ID.",
		Parameters:  bookParams,
		Sensitive:   true,
	}, NewBook(store))
	tools.Register(r, tools.Definition{
		Name:        "update_excursion",
		Description: "Update an excursion's details by its recommendation ID.",
		Parameters:  updateParams,
		Sensitive:   true,
	}, NewUpdate(store))
	tools.Register(r, tools.Definition{
		Name:        "cancel_excursion",
		Description: "Cancel an excursion by its recommendation ID.",
		Parameters:  cancelParams,
		Sensitive:   true,
	}, NewCancel(store))
}
