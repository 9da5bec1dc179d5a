package agents

import (
	"encoding/json"
	"fmt"

	"github.com/brook-ai/brook/components"
)

// Assistant keys used on the dialog stack.
const (
	PrimaryAssistant = "primary_assistant"
	UpdateFlight     = "update_flight"
	BookCarRental    = "book_car_rental"
	BookHotel        = "book_hotel"
	BookExcursion    = "book_excursion"
)

// Control tool names. Handoff tools transfer the dialog to a specialized
// assistant; CompleteOrEscalate returns it to the host.
const (
	CompleteOrEscalate       = "CompleteOrEscalate"
	ToFlightBookingAssistant = "ToFlightBookingAssistant"
	ToBookCarRentalAssistant = "ToBookCarRentalAssistant"
	ToHotelBookingAssistant  = "ToHotelBookingAssistant"
	ToBookExcursionAssistant = "ToBookExcursionAssistant"
)

// handoffTargets maps a handoff tool to the assistant it activates.
var handoffTargets = map[string]string{
	ToFlightBookingAssistant: UpdateFlight,
	ToBookCarRentalAssistant: BookCarRental,
	ToHotelBookingAssistant:  BookHotel,
	ToBookExcursionAssistant: BookExcursion,
}

// HandoffTarget reports the assistant key a handoff tool routes to.
func HandoffTarget(toolName string) (string, bool) {
	target, ok := handoffTargets[toolName]
	return target, ok
}

// HandoffTools are the routing tools the primary assistant sees.
func HandoffTools() []components.ToolDefinition {
	return []components.ToolDefinition{
		{
			Name:        ToFlightBookingAssistant,
			Description: "Transfers work to a specialized assistant to handle flight updates and cancellations.",
			Parameters: json.RawMessage(`{"type":"object","properties":{
				"request":{"type":"string","description":"Any necessary followup questions the update flight assistant should clarify before proceeding."}
			},"required":["request"]}`),
		},
		{
			Name:        ToBookCarRentalAssistant,
			Description: "Transfers work to a specialized assistant to handle car rental bookings.",
			Parameters: json.RawMessage(`{"type":"object","properties":{
				"location":{"type":"string","description":"The location where the user wants to rent a car."},
				"start_date":{"type":"string","description":"The start date of the car rental."},
				"end_date":{"type":"string","description":"The end date of the car rental."},
				"request":{"type":"string","description":"Any additional information or requests from the user regarding the car rental."}
			},"required":["location","start_date","end_date","request"]}`),
		},
		{
			Name:        ToHotelBookingAssistant,
			Description: "Transfer work to a specialized assistant to handle hotel bookings.",
			Parameters: json.RawMessage(`{"type":"object","properties":{
				"location":{"type":"string","description":"The location where the user wants to book a hotel."},
				"checkin_date":{"type":"string","description":"The check-in date for the hotel."},
				"checkout_date":{"type":"string","description":"The check-out date for the hotel."},
				"request":{"type":"string","description":"Any additional information or requests from the user regarding the hotel booking."}
			},"required":["location","checkin_date","checkout_date","request"]}`),
		},
		{
			Name:        ToBookExcursionAssistant,
			Description: "Transfers work to a specialized assistant to handle trip recommendation and other excursion bookings.",
			Parameters: json.RawMessage(`{"type":"object","properties":{
				"location":{"type":"string","description":"The location where the user wants to book a recommended trip."},
				"request":{"type":"string","description":"Any additional information or requests from the user regarding the trip recommendation."}
			},"required":["location","request"]}`),
		},
	}
}

// EscalateTool is the control tool every specialized assistant sees.
func EscalateTool() components.ToolDefinition {
	return components.ToolDefinition{
		Name: CompleteOrEscalate,
		Description: "A tool to mark the current task as completed and/or to escalate control of the dialog " +
			"to the main host assistant, who can re-route the dialog based on the user's needs.",
		Parameters: json.RawMessage(`{"type":"object","properties":{
			"cancel":{"type":"boolean","description":"Whether the current task should be cancelled."},
			"reason":{"type":"string","description":"Why the task is complete or needs to be escalated."}
		},"required":["cancel","reason"]}`),
	}
}

// entryMessage is planted as the handoff tool result so the delegate sees the
// task context when it takes over.
func entryMessage(assistantName string) string {
	return fmt.Sprintf("The assistant is now the %[1]s. Reflect on the above conversation between the host assistant and the user."+
		" The user's intent is unsatisfied. Use the provided tools to assist the user. Remember, you are %[1]s,"+
		" and the booking, update, other other action is not complete until after you have successfully invoked the appropriate tool."+
		" If the user changes their mind or needs help for other tasks, call the CompleteOrEscalate function to let the primary host assistant take control."+
		" Do not mention who you are - just act as the proxy for the assistant.", assistantName)
}

// escalateMessage is planted as the CompleteOrEscalate tool result when the
// dialog returns to the host assistant.
const escalateMessage = "Resuming dialog with the host assistant. Please reflect on the past conversation and assist the user as needed."
