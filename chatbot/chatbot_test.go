package chatbot

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brook-ai/brook/agents"
	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/components/embedder"
	"github.com/brook-ai/brook/components/vectordb/engines/memory"
	"github.com/brook-ai/brook/rag"
	"github.com/brook-ai/brook/travel"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// scriptedCompleter replays a fixed sequence of completions and records the
// requests it saw.
type scriptedCompleter struct {
	steps    []components.Completion
	requests []components.CompletionRequest
}

func (c *scriptedCompleter) Complete(_ context.Context, req *components.CompletionRequest, out *components.Completion) error {
	c.requests = append(c.requests, *req)
	if len(c.steps) == 0 {
		out.Content = "out of script"
		return nil
	}
	*out = c.steps[0]
	c.steps = c.steps[1:]
	return nil
}

// flatEmbedder maps any text to the same unit vector, enough for wiring
// tests that never rank results.
type flatEmbedder struct{}

func (flatEmbedder) Provider() embedder.Provider { return "fake" }
func (flatEmbedder) Model() string               { return "fake" }

func (flatEmbedder) Embed(_ context.Context, text string, emb *embedder.Embedding, _ *components.ApiUsage) error {
	emb.Object = text
	emb.Embedding = []float64{1, 0}
	return nil
}

func (e flatEmbedder) BatchEmbed(ctx context.Context, parts []string, usage *components.ApiUsage) ([]embedder.Embedding, error) {
	ret := make([]embedder.Embedding, len(parts))
	for i, part := range parts {
		ret[i].Index = i
		if err := e.Embed(ctx, part, &ret[i], usage); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func newTestStore(t *testing.T) *travel.Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	stmts := []string{
		`CREATE TABLE tickets (ticket_no TEXT PRIMARY KEY, book_ref TEXT, passenger_id TEXT)`,
		`CREATE TABLE ticket_flights (ticket_no TEXT, flight_id INTEGER, fare_conditions TEXT)`,
		`CREATE TABLE flights (flight_id INTEGER PRIMARY KEY, flight_no TEXT, scheduled_departure TEXT, scheduled_arrival TEXT,
			departure_airport TEXT, arrival_airport TEXT, status TEXT, aircraft_code TEXT, actual_departure TEXT, actual_arrival TEXT)`,
		`CREATE TABLE boarding_passes (ticket_no TEXT, flight_id INTEGER, boarding_no INTEGER, seat_no TEXT)`,
		`CREATE TABLE hotels (id INTEGER PRIMARY KEY, name TEXT, location TEXT, price_tier TEXT, checkin_date TEXT, checkout_date TEXT, booked INTEGER DEFAULT 0)`,
		`CREATE TABLE car_rentals (id INTEGER PRIMARY KEY, name TEXT, location TEXT, price_tier TEXT, start_date TEXT, end_date TEXT, booked INTEGER DEFAULT 0)`,
		`CREATE TABLE trip_recommendations (id INTEGER PRIMARY KEY, name TEXT, location TEXT, keywords TEXT, details TEXT, booked INTEGER DEFAULT 0)`,
		`INSERT INTO flights VALUES (1, 'LX0112', '2024-05-01 17:00:00.000000+00:00', '2024-05-01 19:00:00.000000+00:00', 'CDG', 'BSL', 'Scheduled', '319', '\N', '\N')`,
		`INSERT INTO tickets VALUES ('7240005432906569', 'C0E5F2', '3442 587242')`,
		`INSERT INTO ticket_flights VALUES ('7240005432906569', 1, 'Economy')`,
		`INSERT INTO boarding_passes VALUES ('7240005432906569', 1, 12, '18B')`,
		`INSERT INTO hotels VALUES (1, 'Hilton Basel', 'Basel', 'Luxury', NULL, NULL, 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
	return travel.NewStore(db, travel.WithClock(func() time.Time { return testNow }))
}

func newTestBot(t *testing.T, completer components.Completer) *Chatbot {
	t.Helper()
	engine, err := memory.New()
	if err != nil {
		t.Fatal(err)
	}
	retriever := rag.NewRetriever(flatEmbedder{}, engine)
	if err := retriever.IngestText(context.Background(), "## Refunds\n\nRefunds take 7 days.", nil, nil); err != nil {
		t.Fatal(err)
	}
	store := newTestStore(t)
	return New(store, retriever, completer,
		WithModel("gpt-4o-mini"),
		WithClock(func() time.Time { return testNow }))
}

func TestPromptCarriesUserContext(t *testing.T) {
	completer := &scriptedCompleter{steps: []components.Completion{{Content: "hello"}}}
	bot := newTestBot(t, completer)
	session, err := bot.NewSession("3442 587242")
	if err != nil {
		t.Fatal(err)
	}
	reply, err := bot.Handle(context.Background(), session.ID(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Status != agents.StatusCompleted || reply.Content != "hello" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	system := completer.requests[0].Messages[0].StringifiedContent()
	if !strings.Contains(system, "## Current user") || !strings.Contains(system, "7240005432906569") {
		t.Errorf("system prompt missing user tickets:\n%s", system)
	}
	if !strings.Contains(system, "## Current time\n"+testNow.Format(time.RFC3339)) {
		t.Errorf("system prompt missing current time:\n%s", system)
	}
}

func TestPolicyLookupTool(t *testing.T) {
	completer := &scriptedCompleter{steps: []components.Completion{
		{ToolCalls: []components.ToolCall{{ID: "c1", Name: "lookup_policy", Arguments: `{"query":"refund policy"}`}}},
		{Content: "refunds take 7 days"},
	}}
	bot := newTestBot(t, completer)
	session, err := bot.NewSession("3442 587242")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bot.Handle(context.Background(), session.ID(), "what's the refund policy?"); err != nil {
		t.Fatal(err)
	}
	history, err := bot.History(session.ID())
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, msg := range history {
		if res := msg.ToolResult(); res != nil && strings.Contains(res.Content, "Refunds take 7 days.") {
			found = true
		}
	}
	if !found {
		t.Error("policy lookup result missing from history")
	}
}

func TestHotelBookingRequiresApproval(t *testing.T) {
	completer := &scriptedCompleter{steps: []components.Completion{
		// host hands over to the hotel assistant
		{ToolCalls: []components.ToolCall{{ID: "c1", Name: agents.ToHotelBookingAssistant,
			Arguments: `{"location":"Basel","checkin_date":"2024-05-02","checkout_date":"2024-05-05","request":"book the Hilton"}`}}},
		// hotel assistant proposes the booking
		{ToolCalls: []components.ToolCall{{ID: "c2", Name: "book_hotel", Arguments: `{"hotel_id":1}`}}},
		// after approval it confirms
		{Content: "Your room at the Hilton Basel is booked."},
	}}
	bot := newTestBot(t, completer)
	session, err := bot.NewSession("3442 587242")
	if err != nil {
		t.Fatal(err)
	}
	reply, err := bot.Handle(context.Background(), session.ID(), "book me the Hilton in Basel")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Status != agents.StatusNeedsApproval || reply.Assistant != agents.BookHotel {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	reply, err = bot.Approve(context.Background(), session.ID())
	if err != nil {
		t.Fatal(err)
	}
	if reply.Status != agents.StatusCompleted || !strings.Contains(reply.Content, "booked") {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	history, _ := bot.History(session.ID())
	var confirmed bool
	for _, msg := range history {
		if res := msg.ToolResult(); res != nil && res.Content == "Hotel 1 successfully booked." {
			confirmed = true
		}
	}
	if !confirmed {
		t.Error("book_hotel tool result missing")
	}
}

func TestUnknownSession(t *testing.T) {
	bot := newTestBot(t, &scriptedCompleter{})
	if _, err := bot.Handle(context.Background(), "nope", "hi"); err != agents.ErrSessionNotFound {
		t.Errorf("want ErrSessionNotFound, got %v", err)
	}
}
