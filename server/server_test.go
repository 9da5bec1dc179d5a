package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brook-ai/brook/agents"
	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/schema"
)

// fakeBot scripts the Bot surface so handler tests stay offline.
type fakeBot struct {
	sessions map[string]*agents.Session
	reply    *agents.Reply
	err      error
	denied   string
}

func newFakeBot() *fakeBot {
	return &fakeBot{sessions: make(map[string]*agents.Session)}
}

func (b *fakeBot) NewSession(passengerID string) (*agents.Session, error) {
	session := agents.NewSession("sess-1", passengerID, 0)
	b.sessions[session.ID()] = session
	return session, nil
}

func (b *fakeBot) Session(id string) (*agents.Session, error) {
	session, ok := b.sessions[id]
	if !ok {
		return nil, agents.ErrSessionNotFound
	}
	return session, nil
}

func (b *fakeBot) DeleteSession(id string) {
	delete(b.sessions, id)
}

func (b *fakeBot) Handle(_ context.Context, sessionID, _ string) (*agents.Reply, error) {
	if _, ok := b.sessions[sessionID]; !ok {
		return nil, agents.ErrSessionNotFound
	}
	return b.reply, b.err
}

func (b *fakeBot) Approve(_ context.Context, sessionID string) (*agents.Reply, error) {
	if _, ok := b.sessions[sessionID]; !ok {
		return nil, agents.ErrSessionNotFound
	}
	return b.reply, b.err
}

func (b *fakeBot) Deny(_ context.Context, sessionID, reason string) (*agents.Reply, error) {
	if _, ok := b.sessions[sessionID]; !ok {
		return nil, agents.ErrSessionNotFound
	}
	b.denied = reason
	return b.reply, b.err
}

func (b *fakeBot) History(sessionID string) ([]components.Message, error) {
	session, ok := b.sessions[sessionID]
	if !ok {
		return nil, agents.ErrSessionNotFound
	}
	return session.Memory().History(), nil
}

func newTestServer(bot Bot) *Server {
	return New(bot)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(newFakeBot())
	w := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(newFakeBot())
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/sessions", `{"passenger_id":"3442 587242"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		SessionID   string `json:"session_id"`
		PassengerID string `json:"passenger_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if resp.PassengerID != "3442 587242" {
		t.Fatalf("unexpected passenger id %q", resp.PassengerID)
	}
}

func TestCreateSessionMissingPassenger(t *testing.T) {
	srv := newTestServer(newFakeBot())
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/sessions", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPostMessage(t *testing.T) {
	bot := newFakeBot()
	bot.NewSession("3442 587242")
	bot.reply = &agents.Reply{
		Status:    agents.StatusCompleted,
		Content:   "Your flight departs at 08:35.",
		Assistant: agents.PrimaryAssistant,
	}
	srv := newTestServer(bot)
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/sessions/sess-1/messages", `{"message":"When is my flight?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var reply agents.Reply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Status != agents.StatusCompleted {
		t.Fatalf("unexpected status %q", reply.Status)
	}
	if reply.Content != "Your flight departs at 08:35." {
		t.Fatalf("unexpected content %q", reply.Content)
	}
}

func TestPostMessageUnknownSession(t *testing.T) {
	srv := newTestServer(newFakeBot())
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/sessions/nope/messages", `{"message":"hi"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPostMessagePendingConflict(t *testing.T) {
	bot := newFakeBot()
	bot.NewSession("3442 587242")
	bot.err = agents.ErrPendingApproval
	srv := newTestServer(bot)
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/sessions/sess-1/messages", `{"message":"hi"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestResolveApprovalApproves(t *testing.T) {
	bot := newFakeBot()
	bot.NewSession("3442 587242")
	bot.reply = &agents.Reply{
		Status:    agents.StatusCompleted,
		Content:   "Hotel 1 successfully booked.",
		Assistant: agents.BookHotel,
	}
	srv := newTestServer(bot)
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/sessions/sess-1/approve", `{"approved":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if bot.denied != "" {
		t.Fatal("approve must not route to Deny")
	}
}

func TestResolveApprovalDenies(t *testing.T) {
	bot := newFakeBot()
	bot.NewSession("3442 587242")
	bot.reply = &agents.Reply{
		Status:    agents.StatusCompleted,
		Content:   "Understood, I won't book it.",
		Assistant: agents.BookHotel,
	}
	srv := newTestServer(bot)
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/sessions/sess-1/approve", `{"approved":false,"reason":"too expensive"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if bot.denied != "too expensive" {
		t.Fatalf("expected deny reason to reach the bot, got %q", bot.denied)
	}
}

func TestResolveApprovalNothingPending(t *testing.T) {
	bot := newFakeBot()
	bot.NewSession("3442 587242")
	bot.err = agents.ErrNoPendingApproval
	srv := newTestServer(bot)
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/sessions/sess-1/approve", `{"approved":true}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestHistory(t *testing.T) {
	bot := newFakeBot()
	session, _ := bot.NewSession("3442 587242")
	session.Memory().NewTurn()
	session.Memory().NewMessage(components.UserRole, schema.String("hello"))
	srv := newTestServer(bot)
	w := doJSON(t, srv.Handler(), http.MethodGet, "/api/sessions/sess-1/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Messages []json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(resp.Messages))
	}
}

func TestDeleteSession(t *testing.T) {
	bot := newFakeBot()
	bot.NewSession("3442 587242")
	srv := newTestServer(bot)
	w := doJSON(t, srv.Handler(), http.MethodDelete, "/api/sessions/sess-1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if _, err := bot.Session("sess-1"); !errors.Is(err, agents.ErrSessionNotFound) {
		t.Fatal("expected session to be gone")
	}
}

func TestDeleteUnknownSession(t *testing.T) {
	srv := newTestServer(newFakeBot())
	w := doJSON(t, srv.Handler(), http.MethodDelete, "/api/sessions/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
