package agents

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/brook-ai/brook/components"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the state of one conversation: its history, the dialog stack of
// active assistants, the signed-in passenger and any tool calls awaiting
// approval.
type Session struct {
	id          string
	passengerID string
	memory      *components.Memory
	stack       []string
	pending     []components.ToolCall
	usage       components.ApiUsage
	mtx         sync.Mutex
}

func NewSession(id, passengerID string, maxMessages int) *Session {
	return &Session{
		id:          id,
		passengerID: passengerID,
		memory:      components.NewMemory(maxMessages),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) PassengerID() string {
	return s.passengerID
}

func (s *Session) Memory() *components.Memory {
	return s.memory
}

// CurrentAssistant is the top of the dialog stack; an empty stack routes to
// the host assistant.
func (s *Session) CurrentAssistant() string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if len(s.stack) == 0 {
		return PrimaryAssistant
	}
	return s.stack[len(s.stack)-1]
}

// Push enters a specialized assistant.
func (s *Session) Push(assistant string) {
	s.mtx.Lock()
	s.stack = append(s.stack, assistant)
	s.mtx.Unlock()
}

// Pop leaves the current specialized assistant.
func (s *Session) Pop() {
	s.mtx.Lock()
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.mtx.Unlock()
}

// SetPending parks tool calls until the user approves or denies them.
func (s *Session) SetPending(calls []components.ToolCall) {
	s.mtx.Lock()
	s.pending = calls
	s.mtx.Unlock()
}

// TakePending returns and clears the parked tool calls.
func (s *Session) TakePending() []components.ToolCall {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	calls := s.pending
	s.pending = nil
	return calls
}

func (s *Session) HasPending() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.pending) > 0
}

// AddUsage accumulates token usage across the session's turns.
func (s *Session) AddUsage(usage *components.ApiUsage) {
	s.mtx.Lock()
	s.usage.Merge(usage)
	s.mtx.Unlock()
}

func (s *Session) Usage() components.ApiUsage {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.usage
}

// SessionStore is an in-memory session manager keyed by session ID.
type SessionStore struct {
	sessions map[string]*Session
	// maxMessages caps each session's history, 0 keeps everything
	maxMessages int
	mtx         sync.RWMutex
}

func NewSessionStore(maxMessages int) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*Session),
		maxMessages: maxMessages,
	}
}

// Create opens a session for the signed-in passenger.
func (s *SessionStore) Create(passengerID string) *Session {
	session := NewSession(uuid.NewString(), passengerID, s.maxMessages)
	s.mtx.Lock()
	s.sessions[session.ID()] = session
	s.mtx.Unlock()
	return session
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(id string) {
	s.mtx.Lock()
	delete(s.sessions, id)
	s.mtx.Unlock()
}
