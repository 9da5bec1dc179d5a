// Package chatbot assembles the Swiss Airlines support bot: the travel
// store, the policy retriever and the web search tool wired into a
// supervisor with one specialized assistant per booking workflow.
package chatbot

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/brook-ai/brook/agents"
	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/components/systemprompt"
	"github.com/brook-ai/brook/components/systemprompt/simple"
	"github.com/brook-ai/brook/rag"
	"github.com/brook-ai/brook/tools"
	"github.com/brook-ai/brook/tools/carrentals"
	"github.com/brook-ai/brook/tools/excursions"
	"github.com/brook-ai/brook/tools/flights"
	"github.com/brook-ai/brook/tools/hotels"
	"github.com/brook-ai/brook/tools/policy"
	"github.com/brook-ai/brook/tools/tavily"
	"github.com/brook-ai/brook/travel"
)

type Options struct {
	model       string
	temperature float32
	maxTokens   int
	// maxMessages caps each session's history, 0 keeps everything
	maxMessages int
	websearch   *tavily.Search
	now         func() time.Time
}

type Option func(*Options)

func WithModel(model string) Option {
	return func(o *Options) {
		o.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(o *Options) {
		o.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.maxTokens = maxTokens
	}
}

func WithMaxMessages(maxMessages int) Option {
	return func(o *Options) {
		o.maxMessages = maxMessages
	}
}

// WithWebSearch binds the tavily search tool to the host assistant.
func WithWebSearch(search *tavily.Search) Option {
	return func(o *Options) {
		o.websearch = search
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.now = now
	}
}

// Chatbot owns the conversation sessions and the per-session supervisors.
type Chatbot struct {
	Options
	store     *travel.Store
	retriever *rag.Retriever
	completer components.Completer
	sessions  *agents.SessionStore
	// supervisors are per session so their system prompts can carry the
	// signed-in passenger's flight information
	supervisors syncMap
}

func New(store *travel.Store, retriever *rag.Retriever, completer components.Completer, opts ...Option) *Chatbot {
	ret := &Chatbot{
		store:     store,
		retriever: retriever,
		completer: completer,
	}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.now == nil {
		ret.now = time.Now
	}
	ret.sessions = agents.NewSessionStore(ret.maxMessages)
	return ret
}

// NewSession opens a conversation for the signed-in passenger.
func (c *Chatbot) NewSession(passengerID string) (*agents.Session, error) {
	session := c.sessions.Create(passengerID)
	supervisor, err := c.buildSupervisor(session)
	if err != nil {
		c.sessions.Delete(session.ID())
		return nil, err
	}
	c.supervisors.Store(session.ID(), supervisor)
	return session, nil
}

func (c *Chatbot) Session(id string) (*agents.Session, error) {
	return c.sessions.Get(id)
}

func (c *Chatbot) DeleteSession(id string) {
	c.sessions.Delete(id)
	c.supervisors.Delete(id)
}

// Handle runs one user turn against the session's supervisor.
func (c *Chatbot) Handle(ctx context.Context, sessionID, message string) (*agents.Reply, error) {
	session, supervisor, err := c.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return supervisor.Handle(ctx, session, message)
}

// Approve resolves pending sensitive tool calls in the user's favor.
func (c *Chatbot) Approve(ctx context.Context, sessionID string) (*agents.Reply, error) {
	session, supervisor, err := c.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return supervisor.Approve(ctx, session)
}

// Deny rejects pending sensitive tool calls with the user's reason.
func (c *Chatbot) Deny(ctx context.Context, sessionID, reason string) (*agents.Reply, error) {
	session, supervisor, err := c.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return supervisor.Deny(ctx, session, reason)
}

// History returns the session's conversation so far.
func (c *Chatbot) History(sessionID string) ([]components.Message, error) {
	session, err := c.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Memory().History(), nil
}

func (c *Chatbot) lookup(sessionID string) (*agents.Session, *agents.Supervisor, error) {
	session, err := c.sessions.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	supervisor, ok := c.supervisors.Load(sessionID)
	if !ok {
		return nil, nil, agents.ErrSessionNotFound
	}
	return session, supervisor, nil
}

// buildSupervisor wires the five assistants for one session. The user info
// provider re-reads the passenger's tickets on every prompt build, so the
// assistants always see the bookings as they currently stand.
func (c *Chatbot) buildSupervisor(session *agents.Session) (*agents.Supervisor, error) {
	userInfo := systemprompt.NewProvider("Current user", func() string {
		tickets, err := c.store.PassengerTickets(context.Background(), session.PassengerID())
		if err != nil || len(tickets) == 0 {
			return ""
		}
		bs, _ := json.Marshal(tickets)
		return string(bs)
	})
	currentTime := systemprompt.NewProvider("Current time", func() string {
		return c.now().Format(time.RFC3339)
	})

	assistantOpts := func(control ...components.ToolDefinition) []agents.AssistantOption {
		return []agents.AssistantOption{
			agents.WithAssistantModel(c.model),
			agents.WithAssistantTemperature(c.temperature),
			agents.WithAssistantMaxTokens(c.maxTokens),
			agents.WithControlTools(control...),
		}
	}

	primaryReg := tools.NewRegistry()
	flights.RegisterReadOnly(primaryReg, c.store)
	policy.Register(primaryReg, c.retriever)
	if c.websearch != nil {
		tavily.Register(primaryReg, c.websearch)
	}
	primary := agents.NewAssistant(agents.PrimaryAssistant, primaryName, c.completer,
		simple.New(primaryPrompt, simple.WithContextProviders(userInfo, currentTime)),
		primaryReg,
		assistantOpts(agents.HandoffTools()...)...)

	flightReg := tools.NewRegistry()
	flights.Register(flightReg, c.store)
	flightAssistant := agents.NewAssistant(agents.UpdateFlight, flightsName, c.completer,
		simple.New(flightsPrompt, simple.WithContextProviders(userInfo, currentTime)),
		flightReg,
		assistantOpts(agents.EscalateTool())...)

	carReg := tools.NewRegistry()
	carrentals.Register(carReg, c.store)
	carAssistant := agents.NewAssistant(agents.BookCarRental, carRentalName, c.completer,
		simple.New(carRentalPrompt, simple.WithContextProviders(currentTime)),
		carReg,
		assistantOpts(agents.EscalateTool())...)

	hotelReg := tools.NewRegistry()
	hotels.Register(hotelReg, c.store)
	hotelAssistant := agents.NewAssistant(agents.BookHotel, hotelName, c.completer,
		simple.New(hotelPrompt, simple.WithContextProviders(currentTime)),
		hotelReg,
		assistantOpts(agents.EscalateTool())...)

	excursionReg := tools.NewRegistry()
	excursions.Register(excursionReg, c.store)
	excursionAssistant := agents.NewAssistant(agents.BookExcursion, excursionName, c.completer,
		simple.New(excursionPrompt, simple.WithContextProviders(currentTime)),
		excursionReg,
		assistantOpts(agents.EscalateTool())...)

	return agents.NewSupervisor(primary, flightAssistant, carAssistant, hotelAssistant, excursionAssistant)
}

// syncMap is a typed wrapper around sync.Map for per-session supervisors.
type syncMap struct {
	m sync.Map
}

func (s *syncMap) Store(id string, supervisor *agents.Supervisor) {
	s.m.Store(id, supervisor)
}

func (s *syncMap) Load(id string) (*agents.Supervisor, bool) {
	v, ok := s.m.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*agents.Supervisor), true
}

func (s *syncMap) Delete(id string) {
	s.m.Delete(id)
}
