package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/schema"
	"github.com/brook-ai/brook/tools"
)

var (
	// ErrPendingApproval rejects new user turns while tool calls await a
	// decision.
	ErrPendingApproval = errors.New("session has tool calls pending approval")
	// ErrNoPendingApproval rejects approval decisions when nothing waits.
	ErrNoPendingApproval = errors.New("session has no tool calls pending approval")
)

type ReplyStatus string

const (
	StatusCompleted     ReplyStatus = "completed"
	StatusNeedsApproval ReplyStatus = "needs_approval"
)

// Reply is the outcome of one user turn: either a final answer or a request
// for approval of sensitive tool calls.
type Reply struct {
	Status    ReplyStatus           `json:"status"`
	Content   string                `json:"content,omitempty"`
	Pending   []components.ToolCall `json:"pending,omitempty"`
	Assistant string                `json:"assistant"`
}

// Supervisor routes a conversation between the host assistant and its
// specialized delegates, following the session's dialog stack.
type Supervisor struct {
	assistants map[string]*Assistant
}

// NewSupervisor wires the host assistant and its delegates. Every assistant
// is addressed by its key.
func NewSupervisor(assistants ...*Assistant) (*Supervisor, error) {
	ret := &Supervisor{assistants: make(map[string]*Assistant, len(assistants))}
	for _, a := range assistants {
		if _, exists := ret.assistants[a.Key()]; exists {
			return nil, fmt.Errorf("duplicate assistant key %q", a.Key())
		}
		ret.assistants[a.Key()] = a
	}
	if _, ok := ret.assistants[PrimaryAssistant]; !ok {
		return nil, fmt.Errorf("missing %s", PrimaryAssistant)
	}
	return ret, nil
}

// Assistant returns the assistant registered under key, falling back to the
// host assistant.
func (s *Supervisor) Assistant(key string) *Assistant {
	if a, ok := s.assistants[key]; ok {
		return a
	}
	return s.assistants[PrimaryAssistant]
}

// Handle runs one user turn. New turns route to the top of the session's
// dialog stack.
func (s *Supervisor) Handle(ctx context.Context, session *Session, userInput string) (*Reply, error) {
	if session.HasPending() {
		return nil, ErrPendingApproval
	}
	session.Memory().NewTurn()
	session.Memory().NewMessage(components.UserRole, schema.String(userInput))
	return s.run(ctx, session)
}

// Approve dispatches the parked sensitive tool calls and resumes the turn.
func (s *Supervisor) Approve(ctx context.Context, session *Session) (*Reply, error) {
	calls := session.TakePending()
	if len(calls) == 0 {
		return nil, ErrNoPendingApproval
	}
	ctx = tools.ContextWithPassenger(ctx, session.PassengerID())
	assistant := s.Assistant(session.CurrentAssistant())
	slog.Info("tool calls approved", "session", session.ID(), "assistant", assistant.Key(), "calls", len(calls))
	assistant.Dispatch(ctx, session.Memory(), calls)
	return s.run(ctx, session)
}

// Deny rejects the parked tool calls with the user's reason and resumes the
// turn so the assistant can adjust.
func (s *Supervisor) Deny(ctx context.Context, session *Session, reason string) (*Reply, error) {
	calls := session.TakePending()
	if len(calls) == 0 {
		return nil, ErrNoPendingApproval
	}
	slog.Info("tool calls denied", "session", session.ID(), "calls", len(calls))
	for _, call := range calls {
		session.Memory().Add(components.NewToolResultMessage(components.ToolResult{
			ID:   call.ID,
			Name: call.Name,
			Content: fmt.Sprintf("API call denied by user. Reasoning: '%s'. Continue assisting, accounting for the user's input.",
				reason),
		}))
	}
	return s.run(ctx, session)
}

// run advances the conversation, following handoffs and escalations, until
// an assistant replies or suspends for approval.
func (s *Supervisor) run(ctx context.Context, session *Session) (*Reply, error) {
	ctx = tools.ContextWithPassenger(ctx, session.PassengerID())
	for {
		assistant := s.Assistant(session.CurrentAssistant())
		step, err := assistant.Step(ctx, session.Memory())
		if err != nil {
			return nil, err
		}
		session.AddUsage(&step.Usage)
		switch step.Kind {
		case StepReply:
			return &Reply{
				Status:    StatusCompleted,
				Content:   step.Content,
				Assistant: assistant.Key(),
			}, nil
		case StepHandoff:
			target := s.Assistant(step.Target)
			slog.Debug("dialog handoff", "session", session.ID(), "from", assistant.Key(), "to", target.Key())
			session.Push(target.Key())
			session.Memory().Add(components.NewToolResultMessage(components.ToolResult{
				ID:      step.Call.ID,
				Name:    step.Call.Name,
				Content: entryMessage(target.Name()),
			}))
		case StepEscalate:
			slog.Debug("dialog escalate", "session", session.ID(), "from", assistant.Key())
			session.Pop()
			session.Memory().Add(components.NewToolResultMessage(components.ToolResult{
				ID:      step.Call.ID,
				Name:    step.Call.Name,
				Content: escalateMessage,
			}))
		case StepPending:
			session.SetPending(step.Pending)
			return &Reply{
				Status:    StatusNeedsApproval,
				Pending:   step.Pending,
				Assistant: assistant.Key(),
			}, nil
		}
	}
}
