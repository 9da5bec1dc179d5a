package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/components/systemprompt/simple"
	"github.com/brook-ai/brook/schema"
	"github.com/brook-ai/brook/tools"
)

// passengerEcho reports the passenger ID bound to the call context.
type passengerEcho struct {
	tools.Config
}

func (t *passengerEcho) Run(ctx context.Context, _ *echoInput) (*schema.String, error) {
	passengerID, err := tools.PassengerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return schema.NewString("passenger " + passengerID), nil
}

func newSupervisor(t *testing.T, primary, delegate components.Completer) *Supervisor {
	t.Helper()
	primaryReg := tools.NewRegistry()
	tools.Register[echoInput, schema.String](primaryReg, tools.Definition{Name: "whoami"}, &passengerEcho{})
	host := NewAssistant(PrimaryAssistant, "Primary Assistant", primary, simple.New("host"), primaryReg,
		WithControlTools(HandoffTools()...))

	flightReg := tools.NewRegistry()
	tools.Register[echoInput, schema.String](flightReg, tools.Definition{Name: "update_ticket", Sensitive: true}, &echoTool{})
	flights := NewAssistant(UpdateFlight, "Flight Updates & Booking Assistant", delegate, simple.New("flights"), flightReg,
		WithControlTools(EscalateTool()))

	sup, err := NewSupervisor(host, flights)
	if err != nil {
		t.Fatal(err)
	}
	return sup
}

func TestHandleReply(t *testing.T) {
	sup := newSupervisor(t, &scriptedCompleter{steps: []components.Completion{reply("hello")}}, &scriptedCompleter{})
	session := NewSession("s1", "3442 587242", 0)
	out, err := sup.Handle(context.Background(), session, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if out.Status != StatusCompleted || out.Content != "hello" || out.Assistant != PrimaryAssistant {
		t.Errorf("unexpected reply: %+v", out)
	}
}

func TestHandlePassengerScopedTools(t *testing.T) {
	primary := &scriptedCompleter{steps: []components.Completion{
		toolCalls(components.ToolCall{ID: "c1", Name: "whoami"}),
		reply("you are set"),
	}}
	sup := newSupervisor(t, primary, &scriptedCompleter{})
	session := NewSession("s1", "3442 587242", 0)
	if _, err := sup.Handle(context.Background(), session, "who am I?"); err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, msg := range session.Memory().History() {
		if res := msg.ToolResult(); res != nil && res.Content == "passenger 3442 587242" {
			found = true
		}
	}
	if !found {
		t.Error("passenger ID not propagated to tool context")
	}
}

func TestHandoffRoutesToDelegate(t *testing.T) {
	primary := &scriptedCompleter{steps: []components.Completion{
		toolCalls(components.ToolCall{ID: "c1", Name: ToFlightBookingAssistant, Arguments: `{"request":"change flight"}`}),
	}}
	delegate := &scriptedCompleter{steps: []components.Completion{reply("which flight?")}}
	sup := newSupervisor(t, primary, delegate)
	session := NewSession("s1", "3442 587242", 0)

	out, err := sup.Handle(context.Background(), session, "I need to change my flight")
	if err != nil {
		t.Fatal(err)
	}
	if out.Assistant != UpdateFlight || out.Content != "which flight?" {
		t.Errorf("unexpected reply: %+v", out)
	}
	if session.CurrentAssistant() != UpdateFlight {
		t.Error("dialog stack must point at the delegate")
	}
	var entry bool
	for _, msg := range session.Memory().History() {
		if res := msg.ToolResult(); res != nil && strings.Contains(res.Content, "The assistant is now the Flight Updates & Booking Assistant.") {
			entry = true
		}
	}
	if !entry {
		t.Error("entry message missing")
	}
	// next turn goes straight to the delegate
	delegate.steps = []components.Completion{reply("still here")}
	out, err = sup.Handle(context.Background(), session, "flight LX0112")
	if err != nil {
		t.Fatal(err)
	}
	if out.Assistant != UpdateFlight {
		t.Errorf("turn routed to %s", out.Assistant)
	}
}

func TestEscalateReturnsToHost(t *testing.T) {
	primary := &scriptedCompleter{steps: []components.Completion{
		toolCalls(components.ToolCall{ID: "c1", Name: ToFlightBookingAssistant, Arguments: `{"request":"r"}`}),
		reply("anything else?"),
	}}
	delegate := &scriptedCompleter{steps: []components.Completion{
		toolCalls(components.ToolCall{ID: "c2", Name: CompleteOrEscalate, Arguments: `{"cancel":false,"reason":"done"}`}),
	}}
	sup := newSupervisor(t, primary, delegate)
	session := NewSession("s1", "3442 587242", 0)

	out, err := sup.Handle(context.Background(), session, "change my flight")
	if err != nil {
		t.Fatal(err)
	}
	if out.Assistant != PrimaryAssistant || out.Content != "anything else?" {
		t.Errorf("unexpected reply: %+v", out)
	}
	if session.CurrentAssistant() != PrimaryAssistant {
		t.Error("dialog stack must be back at the host")
	}
	var resume bool
	for _, msg := range session.Memory().History() {
		if res := msg.ToolResult(); res != nil && strings.HasPrefix(res.Content, "Resuming dialog with the host assistant.") {
			resume = true
		}
	}
	if !resume {
		t.Error("escalate tool result missing")
	}
}

func TestApprovalFlow(t *testing.T) {
	primary := &scriptedCompleter{steps: []components.Completion{
		toolCalls(components.ToolCall{ID: "c1", Name: ToFlightBookingAssistant, Arguments: `{"request":"r"}`}),
	}}
	delegate := &scriptedCompleter{steps: []components.Completion{
		toolCalls(components.ToolCall{ID: "c2", Name: "update_ticket", Arguments: `{"text":"LX0112"}`}),
		reply("rebooked"),
	}}
	sup := newSupervisor(t, primary, delegate)
	session := NewSession("s1", "3442 587242", 0)

	out, err := sup.Handle(context.Background(), session, "move me to LX0112")
	if err != nil {
		t.Fatal(err)
	}
	if out.Status != StatusNeedsApproval || len(out.Pending) != 1 || out.Pending[0].Name != "update_ticket" {
		t.Fatalf("unexpected reply: %+v", out)
	}
	// new turns are rejected while approval is pending
	if _, err := sup.Handle(context.Background(), session, "hello?"); !errors.Is(err, ErrPendingApproval) {
		t.Errorf("want ErrPendingApproval, got %v", err)
	}

	out, err = sup.Approve(context.Background(), session)
	if err != nil {
		t.Fatal(err)
	}
	if out.Status != StatusCompleted || out.Content != "rebooked" {
		t.Errorf("unexpected reply: %+v", out)
	}
	var dispatched bool
	for _, msg := range session.Memory().History() {
		if res := msg.ToolResult(); res != nil && res.Content == "echo: LX0112" {
			dispatched = true
		}
	}
	if !dispatched {
		t.Error("approved call was not dispatched")
	}
	if _, err := sup.Approve(context.Background(), session); !errors.Is(err, ErrNoPendingApproval) {
		t.Errorf("want ErrNoPendingApproval, got %v", err)
	}
}

func TestDenyFlow(t *testing.T) {
	primary := &scriptedCompleter{steps: []components.Completion{
		toolCalls(components.ToolCall{ID: "c1", Name: ToFlightBookingAssistant, Arguments: `{"request":"r"}`}),
	}}
	delegate := &scriptedCompleter{steps: []components.Completion{
		toolCalls(components.ToolCall{ID: "c2", Name: "update_ticket", Arguments: `{"text":"LX0112"}`}),
		reply("understood, leaving it as is"),
	}}
	sup := newSupervisor(t, primary, delegate)
	session := NewSession("s1", "3442 587242", 0)

	if _, err := sup.Handle(context.Background(), session, "move me to LX0112"); err != nil {
		t.Fatal(err)
	}
	out, err := sup.Deny(context.Background(), session, "wrong date")
	if err != nil {
		t.Fatal(err)
	}
	if out.Status != StatusCompleted {
		t.Fatalf("unexpected reply: %+v", out)
	}
	var denied bool
	for _, msg := range session.Memory().History() {
		if res := msg.ToolResult(); res != nil && strings.Contains(res.Content, "API call denied by user. Reasoning: 'wrong date'.") {
			denied = true
		}
	}
	if !denied {
		t.Error("denial tool result missing")
	}
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(0)
	session := store.Create("3442 587242")
	if session.ID() == "" {
		t.Fatal("empty session id")
	}
	got, err := store.Get(session.ID())
	if err != nil || got != session {
		t.Fatalf("get failed: %v", err)
	}
	store.Delete(session.ID())
	if _, err := store.Get(session.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("want ErrSessionNotFound, got %v", err)
	}
}
