package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/components/systemprompt"
	"github.com/brook-ai/brook/schema"
	"github.com/brook-ai/brook/tools"
)

// StepKind classifies how an assistant step ended.
type StepKind int

const (
	// StepReply carries a final text answer for the user.
	StepReply StepKind = iota
	// StepHandoff transfers the dialog to a specialized assistant.
	StepHandoff
	// StepEscalate returns the dialog to the host assistant.
	StepEscalate
	// StepPending suspends the step until the user approves the proposed
	// sensitive tool calls.
	StepPending
)

// StepResult is the outcome of one assistant step over the conversation.
type StepResult struct {
	Kind    StepKind
	Content string
	// Target is the assistant key a handoff routes to.
	Target string
	// Call is the control tool call that triggered a handoff or escalate.
	Call components.ToolCall
	// Pending are the sensitive tool calls awaiting approval.
	Pending []components.ToolCall
	// Usage accumulates token usage over the completions of this step.
	Usage components.ApiUsage
}

// emptyRetryLimit bounds the "Respond with a real output." nudges per step.
const emptyRetryLimit = 3

// Assistant runs the tool-calling loop for one conversational role: it binds
// its registry and control tools to the model, dispatches safe tool calls and
// feeds results back until the model settles on a reply or a control action.
type Assistant struct {
	key         string
	name        string
	completer   components.Completer
	prompt      systemprompt.Generator
	registry    *tools.Registry
	control     []components.ToolDefinition
	model       string
	temperature float32
	maxTokens   int
}

type AssistantOption func(*Assistant)

func WithAssistantModel(model string) AssistantOption {
	return func(a *Assistant) {
		a.model = model
	}
}

func WithAssistantTemperature(temperature float32) AssistantOption {
	return func(a *Assistant) {
		a.temperature = temperature
	}
}

func WithAssistantMaxTokens(maxTokens int) AssistantOption {
	return func(a *Assistant) {
		a.maxTokens = maxTokens
	}
}

// WithControlTools binds routing tools: handoffs for the host assistant,
// CompleteOrEscalate for delegates.
func WithControlTools(defs ...components.ToolDefinition) AssistantOption {
	return func(a *Assistant) {
		a.control = append(a.control, defs...)
	}
}

// NewAssistant builds an assistant. key identifies it on the dialog stack,
// name is its user-facing presentation in handoff messages.
func NewAssistant(key, name string, completer components.Completer, prompt systemprompt.Generator, registry *tools.Registry, opts ...AssistantOption) *Assistant {
	ret := &Assistant{
		key:       key,
		name:      name,
		completer: completer,
		prompt:    prompt,
		registry:  registry,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (a *Assistant) Key() string {
	return a.key
}

func (a *Assistant) Name() string {
	return a.name
}

func (a *Assistant) Registry() *tools.Registry {
	return a.registry
}

// definitions lists the domain tools plus the control tools bound to this
// assistant.
func (a *Assistant) definitions() []components.ToolDefinition {
	defs := a.registry.Definitions()
	return append(defs, a.control...)
}

// Step advances the conversation until the model produces a reply or a
// control action. Safe tool calls are dispatched inline; sensitive calls
// suspend the step. The assistant tool-call message is already in memory
// when a pending result is returned, so approval only needs to dispatch.
func (a *Assistant) Step(ctx context.Context, memory *components.Memory) (*StepResult, error) {
	ret := new(StepResult)
	var nudges int
	for {
		completion, err := a.complete(ctx, memory, nudges > 0)
		if err != nil {
			return nil, err
		}
		if completion.Response.Usage != nil {
			ret.Usage.Merge(completion.Response.Usage)
		}
		if completion.Content == "" && len(completion.ToolCalls) == 0 {
			nudges++
			if nudges > emptyRetryLimit {
				return nil, errors.New("model kept returning empty output")
			}
			continue
		}
		if len(completion.ToolCalls) == 0 {
			memory.NewMessage(components.AssistantRole, schema.String(completion.Content))
			ret.Kind = StepReply
			ret.Content = completion.Content
			return ret, nil
		}
		nudges = 0
		memory.Add(components.NewToolCallMessage(completion.Content, completion.ToolCalls))
		for _, call := range completion.ToolCalls {
			if target, ok := HandoffTarget(call.Name); ok {
				ret.Kind = StepHandoff
				ret.Target = target
				ret.Call = call
				return ret, nil
			}
			if call.Name == CompleteOrEscalate {
				ret.Kind = StepEscalate
				ret.Call = call
				return ret, nil
			}
		}
		var pending bool
		for _, call := range completion.ToolCalls {
			if a.registry.IsSensitive(call.Name) {
				pending = true
				break
			}
		}
		if pending {
			ret.Kind = StepPending
			ret.Pending = completion.ToolCalls
			return ret, nil
		}
		a.Dispatch(ctx, memory, completion.ToolCalls)
	}
}

// Dispatch runs tool calls and folds their results into memory.
func (a *Assistant) Dispatch(ctx context.Context, memory *components.Memory, calls []components.ToolCall) {
	for _, call := range calls {
		res := a.registry.Dispatch(ctx, call)
		memory.Add(components.NewToolResultMessage(res))
	}
}

// complete performs one model call over the current history. The nudge is a
// request-only user message, it never enters memory.
func (a *Assistant) complete(ctx context.Context, memory *components.Memory, nudge bool) (*components.Completion, error) {
	history := memory.History()
	messages := make([]components.Message, 0, len(history)+2)
	messages = append(messages, *components.NewMessage(components.SystemRole, schema.String(a.prompt.Generate())))
	messages = append(messages, history...)
	if nudge {
		messages = append(messages, *components.NewMessage(components.UserRole, schema.String("Respond with a real output.")))
	}
	req := components.CompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		Messages:    messages,
		Tools:       a.definitions(),
	}
	out := new(components.Completion)
	if err := a.completer.Complete(ctx, &req, out); err != nil {
		return nil, fmt.Errorf("assistant %s: %w", a.key, err)
	}
	return out, nil
}
