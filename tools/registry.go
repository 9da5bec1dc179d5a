package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/schema"
)

// Definition describes a tool to the model. Parameters is the JSON schema of
// the tool arguments. Sensitive tools require user approval before they run.
type Definition struct {
	Name        string
	Description string
	Parameters  json.RawMessage
	Sensitive   bool
}

// Handler executes a tool call with raw JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) (schema.Schema, error)

type registration struct {
	Definition
	handler Handler
}

// Registry holds the tools available to one assistant and dispatches tool
// calls to them.
type Registry struct {
	tools    map[string]*registration
	order    []string
	validate *validator.Validate
}

func NewRegistry() *Registry {
	return &Registry{
		tools:    make(map[string]*registration),
		validate: validator.New(),
	}
}

// Add registers a raw handler under the given definition. Later registrations
// replace earlier ones with the same name.
func (r *Registry) Add(def Definition, h Handler) {
	if _, exists := r.tools[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = &registration{Definition: def, handler: h}
}

// Register adds a typed tool. Arguments are unmarshalled into I and validated
// before the tool runs.
func Register[I schema.Schema, O schema.Schema](r *Registry, def Definition, tool Tool[I, O]) {
	r.Add(def, func(ctx context.Context, args json.RawMessage) (schema.Schema, error) {
		input := new(I)
		if len(args) > 0 {
			if err := json.Unmarshal(args, input); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
		}
		if err := r.validate.StructCtx(ctx, input); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		out, err := tool.Run(ctx, input)
		if err != nil {
			return nil, err
		}
		return *out, nil
	})
}

// Definitions lists the registered tools in registration order.
func (r *Registry) Definitions() []components.ToolDefinition {
	defs := make([]components.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		reg := r.tools[name]
		defs = append(defs, components.ToolDefinition{
			Name:        reg.Name,
			Description: reg.Description,
			Parameters:  reg.Parameters,
		})
	}
	return defs
}

func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

func (r *Registry) IsSensitive(name string) bool {
	reg, ok := r.tools[name]
	return ok && reg.Sensitive
}

// Dispatch runs a tool call and wraps the outcome as a tool result. Failures
// are folded into the conversation instead of aborting the turn, so the
// model can correct its own mistakes.
func (r *Registry) Dispatch(ctx context.Context, call components.ToolCall) components.ToolResult {
	ret := components.ToolResult{
		ID:   call.ID,
		Name: call.Name,
	}
	reg, ok := r.tools[call.Name]
	if !ok {
		ret.IsError = true
		ret.Content = fmt.Sprintf("Error: unknown tool %q\n please fix your mistakes.", call.Name)
		return ret
	}
	out, err := reg.handler(ctx, json.RawMessage(call.Arguments))
	if err != nil {
		ret.IsError = true
		ret.Content = fmt.Sprintf("Error: %v\n please fix your mistakes.", err)
		return ret
	}
	ret.Content = schema.Stringify(out)
	return ret
}
