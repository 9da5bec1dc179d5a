package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/schema"
)

type echoInput struct {
	schema.Base
	Text string `json:"text" validate:"required"`
}

type echoOutput struct {
	schema.Base
	Text string `json:"text"`
}

func (o echoOutput) String() string {
	return o.Text
}

type echoTool struct {
	Config
	fail error
}

func (t *echoTool) Run(ctx context.Context, in *echoInput) (*echoOutput, error) {
	if t.fail != nil {
		return nil, t.fail
	}
	return &echoOutput{Text: "echo: " + in.Text}, nil
}

func newEchoRegistry(fail error) *Registry {
	r := NewRegistry()
	Register(r, Definition{
		Name:        "echo",
		Description: "Echo the given text.",
		Parameters:  json.RawMessage(`{"type":"object","properties":{"text":{"type":"string"}},"required":["text"]}`),
	}, &echoTool{fail: fail})
	return r
}

func TestDispatch(t *testing.T) {
	r := newEchoRegistry(nil)
	res := r.Dispatch(context.Background(), components.ToolCall{ID: "1", Name: "echo", Arguments: `{"text":"hi"}`})
	if res.IsError {
		t.Fatalf("unexpected error result: %s", res.Content)
	}
	if res.Content != "echo: hi" || res.ID != "1" || res.Name != "echo" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	r := newEchoRegistry(nil)
	res := r.Dispatch(context.Background(), components.ToolCall{ID: "1", Name: "nope", Arguments: `{}`})
	if !res.IsError || !strings.Contains(res.Content, "please fix your mistakes.") {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestDispatchValidation(t *testing.T) {
	r := newEchoRegistry(nil)
	res := r.Dispatch(context.Background(), components.ToolCall{ID: "1", Name: "echo", Arguments: `{}`})
	if !res.IsError || !strings.Contains(res.Content, "Error:") {
		t.Errorf("validation must fail on missing text: %+v", res)
	}
}

func TestDispatchToolError(t *testing.T) {
	r := newEchoRegistry(errors.New("boom"))
	res := r.Dispatch(context.Background(), components.ToolCall{ID: "1", Name: "echo", Arguments: `{"text":"hi"}`})
	if !res.IsError {
		t.Fatal("expect error result")
	}
	if res.Content != "Error: boom\n please fix your mistakes." {
		t.Errorf("unexpected error content: %q", res.Content)
	}
}

func TestDefinitionsOrder(t *testing.T) {
	r := newEchoRegistry(nil)
	r.Add(Definition{Name: "second", Sensitive: true}, func(ctx context.Context, args json.RawMessage) (schema.Schema, error) {
		return schema.NewString("ok"), nil
	})
	defs := r.Definitions()
	if len(defs) != 2 || defs[0].Name != "echo" || defs[1].Name != "second" {
		t.Errorf("unexpected definitions: %+v", defs)
	}
	if !r.IsSensitive("second") || r.IsSensitive("echo") {
		t.Error("sensitivity flags wrong")
	}
}

func TestPassengerContext(t *testing.T) {
	if _, err := PassengerFromContext(context.Background()); !errors.Is(err, ErrNoPassenger) {
		t.Errorf("want ErrNoPassenger, got %v", err)
	}
	ctx := ContextWithPassenger(context.Background(), "3442 587242")
	got, err := PassengerFromContext(ctx)
	if err != nil || got != "3442 587242" {
		t.Errorf("unexpected passenger: %q, %v", got, err)
	}
}
