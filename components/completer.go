package components

import "context"

// CompletionRequest is one chat completion call with optional bound tools.
type CompletionRequest struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Messages    []Message
	Tools       []ToolDefinition
}

// Completion is the model's answer to a CompletionRequest: a final text
// reply, tool calls to dispatch, or both.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
	Response  ApiResponse
}

// Completer produces one chat completion. Implementations wrap a
// language model provider and translate tool definitions and tool
// traffic to its wire format.
type Completer interface {
	Complete(ctx context.Context, req *CompletionRequest, out *Completion) error
}
