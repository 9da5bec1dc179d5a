package llm

import (
	"context"
	"encoding/json"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/brook-ai/brook/components"
)

// Anthropic is a tool-calling Completer backed by the Anthropic messages API.
type Anthropic struct {
	client *anthropic.Client
}

var _ components.Completer = (*Anthropic)(nil)

// NewAnthropic returns a Completer for the given client.
func NewAnthropic(client *anthropic.Client) *Anthropic {
	return &Anthropic{client: client}
}

// NewAnthropicWithKey builds a client from an API key and optional base URL.
func NewAnthropicWithKey(apiKey, baseURL string) *Anthropic {
	opts := make([]anthropic.ClientOption, 0, 1)
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return NewAnthropic(anthropic.NewClient(apiKey, opts...))
}

func (c *Anthropic) Complete(ctx context.Context, req *components.CompletionRequest, out *components.Completion) error {
	chatReq := anthropic.MessagesRequest{
		Model:       anthropic.Model(req.Model),
		Temperature: &req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	// Anthropic takes the system prompt out of band.
	var system []string
	for _, msg := range req.Messages {
		if msg.Role() == components.SystemRole && msg.ToolResult() == nil {
			system = append(system, msg.StringifiedContent())
			continue
		}
		v := new(anthropic.Message)
		msg.ToAnthropic(v)
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	chatReq.System = strings.Join(system, "\n\n")
	for _, def := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, anthropic.ToolDefinition{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: json.RawMessage(def.Parameters),
		})
	}
	resp, err := c.client.CreateMessages(ctx, chatReq)
	if err != nil {
		return err
	}
	out.Response.FromAnthropic(&resp)
	var text strings.Builder
	for _, content := range resp.Content {
		switch content.Type {
		case anthropic.MessagesContentTypeText:
			if content.Text != nil {
				text.WriteString(*content.Text)
			}
		case anthropic.MessagesContentTypeToolUse:
			if tu := content.MessageContentToolUse; tu != nil {
				out.ToolCalls = append(out.ToolCalls, components.ToolCall{
					ID:        tu.ID,
					Name:      tu.Name,
					Arguments: string(tu.Input),
				})
			}
		}
	}
	out.Content = text.String()
	return nil
}
