package llm

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"

	"github.com/brook-ai/brook/components"
)

// OpenAI is a tool-calling Completer backed by the OpenAI chat API.
type OpenAI struct {
	client *openai.Client
}

var _ components.Completer = (*OpenAI)(nil)

// NewOpenAI returns a Completer for the given client.
func NewOpenAI(client *openai.Client) *OpenAI {
	return &OpenAI{client: client}
}

// NewOpenAIWithKey builds a client from an API key and optional base URL.
func NewOpenAIWithKey(apiKey, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewOpenAI(openai.NewClientWithConfig(cfg))
}

func (c *OpenAI) Complete(ctx context.Context, req *components.CompletionRequest, out *components.Completion) error {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(req.Messages)),
	}
	for _, msg := range req.Messages {
		v := new(openai.ChatCompletionMessage)
		msg.ToOpenAI(v)
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	for _, def := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  json.RawMessage(def.Parameters),
			},
		})
	}
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return err
	}
	out.Response.FromOpenAI(&resp)
	if len(resp.Choices) == 0 {
		return nil
	}
	choice := resp.Choices[0].Message
	out.Content = choice.Content
	for _, tc := range choice.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, components.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return nil
}
