package components

import (
	"encoding/json"

	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/brook-ai/brook/schema"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// Message represents a message in the chat history.
// Besides plain content a message may carry tool calls proposed by the
// assistant, or the result of a single tool call addressed back to it.
type Message struct {
	content schema.Schema
	// role is the role of the message sender
	role MessageRole
	// turnID is the unique identifier for the turn this message belongs to
	turnID string
	// toolCalls are tool invocations requested by the assistant
	toolCalls []ToolCall
	// toolResult is set for ToolRole messages
	toolResult *ToolResult
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// NewToolCallMessage returns an assistant message carrying tool calls.
func NewToolCallMessage(content string, calls []ToolCall) *Message {
	return &Message{
		role:      AssistantRole,
		content:   schema.String(content),
		toolCalls: calls,
	}
}

// NewToolResultMessage returns a tool message carrying one tool result.
func NewToolResultMessage(result ToolResult) *Message {
	return &Message{
		role:       ToolRole,
		content:    schema.String(result.Content),
		toolResult: &result,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// StringifiedContent returns the message content as model-facing text
func (m Message) StringifiedContent() string {
	if m.content == nil {
		return ""
	}
	return schema.Stringify(m.content)
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

// ToolCalls returns tool invocations attached to an assistant message
func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

// ToolResult returns the tool result attached to a tool message
func (m Message) ToolResult() *ToolResult {
	return m.toolResult
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = m.StringifiedContent()
	if len(m.toolCalls) > 0 {
		dist.ToolCalls = make([]openai.ToolCall, 0, len(m.toolCalls))
		for _, tc := range m.toolCalls {
			dist.ToolCalls = append(dist.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
	}
	if m.toolResult != nil {
		dist.Role = openai.ChatMessageRoleTool
		dist.ToolCallID = m.toolResult.ID
	}
}

// ToAnthropic convert message to anthropic Message.
// Anthropic has no dedicated tool role: results travel as user messages
// with tool_result content, calls as assistant tool_use content.
func (m Message) ToAnthropic(dist *anthropic.Message) {
	if m.toolResult != nil {
		dist.Role = anthropic.RoleUser
		dist.Content = []anthropic.MessageContent{
			anthropic.NewToolResultMessageContent(m.toolResult.ID, m.toolResult.Content, m.toolResult.IsError),
		}
		return
	}
	if len(m.toolCalls) > 0 {
		contents := make([]anthropic.MessageContent, 0, len(m.toolCalls)+1)
		if txt := m.StringifiedContent(); txt != "" {
			contents = append(contents, anthropic.NewTextMessageContent(txt))
		}
		for _, tc := range m.toolCalls {
			contents = append(contents, anthropic.NewToolUseMessageContent(tc.ID, tc.Name, []byte(tc.Arguments)))
		}
		dist.Role = anthropic.RoleAssistant
		dist.Content = contents
		return
	}
	dist.Role = anthropic.ChatRole(m.role)
	dist.Content = []anthropic.MessageContent{anthropic.NewTextMessageContent(m.StringifiedContent())}
}

// ToCohere convert message to cohere Message. Tool traffic is flattened
// into plain chat turns since the instructor path never binds tools.
func (m Message) ToCohere(dist *cohere.Message) {
	switch m.role {
	case SystemRole, ToolRole:
		dist.Role = "SYSTEM"
		dist.System = &cohere.ChatMessage{
			Message: m.StringifiedContent(),
		}
	case AssistantRole:
		dist.Role = "CHATBOT"
		dist.Chatbot = &cohere.ChatMessage{
			Message: m.StringifiedContent(),
		}
	case UserRole:
		dist.Role = "USER"
		dist.User = &cohere.ChatMessage{
			Message: m.StringifiedContent(),
		}
	}
}

type messageJSON struct {
	Role       MessageRole `json:"role"`
	Content    string      `json:"content,omitempty"`
	TurnID     string      `json:"turn_id,omitempty"`
	ToolCalls  []ToolCall  `json:"tool_calls,omitempty"`
	ToolResult *ToolResult `json:"tool_result,omitempty"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		Role:       m.role,
		Content:    m.StringifiedContent(),
		TurnID:     m.turnID,
		ToolCalls:  m.toolCalls,
		ToolResult: m.toolResult,
	})
}

func (m *Message) UnmarshalJSON(bs []byte) error {
	var v messageJSON
	if err := json.Unmarshal(bs, &v); err != nil {
		return err
	}
	m.role = v.Role
	m.content = schema.String(v.Content)
	m.turnID = v.TurnID
	m.toolCalls = v.ToolCalls
	m.toolResult = v.ToolResult
	return nil
}
