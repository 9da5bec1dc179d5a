package schema

import "encoding/json"

// Input is a chat message from the user to the agent.
type Input struct {
	Base
	// ChatMessage is the message content sent by the user
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The message sent by the user to the assistant." validate:"required"`
}

func NewInput(msg string) *Input {
	return &Input{
		ChatMessage: msg,
	}
}

func (s Input) String() string {
	return s.ChatMessage
}

// Output is a chat reply from the agent to the user.
type Output struct {
	Base
	// ChatMessage is the reply content produced by the assistant
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The reply from the assistant to the user." validate:"required"`
}

func NewOutput(msg string) *Output {
	return &Output{
		ChatMessage: msg,
	}
}

func (s Output) String() string {
	return s.ChatMessage
}

func (s *Output) Unmarshal(bs []byte) error {
	v := new(Output)
	if err := json.Unmarshal(bs, v); err != nil {
		s.ChatMessage = string(bs)
		return nil
	}
	*s = *v
	return nil
}
