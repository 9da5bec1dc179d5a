// Package policy exposes the company policy lookup tool.
package policy

import (
	"context"
	"encoding/json"

	"github.com/brook-ai/brook/schema"
	"github.com/brook-ai/brook/tools"
)

// Retriever finds the policy sections most relevant to a query.
type Retriever interface {
	Lookup(ctx context.Context, query string) (string, error)
}

type Input struct {
	schema.Base
	// Query the policy question
	Query string `json:"query" jsonschema:"title=query,description=The query string to look up in the company policies." validate:"required"`
}

func NewInput(query string) *Input {
	return &Input{Query: query}
}

// Lookup consults the company policies to check whether certain options are
// permitted. Assistants call it before making booking changes; enforcement
// still lives in the booking tools themselves, since the model can always
// ignore what it reads.
type Lookup struct {
	tools.Config
	retriever Retriever
}

func NewLookup(retriever Retriever, opts ...tools.Option) *Lookup {
	ret := &Lookup{retriever: retriever}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("lookup_policy")
	}
	return ret
}

func (t *Lookup) Run(ctx context.Context, input *Input) (*schema.String, error) {
	sections, err := t.retriever.Lookup(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	return schema.NewString(sections), nil
}

// Register wires the policy lookup tool into a registry.
func Register(r *tools.Registry, retriever Retriever) {
	tools.Register(r, tools.Definition{
		Name:        "lookup_policy",
		Description: "Consult the company policies to check whether certain options are permitted. Use this before making any flight changes or performing other 'write' events.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "The query string to look up in the company policies."}
			},
			"required": ["query"]
		}`),
	}, NewLookup(retriever))
}
