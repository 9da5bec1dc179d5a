package rag

import (
	"github.com/brook-ai/brook/agents"
	"github.com/brook-ai/brook/schema"
)

// QueryAgent rewrites a lookup query before retrieval, typically expanding
// terse user questions into richer search queries.
type QueryAgent = agents.TypeableAgent[schema.String, schema.String]

const (
	DefaultCollection = "policies"
	// DefaultTopK keeps lookups short; two sections cover most policy
	// questions without flooding the prompt.
	DefaultTopK = 2
)

type Options struct {
	collection string
	topK       int
	enhancer   QueryAgent
}

type Option func(*Options)

func WithCollection(name string) Option {
	return func(o *Options) {
		o.collection = name
	}
}

func WithTopK(topK int) Option {
	return func(o *Options) {
		o.topK = topK
	}
}

func WithQueryAgent(agent QueryAgent) Option {
	return func(o *Options) {
		o.enhancer = agent
	}
}
