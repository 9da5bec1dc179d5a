package splitter

import (
	"github.com/clipperhouse/uax29/sentences"

	"github.com/brook-ai/brook/components/embedder"
)

// Sentences chunks text along unicode sentence boundaries.
type Sentences struct {
	Options
}

var _ embedder.Chunker = (*Sentences)(nil)

func NewSentences(opts ...Option) *Sentences {
	ret := new(Sentences)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	ret.delimiter = []byte(" ")
	ret.scanner = sentences.NewScanner(ret.Buffer())
	if ret.tokenCounter == nil {
		ret.tokenCounter = new(SentencesTokenCounter)
	}
	return ret
}
