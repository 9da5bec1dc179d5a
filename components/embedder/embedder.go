package embedder

import (
	"bytes"
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/brook-ai/brook/components"
)

// Embedder converts text into vector representations through an external
// embedding provider.
type Embedder interface {
	Provider() Provider
	Model() string
	Embed(ctx context.Context, text string, embedding *Embedding, usage *components.ApiUsage) error
	BatchEmbed(ctx context.Context, parts []string, usage *components.ApiUsage) ([]Embedding, error)
}

// Embedding is an information dense vector representation of the semantic
// meaning of a piece of text. The distance between two embeddings in the
// vector space correlates with the semantic similarity of the inputs.
type Embedding struct {
	Object    string            `json:"object"`
	Embedding []float64         `json:"embedding"`
	Index     int               `json:"index"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// UUID derives a stable identifier from the embedded text and its metadata,
// so re-ingesting the same document does not duplicate records.
func (e Embedding) UUID() string {
	sb := new(bytes.Buffer)
	sb.WriteString(e.Object)
	for k, v := range e.Meta {
		sb.WriteString(k + ":" + v)
		sb.WriteByte('\n')
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, sb.Bytes()).String()
}

// ErrVectorLengthMismatch is returned when two embeddings of different
// dimensions are compared.
var ErrVectorLengthMismatch = errors.New("vector length mismatch")

// DotProduct calculates the dot product of the embedding vector with another
// embedding vector. Both vectors must have the same length.
func (e *Embedding) DotProduct(other *Embedding) (float64, error) {
	if len(e.Embedding) != len(other.Embedding) {
		return 0, ErrVectorLengthMismatch
	}
	var dotProduct float64
	for i := range e.Embedding {
		dotProduct += e.Embedding[i] * other.Embedding[i]
	}
	return dotProduct, nil
}

// EmbedSections embeds a batch of text sections, attaching the given metadata
// to every resulting embedding.
func EmbedSections(ctx context.Context, emb Embedder, sections []string, meta map[string]string, usage *components.ApiUsage) ([]Embedding, error) {
	ret, err := emb.BatchEmbed(ctx, sections, usage)
	if err != nil {
		return nil, err
	}
	if meta != nil {
		for i := range ret {
			ret[i].Meta = meta
		}
	}
	return ret, nil
}
