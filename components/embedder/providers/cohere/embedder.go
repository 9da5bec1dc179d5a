package cohere

import (
	"context"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/components/embedder"
)

type Embedder struct {
	client *cohereClient.Client

	embedder.Options
}

var _ embedder.Embedder = (*Embedder)(nil)

func New(client *cohereClient.Client, opts ...embedder.Option) *Embedder {
	i := &Embedder{
		client: client,
	}
	embedder.WithProvider(embedder.ProviderCohere)(&i.Options)
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

func (p *Embedder) Embed(ctx context.Context, text string, embedding *embedder.Embedding, usage *components.ApiUsage) error {
	model := p.Model()
	req := cohere.EmbedRequest{
		Texts: []string{text},
		Model: &model,
	}
	resp, err := p.client.Embed(ctx, &req)
	if err != nil {
		return err
	}
	respV := resp.GetEmbeddingsFloats()
	mergeUsage(respV, usage)
	if len(respV.Embeddings) == 0 {
		return nil
	}
	embedding.Object = respV.Texts[0]
	embedding.Embedding = respV.Embeddings[0]
	embedding.Index = 0
	return nil
}

func (p *Embedder) BatchEmbed(ctx context.Context, parts []string, usage *components.ApiUsage) ([]embedder.Embedding, error) {
	model := p.Model()
	req := cohere.EmbedRequest{
		Texts: parts,
		Model: &model,
	}
	resp, err := p.client.Embed(ctx, &req)
	if err != nil {
		return nil, err
	}
	respV := resp.GetEmbeddingsFloats()
	mergeUsage(respV, usage)
	ret := make([]embedder.Embedding, 0, len(respV.Embeddings))
	for idx, v := range respV.Embeddings {
		ret = append(ret, embedder.Embedding{
			Object:    respV.Texts[idx],
			Embedding: v,
			Index:     idx,
		})
	}
	return ret, nil
}

func mergeUsage(resp *cohere.EmbedFloatsResponse, usage *components.ApiUsage) {
	if usage == nil || resp == nil || resp.Meta == nil || resp.Meta.Tokens == nil {
		return
	}
	if v := resp.Meta.Tokens.InputTokens; v != nil {
		usage.InputTokens = int(*v)
	}
	if v := resp.Meta.Tokens.OutputTokens; v != nil {
		usage.OutputTokens = int(*v)
	}
}
