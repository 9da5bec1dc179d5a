// Package rag retrieves company policy passages for the support assistant.
// Policy documents are split into sections, embedded and stored in a vector
// engine; lookups embed the query and return the closest sections as plain
// text for the model to quote from.
package rag

import (
	"context"
	"strings"

	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/components/embedder"
	"github.com/brook-ai/brook/components/vectordb"
	"github.com/brook-ai/brook/schema"
)

// Retriever answers free-form questions against an embedded document
// collection.
type Retriever struct {
	Options
	embedder embedder.Embedder
	engine   vectordb.Engine
}

func NewRetriever(emb embedder.Embedder, engine vectordb.Engine, opts ...Option) *Retriever {
	ret := &Retriever{embedder: emb, engine: engine}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.collection == "" {
		ret.collection = DefaultCollection
	}
	if ret.topK <= 0 {
		ret.topK = DefaultTopK
	}
	return ret
}

// Lookup embeds the query, searches the collection and joins the matching
// sections into a single passage, best match first. A configured query agent
// rewrites the query before retrieval.
func (r *Retriever) Lookup(ctx context.Context, query string) (string, error) {
	if r.enhancer != nil {
		var enhanced schema.String
		if err := r.enhancer.Run(ctx, schema.NewString(query), &enhanced, nil); err != nil {
			return "", err
		}
		query = enhanced.String()
	}
	var (
		emb   embedder.Embedding
		usage components.ApiUsage
	)
	if err := r.embedder.Embed(ctx, query, &emb, &usage); err != nil {
		return "", err
	}
	records, err := r.engine.Search(ctx, emb.Embedding,
		vectordb.SearchWithCollection(r.collection),
		vectordb.SearchWithTopK(r.topK))
	if err != nil {
		return "", err
	}
	sections := make([]string, 0, len(records))
	for _, record := range records {
		sections = append(sections, record.Embedding.Object)
	}
	return strings.Join(sections, "\n\n"), nil
}

// AddSections embeds the given text sections and inserts them into the
// retriever's collection. The metadata is attached to every section.
func (r *Retriever) AddSections(ctx context.Context, sections []string, meta map[string]string, usage *components.ApiUsage) error {
	if len(sections) == 0 {
		return nil
	}
	embeddings, err := embedder.EmbedSections(ctx, r.embedder, sections, meta, usage)
	if err != nil {
		return err
	}
	records := make([]vectordb.Record, 0, len(embeddings))
	for _, emb := range embeddings {
		records = append(records, vectordb.Record{Embedding: emb})
	}
	return r.engine.Insert(ctx, r.collection, records...)
}
