package rag

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/components/document"
	"github.com/brook-ai/brook/components/document/parsers"
	"github.com/brook-ai/brook/components/embedder/splitter"
)

// IngestURL fetches a policy document, splits it into "## " sections and
// stores the embedded sections in the retriever's collection.
func (r *Retriever) IngestURL(ctx context.Context, link string, client *http.Client, usage *components.ApiUsage) error {
	opts := []document.HttpOption{document.WithHttpURL(link)}
	if client != nil {
		opts = append(opts, document.WithHttpClient(client))
	}
	doc, err := document.NewHttp(opts...)
	if err != nil {
		return err
	}
	if err := doc.ReadAll(); err != nil {
		return err
	}
	txt, err := doc.Parse(ctx, parsers.ForMimeType(doc.MimeType()))
	if err != nil {
		return err
	}
	return r.IngestText(ctx, txt, map[string]string{"source": link}, usage)
}

// IngestText splits markdown text along second-level headings and stores each
// section as its own record.
func (r *Retriever) IngestText(ctx context.Context, txt string, meta map[string]string, usage *components.ApiUsage) error {
	sections := splitter.NewMarkdown().SplitText(txt)
	slog.Info("ingesting policy document", "collection", r.collection, "sections", len(sections))
	return r.AddSections(ctx, sections, meta, usage)
}
