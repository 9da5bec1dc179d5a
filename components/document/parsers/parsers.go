package parsers

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/brook-ai/brook/components/document"
	"github.com/brook-ai/brook/components/document/parsers/html"
	"github.com/brook-ai/brook/components/document/parsers/markdown"
	"github.com/brook-ai/brook/components/document/parsers/pdf"
)

// ForMimeType picks a parser for the sniffed content type. Unknown types fall
// back to the passthrough markdown parser.
func ForMimeType(mime *mimetype.MIME) document.Parser {
	switch {
	case mime.Is("text/html"):
		return html.NewParser()
	case mime.Is("application/pdf"):
		return pdf.NewParser()
	case strings.HasPrefix(mime.String(), "text/"):
		return markdown.NewParser()
	default:
		return markdown.NewParser()
	}
}
