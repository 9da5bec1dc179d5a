package html

import (
	"bytes"
	"context"
	"io"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/brook-ai/brook/components/document"
)

// Parser converts html content to markdown. Script, style and navigation
// chrome are stripped before conversion so only readable content remains.
type Parser struct {
	opts []converter.ConvertOptionFunc
}

var _ document.Parser = (*Parser)(nil)

func NewParser(opts ...converter.ConvertOptionFunc) *Parser {
	return &Parser{
		opts: opts,
	}
}

func (h *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return err
	}
	doc.Find("script, style, noscript, iframe, nav, header, footer").Remove()
	cleaned, err := doc.Html()
	if err != nil {
		return err
	}
	bs, err := htmltomarkdown.ConvertString(cleaned, h.opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(writer, bs)
	return err
}
