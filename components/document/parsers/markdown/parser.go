package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/brook-ai/brook/components/document"
)

// Parser passes markdown and plain text content through unchanged.
type Parser struct{}

var _ document.Parser = (*Parser)(nil)

func NewParser() *Parser {
	return new(Parser)
}

func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	_, err := io.Copy(writer, reader)
	return err
}
