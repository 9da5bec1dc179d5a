package document

import (
	"bytes"
	"context"
	"io"
)

// Parser extracts text content from raw document bytes.
type Parser interface {
	Parse(context.Context, *bytes.Reader, io.Writer) error
}
