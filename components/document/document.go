package document

import (
	"bytes"
	"context"
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

var ErrReading = errors.New("document is reading")

type ReadStatus = int32

const (
	Unread ReadStatus = iota
	Reading
	ReadCompleted
)

// ReadableDocument is a document whose content can be fetched from its source.
type ReadableDocument interface {
	ReadAll() error
}

type ClosableDocument interface {
	Close() error
}

// Document is a document container with metadata.
type Document struct {
	buffer *bytes.Buffer
	meta   map[string]string
}

func New(meta map[string]string) Document {
	return Document{
		buffer: new(bytes.Buffer),
		meta:   meta,
	}
}

func (d *Document) Reader() *bytes.Reader {
	return bytes.NewReader(d.buffer.Bytes())
}

func (d *Document) Buffer() *bytes.Buffer {
	if d.buffer == nil {
		d.buffer = new(bytes.Buffer)
	}
	return d.buffer
}

func (d *Document) Meta() map[string]string {
	return d.meta
}

// MimeType sniffs the content type from the buffered bytes.
func (d *Document) MimeType() *mimetype.MIME {
	return mimetype.Detect(d.Buffer().Bytes())
}

// Parse runs the parser over the buffered content and returns the extracted
// text.
func (d *Document) Parse(ctx context.Context, p Parser) (string, error) {
	out := new(bytes.Buffer)
	if err := p.Parse(ctx, d.Reader(), out); err != nil {
		return "", err
	}
	return out.String(), nil
}
