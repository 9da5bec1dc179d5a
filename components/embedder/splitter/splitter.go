package splitter

import (
	"bufio"
	"bytes"

	"github.com/brook-ai/brook/components/embedder"
)

// Scanner is the subset of bufio.Scanner the splitters rely on, satisfied by
// the uax29 segment scanners as well.
type Scanner interface {
	Bytes() []byte
	Text() string
	Scan() bool
	Err() error
}

// chunk tracks the parts accumulated for one output section.
type chunk struct {
	buffer *bytes.Buffer
	// tokenSize is the number of tokens in the buffer
	tokenSize int
	// start is the index of the first part in this chunk
	start int
	// end is the index of the last part in this chunk (exclusive)
	end int
}

// Options is the shared chunking machinery behind the concrete splitters.
// It consumes parts from a Scanner and groups them into chunks of at most
// chunkSize tokens, carrying overlap tokens over between adjacent chunks.
type Options struct {
	chunkSize    int
	overlap      int
	buf          *bytes.Buffer
	scanner      Scanner
	tokenCounter TokenCounter
	delimiter    []byte
	out          [][]byte
}

var _ embedder.Chunker = (*Options)(nil)

// Option configures the chunking Options.
type Option func(*Options)

func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.chunkSize = size
	}
}

func WithOverlap(overlap int) Option {
	return func(o *Options) {
		o.overlap = overlap
	}
}

func WithBuffer(buf *bytes.Buffer) Option {
	return func(o *Options) {
		o.buf = buf
	}
}

func WithTokenCounter(counter TokenCounter) Option {
	return func(o *Options) {
		o.tokenCounter = counter
	}
}

func (o *Options) Buffer() *bytes.Buffer {
	if o.buf == nil {
		o.buf = new(bytes.Buffer)
	}
	return o.buf
}

func (o *Options) Scanner() Scanner {
	if o.scanner == nil {
		o.scanner = bufio.NewScanner(o.Buffer())
	}
	return o.scanner
}

func (o *Options) Chunks() []string {
	ret := make([]string, len(o.out))
	for idx, v := range o.out {
		ret[idx] = string(v)
	}
	return ret
}

func (o *Options) Size() int {
	return len(o.out)
}

func (o *Options) emit(c *chunk) {
	bs := c.buffer.Bytes()
	if len(o.delimiter) > 0 {
		bs = bytes.TrimSuffix(bs, o.delimiter)
	}
	dist := make([]byte, len(bs))
	copy(dist, bs)
	o.out = append(o.out, dist)
}

// Scan drains the scanner and groups its parts into chunks.
func (o *Options) Scan() error {
	var parts [][]byte
	current := chunk{buffer: new(bytes.Buffer)}
	tokens := 0
	for i := 0; o.Scanner().Scan(); i++ {
		bs := o.scanner.Bytes()
		part := make([]byte, len(bs))
		copy(part, bs)
		parts = append(parts, part)
		partTokens := o.tokenCounter.Count(part)
		if tokens+partTokens > o.chunkSize && tokens > 0 {
			o.emit(&current)
			overlapStart := max(current.start, current.end-o.overlapParts(parts, current.end))
			current.buffer.Reset()
			current.buffer.Write(bytes.Join(parts[overlapStart:i+1], o.delimiter))
			current.buffer.Write(o.delimiter)
			current.start = overlapStart
			current.end = i + 1
			tokens = 0
			for j := overlapStart; j <= i; j++ {
				tokens += o.tokenCounter.Count(parts[j])
			}
		} else {
			if tokens == 0 {
				current.start = i
			}
			current.buffer.Write(part)
			current.buffer.Write(o.delimiter)
			current.end = i + 1
			tokens = o.tokenCounter.Count(current.buffer.Bytes())
		}
		current.tokenSize = tokens
	}
	if current.tokenSize > 0 {
		o.emit(&current)
	}
	return o.scanner.Err()
}

func (o *Options) TokenCount(txt string) int {
	return o.tokenCounter.Count([]byte(txt))
}

func (o *Options) SplitText(txt string) []string {
	o.Buffer().Reset()
	o.buf.WriteString(txt)
	o.out = nil
	if err := o.Scan(); err != nil {
		return nil
	}
	return o.Chunks()
}

// overlapParts calculates how many parts from the end of the previous chunk
// should carry over to reach the configured token overlap.
func (o *Options) overlapParts(parts [][]byte, endPart int) int {
	overlapTokens := 0
	n := 0
	for i := endPart - 1; i >= 0 && overlapTokens < o.overlap; i-- {
		overlapTokens += o.tokenCounter.Count(parts[i])
		n++
	}
	return n
}
