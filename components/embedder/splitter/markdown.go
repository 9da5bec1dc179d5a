package splitter

import (
	"bufio"
	"bytes"

	"github.com/brook-ai/brook/components/embedder"
)

// Markdown chunks a markdown document along second-level headings, so each
// "## ..." section stays intact. Policy manuals and FAQ documents keep one
// topic per section, which makes whole sections the natural retrieval unit.
type Markdown struct {
	Options
}

var _ embedder.Chunker = (*Markdown)(nil)

func NewMarkdown(opts ...Option) *Markdown {
	ret := new(Markdown)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	sc := bufio.NewScanner(ret.Buffer())
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanSections)
	ret.scanner = sc
	if ret.tokenCounter == nil {
		ret.tokenCounter = new(WordsTokenCounter)
	}
	if ret.chunkSize == 0 {
		// every section becomes its own chunk
		ret.chunkSize = 1
	}
	return ret
}

// scanSections tokenizes markdown into sections beginning at "\n## ".
// The heading line stays with the section it opens.
func scanSections(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.Index(data[1:], []byte("\n## ")); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
