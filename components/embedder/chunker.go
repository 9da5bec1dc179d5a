package embedder

// Chunker splits a document into sections suitable for embedding.
type Chunker interface {
	SplitText(string) []string
	TokenCount(txt string) int
}
