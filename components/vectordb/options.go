package vectordb

type Options struct {
	EngineType EngineType
	// TopK is the default maximum number of results when a search does not
	// specify one
	TopK int
	// Dimension is the vector dimension, matching the embedding model
	Dimension int
}

// Option is a function type for configuring Engine instances.
// It follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

func WithEngine(engine EngineType) Option {
	return func(c *Options) {
		c.EngineType = engine
	}
}

func WithTopK(k int) Option {
	return func(c *Options) {
		c.TopK = k
	}
}

// WithDimension sets the dimension of vectors to be stored.
// This must match the dimension of the embedding model, e.g. 1536 for
// text-embedding-3-small.
func WithDimension(dimension int) Option {
	return func(c *Options) {
		c.Dimension = dimension
	}
}
