package embedder

// Options holds the configuration shared by Embedder implementations.
type Options struct {
	provider Provider
	model    string
}

// Option is a function type for configuring Options.
// It follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

func WithProvider(provider Provider) Option {
	return func(o *Options) {
		o.provider = provider
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.model = model
	}
}

func (o Options) Provider() Provider {
	return o.provider
}

func (o Options) Model() string {
	return o.model
}
