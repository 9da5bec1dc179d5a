package systemprompt

// ContextProvider supplies a titled block of extra context for the
// system prompt, regenerated on every prompt build.
type ContextProvider interface {
	Title() string
	Info() string
}

// Provider is a ContextProvider built from a title and an info callback.
type Provider struct {
	title string
	info  func() string
}

var _ ContextProvider = (*Provider)(nil)

func NewProvider(title string, info func() string) *Provider {
	return &Provider{
		title: title,
		info:  info,
	}
}

func (p Provider) Title() string {
	return p.title
}

func (p Provider) Info() string {
	if p.info == nil {
		return ""
	}
	return p.info()
}
