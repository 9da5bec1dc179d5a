package simple

import (
	"strings"
	"testing"

	"github.com/brook-ai/brook/components/systemprompt"
)

func TestGenerate(t *testing.T) {
	g := New("You are a helpful customer support assistant for Swiss Airlines.",
		WithContextProviders(
			systemprompt.NewProvider("Current user", func() string { return "passenger 3442 587242" }),
			systemprompt.NewProvider("Empty", func() string { return "" }),
		))
	prompt := g.Generate()
	if !strings.HasPrefix(prompt, "You are a helpful customer support assistant") {
		t.Errorf("unexpected prompt prefix: %s", prompt)
	}
	if !strings.Contains(prompt, "## Current user\npassenger 3442 587242") {
		t.Errorf("missing context section: %s", prompt)
	}
	if strings.Contains(prompt, "## Empty") {
		t.Error("empty providers must be skipped")
	}
}

func TestContextProviderRegistry(t *testing.T) {
	g := New("base")
	p := systemprompt.NewProvider("Current time", func() string { return "now" })
	g.AddContextProviders(p)
	g.AddContextProviders(p) // duplicate titles are ignored
	if got := len(g.ContextProviders()); got != 1 {
		t.Fatalf("expect 1 provider, got %d", got)
	}
	if _, err := g.ContextProvider("Current time"); err != nil {
		t.Fatal(err)
	}
	g.RemoveContextProviders("Current time")
	if _, err := g.ContextProvider("Current time"); err == nil {
		t.Error("expect not found after removal")
	}
}
