package splitter

import (
	"strings"
	"testing"
)

func TestMarkdownSections(t *testing.T) {
	input := "Welcome to the policy manual.\n\n## Refunds\nTickets are refundable within 24 hours.\n\n## Changes\nChange fees apply to restricted fares."
	sp := NewMarkdown()
	chunks := sp.SplitText(input)
	if len(chunks) != 3 {
		t.Fatalf("want 3 sections, got %d: %q", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], "Welcome") {
		t.Errorf("unexpected preamble section: %q", chunks[0])
	}
	if !strings.HasPrefix(chunks[1], "\n## Refunds") || !strings.Contains(chunks[1], "refundable") {
		t.Errorf("unexpected refunds section: %q", chunks[1])
	}
	if !strings.HasPrefix(chunks[2], "\n## Changes") {
		t.Errorf("unexpected changes section: %q", chunks[2])
	}
}

func TestMarkdownNoHeadings(t *testing.T) {
	sp := NewMarkdown()
	chunks := sp.SplitText("just a single paragraph with no headings")
	if len(chunks) != 1 {
		t.Fatalf("want 1 section, got %d", len(chunks))
	}
}
