package document_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brook-ai/brook/components/document"
	"github.com/brook-ai/brook/components/document/parsers"
)

func TestHttpReadAll(t *testing.T) {
	const body = "# Swiss Airlines FAQ\n\n## Refunds\nTickets are refundable within 24 hours."
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	doc, err := document.NewHttp(document.WithHttpURL(srv.URL), document.WithHttpClient(srv.Client()))
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.ReadAll(); err != nil {
		t.Fatal(err)
	}
	if doc.ReadStatus() != document.ReadCompleted {
		t.Errorf("unexpected read status: %d", doc.ReadStatus())
	}
	// second ReadAll is a no-op
	if err := doc.ReadAll(); err != nil {
		t.Fatal(err)
	}
	txt, err := doc.Parse(context.Background(), parsers.ForMimeType(doc.MimeType()))
	if err != nil {
		t.Fatal(err)
	}
	if txt != body {
		t.Errorf("unexpected content: %q", txt)
	}
}

func TestHttpParseHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><script>alert(1)</script></head><body><h1>Policy</h1><p>Change fees apply.</p></body></html>"))
	}))
	defer srv.Close()

	doc, err := document.NewHttp(document.WithHttpURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.ReadAll(); err != nil {
		t.Fatal(err)
	}
	txt, err := doc.Parse(context.Background(), parsers.ForMimeType(doc.MimeType()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(txt, "Policy") || !strings.Contains(txt, "Change fees apply.") {
		t.Errorf("unexpected markdown: %q", txt)
	}
	if strings.Contains(txt, "alert(1)") {
		t.Errorf("script content must be stripped: %q", txt)
	}
}
