package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func TestNewRendererParsesAllPages(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for name := range pageTitles {
		if !renderer.Has(name) {
			t.Fatalf("expected page %s to be parsed", name)
		}
	}
}

func TestRenderStaticPage(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec := httptest.NewRecorder()
	if err := renderer.Render(rec, http.StatusOK, PageAbout, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-template="website/about.html"`) {
		t.Fatalf("expected template marker in body, got %s", body)
	}
	if !strings.Contains(body, "<title>About | Chai</title>") {
		t.Fatalf("expected title in body, got %s", body)
	}
}

func TestRenderUnknownPage(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec := httptest.NewRecorder()
	if err := renderer.Render(rec, http.StatusOK, "missing.html", nil); err == nil {
		t.Fatalf("expected error for unknown page")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", rec.Body.String())
	}
}

func TestRenderFailureWritesNothing(t *testing.T) {
	root := fstest.MapFS{
		"base.html":   {Data: []byte(`{{define "base"}}<p>{{template "content" .Data}}</p>{{end}}`)},
		"broken.html": {Data: []byte(`{{define "content"}}{{.Missing.Field}}{{end}}`)},
	}
	renderer, err := newRenderer(root)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec := httptest.NewRecorder()
	if err := renderer.Render(rec, http.StatusOK, "broken.html", struct{}{}); err == nil {
		t.Fatalf("expected execution error")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", rec.Body.String())
	}
}
