// Package web renders the server side HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed templates
var templatesFS embed.FS

const (
	baseTemplate = "base.html"
	layoutName   = "base"
)

// Page names, relative to the templates directory.
const (
	PageHome        = "website/index.html"
	PageAbout       = "website/about.html"
	PageContact     = "website/contact.html"
	PageAllChai     = "chai/all_chai.html"
	PageChaiDetail  = "chai/chai_detail.html"
	PageChaiStores  = "chai/chai_stores.html"
	PageNotFound    = "errors/404.html"
	PageServerError = "errors/500.html"
)

var pageTitles = map[string]string{
	PageHome:        "Home",
	PageAbout:       "About",
	PageContact:     "Contact",
	PageAllChai:     "All chai",
	PageChaiDetail:  "Chai",
	PageChaiStores:  "Chai stores",
	PageNotFound:    "Not found",
	PageServerError: "Error",
}

type layoutData struct {
	Name  string
	Title string
	Data  any
}

type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the base layout.
func NewRenderer() (*Renderer, error) {
	root, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	return newRenderer(root)
}

func newRenderer(root fs.FS) (*Renderer, error) {
	base, err := template.ParseFS(root, baseTemplate)
	if err != nil {
		return nil, fmt.Errorf("web: parse %s: %w", baseTemplate, err)
	}

	pages := make(map[string]*template.Template)
	err = fs.WalkDir(root, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || name == baseTemplate || path.Ext(name) != ".html" {
			return nil
		}

		page, err := base.Clone()
		if err != nil {
			return err
		}
		if _, err := page.ParseFS(root, name); err != nil {
			return fmt.Errorf("web: parse %s: %w", name, err)
		}
		pages[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{pages: pages}, nil
}

// Has reports whether a page with this name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render buffers the page; nothing is written to w when execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("web: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, layoutName, layoutData{Name: name, Title: title(name), Data: data}); err != nil {
		return fmt.Errorf("web: render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func title(name string) string {
	if t, ok := pageTitles[name]; ok {
		return t
	}
	return strings.TrimSuffix(path.Base(name), path.Ext(name))
}
