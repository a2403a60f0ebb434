// Package web holds the server-rendered HTML templates, embedded so the
// binary is self-contained.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates is the parsed page set. Each page is parsed together with the
// shared layout, so pages only define their "title" and "content" blocks.
type Templates struct {
	pages map[string]*template.Template
}

func New() (*Templates, error) {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, page := range entries {
		name := strings.TrimSuffix(path.Base(page), ".html")
		if name == "layout" {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", page, err)
		}
		pages[name] = t
	}
	return &Templates{pages: pages}, nil
}

// Render executes the named page into w.
func (t *Templates) Render(w io.Writer, name string, data any) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("web: unknown template %q", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}
