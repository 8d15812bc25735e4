package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

// Templates manages HTML template rendering.
type Templates struct {
	pages map[string]*template.Template
}

// NewTemplates parses the page templates from the given filesystem. Every
// page is combined with the base layout.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template)}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("finding page templates: %w", err)
	}
	for _, page := range pages {
		tmpl, err := template.ParseFS(templatesFS, "layouts/base.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		t.pages[pageName(page)] = tmpl
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

func pageName(path string) string {
	// pages/home.html -> home
	base := path[len("pages/"):]
	return base[:len(base)-len(".html")]
}
