package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pageNames lists the templates rendered inside the shared layout
var pageNames = []string{"home", "products", "product_details", "cart", "checkout", "login", "signup", "message"}

// Renderer executes page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded layout and every page
func NewRenderer() (*Renderer, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		page, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		if _, err := page.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// Render writes page name with data and status. Nothing is written when the
// template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data pageData) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the storefront's images and script under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
