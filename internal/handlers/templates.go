package handlers

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// BasePage carries the fields every rendered page shares. Page data
// structs embed it so the layout blocks can rely on these fields.
type BasePage struct {
	Title   string
	Flash   string
	ShowNav bool
}

// parseTemplate parses a page template together with the shared layout
// blocks. The returned template is executed by the page's file name.
func parseTemplate(name string) (*template.Template, error) {
	tmpl, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}
