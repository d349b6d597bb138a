// Package views renders the comprobantes page and the contextual panel
// fragment from the embedded templates.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"comprobantes/internal/panel"
	"comprobantes/templates"
)

const (
	pageTemplate  = "comprobantes.html"
	panelTemplate = "panel"
)

// PageData feeds the comprobantes page.
type PageData struct {
	Title  string
	Rows   []panel.Row
	Count  int
	Voided int
	WSPath string
}

// Views holds the parsed templates.
type Views struct {
	templates *template.Template
}

// New parses the embedded templates. A missing page or panel template is a
// deployment error and panics.
func New() *Views {
	t := template.Must(template.ParseFS(templates.FS, "*.html"))
	for _, name := range []string{pageTemplate, panelTemplate} {
		if t.Lookup(name) == nil {
			panic(fmt.Sprintf("views: template %q not found", name))
		}
	}
	return &Views{templates: t}
}

// NewPageData builds the page model for rows.
func NewPageData(title, wsPath string, rows []panel.Row) PageData {
	voided := 0
	for _, r := range rows {
		if r.Voided {
			voided++
		}
	}
	return PageData{
		Title:  title,
		Rows:   rows,
		Count:  len(rows),
		Voided: voided,
		WSPath: wsPath,
	}
}

// Page writes the full comprobantes page.
func (v *Views) Page(w io.Writer, data PageData) error {
	return v.templates.ExecuteTemplate(w, pageTemplate, data)
}

// Panel renders the inner HTML of the contextual panel.
func (v *Views) Panel(content panel.Content) (string, error) {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, panelTemplate, content); err != nil {
		return "", fmt.Errorf("render panel: %w", err)
	}
	return buf.String(), nil
}
