// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces the gallery markup: the photo-card fragments
// appended for each page of hits and the search page itself.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pdiddy/pixabay-gallery/internal/notify"
	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Cards writes one photo-card fragment per hit, in order.
func Cards(w io.Writer, hits []types.Hit) error {
	if len(hits) == 0 {
		return nil
	}
	if err := tmpl.ExecuteTemplate(w, "cards", hits); err != nil {
		return fmt.Errorf("rendering cards: %w", err)
	}
	return nil
}

// CardsHTML returns the fragments for hits as a string.
func CardsHTML(hits []types.Hit) (string, error) {
	var buf bytes.Buffer
	if err := Cards(&buf, hits); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Page holds the values substituted into the search page.
type Page struct {
	Title  string
	Notify notify.Options
}

// Index writes the search page.
func Index(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Image search"
	}
	if err := tmpl.ExecuteTemplate(w, "index", p); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	return nil
}
