package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"storeadmin/catman/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("categories.html").
		Funcs(template.FuncMap{"join": func(values []string) string { return strings.Join(values, ", ") }}).
		ParseFS(templateFS, "templates/categories.html"),
)

type htmlRow struct {
	ID         string
	Name       string
	Parent     string
	Properties []domain.Property
}

// HTML renders the category table as a standalone page.
func HTML(w io.Writer, categories domain.Categories) error {
	rows := make([]htmlRow, len(categories))
	for i, c := range categories {
		rows[i] = htmlRow{
			ID:         c.ID,
			Name:       c.Name,
			Parent:     categories.ParentName(c),
			Properties: c.Properties,
		}
	}

	if err := pageTemplate.Execute(w, map[string]any{"Rows": rows}); err != nil {
		return fmt.Errorf("failed to render categories page: %w", err)
	}
	return nil
}

// Row is a category row read back from a rendered page.
type Row struct {
	ID     string
	Name   string
	Parent string
}

// Rows parses the body rows of a page produced by HTML.
func Rows(page io.Reader) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	rows := make([]Row, 0)
	doc.Find("table.basic tbody tr").Each(func(i int, s *goquery.Selection) {
		cells := s.Find("td")
		rows = append(rows, Row{
			ID:     s.AttrOr("data-id", ""),
			Name:   strings.TrimSpace(cells.Eq(0).Text()),
			Parent: strings.TrimSpace(cells.Eq(1).Text()),
		})
	})
	return rows, nil
}
