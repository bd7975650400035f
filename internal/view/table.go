package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"storeadmin/catman/internal/domain"
	"storeadmin/catman/internal/form"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

// Table writes one row per category in list order. Rows are numbered from 1
// so the shell can address them by position.
func Table(w io.Writer, categories domain.Categories) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("#"),
		headerStyle.Render("Category name"),
		headerStyle.Render("Parent category"),
		headerStyle.Render("ID"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 3),
		strings.Repeat("-", 20),
		strings.Repeat("-", 20),
		strings.Repeat("-", 24))

	for i, c := range categories {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, c.Name, categories.ParentName(c), c.ID)
	}

	return tw.Flush()
}

// Draft writes the form: mode label, fields and numbered property rows.
func Draft(w io.Writer, draft form.Draft, editing *domain.Category, categories domain.Categories) error {
	label := "Create new category"
	if editing != nil {
		label = "Edit category " + editing.Name
	}
	fmt.Fprintln(w, labelStyle.Render(label))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Name:\t%s\n", orPlaceholder(draft.Name, "(empty)"))
	fmt.Fprintf(tw, "  Parent:\t%s\n", parentLabel(draft.ParentID, categories))
	if len(draft.Properties) == 0 {
		fmt.Fprintf(tw, "  Properties:\t%s\n", mutedStyle.Render("(none)"))
	} else {
		fmt.Fprintln(tw, "  Properties:\t")
		for i, row := range draft.Properties {
			fmt.Fprintf(tw, "    %d.\t%s\t%s\n", i+1,
				orPlaceholder(row.Name, "(property name)"),
				orPlaceholder(row.Values, "(values, comma separated)"))
		}
	}
	return tw.Flush()
}

func parentLabel(id string, categories domain.Categories) string {
	if id == "" {
		return mutedStyle.Render("No parent category")
	}
	if parent, ok := categories.Find(id); ok {
		return parent.Name
	}
	return id
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return mutedStyle.Render(placeholder)
	}
	return s
}
