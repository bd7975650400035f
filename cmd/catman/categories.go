package main

import (
	"fmt"
	"os"
	"strings"

	"storeadmin/catman/internal/domain"
	"storeadmin/catman/internal/form"
	"storeadmin/catman/internal/manager"
	"storeadmin/catman/internal/prompt"
	"storeadmin/catman/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

func listCmd() *cobra.Command {
	var htmlFile string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := setup(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			m := app.Manager(prompt.AlwaysConfirm{})
			if err := m.Load(ctx); err != nil {
				return err
			}
			categories := m.Categories()

			if htmlFile != "" {
				return writeHTML(htmlFile, categories)
			}

			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories found. Use 'catman create' to add one.")
				return nil
			}
			return view.Table(cmd.OutOrStdout(), categories)
		},
	}

	cmd.Flags().StringVar(&htmlFile, "html", "", "write the category table as an HTML page to this file")

	return cmd
}

func createCmd() *cobra.Command {
	var fields draftFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Example: `  catman create --name Shoes --property size=8,9,10
  catman create --name Boots --parent 64f0c2 --property color=black,brown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if fields.name == "" {
				return fmt.Errorf("--name is required")
			}

			app, err := setup(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			m := app.Manager(prompt.AlwaysConfirm{})
			if err := fields.apply(cmd, m); err != nil {
				return err
			}

			if _, err := m.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Created category %q", fields.name)))
			return nil
		},
	}

	fields.register(cmd)

	return cmd
}

func updateCmd() *cobra.Command {
	var fields draftFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long: `Update a category. Unset flags keep the current values. Passing any
--property replaces the whole property list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := setup(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			m := app.Manager(prompt.AlwaysConfirm{})
			c, err := findCategory(cmd, m, args[0])
			if err != nil {
				return err
			}

			m.StartEdit(c)
			if err := fields.apply(cmd, m); err != nil {
				return err
			}

			if _, err := m.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Updated category %s", c.ID)))
			return nil
		},
	}

	fields.register(cmd)

	return cmd
}

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := setup(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			var confirmer manager.Confirmer = prompt.NewTerminalConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if force {
				confirmer = prompt.AlwaysConfirm{}
			}

			m := app.Manager(confirmer)
			c, err := findCategory(cmd, m, args[0])
			if err != nil {
				return err
			}

			deleted, err := m.Remove(ctx, c)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Deleted category %q", c.Name)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive category editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := setup(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.RunShell(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// draftFlags are the form fields settable from the command line.
type draftFlags struct {
	name       string
	parent     string
	properties []string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "category name")
	cmd.Flags().StringVar(&f.parent, "parent", "", `parent category id ("" for none)`)
	cmd.Flags().StringArrayVar(&f.properties, "property", nil, "property as name=v1,v2 (repeatable)")
}

// apply copies the flags that were set into m's draft.
func (f *draftFlags) apply(cmd *cobra.Command, m *manager.Manager) error {
	if cmd.Flags().Changed("name") {
		m.SetName(f.name)
	}
	if cmd.Flags().Changed("parent") {
		m.SetParent(f.parent)
	}
	if !cmd.Flags().Changed("property") {
		return nil
	}

	rows, err := parseProperties(f.properties)
	if err != nil {
		return err
	}
	for range m.Draft().Properties {
		if err := m.RemovePropertyRow(0); err != nil {
			return err
		}
	}
	for i, row := range rows {
		m.AddPropertyRow()
		if err := m.UpdatePropertyName(i, row.Name); err != nil {
			return err
		}
		if err := m.UpdatePropertyValues(i, row.Values); err != nil {
			return err
		}
	}
	return nil
}

func parseProperties(specs []string) ([]form.PropertyRow, error) {
	rows := make([]form.PropertyRow, 0, len(specs))
	for _, spec := range specs {
		name, values, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --property %q, expected name=v1,v2", spec)
		}
		rows = append(rows, form.PropertyRow{Name: name, Values: values})
	}
	return rows, nil
}

func findCategory(cmd *cobra.Command, m *manager.Manager, id string) (domain.Category, error) {
	if err := m.Load(cmd.Context()); err != nil {
		return domain.Category{}, err
	}
	c, ok := m.Categories().Find(id)
	if !ok {
		return domain.Category{}, fmt.Errorf("category %q not found", id)
	}
	return c, nil
}

func writeHTML(path string, categories domain.Categories) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := view.HTML(f, categories); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
