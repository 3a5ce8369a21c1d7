package cli

import (
	"cms-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newContentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contents",
		Short: "Content commands",
	}
	cmd.AddCommand(newContentsAddCmd(app))
	cmd.AddCommand(newContentsListCmd(app))
	cmd.AddCommand(newContentsGetCmd(app))
	cmd.AddCommand(newContentsSetCmd(app))
	cmd.AddCommand(newContentsDeleteCmd(app))
	return cmd
}

func newContentsAddCmd(app *App) *cobra.Command {
	var name string
	var categories []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a content record",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := mutate.AddContent(app.DB, name, categories)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.record("content.add", c.Name, c)
			return writeOut(cmd, app, c)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Content name")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Category the content belongs to (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newContentsListCmd(app *App) *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content records",
		RunE: func(cmd *cobra.Command, args []string) error {
			all := app.DB.SortedContents()
			if !cmd.Flags().Changed("archived") {
				return writeOut(cmd, app, all)
			}
			filtered := all[:0]
			for _, c := range all {
				if c.Archived == archived {
					filtered = append(filtered, c)
				}
			}
			return writeOut(cmd, app, filtered)
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "Only records with the given archived state")
	return cmd
}

func newContentsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show one content record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := app.DB.FindContent(args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "content", Name: args[0]})
			}
			return writeOut(cmd, app, *c)
		},
	}
}

func newContentsSetCmd(app *App) *cobra.Command {
	var field, value string

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Update one field (categories | archived)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := mutate.UpdateContentField(app.DB, args[0], field, value)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.record("content.set", c.Name, map[string]any{"field": field, "value": value})
			return writeOut(cmd, app, c)
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Field name (categories | archived)")
	cmd.Flags().StringVar(&value, "value", "", "New value (comma list for categories, bool for archived)")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newContentsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a content record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mutate.DeleteContent(app.DB, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			app.record("content.delete", args[0], nil)
			return writeOut(cmd, app, map[string]any{"deleted": args[0]})
		},
	}
}
