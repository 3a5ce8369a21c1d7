package cli

import (
	"cms-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Category commands",
	}
	cmd.AddCommand(newCategoriesAddCmd(app))
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesGetCmd(app))
	cmd.AddCommand(newCategoriesSetParentCmd(app))
	cmd.AddCommand(newCategoriesRenameCmd(app))
	cmd.AddCommand(newCategoriesReorderCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	return cmd
}

func newCategoriesAddCmd(app *App) *cobra.Command {
	var name, parent string
	var order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			var parentPtr *string
			if cmd.Flags().Changed("parent") {
				parentPtr = &parent
			}
			var orderPtr *int
			if cmd.Flags().Changed("order") {
				orderPtr = &order
			}
			c, err := mutate.AddCategory(app.DB, name, parentPtr, orderPtr)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.record("category.add", c.Name, c)
			return writeOut(cmd, app, c)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent category name")
	cmd.Flags().IntVar(&order, "order", 0, "Sort position among siblings (default: after the last sibling)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, app.DB.SortedCategories())
		},
	}
}

func newCategoriesGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := app.DB.FindCategory(args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "category", Name: args[0]})
			}
			return writeOut(cmd, app, *c)
		},
	}
}

func newCategoriesSetParentCmd(app *App) *cobra.Command {
	var parent string
	var root bool

	cmd := &cobra.Command{
		Use:   "set-parent <name>",
		Short: "Re-parent a category (rejects cycles)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parentPtr *string
			if !root {
				parentPtr = &parent
			}
			c, err := mutate.SetCategoryParent(app.DB, args[0], parentPtr)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.record("category.set-parent", c.Name, c)
			return writeOut(cmd, app, c)
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "New parent category name")
	cmd.Flags().BoolVar(&root, "root", false, "Make the category a root")
	cmd.MarkFlagsOneRequired("parent", "root")
	cmd.MarkFlagsMutuallyExclusive("parent", "root")
	return cmd
}

func newCategoriesRenameCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename a category (children follow)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := mutate.RenameCategory(app.DB, args[0], to)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.record("category.rename", c.Name, map[string]any{"from": args[0], "to": c.Name})
			return writeOut(cmd, app, c)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "New name")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newCategoriesReorderCmd(app *App) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "reorder <name>",
		Short: "Set a category's sort position among its siblings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := mutate.SetCategoryOrder(app.DB, args[0], order)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.record("category.reorder", c.Name, c)
			return writeOut(cmd, app, c)
		},
	}

	cmd.Flags().IntVar(&order, "order", 0, "New sort position")
	_ = cmd.MarkFlagRequired("order")
	return cmd
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category (children follow the orphan policy)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := app.orphanPolicy()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.DeleteCategory(app.DB, args[0], policy); err != nil {
				return writeErr(cmd, err)
			}
			app.record("category.delete", args[0], map[string]any{"orphans": string(policy)})
			return writeOut(cmd, app, map[string]any{"deleted": args[0]})
		},
	}
}
