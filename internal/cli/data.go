package cli

import (
	"fmt"
	"io"
	"sort"

	"cms-cli/internal/docs"
	"cms-cli/internal/store"
	"cms-cli/internal/tree"

	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the category tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				f := tree.Build(app.DB.Categories)
				var rows []tree.Row
				for r := range f.All() {
					rows = append(rows, r)
				}
				return writeOut(cmd, app, rows)
			}
			return tree.Render(cmd.OutOrStdout(), tree.Build(app.DB.Categories))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit pre-order rows as JSON instead of indented text")
	return cmd
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the store to the sample dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Root always seeds unless --empty; seeding again is still the
			// documented way to reset after other flags or future defaults.
			app.DB.Clear()
			seed(app)
			return writeOut(cmd, app, map[string]any{
				"categories": len(app.DB.Categories),
				"contents":   len(app.DB.Contents),
			})
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all categories and contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.DB.Clear()
			app.record("store.clear", "", nil)
			return writeOut(cmd, app, map[string]any{"cleared": true})
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the whole dataset as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, app.DB)
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Replace the dataset with JSON from stdin (the export format)",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := app.DB.LoadJSON(b); err != nil {
				return writeErr(cmd, err)
			}
			app.record("store.import", "", map[string]any{
				"categories": len(app.DB.Categories),
				"contents":   len(app.DB.Contents),
			})
			return writeOut(cmd, app, map[string]any{
				"categories": len(app.DB.Categories),
				"contents":   len(app.DB.Contents),
			})
		},
	}
}

func newEventsCmd(app *App) *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show this session's audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			evs, err := app.Events.List(entity)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, evs)
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "Only events for this category/content name")
	return cmd
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				sort.Strings(topics)
				return writeOut(cmd, app, map[string]any{"topics": topics})
			}

			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `cms docs` to list topics)", args[0]))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), docs.Render(body, 80))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no terminal rendering)")
	return cmd
}

// seed repopulates the sample dataset and records it once in the trail.
func seed(app *App) {
	store.Seed(app.DB)
	app.record("store.seed", "", map[string]any{
		"categories": len(app.DB.Categories),
		"contents":   len(app.DB.Contents),
	})
}
