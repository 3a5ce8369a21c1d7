package cli

import (
	"fmt"
	"os"
	"strings"

	"cms-cli/internal/format"
	"cms-cli/internal/mutate"
	"cms-cli/internal/store"
	"cms-cli/internal/tui"

	"github.com/spf13/cobra"
)

// App carries the per-process session: the in-memory dataset, the audit
// trail, and output options. Every command and both interactive surfaces
// (shell, TUI) operate on the same App.
type App struct {
	DB     *store.DB
	Events *store.EventLog

	Pretty  bool
	Empty   bool
	Orphans string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "cms",
		Short:        "In-memory category/content tree manager (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the full-screen tree editor
  cms

  # Start the interactive command shell
  cms shell

  # Scriptable commands (JSON output)
  cms categories add --name Events --parent Home
  cms tree`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				policy, err := app.orphanPolicy()
				if err != nil {
					return err
				}
				return tui.Run(app.DB, app.Events, policy)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.DB = store.New()
		if !app.Empty {
			store.Seed(app.DB)
		}
		log, err := store.OpenEventLog()
		if err != nil {
			return err
		}
		app.Events = log
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = app.Events.Close()
	}

	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Empty, "empty", false, "Start with an empty store instead of the sample dataset")
	cmd.PersistentFlags().StringVar(&app.Orphans, "orphans", envOr("CMS_ORPHANS", string(mutate.DefaultOrphanPolicy())),
		"Policy for child categories when a parent is deleted (detach|promote|forbid)")

	cmd.AddCommand(newShellCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newContentsCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) orphanPolicy() (mutate.OrphanPolicy, error) {
	return mutate.ParseOrphanPolicy(app.Orphans)
}

// record appends to the audit trail. Best-effort: the mutation already
// happened and auditing must not undo it.
func (app *App) record(evType, entity string, payload any) {
	_ = app.Events.Append(evType, entity, payload)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), format.Envelope(v), app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
