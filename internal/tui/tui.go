package tui

import (
	"cms-cli/internal/mutate"
	"cms-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full-screen tree editor over db. It blocks until the user
// quits; mutations land directly in db, so a surrounding shell session sees
// them when the editor closes.
func Run(db *store.DB, log *store.EventLog, orphans mutate.OrphanPolicy) error {
	m := newAppModel(db, log, orphans)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
