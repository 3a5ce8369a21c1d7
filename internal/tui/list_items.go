package tui

import (
	"strings"

	"cms-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type contentItem struct {
	content model.Content
}

func (i contentItem) FilterValue() string { return i.content.Name }

func (i contentItem) Title() string {
	if i.content.Archived {
		return i.content.Name + " (archived)"
	}
	return i.content.Name
}

func (i contentItem) Description() string {
	if len(i.content.Categories) == 0 {
		return "no categories"
	}
	return "in " + strings.Join(i.content.Categories, ", ")
}

func newContentsList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Contents"
	// We render our own header tabs + status bar, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("content", "contents")
	// The list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("ctrl+c")
	return l
}
