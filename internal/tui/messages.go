// Package tui provides Bubble Tea models for the interactive TUI.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghrs/internal/domain"
	"github.com/h0rv/ghrs/internal/search"
)

// SortSelectedMsg is emitted when the user picks a sort key.
type SortSelectedMsg struct {
	Key domain.SortKey
}

// QuitMsg asks the root model to cancel any pending search and exit.
type QuitMsg struct{}

// Internal messages.
type (
	searchDoneMsg struct {
		outcome search.Outcome
	}

	viewerLoadedMsg struct {
		login string
		err   error
	}

	openSortPickerMsg struct {
		current domain.SortKey
	}

	closeSortPickerMsg struct{}

	openDetailMsg struct {
		repo domain.Repository
	}

	closeDetailMsg struct{}
)

func quit() tea.Msg { return QuitMsg{} }
