package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// helpOverlayStyle frames the full key reference.
var helpOverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2).
	MarginTop(1)

// HelpModel renders the key reference in two sizes: a one-line footer and
// a framed overlay listing every binding.
type HelpModel struct {
	help   help.Model
	keymap KeyMap
}

// NewHelpModel creates a help model for keymap.
func NewHelpModel(keymap KeyMap) HelpModel {
	return HelpModel{
		help:   help.New(),
		keymap: keymap,
	}
}

// View renders the framed overlay with all bindings.
func (m HelpModel) View(width int) string {
	h := m.help
	h.ShowAll = true
	h.Width = max(0, width-8) // border + padding
	body := TitleStyle.Render("Keyboard shortcuts") + "\n\n" + h.View(m.keymap)
	return helpOverlayStyle.Render(body)
}

// ShortView renders a single line of the most common bindings.
func (m HelpModel) ShortView(width int) string {
	h := m.help
	h.ShowAll = false
	h.Width = width
	return h.View(m.keymap)
}
