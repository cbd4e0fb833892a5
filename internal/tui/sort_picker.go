package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/ghrs/internal/domain"
)

// sortItem wraps a domain.SortKey for use in bubbles/list.
type sortItem struct {
	key     domain.SortKey
	current bool
}

func (i sortItem) FilterValue() string {
	return i.key.Label()
}

func (i sortItem) Title() string {
	return i.key.Label()
}

func (i sortItem) Description() string {
	switch i.key {
	case domain.SortStars:
		return "Most or fewest stars"
	case domain.SortForks:
		return "Most or fewest forks"
	case domain.SortUpdated:
		return "Recently or least recently updated"
	default:
		return "GitHub's relevance ranking"
	}
}

// sortDelegate is a custom item delegate for sort items.
type sortDelegate struct{}

func (d sortDelegate) Height() int                             { return 2 }
func (d sortDelegate) Spacing() int                            { return 1 }
func (d sortDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d sortDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(sortItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())
	if i.current {
		str += " (current)"
	}
	desc := i.Description()

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
		fmt.Fprint(w, "\n  "+NormalItemStyle.Render(desc))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+str))
		fmt.Fprint(w, "\n  "+lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(desc))
	}
}

// SortPickerModel lets the user choose how results are ranked.
type SortPickerModel struct {
	list list.Model
}

// NewSortPickerModel creates a picker with current preselected.
func NewSortPickerModel(current domain.SortKey) SortPickerModel {
	keys := domain.SortKeys()
	items := make([]list.Item, len(keys))
	selected := 0
	for i, k := range keys {
		items[i] = sortItem{key: k, current: k == current}
		if k == current {
			selected = i
		}
	}

	l := list.New(items, sortDelegate{}, 80, 20)
	l.Title = "Sort Results By"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle
	l.Select(selected)

	return SortPickerModel{
		list: l,
	}
}

// Init initializes the model.
func (m SortPickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m SortPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg {
				return closeSortPickerMsg{}
			}
		case "enter":
			if item, ok := m.list.SelectedItem().(sortItem); ok {
				return m, func() tea.Msg {
					return SortSelectedMsg{Key: item.key}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m SortPickerModel) View() string {
	return m.list.View()
}
