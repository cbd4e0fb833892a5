package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/ghrs/internal/domain"
	"github.com/muesli/reflow/wordwrap"
)

// Layout constants
const (
	leftPanelRatio = 0.35 // Left panel takes 35% of width
	minLeftWidth   = 30
	maxLeftWidth   = 50
	headerHeight   = 1
	footerHeight   = 1
	borderSize     = 2 // Top + bottom border
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	focusedPanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205"))

	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))
)

// DetailModel shows one repository with a split-screen layout
type DetailModel struct {
	repo domain.Repository

	viewport viewport.Model

	errorMsg string

	// View dimensions
	width  int
	height int
}

// NewDetailModel creates a new detail view model
func NewDetailModel(repo domain.Repository) DetailModel {
	vp := viewport.New(40, 10) // Will be resized in WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		repo:     repo,
		viewport: vp,
	}
	m.updateViewportContent()
	return m
}

// Init initializes the detail model
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// resizeComponents calculates and sets component dimensions
func (m *DetailModel) resizeComponents() {
	leftWidth := m.leftWidth(m.width)
	rightWidth := max(30, m.width-leftWidth-3)
	contentHeight := max(10, m.height-headerHeight-footerHeight-borderSize)

	m.viewport.Width = rightWidth - borderSize - 2
	m.viewport.Height = contentHeight - borderSize - 1 // -1 for panel title
	m.updateViewportContent()
}

// handleKeyPress processes keyboard input
func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMsg = ""

	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return closeDetailMsg{} }
	case "o":
		m.open(m.repo.URL)
	case "p":
		m.open(m.repo.Owner.ProfileURL)
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "ctrl+d":
		m.viewport.HalfViewDown()
	case "ctrl+u":
		m.viewport.HalfViewUp()
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}

	return m, nil
}

func (m *DetailModel) open(url string) {
	if url == "" {
		m.errorMsg = "No link available"
		return
	}
	if err := openURL(url); err != nil {
		m.errorMsg = fmt.Sprintf("Open failed: %v", err)
	}
}

// View renders the split-screen detail view
func (m DetailModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	leftWidth := m.leftWidth(width)
	rightWidth := width - leftWidth - 1 // 1 char gap
	contentHeight := max(10, height-headerHeight-footerHeight)

	header := dimStyle.Render("[q]back [o]open repo [p]open owner [j/k]scroll [g/G]top/bottom")

	leftPanel := panelBorderStyle.
		Width(leftWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(m.renderLeftPanel(leftWidth - borderSize))

	rightPanel := focusedPanelBorderStyle.
		Width(rightWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(m.renderRightPanel())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, " ", rightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, header, panels, m.renderFooter(width))
}

func (m DetailModel) leftWidth(width int) int {
	w := int(float64(width) * leftPanelRatio)
	return min(maxLeftWidth, max(minLeftWidth, w))
}

// renderFooter renders the bottom status bar
func (m DetailModel) renderFooter(width int) string {
	var left, right string

	if m.errorMsg != "" {
		left = ErrorStyle.Render("✗ " + m.errorMsg)
	} else {
		left = dimStyle.Render(m.repo.URL)
	}

	if m.viewport.TotalLineCount() > m.viewport.Height {
		switch {
		case m.viewport.AtTop():
			right = "TOP"
		case m.viewport.AtBottom():
			right = "END"
		default:
			right = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
		}
	}

	padding := max(1, width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return left + strings.Repeat(" ", padding) + dimStyle.Render(right)
}

// renderLeftPanel renders the repository metadata panel
func (m DetailModel) renderLeftPanel(width int) string {
	var b strings.Builder

	b.WriteString(detailLabelStyle.Render("Repository"))
	b.WriteString("\n\n")

	b.WriteString(detailTitleStyle.Render(wordwrap.String(m.repo.FullName, max(10, width-2))))
	b.WriteString("\n\n")

	language := m.repo.Language
	if language == "" {
		language = "Unknown"
	}

	fields := []struct{ label, value string }{
		{"Owner", m.repo.Owner.Login},
		{"Language", language},
		{"Stars", formatCount(m.repo.Stars)},
		{"Forks", formatCount(m.repo.Forks)},
		{"Open issues", formatCount(m.repo.OpenIssues)},
		{"Updated", formatUpdated(m.repo.UpdatedAt)},
	}
	for _, f := range fields {
		b.WriteString(detailLabelStyle.Render(f.label + ": "))
		b.WriteString(detailValueStyle.Render(truncateText(f.value, width-len(f.label)-3)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderRightPanel renders the description panel with viewport
func (m DetailModel) renderRightPanel() string {
	scrollHint := ""
	if m.viewport.TotalLineCount() > m.viewport.Height {
		switch {
		case m.viewport.AtTop():
			scrollHint = " ↓"
		case m.viewport.AtBottom():
			scrollHint = " ↑"
		default:
			scrollHint = " ↕"
		}
	}

	return detailLabelStyle.Render("Description") +
		scrollIndicatorStyle.Render(scrollHint) + "\n" +
		m.viewport.View()
}

// updateViewportContent wraps the description for the viewport width
func (m *DetailModel) updateViewportContent() {
	description := m.repo.Description
	if description == "" {
		m.viewport.SetContent(dimStyle.Render("No description."))
		return
	}
	wrapWidth := max(20, m.viewport.Width-2)
	m.viewport.SetContent(detailValueStyle.Render(wordwrap.String(description, wrapWidth)))
}
