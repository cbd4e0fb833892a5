package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/ghrs/internal/domain"
	"github.com/h0rv/ghrs/internal/pagination"
	"github.com/h0rv/ghrs/internal/search"
	"github.com/h0rv/ghrs/internal/store"
	"github.com/pkg/browser"
)

// Layout constants
const (
	queryPlaceholder = "Try: react stars:>50000 language:typescript"
	linesPerRepo     = 4 // name, description, metadata, gap
	chromeLines      = 7 // header, input, status, results header, pager, help, gap
)

// openURL is swapped out in tests.
var openURL = browser.OpenURL

// SearchModel is the main search screen: query input, result list, page bar.
type SearchModel struct {
	// Dependencies
	controller *search.Controller

	// UI components
	keymap  KeyMap
	help    HelpModel
	spinner spinner.Model
	input   textinput.Model

	// List state
	selected     int
	scrollOffset int

	// View state
	width        int
	height       int
	showHelp     bool
	viewer       string
	initialQuery string
	errorToast   string
}

// NewSearchModel creates the search screen. A non-empty initialQuery is
// submitted as soon as the program starts.
func NewSearchModel(controller *search.Controller, initialQuery string) SearchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = queryPlaceholder
	ti.Prompt = "Search: "
	ti.PromptStyle = PromptStyle
	ti.CharLimit = 256
	ti.SetValue(initialQuery)
	if initialQuery == "" {
		ti.Focus()
	}

	return SearchModel{
		controller:   controller,
		keymap:       DefaultKeyMap(),
		help:         NewHelpModel(DefaultKeyMap()),
		spinner:      sp,
		input:        ti,
		initialQuery: initialQuery,
	}
}

// Init starts the spinner and submits the initial query, if any.
func (m SearchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.initialQuery != "" {
		cmds = append(cmds, runRequest(m.controller.Submit(m.initialQuery)))
	} else {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-lipgloss.Width(m.input.Prompt)-2)
		return m, nil

	case searchDoneMsg:
		if m.controller.Resolve(msg.outcome) {
			m.selected = 0
			m.scrollOffset = 0
		}
		return m, nil

	case viewerLoadedMsg:
		if msg.err == nil {
			m.viewer = msg.login
		}
		return m, nil

	case SortSelectedMsg:
		return m, runRequest(m.controller.ChangeSort(msg.Key))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	// Cursor blink and other input-internal messages
	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m SearchModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m, quit
	}

	// Help overlay
	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Quit, m.keymap.Blur) {
			m.showHelp = false
		}
		return m, nil
	}

	// Query input
	if m.input.Focused() {
		switch {
		case key.Matches(msg, m.keymap.Submit):
			m.input.Blur()
			return m, runRequest(m.controller.Submit(m.input.Value()))
		case key.Matches(msg, m.keymap.Blur):
			m.input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.controller.SetDraft(m.input.Value())
			return m, cmd
		}
	}

	m.errorToast = ""
	st := m.controller.State()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
	case key.Matches(msg, m.keymap.Focus):
		return m, m.input.Focus()
	case key.Matches(msg, m.keymap.Down):
		(&m).moveSelection(1, len(st.Result.Items))
	case key.Matches(msg, m.keymap.Up):
		(&m).moveSelection(-1, len(st.Result.Items))
	case key.Matches(msg, m.keymap.PrevPage):
		return m, runRequest(m.controller.PrevPage())
	case key.Matches(msg, m.keymap.NextPage):
		return m, runRequest(m.controller.NextPage())
	case key.Matches(msg, m.keymap.FirstPage):
		return m, runRequest(m.controller.ChangePage(1))
	case key.Matches(msg, m.keymap.LastPage):
		return m, runRequest(m.controller.ChangePage(st.TotalPages()))
	case key.Matches(msg, m.keymap.Sort):
		current := st.Sort
		return m, func() tea.Msg { return openSortPickerMsg{current: current} }
	case key.Matches(msg, m.keymap.Order):
		return m, runRequest(m.controller.ChangeOrder(st.Order.Toggle()))
	case key.Matches(msg, m.keymap.Refresh):
		return m, runRequest(m.controller.Refresh())
	case key.Matches(msg, m.keymap.Open):
		if repo, ok := m.selectedRepo(st); ok && repo.URL != "" {
			if err := openURL(repo.URL); err != nil {
				m.errorToast = fmt.Sprintf("Open failed: %v", err)
			}
		}
	case key.Matches(msg, m.keymap.Detail):
		if repo, ok := m.selectedRepo(st); ok {
			return m, func() tea.Msg { return openDetailMsg{repo: repo} }
		}
	}

	return m, nil
}

// runRequest wraps a controller request in a command that performs it off
// the event loop. A nil request yields no command.
func runRequest(req *search.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return searchDoneMsg{outcome: req.Do()}
	}
}

// View renders the search screen
func (m SearchModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	st := m.controller.State()

	var sections []string
	sections = append(sections, m.renderHeader(st, width))
	sections = append(sections, m.input.View())
	sections = append(sections, m.renderStatus(st, width))

	bodyHeight := max(linesPerRepo, height-chromeLines)

	switch {
	case m.showHelp:
		sections = append(sections, clipLines(m.help.View(width), bodyHeight))
	case !st.HasQuery():
		sections = append(sections, m.renderHints(width, bodyHeight))
	case st.Loading:
		loading := m.spinner.View() + " Searching GitHub..."
		sections = append(sections, lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, loading))
	case st.Phase == store.PhaseErrored:
		sections = append(sections, lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("No results. Press r to retry.")))
	case len(st.Result.Items) == 0:
		sections = append(sections, lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("No repositories matched your search.")))
	default:
		sections = append(sections, m.renderResultsHeader(st, width))
		sections = append(sections, m.renderResults(st, width, bodyHeight-1))
	}

	if st.HasQuery() && !st.Loading {
		w := pagination.Compute(st.Result.TotalCount, domain.PageSize, st.Page, pagination.DefaultWindowSize, domain.ResultsCap)
		if pager := renderPager(w, st.Page); pager != "" {
			sections = append(sections, pager)
		}
	}

	sections = append(sections, HelpStyle.Render(m.help.ShortView(width)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title on the left and session info on the right
func (m SearchModel) renderHeader(st store.State, width int) string {
	title := "GitHub Repository Search"

	var statusParts []string
	if m.viewer != "" {
		statusParts = append(statusParts, "@"+m.viewer)
	} else {
		statusParts = append(statusParts, "anonymous")
	}
	if st.Result.Rate.Known() {
		statusParts = append(statusParts, fmt.Sprintf("rate %d/%d", st.Result.Rate.Remaining, st.Result.Rate.Limit))
	}
	statusParts = append(statusParts, "[?]help")
	status := strings.Join(statusParts, " | ")

	padding := max(1, width-lipgloss.Width(title)-lipgloss.Width(status)-2)
	return TitleStyle.Render(title) + strings.Repeat(" ", padding) + dimStyle.Render(status)
}

// renderStatus renders sort/order indicators, or the current error
func (m SearchModel) renderStatus(st store.State, width int) string {
	left := pillStyle.Render(fmt.Sprintf("Sort: %s [s]  Order: %s [d]", st.Sort.Label(), st.Order.Label()))

	right := ""
	switch {
	case st.Err != "":
		right = ErrorStyle.Render(st.Err)
	case m.errorToast != "":
		right = ErrorStyle.Render(m.errorToast)
	}
	if right == "" {
		return left
	}

	padding := max(1, width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return left + strings.Repeat(" ", padding) + right
}

// renderResultsHeader renders the query, total and page position
func (m SearchModel) renderResultsHeader(st store.State, width int) string {
	parts := []string{
		fmt.Sprintf("Results for %q: %s", st.Committed, formatCount(st.Result.TotalCount)),
	}
	if st.Result.Capped() {
		parts = append(parts, fmt.Sprintf("(showing first %s max)", formatCount(domain.ResultsCap)))
	}
	if st.Result.Incomplete {
		parts = append(parts, warningStyle.Render("results may be incomplete"))
	}
	parts = append(parts, fmt.Sprintf("Page %d / %d", st.Page, st.TotalPages()))

	return truncateText(strings.Join(parts, "  "), width)
}

// renderResults renders the visible slice of the repository list
func (m SearchModel) renderResults(st store.State, width, height int) string {
	items := st.Result.Items
	visible := max(1, height/linesPerRepo)
	end := min(len(items), m.scrollOffset+visible)

	var lines []string
	for i := m.scrollOffset; i < end; i++ {
		lines = append(lines, m.renderRepo(items[i], i == m.selected, width)...)
	}
	return strings.Join(lines, "\n")
}

// renderRepo renders one repository as a block of lines
func (m SearchModel) renderRepo(repo domain.Repository, selected bool, width int) []string {
	inner := max(10, width-2)

	name := repoNameStyle.Render(truncateText(repo.FullName, inner/2))
	owner := dimStyle.Render(" by " + repo.Owner.Login)

	description := repo.Description
	if description == "" {
		description = "No description."
	}

	language := repo.Language
	if language == "" {
		language = "Unknown"
	}
	meta := fmt.Sprintf("%s · ★ %s · ⑂ %s · Updated %s",
		language, formatCount(repo.Stars), formatCount(repo.Forks), formatUpdated(repo.UpdatedAt))

	prefix := "  "
	descStyle := NormalItemStyle
	if selected {
		prefix = SelectedItemStyle.Render("> ")
		descStyle = SelectedItemStyle
	}

	return []string{
		prefix + name + owner,
		"  " + descStyle.Render(truncateText(description, inner)),
		"  " + dimStyle.Render(truncateText(meta, inner)),
		"",
	}
}

// renderHints renders the idle screen shown before the first search
func (m SearchModel) renderHints(width, height int) string {
	hints := []string{
		TitleStyle.Render("Search GitHub repositories"),
		"",
		"Type a query and press enter. Qualifiers work too:",
		dimStyle.Render("  language:go            repositories written in Go"),
		dimStyle.Render("  stars:>1000            more than 1,000 stars"),
		dimStyle.Render("  topic:cli in:name      name matches with a topic"),
		dimStyle.Render("  user:charmbracelet     repositories owned by a user"),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(hints, "\n"))
}

// moveSelection moves the selected row by delta within n items
func (m *SearchModel) moveSelection(delta, n int) {
	if n == 0 {
		return
	}
	m.selected = clampIndex(m.selected+delta, n)
	m.adjustScroll()
}

// adjustScroll ensures the selected row is visible
func (m *SearchModel) adjustScroll() {
	height := m.height
	if height == 0 {
		height = 24
	}
	visible := max(1, (max(linesPerRepo, height-chromeLines)-1)/linesPerRepo)

	if m.selected < m.scrollOffset {
		m.scrollOffset = m.selected
	}
	if m.selected >= m.scrollOffset+visible {
		m.scrollOffset = m.selected - visible + 1
	}
}

// selectedRepo returns the highlighted repository, if any
func (m SearchModel) selectedRepo(st store.State) (domain.Repository, bool) {
	if st.Loading || m.selected >= len(st.Result.Items) {
		return domain.Repository{}, false
	}
	return st.Result.Items[m.selected], true
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
