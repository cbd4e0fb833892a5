package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/ghrs/internal/search"
)

// AppScreen represents the different screens in the application.
type AppScreen int

const (
	ScreenSearch AppScreen = iota
	ScreenSortPicker
	ScreenDetail
)

// ViewerSource looks up the signed-in user.
type ViewerSource interface {
	Authenticated() bool
	Viewer(ctx context.Context) (string, error)
}

// AppModel is the root Bubble Tea model that manages screen transitions.
// The search screen is kept alive underneath the picker and detail
// screens so in-flight searches still resolve into it.
type AppModel struct {
	// Dependencies
	controller *search.Controller
	viewer     ViewerSource
	ctx        context.Context
	logger     *slog.Logger

	// Current state
	currentScreen AppScreen
	currentModel  tea.Model

	// Cached search model preserved across screen transitions
	searchModel SearchModel
}

// NewAppModel creates the root model. viewer may be nil; a nil logger
// discards logs.
func NewAppModel(ctx context.Context, controller *search.Controller, viewer ViewerSource, logger *slog.Logger, initialQuery string) AppModel {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return AppModel{
		controller:    controller,
		viewer:        viewer,
		ctx:           ctx,
		logger:        logger,
		currentScreen: ScreenSearch,
		searchModel:   NewSearchModel(controller, initialQuery),
	}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.searchModel.Init(), m.fetchViewer())
}

// Screen reports which screen is showing.
func (m AppModel) Screen() AppScreen {
	return m.currentScreen
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			m.controller.Cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		cmds := []tea.Cmd{m.updateSearch(msg)}
		if m.currentModel != nil {
			var cmd tea.Cmd
			m.currentModel, cmd = m.currentModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case QuitMsg:
		m.controller.Cancel()
		return m, tea.Quit

	// Background results always belong to the search screen
	case searchDoneMsg, viewerLoadedMsg, spinner.TickMsg:
		return m, m.updateSearch(msg)

	case openSortPickerMsg:
		m.currentScreen = ScreenSortPicker
		picker := NewSortPickerModel(msg.current)
		m.currentModel = picker
		return m, picker.Init()

	case SortSelectedMsg:
		m.currentScreen = ScreenSearch
		m.currentModel = nil
		return m, m.updateSearch(msg)

	case closeSortPickerMsg:
		m.currentScreen = ScreenSearch
		m.currentModel = nil
		return m, nil

	case openDetailMsg:
		m.currentScreen = ScreenDetail
		detail := NewDetailModel(msg.repo)
		m.currentModel = detail
		return m, detail.Init()

	case closeDetailMsg:
		m.currentScreen = ScreenSearch
		m.currentModel = nil
		// Request window size to ensure proper rendering
		return m, tea.WindowSize()
	}

	// Delegate to current screen's model
	if m.currentModel != nil {
		var cmd tea.Cmd
		m.currentModel, cmd = m.currentModel.Update(msg)
		return m, cmd
	}

	return m, m.updateSearch(msg)
}

func (m *AppModel) updateSearch(msg tea.Msg) tea.Cmd {
	updated, cmd := m.searchModel.Update(msg)
	if sm, ok := updated.(SearchModel); ok {
		m.searchModel = sm
	}
	return cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.currentModel != nil {
		return m.currentModel.View()
	}
	return m.searchModel.View()
}

// fetchViewer looks up the signed-in login for the header. Failures are
// logged and otherwise ignored.
func (m AppModel) fetchViewer() tea.Cmd {
	if m.viewer == nil || !m.viewer.Authenticated() {
		return nil
	}
	return func() tea.Msg {
		login, err := m.viewer.Viewer(m.ctx)
		if err != nil {
			m.logger.Warn("viewer lookup failed", "err", err)
		}
		return viewerLoadedMsg{login: login, err: err}
	}
}
