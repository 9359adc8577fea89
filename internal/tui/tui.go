// Package tui owns the root bubbletea model: page routing, the status bar,
// window sizing, and global key handling.
package tui

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/app"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core/layout"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core/status"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/page"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/page/dashboard"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

var lastMouseEvent time.Time

func MouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		// trackpad is sending too many requests
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// appModel represents the main application model that manages pages, the
// status bar, and window state.
type appModel struct {
	wWidth, wHeight int // Window dimensions
	width, height   int
	keyMap          KeyMap

	currentPage  page.PageID
	previousPage page.PageID
	pages        map[page.PageID]util.Model
	loadedPages  map[page.PageID]bool

	// Status
	status          status.StatusCmp
	showingFullHelp bool
}

// Init initializes the application model and returns initial commands.
func (a appModel) Init() tea.Cmd {
	item, ok := a.pages[a.currentPage]
	if !ok {
		return nil
	}

	var cmds []tea.Cmd
	cmd := item.Init()
	cmds = append(cmds, cmd)
	a.loadedPages[a.currentPage] = true

	cmd = a.status.Init()
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the application state.
func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.wWidth, a.wHeight = msg.Width, msg.Height
		return a, a.handleWindowResize(msg.Width, msg.Height)

	// Page change messages
	case page.PageChangeMsg:
		return a, a.moveToPage(msg.ID)

	// Status Messages
	case util.InfoMsg, util.ClearStatusMsg:
		s, statusCmd := a.status.Update(msg)
		a.status = s.(status.StatusCmp)
		cmds = append(cmds, statusCmd)
		return a, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		return a, a.handleKeyPressMsg(msg)

	case tea.MouseWheelMsg, tea.PasteMsg:
		item, ok := a.pages[a.currentPage]
		if !ok {
			return a, nil
		}

		updated, pageCmd := item.Update(msg)
		a.pages[a.currentPage] = updated

		cmds = append(cmds, pageCmd)
		return a, tea.Batch(cmds...)

	// Update Available
	case pubsub.UpdateAvailableMsg:
		// Show update notification in status bar
		statusMsg := fmt.Sprintf("DevOps Dash update available: v%s → v%s.", msg.CurrentVersion, msg.LatestVersion)
		if msg.IsDevelopment {
			statusMsg = fmt.Sprintf("This is a development build of DevOps Dash. The latest release is v%s.", msg.LatestVersion)
		}
		s, statusCmd := a.status.Update(util.InfoMsg{
			Type: util.InfoTypeUpdate,
			Msg:  statusMsg,
			TTL:  10 * time.Second,
		})
		a.status = s.(status.StatusCmp)
		return a, statusCmd
	}
	s, _ := a.status.Update(msg)
	a.status = s.(status.StatusCmp)

	item, ok := a.pages[a.currentPage]
	if !ok {
		return a, nil
	}

	updated, cmd := item.Update(msg)
	a.pages[a.currentPage] = updated

	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// handleWindowResize processes window resize events and updates all components.
func (a *appModel) handleWindowResize(width, height int) tea.Cmd {
	var cmds []tea.Cmd

	// The status bar takes two rows, five when the full help is open.
	if a.showingFullHelp {
		height -= 5
	} else {
		height -= 2
	}

	a.width, a.height = width, height
	// Update status bar
	s, cmd := a.status.Update(tea.WindowSizeMsg{Width: width, Height: height})
	if model, ok := s.(status.StatusCmp); ok {
		a.status = model
	}
	cmds = append(cmds, cmd)

	// Update every page so background pages stay sized.
	for p, item := range a.pages {
		updated, pageCmd := item.Update(tea.WindowSizeMsg{Width: width, Height: height})
		a.pages[p] = updated

		cmds = append(cmds, pageCmd)
	}

	return tea.Batch(cmds...)
}

// handleKeyPressMsg processes keyboard input and routes to appropriate handlers.
func (a *appModel) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	// Check this first as the user should be able to quit no matter what.
	case key.Matches(msg, a.keyMap.Quit):
		return tea.Quit
	// help
	case key.Matches(msg, a.keyMap.Help):
		a.status.ToggleFullHelp()
		a.showingFullHelp = !a.showingFullHelp
		return a.handleWindowResize(a.wWidth, a.wHeight)
	case key.Matches(msg, a.keyMap.Suspend):
		return tea.Suspend
	default:
		item, ok := a.pages[a.currentPage]
		if !ok {
			return nil
		}

		updated, cmd := item.Update(msg)
		a.pages[a.currentPage] = updated
		return cmd
	}
}

// moveToPage handles navigation between different pages in the application.
func (a *appModel) moveToPage(pageID page.PageID) tea.Cmd {
	var cmds []tea.Cmd
	if _, ok := a.loadedPages[pageID]; !ok {
		cmd := a.pages[pageID].Init()
		cmds = append(cmds, cmd)
		a.loadedPages[pageID] = true
	}
	a.previousPage = a.currentPage
	a.currentPage = pageID
	if sizable, ok := a.pages[a.currentPage].(layout.Sizeable); ok {
		cmd := sizable.SetSize(a.width, a.height)
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

// View renders the complete application interface.
func (a *appModel) View() tea.View {
	var view tea.View
	t := styles.CurrentTheme()
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.BackgroundColor = t.BgBase
	if a.wWidth < 25 || a.wHeight < 15 {
		view.SetContent(
			lipgloss.NewCanvas(
				lipgloss.NewLayer(
					t.S().Base.Width(a.wWidth).Height(a.wHeight).
						Align(lipgloss.Center, lipgloss.Center).
						Render(
							t.S().Base.
								Padding(1, 4).
								Foreground(t.White).
								BorderStyle(lipgloss.RoundedBorder()).
								BorderForeground(t.Primary).
								Render("Window too small!"),
						),
				),
			).Render(),
		)
		return view
	}

	item := a.pages[a.currentPage]
	if withHelp, ok := item.(core.KeyMapHelp); ok {
		a.status.SetKeyMap(withHelp.Help())
	}
	appView := lipgloss.JoinVertical(lipgloss.Top, item.View(), a.status.View())

	var cursor *tea.Cursor
	if v, ok := item.(util.Cursor); ok {
		cursor = v.Cursor()
	}

	canvas := lipgloss.NewCanvas(
		lipgloss.NewLayer(appView),
	)

	view.Content = canvas.Render()
	view.Cursor = cursor

	return view
}

// New creates and initializes a new TUI application model.
func New(app *app.App) *appModel {
	dashboardPage := dashboard.New(app)
	keyMap := DefaultKeyMap()
	keyMap.pageBindings = dashboardPage.Bindings()

	model := &appModel{
		currentPage: dashboard.DashboardPageID,
		status:      status.NewStatusCmp(),
		loadedPages: make(map[page.PageID]bool),
		keyMap:      keyMap,

		pages: map[page.PageID]util.Model{
			dashboard.DashboardPageID: dashboardPage,
		},
	}

	return model
}
