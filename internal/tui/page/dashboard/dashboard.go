// Package dashboard implements the main page: the activity feed, the log
// viewer, and the sources sidebar.
package dashboard

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/app"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/event"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/feed"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core/layout"
	cmpFeed "github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/feed"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/logviewer"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/sources"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/page"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

const DashboardPageID page.PageID = "dashboard"

const (
	headerHeight      = 2
	sidebarWidth      = 28
	sidebarBreakpoint = 80
)

type panelID int

const (
	panelFeed panelID = iota
	panelLogs
)

// DashboardPage is the page hosting the feed and logs panels plus the
// sources sidebar.
type DashboardPage interface {
	util.Model
	layout.Sizeable
	layout.Help
	core.KeyMapHelp
	util.Cursor
}

type dashboardPage struct {
	width, height int

	cfg    *config.Config
	keyMap KeyMap

	feedPanel cmpFeed.FeedCmp
	logsPanel logviewer.LogsCmp
	sidebar   sources.SourcesCmp

	focused panelID
	compact bool
}

// New builds the dashboard page for the given app.
func New(app *app.App) DashboardPage {
	return newDashboard(app.Feed, app.Config())
}

func newDashboard(svc feed.Service, cfg *config.Config) *dashboardPage {
	return &dashboardPage{
		cfg:       cfg,
		keyMap:    DefaultKeyMap(),
		feedPanel: cmpFeed.New(svc, cfg),
		logsPanel: logviewer.New(cfg),
		sidebar:   sources.New(),
		compact:   cfg.CompactMode(),
	}
}

// Init starts the panels with focus on the feed.
func (p *dashboardPage) Init() tea.Cmd {
	return tea.Batch(
		p.feedPanel.Init(),
		p.logsPanel.Init(),
		p.sidebar.Init(),
		p.logsPanel.Blur(),
	)
}

func (p *dashboardPage) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case pubsub.Event[feed.Item]:
		return p, p.updateFeed(msg)
	case pubsub.Event[app.LogLine]:
		return p, p.updateLogs(msg)
	case pubsub.Event[app.SourceEvent]:
		return p, p.updateSidebar(msg)
	case app.ConfigReloadedMsg:
		p.compact = msg.Config.CompactMode()
		return p, tea.Batch(
			p.updateFeed(msg),
			p.updateLogs(msg),
			p.layoutPanels(),
		)
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keyMap.SwitchPanel):
			return p, p.switchPanel()
		case key.Matches(msg, p.keyMap.ToggleCompact):
			return p, p.toggleCompact()
		}
		return p, p.updateFocused(msg)
	case tea.MouseWheelMsg:
		return p, p.updateFocused(msg)
	}
	return p, tea.Batch(
		p.updateFeed(msg),
		p.updateLogs(msg),
		p.updateSidebar(msg),
	)
}

func (p *dashboardPage) View() string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}

	parts := []string{p.feedPanel.View(), p.logsPanel.View()}
	if p.showSidebar() {
		parts = append(parts, p.sidebar.View())
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		core.Title("DevOps Dash", p.width),
		"",
		body,
	)
}

func (p *dashboardPage) updateFeed(msg tea.Msg) tea.Cmd {
	u, cmd := p.feedPanel.Update(msg)
	p.feedPanel = u.(cmpFeed.FeedCmp)
	return cmd
}

func (p *dashboardPage) updateLogs(msg tea.Msg) tea.Cmd {
	u, cmd := p.logsPanel.Update(msg)
	p.logsPanel = u.(logviewer.LogsCmp)
	return cmd
}

func (p *dashboardPage) updateSidebar(msg tea.Msg) tea.Cmd {
	u, cmd := p.sidebar.Update(msg)
	p.sidebar = u.(sources.SourcesCmp)
	return cmd
}

func (p *dashboardPage) updateFocused(msg tea.Msg) tea.Cmd {
	if p.focused == panelLogs {
		return p.updateLogs(msg)
	}
	return p.updateFeed(msg)
}

func (p *dashboardPage) switchPanel() tea.Cmd {
	event.PanelSwitched()
	if p.focused == panelFeed {
		p.focused = panelLogs
		return tea.Batch(p.feedPanel.Blur(), p.logsPanel.Focus())
	}
	p.focused = panelFeed
	return tea.Batch(p.logsPanel.Blur(), p.feedPanel.Focus())
}

// toggleCompact persists the new mode and feeds it back through the same
// path a config file change takes.
func (p *dashboardPage) toggleCompact() tea.Cmd {
	if err := p.cfg.SetCompactMode(!p.cfg.CompactMode()); err != nil {
		return util.ReportError(err)
	}
	return util.CmdHandler(app.ConfigReloadedMsg{Config: p.cfg})
}

func (p *dashboardPage) showSidebar() bool {
	return !p.compact && p.width >= sidebarBreakpoint
}

func (p *dashboardPage) layoutPanels() tea.Cmd {
	bodyHeight := max(0, p.height-headerHeight)
	sidebar := 0
	if p.showSidebar() {
		sidebar = sidebarWidth
	}
	feedWidth := (p.width - sidebar) / 2
	logsWidth := p.width - sidebar - feedWidth
	return tea.Batch(
		p.feedPanel.SetSize(feedWidth, bodyHeight),
		p.logsPanel.SetSize(logsWidth, bodyHeight),
		p.sidebar.SetSize(sidebar, bodyHeight),
	)
}

func (p *dashboardPage) SetSize(width, height int) tea.Cmd {
	p.width, p.height = width, height
	return p.layoutPanels()
}

func (p *dashboardPage) GetSize() (int, int) {
	return p.width, p.height
}

// Bindings implements layout.Help with the focused panel's bindings.
func (p *dashboardPage) Bindings() []key.Binding {
	bindings := []key.Binding{p.keyMap.SwitchPanel, p.keyMap.ToggleCompact}
	return append(bindings, p.focusedBindings()...)
}

// Help implements core.KeyMapHelp.
func (p *dashboardPage) Help() help.KeyMap {
	k := p.keyMap
	k.panelBindings = p.focusedBindings()
	return k
}

func (p *dashboardPage) focusedBindings() []key.Binding {
	if p.focused == panelLogs {
		return p.logsPanel.Bindings()
	}
	return p.feedPanel.Bindings()
}

// Cursor exposes the feed filter cursor, offset below the page header.
func (p *dashboardPage) Cursor() *tea.Cursor {
	if p.focused != panelFeed {
		return nil
	}
	cursor := p.feedPanel.Cursor()
	if cursor != nil {
		cursor.Y += headerHeight
	}
	return cursor
}
