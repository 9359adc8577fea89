package dashboard

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/app"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/feed"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

// drain runs a command tree to completion, feeding produced messages back
// into the model.
func drain(t *testing.T, m util.Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		msg := cmd()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
}

func newTestDashboard(t *testing.T) (*dashboardPage, feed.Service) {
	t.Helper()
	svc := feed.NewService()
	svc.Seed(feed.Fixtures(30))
	p := newDashboard(svc, &config.Config{})
	drain(t, p, p.SetSize(100, 16))
	drain(t, p, p.Init())
	return p, svc
}

func TestDashboardInitialLayout(t *testing.T) {
	t.Parallel()

	p, _ := newTestDashboard(t)

	view := ansi.Strip(p.View())
	require.Contains(t, view, "DevOps Dash")
	require.Contains(t, view, "Sources")
	require.Contains(t, view, "20 of 30")
	require.Contains(t, view, "0 lines")
	require.Equal(t, 16, lipgloss.Height(p.View()))

	require.True(t, p.feedPanel.IsFocused())
	require.False(t, p.logsPanel.IsFocused())
}

func TestDashboardSwitchPanel(t *testing.T) {
	t.Parallel()

	p, _ := newTestDashboard(t)

	drain(t, p, p.switchPanel())
	require.False(t, p.feedPanel.IsFocused())
	require.True(t, p.logsPanel.IsFocused())
	require.Equal(t, panelLogs, p.focused)
	require.Nil(t, p.Cursor())

	drain(t, p, p.switchPanel())
	require.True(t, p.feedPanel.IsFocused())
	require.False(t, p.logsPanel.IsFocused())
}

func TestDashboardRoutesLogLines(t *testing.T) {
	t.Parallel()

	p, _ := newTestDashboard(t)
	drain(t, p, util.CmdHandler(pubsub.Event[app.LogLine]{
		Type: pubsub.CreatedEvent,
		Payload: app.LogLine{
			Source: "api",
			Number: 1,
			Text:   "hello from the log",
			Time:   time.Now(),
		},
	}))

	require.Contains(t, ansi.Strip(p.View()), "hello from the log")
}

func TestDashboardRoutesSourceEvents(t *testing.T) {
	t.Parallel()

	p, _ := newTestDashboard(t)
	drain(t, p, util.CmdHandler(pubsub.Event[app.SourceEvent]{
		Type: pubsub.UpdatedEvent,
		Payload: app.SourceEvent{
			Type:  app.SourceEventStateChanged,
			Name:  "api",
			State: app.SourceTailing,
			Lines: 250,
		},
	}))

	require.Contains(t, ansi.Strip(p.View()), "250 lines")
}

func TestDashboardRoutesFeedEvents(t *testing.T) {
	t.Parallel()

	p, svc := newTestDashboard(t)
	entry := feed.Item{ID: "live-1", Kind: feed.KindAlert, Service: "api", Env: "prod", Message: "latency spike", CreatedAt: time.Now()}
	svc.Append(entry)
	drain(t, p, util.CmdHandler(pubsub.Event[feed.Item]{Type: pubsub.CreatedEvent, Payload: entry}))

	require.Contains(t, ansi.Strip(p.feedPanel.View()), "of 31")
}

func TestDashboardCompactReloadHidesSidebar(t *testing.T) {
	t.Parallel()

	p, _ := newTestDashboard(t)
	require.True(t, p.showSidebar())

	cfg := &config.Config{
		Options: &config.Options{TUI: &config.TUIOptions{CompactMode: true}},
	}
	drain(t, p, util.CmdHandler(app.ConfigReloadedMsg{Config: cfg}))

	require.True(t, p.compact)
	require.False(t, p.showSidebar())
	view := ansi.Strip(p.View())
	require.NotContains(t, view, "Sources")
	require.Contains(t, view, "20 of 30")
	require.Equal(t, 16, lipgloss.Height(p.View()))
}

func TestDashboardHelpIncludesPanelBindings(t *testing.T) {
	t.Parallel()

	p, _ := newTestDashboard(t)

	k := p.Help()
	short := k.ShortHelp()
	require.GreaterOrEqual(t, len(short), 2)
	full := k.FullHelp()
	require.NotEmpty(t, full)
	for _, row := range full {
		require.LessOrEqual(t, len(row), 4)
	}
}
