package sources

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/app"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
)

func newTestSidebar(t *testing.T, width, height int) *sourcesCmp {
	t.Helper()
	m := New().(*sourcesCmp)
	m.SetSize(width, height)
	return m
}

func sendEvent(m *sourcesCmp, e app.SourceEvent) tea.Cmd {
	_, cmd := m.Update(pubsub.Event[app.SourceEvent]{Type: pubsub.UpdatedEvent, Payload: e})
	return cmd
}

func TestSourcesViewEmpty(t *testing.T) {
	t.Parallel()

	m := newTestSidebar(t, 40, 10)
	view := ansi.Strip(m.View())
	require.Contains(t, view, "Sources")
	require.Contains(t, view, "None")
	require.Equal(t, 10, lipgloss.Height(m.View()))
}

func TestSourcesViewStates(t *testing.T) {
	t.Parallel()

	m := newTestSidebar(t, 44, 12)
	sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "api", State: app.SourceTailing, Lines: 250})
	sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "worker", State: app.SourceWaiting})
	sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "db", State: app.SourceError, Error: errors.New("permission denied")})
	sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "old", State: app.SourceStopped})

	view := ansi.Strip(m.View())
	require.Contains(t, view, "api")
	require.Contains(t, view, "250 lines")
	require.Contains(t, view, "worker")
	require.Contains(t, view, "waiting for file")
	require.Contains(t, view, "error: permission denied")
	require.Contains(t, view, "stopped")
	require.Contains(t, view, "●")

	// Rows come out in name order.
	require.Less(t, strings.Index(view, "api"), strings.Index(view, "db"))
	require.Less(t, strings.Index(view, "db"), strings.Index(view, "old"))
	require.Less(t, strings.Index(view, "old"), strings.Index(view, "worker"))
}

func TestSourcesWaitingShowsTrimmedPath(t *testing.T) {
	t.Parallel()

	m := newTestSidebar(t, 44, 10)
	sendEvent(m, app.SourceEvent{
		Type:  app.SourceEventStateChanged,
		Name:  "nginx",
		State: app.SourceWaiting,
		Path:  "/var/log/nginx/access.log",
	})

	view := ansi.Strip(m.View())
	require.Contains(t, view, "waiting for")
	require.Contains(t, view, "n/access.log")
	require.NotContains(t, view, "/var/log/nginx/access.log")
}

func TestSourcesLinesChangedUpdatesCount(t *testing.T) {
	t.Parallel()

	m := newTestSidebar(t, 40, 10)
	sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "api", State: app.SourceTailing, Lines: 100})
	sendEvent(m, app.SourceEvent{Type: app.SourceEventLinesChanged, Name: "api", State: app.SourceTailing, Lines: 200})

	view := ansi.Strip(m.View())
	require.Contains(t, view, "200 lines")
	require.NotContains(t, view, "100 lines")
}

func TestSourcesTruncation(t *testing.T) {
	t.Parallel()

	m := newTestSidebar(t, 40, 8)
	for i := 1; i <= 6; i++ {
		sendEvent(m, app.SourceEvent{
			Type:  app.SourceEventStateChanged,
			Name:  fmt.Sprintf("s%d", i),
			State: app.SourceTailing,
		})
	}

	view := ansi.Strip(m.View())
	require.Contains(t, view, "s4")
	require.NotContains(t, view, "s5")
	require.Contains(t, view, "…and 2 more")
}

func TestSourcesTruncationSingleRemainder(t *testing.T) {
	t.Parallel()

	m := newTestSidebar(t, 40, 8)
	for i := 1; i <= 5; i++ {
		sendEvent(m, app.SourceEvent{
			Type:  app.SourceEventStateChanged,
			Name:  fmt.Sprintf("s%d", i),
			State: app.SourceTailing,
		})
	}

	view := ansi.Strip(m.View())
	require.Contains(t, view, "…")
	require.NotContains(t, view, "more")
}

func TestSourcesSpinnerLifecycle(t *testing.T) {
	t.Parallel()

	m := newTestSidebar(t, 40, 10)

	cmd := sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "api", State: app.SourceStarting})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, spinner.TickMsg{}, msg)
	require.Contains(t, ansi.Strip(m.View()), "starting...")

	// The tick loop keeps running while anything is starting, and a second
	// starting source does not spawn another one.
	_, next := m.Update(msg)
	require.NotNil(t, next)
	require.Nil(t, sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "db", State: app.SourceStarting}))

	require.Nil(t, sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "api", State: app.SourceTailing}))
	require.True(t, m.spinning)
	require.Nil(t, sendEvent(m, app.SourceEvent{Type: app.SourceEventStateChanged, Name: "db", State: app.SourceTailing}))
	require.False(t, m.spinning)

	_, next = m.Update(next())
	require.Nil(t, next)
}
