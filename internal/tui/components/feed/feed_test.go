package feed

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
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

func newTestPanel(t *testing.T, seed int) (*feedCmp, feed.Service) {
	t.Helper()
	svc := feed.NewService()
	svc.Seed(feed.Fixtures(seed))
	m := newFeedCmp(svc, config.Virtualization{}, false)
	drain(t, m, m.SetSize(80, 12))
	drain(t, m, m.Init())
	return m, svc
}

func TestFeedLoadsFirstBatchOnInit(t *testing.T) {
	t.Parallel()

	m, svc := newTestPanel(t, 50)

	require.Equal(t, 20, m.loader.Revealed())
	require.Len(t, m.list.Items(), 20)
	require.False(t, m.loader.Loading())
	require.False(t, m.trigger.Invoking())

	first, ok := svc.Get(0)
	require.True(t, ok)
	view := m.View()
	require.Contains(t, view, first.Message)
	require.Contains(t, view, "20 of 50")
}

func TestFeedLoadsMoreNearTheEnd(t *testing.T) {
	t.Parallel()

	m, _ := newTestPanel(t, 50)
	m.View()

	drain(t, m, m.list.GoToBottom())
	drain(t, m, m.loadMore(false))
	require.Equal(t, 40, m.loader.Revealed())
	require.Len(t, m.list.Items(), 40)

	// Scrolling away from the end re-arms the edge, so nothing loads until
	// the threshold is crossed again.
	require.Nil(t, m.loadMore(false))

	m.View()
	drain(t, m, m.list.GoToBottom())
	drain(t, m, m.loadMore(false))
	require.Equal(t, 50, m.loader.Revealed())
	require.True(t, m.loader.Exhausted())

	m.View()
	drain(t, m, m.list.GoToBottom())
	require.Nil(t, m.loadMore(false))
	require.Equal(t, 50, m.loader.Revealed())
	require.False(t, m.trigger.Invoking())
}

func TestFeedLiveEntryRevealsAtBottom(t *testing.T) {
	t.Parallel()

	m, svc := newTestPanel(t, 5)
	require.True(t, m.loader.Exhausted())

	m.View()
	drain(t, m, m.list.GoToBottom())

	entry := feed.Item{
		ID:        "live-1",
		Kind:      feed.KindDeploy,
		Service:   "api",
		Env:       "prod",
		Message:   "deployed api v9.9.9",
		CreatedAt: time.Now(),
	}
	svc.Append(entry)
	drain(t, m, util.CmdHandler(pubsub.Event[feed.Item]{Type: pubsub.CreatedEvent, Payload: entry}))

	require.Equal(t, 6, m.loader.Revealed())
	items := m.list.Items()
	require.Equal(t, "live-1", items[len(items)-1].ID())
	require.False(t, m.trigger.Invoking())
}

func TestFeedFilterPausesLoading(t *testing.T) {
	t.Parallel()

	m, _ := newTestPanel(t, 50)
	m.View()

	drain(t, m, m.Filter("deployed"))
	require.Equal(t, "deployed", m.list.Query())
	require.False(t, m.trigger.Enabled())

	drain(t, m, m.list.GoToBottom())
	require.Nil(t, m.loadMore(false))
	require.Equal(t, 20, m.loader.Revealed())

	drain(t, m, m.Filter(""))
	require.True(t, m.trigger.Enabled())
	require.Len(t, m.list.Items(), 20)
}

func TestFeedConfigReloadPreservesProgress(t *testing.T) {
	t.Parallel()

	m, _ := newTestPanel(t, 50)
	m.View()

	five := 5
	cfg := &config.Config{
		Virtualization: config.Virtualization{BatchSize: &five},
		Options:        &config.Options{TUI: &config.TUIOptions{CompactMode: true}},
	}
	_, cmd := m.Update(app.ConfigReloadedMsg{Config: cfg})
	drain(t, m, cmd)

	require.Equal(t, 20, m.loader.Revealed())
	require.Len(t, m.list.Items(), 20)
	require.True(t, m.compact)
	require.True(t, m.list.Items()[0].compact)
	require.True(t, m.list.IsFocused())

	// The new batch size applies from the next load on.
	m.View()
	drain(t, m, m.list.GoToBottom())
	drain(t, m, m.loadMore(false))
	require.Equal(t, 25, m.loader.Revealed())
}

func TestFeedCopy(t *testing.T) {
	t.Parallel()

	entry := feed.Item{Kind: feed.KindAlert, Service: "billing", Env: "prod", Message: "high error rate"}
	require.Equal(t, "[Alert] billing/prod high error rate", copyText(entry))

	empty := newFeedCmp(feed.NewService(), config.Virtualization{}, false)
	warn, ok := empty.copySelected()().(util.InfoMsg)
	require.True(t, ok)
	require.Equal(t, util.InfoTypeWarn, warn.Type)

	m, _ := newTestPanel(t, 5)
	_, ok = m.SelectedEntry()
	require.True(t, ok)
	require.NotNil(t, m.copySelected())
}

func TestFeedViewHeight(t *testing.T) {
	t.Parallel()

	m, _ := newTestPanel(t, 50)
	require.Equal(t, 12, lipgloss.Height(m.View()))
}
