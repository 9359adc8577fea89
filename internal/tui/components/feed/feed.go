// Package feed implements the activity feed panel: a filterable virtualized
// list that reveals the backing collection in batches as scrolling approaches
// the end.
package feed

import (
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/app"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/event"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/feed"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/metrics"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/stringext"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core/layout"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/vlist"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/vscroll"
)

// FeedCmp is the activity feed panel.
type FeedCmp interface {
	util.Model
	layout.Sizeable
	layout.Focusable
	layout.Help
	util.Cursor

	Filter(query string) tea.Cmd
	SelectedEntry() (feed.Item, bool)
}

// batchCommitMsg carries a staged batch commit back into the update loop;
// the loader mutates only there.
type batchCommitMsg struct {
	commit func()
}

type feedCmp struct {
	width, height int

	svc     feed.Service
	list    vlist.FilterableList[*feedItem]
	loader  *vscroll.BatchLoader
	trigger *vscroll.Trigger
	compact bool

	keyMap     KeyMap
	listKeyMap vlist.KeyMap

	stagedCommit func()
	loadDone     func()
}

// New builds the feed panel backed by the given service.
func New(svc feed.Service, cfg *config.Config) FeedCmp {
	return newFeedCmp(svc, cfg.Virtualization, cfg.CompactMode())
}

func newFeedCmp(svc feed.Service, virt config.Virtualization, compact bool) *feedCmp {
	m := &feedCmp{
		svc:        svc,
		compact:    compact,
		keyMap:     DefaultKeyMap(),
		listKeyMap: vlist.DefaultKeyMap(),
	}
	m.trigger = vscroll.NewTrigger(func(done func()) {
		m.loadDone = done
		m.loader.LoadNextBatch()
	})
	m.loader = m.newLoader(virt)
	m.list = m.newList(virt)
	return m
}

func (m *feedCmp) newLoader(virt config.Virtualization) *vscroll.BatchLoader {
	base := []vscroll.BatchOption{
		vscroll.WithScheduler(func(commit func()) { m.stagedCommit = commit }),
		vscroll.WithOnReveal(func(revealed int) {
			slog.Debug("Feed batch revealed", "revealed", revealed)
		}),
	}
	loader, err := vscroll.NewBatchLoader(m.svc.Len(), append(base, virt.LoaderOptions()...)...)
	if err != nil {
		slog.Warn("Invalid feed batch tuning, using defaults", "error", err)
		loader, _ = vscroll.NewBatchLoader(m.svc.Len(), base...)
	}
	return loader
}

func (m *feedCmp) newList(virt config.Virtualization) vlist.FilterableList[*feedItem] {
	engineOpts := append(
		virt.EngineOptions(),
		vscroll.WithOnEndReached(metrics.EndReachedFired),
	)
	return vlist.NewFilterableList(
		[]*feedItem{},
		vlist.WithFilterPlaceholder("Filter events"),
		vlist.WithFilterListOptions(
			vlist.WithKeyMap(m.listKeyMap),
			vlist.WithEnableMouse(),
			vlist.WithEngineOptions(engineOpts...),
		),
	)
}

// Init loads the first batch.
func (m *feedCmp) Init() tea.Cmd {
	return tea.Batch(m.list.Init(), m.loadMore(true))
}

func (m *feedCmp) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case batchCommitMsg:
		return m, m.commitBatch(msg)
	case pubsub.Event[feed.Item]:
		if err := m.loader.SetTotal(m.svc.Len()); err != nil {
			return m, util.ReportError(err)
		}
		return m, m.loadMore(false)
	case app.ConfigReloadedMsg:
		return m, m.applyConfig(msg.Config)
	case tea.KeyPressMsg:
		if m.list.IsFocused() {
			switch {
			case key.Matches(msg, m.keyMap.Copy):
				return m, m.copySelected()
			case key.Matches(msg, m.keyMap.CommitFilter):
				if m.list.Query() != "" {
					event.FilterUsed()
				}
				return m, nil
			}
		}
		prev := m.list.Query()
		u, cmd := m.list.Update(msg)
		m.list = u.(vlist.FilterableList[*feedItem])
		m.syncTrigger(prev)
		return m, tea.Batch(cmd, m.loadMore(false))
	case tea.MouseWheelMsg:
		u, cmd := m.list.Update(msg)
		m.list = u.(vlist.FilterableList[*feedItem])
		return m, tea.Batch(cmd, m.loadMore(false))
	}
	u, cmd := m.list.Update(msg)
	m.list = u.(vlist.FilterableList[*feedItem])
	return m, cmd
}

func (m *feedCmp) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	t := styles.CurrentTheme()
	status := fmt.Sprintf("%d of %d", m.loader.Revealed(), m.loader.Total())
	if m.list.Query() != "" {
		status = fmt.Sprintf("%d matched", len(m.list.Items()))
	}
	if m.loader.Loading() {
		status = styles.LoadingIcon + " loading"
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.list.View(),
		t.S().Subtle.Render(status),
	)
}

// loadMore feeds the sentinel state into the trigger and, when an invocation
// starts, hands the staged commit to the runtime as a command. force
// bypasses the engine predicate for the initial fill.
func (m *feedCmp) loadMore(force bool) tea.Cmd {
	if !m.trigger.OnVisibilityChange(force || m.list.Engine().EndReached()) {
		return nil
	}
	metrics.TriggerInvoked()
	commit := m.stagedCommit
	m.stagedCommit = nil
	if commit == nil {
		// Exhausted: LoadNextBatch staged nothing.
		m.finishLoad()
		return nil
	}
	return func() tea.Msg { return batchCommitMsg{commit: commit} }
}

func (m *feedCmp) commitBatch(msg batchCommitMsg) tea.Cmd {
	before := m.loader.Revealed()
	msg.commit()
	m.finishLoad()
	revealed := m.loader.Revealed()
	if revealed == before {
		return nil
	}
	items := m.revealedItems(before, revealed)
	metrics.BatchLoaded(len(items))
	event.FeedBatchLoaded("batch size", len(items), "revealed", revealed)
	return tea.Batch(m.list.AppendItems(items...), m.loadMore(false))
}

func (m *feedCmp) finishLoad() {
	if m.loadDone != nil {
		m.loadDone()
		m.loadDone = nil
	}
}

func (m *feedCmp) revealedItems(from, to int) []*feedItem {
	items := make([]*feedItem, 0, max(0, to-from))
	for i := from; i < to; i++ {
		entry, ok := m.svc.Get(i)
		if !ok {
			break
		}
		items = append(items, newFeedItem(entry, m.compact))
	}
	return items
}

// syncTrigger pauses batch loading while a filter is active, since the
// reveal frontier is meaningless against a filtered view.
func (m *feedCmp) syncTrigger(prevQuery string) {
	query := m.list.Query()
	if query == prevQuery {
		return
	}
	switch {
	case query == "":
		m.trigger.Enable()
	case prevQuery == "":
		m.trigger.Disable()
	}
}

// Filter applies a query programmatically, with the same loading pause the
// typed path gets.
func (m *feedCmp) Filter(query string) tea.Cmd {
	prev := m.list.Query()
	cmd := m.list.Filter(query)
	m.syncTrigger(prev)
	return cmd
}

// applyConfig rebuilds the list and loader with new tuning, preserving the
// revealed prefix, scroll offset, query, and focus.
func (m *feedCmp) applyConfig(cfg *config.Config) tea.Cmd {
	revealed := m.loader.Revealed()
	offset := m.list.Engine().Offset()
	query := m.list.Query()
	focused := m.list.IsFocused()

	m.finishLoad()
	m.stagedCommit = nil
	m.compact = cfg.CompactMode()

	virt := cfg.Virtualization
	m.loader = m.newLoader(virt)
	for m.loader.Revealed() < revealed {
		b, ok := m.loader.Begin()
		if !ok {
			break
		}
		if b.Start+b.Count > revealed {
			b.Count = revealed - b.Start
		}
		m.loader.Commit(b)
	}

	var cmds []tea.Cmd
	m.list = m.newList(virt)
	if m.width > 0 && m.height > 0 {
		cmds = append(cmds, m.list.SetSize(m.width, max(0, m.height-1)))
	}
	cmds = append(cmds, m.list.SetItems(m.revealedItems(0, m.loader.Revealed())))
	m.list.Engine().ScrollTo(offset)
	if query != "" {
		cmds = append(cmds, m.list.Filter(query))
	}
	if focused {
		cmds = append(cmds, m.list.Focus())
	} else {
		cmds = append(cmds, m.list.Blur())
	}
	return tea.Batch(cmds...)
}

func copyText(entry feed.Item) string {
	return fmt.Sprintf("[%s] %s/%s %s", stringext.Capitalize(string(entry.Kind)), entry.Service, entry.Env, entry.Message)
}

func (m *feedCmp) copySelected() tea.Cmd {
	selected := m.list.SelectedItem()
	if selected == nil {
		return util.ReportWarn("Nothing selected to copy")
	}
	text := copyText((*selected).Entry())
	return tea.Sequence(
		// OSC 52 and the native clipboard both, for compatibility across
		// terminal emulators and environments.
		tea.SetClipboard(text),
		func() tea.Msg {
			_ = clipboard.WriteAll(text)
			return nil
		},
		util.ReportInfo("Feed entry copied to clipboard"),
	)
}

// SelectedEntry returns the feed entry under the selection.
func (m *feedCmp) SelectedEntry() (feed.Item, bool) {
	if selected := m.list.SelectedItem(); selected != nil {
		return (*selected).Entry(), true
	}
	return feed.Item{}, false
}

func (m *feedCmp) GetSize() (int, int) {
	return m.width, m.height
}

// SetSize reserves the last row for the reveal counter.
func (m *feedCmp) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return m.list.SetSize(width, max(0, height-1))
}

func (m *feedCmp) Focus() tea.Cmd {
	return m.list.Focus()
}

func (m *feedCmp) Blur() tea.Cmd {
	return m.list.Blur()
}

func (m *feedCmp) IsFocused() bool {
	return m.list.IsFocused()
}

func (m *feedCmp) Bindings() []key.Binding {
	return append(m.listKeyMap.Bindings(), m.keyMap.Copy, m.keyMap.CommitFilter)
}

func (m *feedCmp) Cursor() *tea.Cursor {
	return m.list.Cursor()
}
