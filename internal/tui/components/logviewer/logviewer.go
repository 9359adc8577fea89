// Package logviewer implements the logs panel: a tail-following virtualized
// list of log lines from every configured source. Wrapped lines have variable
// heights, so the list re-measures entries as they scroll into view.
package logviewer

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/app"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/event"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core/layout"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/vlist"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

// LogsCmp is the logs panel of the dashboard.
type LogsCmp interface {
	util.Model
	layout.Sizeable
	layout.Focusable
	layout.Help

	SelectedLine() (app.LogLine, bool)
}

type logsCmp struct {
	width, height int

	cfg  *config.Config
	list vlist.List[*logItem]

	keyMap     KeyMap
	listKeyMap vlist.KeyMap

	// perSource holds item IDs per source in arrival order. Once a source
	// exceeds its line cap the oldest entries are evicted.
	perSource map[string][]string

	reportedOpen bool
}

// New builds the logs panel.
func New(cfg *config.Config) LogsCmp {
	return newLogsCmp(cfg)
}

func newLogsCmp(cfg *config.Config) *logsCmp {
	m := &logsCmp{
		cfg:        cfg,
		keyMap:     DefaultKeyMap(),
		listKeyMap: vlist.DefaultKeyMap(),
		perSource:  map[string][]string{},
	}
	m.list = m.newList(cfg.Virtualization)
	return m
}

func (m *logsCmp) newList(virt config.Virtualization) vlist.List[*logItem] {
	return vlist.New(
		[]*logItem{},
		vlist.WithTail(),
		vlist.WithKeyMap(m.listKeyMap),
		vlist.WithEnableMouse(),
		vlist.WithEngineOptions(virt.EngineOptions()...),
	)
}

func (m *logsCmp) Init() tea.Cmd {
	return m.list.Init()
}

func (m *logsCmp) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[app.LogLine]:
		return m, m.appendLine(msg.Payload)
	case app.ConfigReloadedMsg:
		return m, m.applyConfig(msg.Config)
	case tea.KeyPressMsg:
		if m.list.IsFocused() && key.Matches(msg, m.keyMap.Copy) {
			return m, m.copySelected()
		}
	}
	u, cmd := m.list.Update(msg)
	m.list = u.(vlist.List[*logItem])
	return m, cmd
}

// View renders the list plus a one-line footer with the line count and
// whether the view is following the tail.
func (m *logsCmp) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	t := styles.CurrentTheme()

	status := fmt.Sprintf("%d lines", len(m.list.Items()))
	if m.list.AtBottom() {
		status += " · following"
	} else {
		status += " · paused"
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.list.View(),
		t.S().Subtle.Render(status),
	)
}

// appendLine adds one line to the list and evicts the oldest line of the
// same source once the source is over its cap. In tail mode the view keeps
// following the bottom unless the user scrolled away.
func (m *logsCmp) appendLine(line app.LogLine) tea.Cmd {
	item := newLogItem(line)
	cmds := []tea.Cmd{m.list.AppendItems(item)}

	ids := append(m.perSource[line.Source], item.ID())
	if limit := m.cfg.Sources[line.Source].EffectiveMaxLines(); len(ids) > limit {
		cmds = append(cmds, m.list.DeleteItem(ids[0]))
		ids = ids[1:]
	}
	m.perSource[line.Source] = ids
	return tea.Batch(cmds...)
}

// applyConfig rebuilds the list with new tuning, keeping the buffered lines.
// A view following the tail keeps following; a paused view stays roughly the
// same distance from the end.
func (m *logsCmp) applyConfig(cfg *config.Config) tea.Cmd {
	items := m.list.Items()
	atBottom := m.list.AtBottom()
	fromEnd := m.list.Engine().TotalHeight() - m.list.Engine().Offset()
	focused := m.list.IsFocused()

	m.cfg = cfg
	m.list = m.newList(cfg.Virtualization)

	var cmds []tea.Cmd
	if m.width > 0 && m.height > 0 {
		cmds = append(cmds, m.list.SetSize(m.width, max(0, m.height-1)))
	}
	cmds = append(cmds, m.list.SetItems(items))
	if !atBottom {
		if up := int(fromEnd - m.list.Engine().Viewport()); up > 0 {
			cmds = append(cmds, m.list.MoveUp(up))
		}
	}
	if focused {
		cmds = append(cmds, m.list.Focus())
	} else {
		cmds = append(cmds, m.list.Blur())
	}
	return tea.Batch(cmds...)
}

func (m *logsCmp) copySelected() tea.Cmd {
	s := m.list.SelectedItem()
	if s == nil {
		return util.ReportWarn("Nothing selected to copy")
	}
	text := (*s).Line().Text
	return tea.Sequence(
		tea.SetClipboard(text),
		func() tea.Msg {
			// OSC 52 and the native clipboard both, for compatibility
			// across terminal emulators and environments.
			_ = clipboard.WriteAll(text)
			return nil
		},
		util.ReportInfo("Log line copied to clipboard"),
	)
}

// SelectedLine returns the log line under the selection, if any.
func (m *logsCmp) SelectedLine() (app.LogLine, bool) {
	s := m.list.SelectedItem()
	if s == nil {
		return app.LogLine{}, false
	}
	return (*s).Line(), true
}

// SetSize implements layout.Sizeable. The last row is reserved for the
// footer.
func (m *logsCmp) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return m.list.SetSize(width, max(0, height-1))
}

func (m *logsCmp) GetSize() (int, int) {
	return m.width, m.height
}

func (m *logsCmp) Focus() tea.Cmd {
	if !m.reportedOpen {
		m.reportedOpen = true
		event.LogsOpened("sources", len(m.perSource))
	}
	return m.list.Focus()
}

func (m *logsCmp) Blur() tea.Cmd {
	return m.list.Blur()
}

func (m *logsCmp) IsFocused() bool {
	return m.list.IsFocused()
}

// Bindings implements layout.Help.
func (m *logsCmp) Bindings() []key.Binding {
	return append(m.listKeyMap.Bindings(), m.keyMap.Copy)
}
