package status

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/metrics"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

const messageTTL = 5 * time.Second

// StatusCmp is the bar at the bottom of the screen: key help on the left,
// engine counters on the right, transient messages replacing both.
type StatusCmp interface {
	util.Model
	ToggleFullHelp()
	SetKeyMap(keyMap help.KeyMap)
}

type statusCmp struct {
	width  int
	info   util.InfoMsg
	help   help.Model
	keyMap help.KeyMap
}

func NewStatusCmp() StatusCmp {
	t := styles.CurrentTheme()
	helpModel := help.New()
	helpModel.Styles = t.S().Help
	return &statusCmp{
		help: helpModel,
	}
}

func (m *statusCmp) Init() tea.Cmd {
	return nil
}

func (m *statusCmp) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.SetWidth(msg.Width - 2)
		return m, nil
	case util.InfoMsg:
		m.info = msg
		ttl := msg.TTL
		if ttl == 0 {
			ttl = messageTTL
		}
		return m, tea.Tick(ttl, func(time.Time) tea.Msg {
			return util.ClearStatusMsg{}
		})
	case util.ClearStatusMsg:
		m.info = util.InfoMsg{}
	}
	return m, nil
}

func (m *statusCmp) View() string {
	t := styles.CurrentTheme()
	var bar string
	if m.info.Msg != "" {
		bar = m.infoLine()
	} else {
		left := ""
		if m.keyMap != nil {
			left = m.help.View(m.keyMap)
		}
		bar = left
		if !m.help.ShowAll {
			right := m.countersView()
			gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
			if gap > 0 {
				bar = left + lipgloss.NewStyle().Width(gap).Render("") + right
			}
		}
	}
	return "\n" + t.S().Base.PaddingLeft(1).Width(m.width).Render(bar)
}

// countersView summarizes the virtualization counters for the session.
func (m *statusCmp) countersView() string {
	t := styles.CurrentTheme()
	s := metrics.Current()
	return t.S().Subtle.Render(fmt.Sprintf(
		"cache %d%% · batches %d · rebuilds %d",
		int(s.CacheHitRate()*100), s.BatchesLoaded, s.IndexRebuilds,
	))
}

func (m *statusCmp) infoLine() string {
	t := styles.CurrentTheme()
	s := t.S().Base.Padding(0, 1)
	switch m.info.Type {
	case util.InfoTypeError:
		s = s.Foreground(t.White).Background(t.Error)
	case util.InfoTypeWarn:
		s = s.Foreground(t.BgBase).Background(t.Warning)
	case util.InfoTypeSuccess:
		s = s.Foreground(t.BgBase).Background(t.Success)
	case util.InfoTypeUpdate:
		s = s.Foreground(t.BgBase).Background(t.Secondary)
	default:
		s = s.Foreground(t.BgBase).Background(t.Info)
	}
	msg := ansi.Truncate(m.info.Msg, max(0, m.width-2), "…")
	return s.Render(msg)
}

func (m *statusCmp) ToggleFullHelp() {
	m.help.ShowAll = !m.help.ShowAll
}

func (m *statusCmp) SetKeyMap(keyMap help.KeyMap) {
	m.keyMap = keyMap
}
