// Package sources implements the sources sidebar: one status row per
// monitored source with a state dot, the line count, and any tail error.
package sources

import (
	"fmt"
	"maps"
	"slices"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/app"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/fsext"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core/layout"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

// Minimum rows to show before truncating the list.
const minRowsShown = 2

// SourcesCmp is the sources sidebar of the dashboard.
type SourcesCmp interface {
	util.Model
	layout.Sizeable
}

type sourcesCmp struct {
	width, height int

	// states is a local snapshot of the source registry, kept current by
	// registry events.
	states map[string]app.SourceInfo

	spinner  spinner.Model
	spinning bool
}

// New builds the sources sidebar, seeded from the current registry.
func New() SourcesCmp {
	t := styles.CurrentTheme()
	return &sourcesCmp{
		states: app.GetSourceStates(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(t.S().Base.Foreground(t.Warning)),
		),
	}
}

func (m *sourcesCmp) Init() tea.Cmd {
	if m.anyStarting() {
		m.spinning = true
		return m.spinner.Tick
	}
	return nil
}

func (m *sourcesCmp) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[app.SourceEvent]:
		m.applyEvent(msg.Payload)
		if !m.anyStarting() {
			m.spinning = false
			return m, nil
		}
		if !m.spinning {
			m.spinning = true
			return m, m.spinner.Tick
		}
		return m, nil
	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *sourcesCmp) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	t := styles.CurrentTheme()
	style := t.S().Base.
		Width(m.width).
		Height(m.height).
		Padding(1)
	maxWidth := m.width - style.GetHorizontalFrameSize()

	parts := []string{core.Section("Sources", maxWidth), ""}

	names := slices.Sorted(maps.Keys(m.states))
	if len(names) == 0 {
		parts = append(parts, t.S().Base.Foreground(t.Border).Render("None"))
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	}

	shown := min(max(minRowsShown, m.height-4), len(names))
	for _, name := range names[:shown] {
		info := m.states[name]
		icon, description := m.iconAndDescription(info, t)
		parts = append(parts, core.Status(core.StatusOpts{
			Icon:        icon,
			Title:       info.Name,
			Description: description,
		}, maxWidth))
	}
	if remaining := len(names) - shown; remaining == 1 {
		parts = append(parts, t.S().Base.Foreground(t.FgMuted).Render("…"))
	} else if remaining > 1 {
		parts = append(parts,
			t.S().Base.Foreground(t.FgSubtle).Render(fmt.Sprintf("…and %d more", remaining)),
		)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *sourcesCmp) iconAndDescription(info app.SourceInfo, t *styles.Theme) (string, string) {
	switch info.State {
	case app.SourceStarting:
		return m.spinner.View(), t.S().Subtle.Render("starting...")
	case app.SourceTailing:
		return t.ItemOnlineIcon.String(), t.S().Subtle.Render(fmt.Sprintf("%d lines", info.Lines))
	case app.SourceWaiting:
		description := "waiting for file"
		if info.Path != "" {
			description = "waiting for " + fsext.DirTrim(fsext.PrettyPath(info.Path), 2)
		}
		return t.ItemBusyIcon.String(), t.S().Subtle.Render(description)
	case app.SourceError:
		description := t.S().Subtle.Render("error")
		if info.Error != nil {
			description = t.S().Subtle.Render(fmt.Sprintf("error: %s", info.Error.Error()))
		}
		return t.ItemErrorIcon.String(), description
	case app.SourceStopped:
		return t.ItemOfflineIcon.Foreground(t.FgMuted).String(), t.S().Subtle.Render("stopped")
	default:
		return t.ItemOfflineIcon.String(), ""
	}
}

func (m *sourcesCmp) applyEvent(e app.SourceEvent) {
	info := m.states[e.Name]
	info.Name = e.Name
	info.State = e.State
	info.Error = e.Error
	info.Path = e.Path
	info.Lines = e.Lines
	m.states[e.Name] = info
}

func (m *sourcesCmp) anyStarting() bool {
	for _, info := range m.states {
		if info.State == app.SourceStarting {
			return true
		}
	}
	return false
}

func (m *sourcesCmp) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return nil
}

func (m *sourcesCmp) GetSize() (int, int) {
	return m.width, m.height
}
