package logviewer

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/app"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

// logItem renders one log line: a timestamp, the source name, and the raw
// text, wrapped to the panel width. Long lines take several rows.
type logItem struct {
	line    app.LogLine
	width   int
	focused bool
}

func newLogItem(line app.LogLine) *logItem {
	return &logItem{line: line}
}

// ID is unique across sources: line numbers count per source.
func (l *logItem) ID() string {
	return fmt.Sprintf("%s:%d", l.line.Source, l.line.Number)
}

// Line returns the underlying log line.
func (l *logItem) Line() app.LogLine { return l.line }

func (l *logItem) Init() tea.Cmd { return nil }

func (l *logItem) Update(tea.Msg) (util.Model, tea.Cmd) { return l, nil }

func (l *logItem) View() string {
	t := styles.CurrentTheme()
	inner := max(1, l.width-1)

	head := t.S().Subtle.Render(l.line.Time.Format("15:04:05")) +
		" " + t.S().Muted.Render(l.line.Source) + " "
	body := lipgloss.NewStyle().Width(inner).Render(head + l.line.Text)

	if l.focused {
		return t.S().Base.
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(t.Primary).
			Render(body)
	}
	return t.S().Base.PaddingLeft(1).Render(body)
}

func (l *logItem) GetSize() (int, int) {
	return l.width, 1
}

func (l *logItem) SetSize(width, height int) tea.Cmd {
	l.width = width
	return nil
}

func (l *logItem) Focus() tea.Cmd {
	l.focused = true
	return nil
}

func (l *logItem) Blur() tea.Cmd {
	l.focused = false
	return nil
}

func (l *logItem) IsFocused() bool { return l.focused }
