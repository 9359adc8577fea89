package feed

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/feed"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/vlist"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

// feedItem renders one feed entry as a message line plus a muted
// service/env/age line, or as a single truncated line in compact mode. The
// message may wrap; the meta line never does.
type feedItem struct {
	entry   feed.Item
	width   int
	compact bool
	focused bool
	matches []int
}

func newFeedItem(entry feed.Item, compact bool) *feedItem {
	return &feedItem{entry: entry, compact: compact}
}

func (f *feedItem) ID() string { return f.entry.ID }

// Entry returns the underlying feed entry.
func (f *feedItem) Entry() feed.Item { return f.entry }

func (f *feedItem) Init() tea.Cmd { return nil }

func (f *feedItem) Update(tea.Msg) (util.Model, tea.Cmd) { return f, nil }

func (f *feedItem) View() string {
	t := styles.CurrentTheme()
	inner := max(1, f.width-2)

	message := f.entry.Message
	if len(f.matches) > 0 {
		message = vlist.HighlightMatches(
			message,
			f.matches,
			t.S().Base.Foreground(t.Secondary).Underline(true),
		)
	}

	var body string
	if f.compact {
		line := kindBadge(t, f.entry.Kind) + " " + message +
			t.S().Subtle.Render(" · "+f.entry.Service+" · "+f.entry.Env)
		body = ansi.Truncate(line, inner, "…")
	} else {
		body = lipgloss.NewStyle().Width(inner).Render(kindBadge(t, f.entry.Kind) + " " + message)
		meta := t.S().Muted.Render(f.entry.Service) +
			t.S().Subtle.Render(" · "+f.entry.Env+" · "+age(f.entry.CreatedAt, time.Now()))
		body += "\n" + ansi.Truncate(meta, inner, "…")
	}

	if f.focused {
		return t.S().Base.
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(t.Primary).
			PaddingLeft(1).
			Render(body)
	}
	return t.S().Base.PaddingLeft(2).Render(body)
}

func (f *feedItem) GetSize() (int, int) {
	if f.compact {
		return f.width, 1
	}
	return f.width, 2
}

func (f *feedItem) SetSize(width, height int) tea.Cmd {
	f.width = width
	return nil
}

func (f *feedItem) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *feedItem) Blur() tea.Cmd {
	f.focused = false
	return nil
}

func (f *feedItem) IsFocused() bool { return f.focused }

func (f *feedItem) FilterValue() string {
	return f.entry.Message + " " + f.entry.Service + " " + f.entry.Env
}

// MatchIndexes keeps the indexes that land inside the message, the only part
// of the filter value that is rendered verbatim.
func (f *feedItem) MatchIndexes(indexes []int) {
	f.matches = f.matches[:0]
	for _, ix := range indexes {
		if ix < len(f.entry.Message) {
			f.matches = append(f.matches, ix)
		}
	}
}

func kindBadge(t *styles.Theme, kind feed.Kind) string {
	switch kind {
	case feed.KindDeploy:
		return t.S().Base.Foreground(t.Success).Render(styles.CheckIcon)
	case feed.KindAlert:
		return t.S().Base.Foreground(t.Warning).Render(styles.WarningIcon)
	case feed.KindIncident:
		return t.S().Base.Foreground(t.Error).Render(styles.ErrorIcon)
	case feed.KindScale:
		return t.S().Base.Foreground(t.Info).Render(styles.InfoIcon)
	case feed.KindRollback:
		return t.S().Base.Foreground(t.FgHalfMuted).Render(styles.HintIcon)
	default:
		return t.S().Base.Foreground(t.FgMuted).Render(styles.InfoIcon)
	}
}

// age formats how long ago ts was, compactly.
func age(ts, now time.Time) string {
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
