package core

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
)

// KeyMapHelp is implemented by pages that expose their key map to the status
// bar help.
type KeyMapHelp interface {
	Help() help.KeyMap
}

// Title renders a heading followed by a diagonal rule filling the width.
func Title(title string, width int) string {
	t := styles.CurrentTheme()
	fill := max(0, width-lipgloss.Width(title)-1)
	return t.S().Base.Foreground(t.Primary).Bold(true).Render(title) +
		" " +
		t.S().Base.Foreground(t.Primary).Render(strings.Repeat("╱", fill))
}

// Section renders a muted section label followed by a horizontal rule.
func Section(title string, width int) string {
	t := styles.CurrentTheme()
	fill := max(0, width-lipgloss.Width(title)-1)
	return t.S().Subtle.Render(title) +
		" " +
		t.S().Base.Foreground(t.Border).Render(strings.Repeat("─", fill))
}

// StatusOpts configures a single status row: an optional state icon, a
// title, a muted description, and right-aligned extra content.
type StatusOpts struct {
	Icon         string
	Title        string
	Description  string
	ExtraContent string
}

// Status renders one status row truncated to width.
func Status(opts StatusOpts, width int) string {
	t := styles.CurrentTheme()
	var b strings.Builder
	if opts.Icon != "" {
		b.WriteString(opts.Icon)
		b.WriteString(" ")
	}
	b.WriteString(t.S().Base.Render(opts.Title))
	if opts.Description != "" {
		b.WriteString(" ")
		b.WriteString(opts.Description)
	}
	row := b.String()
	if opts.ExtraContent != "" {
		gap := width - lipgloss.Width(row) - lipgloss.Width(opts.ExtraContent) - 1
		if gap < 1 {
			gap = 1
		}
		row += strings.Repeat(" ", gap) + opts.ExtraContent
	}
	return ansi.Truncate(row, width, "…")
}
