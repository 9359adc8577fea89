package styles

import (
	"image/color"
	"sync"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Theme is the palette and the shared styles every component draws from.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	// Backgrounds
	BgBase        color.Color
	BgBaseLighter color.Color
	BgSubtle      color.Color
	BgOverlay     color.Color

	// Foregrounds
	FgBase      color.Color
	FgMuted     color.Color
	FgHalfMuted color.Color
	FgSubtle    color.Color
	FgSelected  color.Color

	// Borders
	Border      color.Color
	BorderFocus color.Color

	// Status
	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	// Colors
	White color.Color

	BlueLight color.Color
	BlueDark  color.Color
	Blue      color.Color

	Yellow color.Color
	Citron color.Color

	Green      color.Color
	GreenDark  color.Color
	GreenLight color.Color

	Red      color.Color
	RedDark  color.Color
	RedLight color.Color
	Cherry   color.Color

	TextSelection lipgloss.Style

	// Source state dots.
	ItemOfflineIcon lipgloss.Style
	ItemBusyIcon    lipgloss.Style
	ItemErrorIcon   lipgloss.Style
	ItemOnlineIcon  lipgloss.Style

	styles *Styles
}

// Styles are precomposed lipgloss styles for the common text roles.
type Styles struct {
	Base   lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	Help      help.Styles
	TextInput textinput.Styles
}

// S returns the theme's composed styles, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:   base,
		Text:   base.Foreground(t.FgBase),
		Muted:  base.Foreground(t.FgMuted),
		Subtle: base.Foreground(t.FgSubtle),

		Help: help.Styles{
			ShortKey:       base.Foreground(t.FgMuted),
			ShortDesc:      base.Foreground(t.FgSubtle),
			ShortSeparator: base.Foreground(t.Border),
			Ellipsis:       base.Foreground(t.Border),
			FullKey:        base.Foreground(t.FgMuted),
			FullDesc:       base.Foreground(t.FgSubtle),
			FullSeparator:  base.Foreground(t.Border),
		},

		TextInput: textinput.Styles{
			Focused: textinput.StyleState{
				Text:        base,
				Placeholder: base.Foreground(t.FgSubtle),
				Prompt:      base.Foreground(t.Tertiary),
				Suggestion:  base.Foreground(t.FgSubtle),
			},
			Blurred: textinput.StyleState{
				Text:        base,
				Placeholder: base.Foreground(t.FgSubtle),
				Prompt:      base.Foreground(t.FgMuted),
				Suggestion:  base.Foreground(t.FgSubtle),
			},
			Cursor: textinput.CursorStyle{
				Color: t.Secondary,
				Shape: tea.CursorBar,
				Blink: true,
			},
		},
	}
}

var (
	currentTheme     *Theme
	currentThemeOnce sync.Once
)

// CurrentTheme returns the active theme, initializing the default on first
// use.
func CurrentTheme() *Theme {
	currentThemeOnce.Do(func() {
		currentTheme = NewCharmtoneTheme()
	})
	return currentTheme
}
