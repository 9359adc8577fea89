package vlist

import (
	"regexp"
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sahilm/fuzzy"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core/layout"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/styles"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
)

// Pre-compiled regex for checking if a string is alphanumeric.
var alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]*$`)

// FilterableItem is an Item that exposes the text a filter query runs
// against.
type FilterableItem interface {
	Item
	FilterValue() string
}

// HasMatchIndexes is implemented by items that can highlight the byte
// offsets a fuzzy match hit.
type HasMatchIndexes interface {
	MatchIndexes([]int)
}

type FilterableList[T FilterableItem] interface {
	List[T]
	Filter(query string) tea.Cmd
	Query() string
	Cursor() *tea.Cursor
	SetInputWidth(int)
	SetInputPlaceholder(string)
}

type filterableOptions struct {
	listOptions []ListOption
	inputStyle  lipgloss.Style
	placeholder string
	inputHidden bool
}

type FilterableOption func(*filterableOptions)

// WithFilterPlaceholder sets the filter input placeholder.
func WithFilterPlaceholder(placeholder string) FilterableOption {
	return func(f *filterableOptions) {
		f.placeholder = placeholder
	}
}

// WithFilterInputStyle sets the style of the filter input.
func WithFilterInputStyle(style lipgloss.Style) FilterableOption {
	return func(f *filterableOptions) {
		f.inputStyle = style
	}
}

// WithFilterInputHidden hides the filter input, leaving filtering to an
// external caller through Filter.
func WithFilterInputHidden() FilterableOption {
	return func(f *filterableOptions) {
		f.inputHidden = true
	}
}

// WithFilterListOptions passes options through to the inner list.
func WithFilterListOptions(opts ...ListOption) FilterableOption {
	return func(f *filterableOptions) {
		f.listOptions = append(f.listOptions, opts...)
	}
}

type filterableList[T FilterableItem] struct {
	*list[T]
	*filterableOptions
	width, height int

	// stores all available items
	allItems []T

	input      textinput.Model
	inputWidth int
	query      string
}

func NewFilterableList[T FilterableItem](items []T, opts ...FilterableOption) FilterableList[T] {
	t := styles.CurrentTheme()

	f := &filterableList[T]{
		filterableOptions: &filterableOptions{
			inputStyle:  t.S().Base,
			placeholder: "Type to filter",
		},
		allItems: items,
	}
	for _, opt := range opts {
		opt(f.filterableOptions)
	}
	f.list = New(items, f.listOptions...).(*list[T])

	f.updateKeyMaps()

	if f.inputHidden {
		return f
	}

	ti := textinput.New()
	ti.Placeholder = f.placeholder
	ti.SetVirtualCursor(false)
	ti.Focus()
	ti.SetStyles(t.S().TextInput)
	f.input = ti
	return f
}

func (f *filterableList[T]) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		// handle movements
		case key.Matches(msg, f.keyMap.Down),
			key.Matches(msg, f.keyMap.Up),
			key.Matches(msg, f.keyMap.DownOneItem),
			key.Matches(msg, f.keyMap.UpOneItem),
			key.Matches(msg, f.keyMap.HalfPageDown),
			key.Matches(msg, f.keyMap.HalfPageUp),
			key.Matches(msg, f.keyMap.PageDown),
			key.Matches(msg, f.keyMap.PageUp),
			key.Matches(msg, f.keyMap.End),
			key.Matches(msg, f.keyMap.Home):
			u, cmd := f.list.Update(msg)
			f.list = u.(*list[T])
			return f, cmd
		default:
			if !f.inputHidden {
				var cmds []tea.Cmd
				var cmd tea.Cmd
				f.input, cmd = f.input.Update(msg)
				cmds = append(cmds, cmd)

				if f.query != f.input.Value() {
					cmd = f.Filter(f.input.Value())
					cmds = append(cmds, cmd)
				}
				f.query = f.input.Value()
				return f, tea.Batch(cmds...)
			}
		}
	case tea.PasteMsg:
		if !f.inputHidden {
			var cmds []tea.Cmd
			var cmd tea.Cmd
			f.input, cmd = f.input.Update(msg)
			cmds = append(cmds, cmd)

			if f.query != f.input.Value() {
				cmd = f.Filter(f.input.Value())
				cmds = append(cmds, cmd)
			}
			f.query = f.input.Value()
			return f, tea.Batch(cmds...)
		}
	}
	u, cmd := f.list.Update(msg)
	f.list = u.(*list[T])
	return f, cmd
}

func (f *filterableList[T]) View() string {
	if f.inputHidden {
		return f.list.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		f.inputStyle.Render(f.input.View()),
		f.list.View(),
	)
}

// removes bindings that are used for search
func (f *filterableList[T]) updateKeyMaps() {
	removeLettersAndNumbers := func(bindings []string) []string {
		var keep []string
		for _, b := range bindings {
			if len(b) != 1 {
				keep = append(keep, b)
				continue
			}
			if b == " " {
				continue
			}
			m := alphanumericRegex.MatchString(b)
			if !m {
				keep = append(keep, b)
			}
		}
		return keep
	}

	updateBinding := func(binding key.Binding) key.Binding {
		newKeys := removeLettersAndNumbers(binding.Keys())
		if len(newKeys) == 0 {
			binding.SetEnabled(false)
			return binding
		}
		binding.SetKeys(newKeys...)
		return binding
	}

	f.keyMap.Down = updateBinding(f.keyMap.Down)
	f.keyMap.Up = updateBinding(f.keyMap.Up)
	f.keyMap.DownOneItem = updateBinding(f.keyMap.DownOneItem)
	f.keyMap.UpOneItem = updateBinding(f.keyMap.UpOneItem)
	f.keyMap.HalfPageDown = updateBinding(f.keyMap.HalfPageDown)
	f.keyMap.HalfPageUp = updateBinding(f.keyMap.HalfPageUp)
	f.keyMap.PageDown = updateBinding(f.keyMap.PageDown)
	f.keyMap.PageUp = updateBinding(f.keyMap.PageUp)
	f.keyMap.End = updateBinding(f.keyMap.End)
	f.keyMap.Home = updateBinding(f.keyMap.Home)
}

func (f *filterableList[T]) GetSize() (int, int) {
	return f.width, f.height
}

func (f *filterableList[T]) SetSize(w, h int) tea.Cmd {
	f.width = w
	f.height = h
	if f.inputHidden {
		return f.list.SetSize(w, h)
	}
	if f.inputWidth == 0 {
		f.input.SetWidth(w)
	} else {
		f.input.SetWidth(f.inputWidth)
	}
	return f.list.SetSize(w, h-f.inputHeight())
}

func (f *filterableList[T]) inputHeight() int {
	return lipgloss.Height(f.inputStyle.Render(f.input.View()))
}

func (f *filterableList[T]) clearItemState() []tea.Cmd {
	var cmds []tea.Cmd
	for _, item := range f.allItems {
		if i, ok := any(item).(layout.Focusable); ok {
			cmds = append(cmds, i.Blur())
		}
		if i, ok := any(item).(HasMatchIndexes); ok {
			i.MatchIndexes(make([]int, 0))
		}
	}
	return cmds
}

func (f *filterableList[T]) setMatchIndexes(item T, indexes []int) {
	if i, ok := any(item).(HasMatchIndexes); ok {
		i.MatchIndexes(indexes)
	}
}

func (f *filterableList[T]) Filter(query string) tea.Cmd {
	f.query = query
	cmds := f.clearItemState()

	if query == "" {
		cmds = append(cmds, f.list.SetItems(f.allItems))
		return tea.Batch(cmds...)
	}

	query = strings.ToLower(strings.ReplaceAll(query, " ", ""))

	names := make([]string, len(f.allItems))
	for i, item := range f.allItems {
		names[i] = strings.ToLower(item.FilterValue())
	}

	matches := fuzzy.Find(query, names)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	matchedItems := make([]T, 0, len(matches))
	for _, match := range matches {
		item := f.allItems[match.Index]
		f.setMatchIndexes(item, match.MatchedIndexes)
		matchedItems = append(matchedItems, item)
	}

	cmds = append(cmds, f.list.SetItems(matchedItems))
	return tea.Batch(cmds...)
}

// Query returns the current filter query.
func (f *filterableList[T]) Query() string {
	return f.query
}

// SetItems implements List. It replaces the unfiltered item set and clears
// any active filter.
func (f *filterableList[T]) SetItems(items []T) tea.Cmd {
	f.allItems = items
	f.query = ""
	if !f.inputHidden {
		f.input.SetValue("")
	}
	return f.list.SetItems(items)
}

// AppendItems implements List. Appends are held back from view while a
// filter is active and reappear when it clears.
func (f *filterableList[T]) AppendItems(items ...T) tea.Cmd {
	f.allItems = append(f.allItems, items...)
	if f.query != "" {
		return nil
	}
	return f.list.AppendItems(items...)
}

func (f *filterableList[T]) Cursor() *tea.Cursor {
	if f.inputHidden {
		return nil
	}
	return f.input.Cursor()
}

func (f *filterableList[T]) Blur() tea.Cmd {
	f.input.Blur()
	return f.list.Blur()
}

func (f *filterableList[T]) Focus() tea.Cmd {
	f.input.Focus()
	return f.list.Focus()
}

func (f *filterableList[T]) IsFocused() bool {
	return f.list.IsFocused()
}

func (f *filterableList[T]) SetInputWidth(w int) {
	f.inputWidth = w
}

func (f *filterableList[T]) SetInputPlaceholder(ph string) {
	f.input.Placeholder = ph
	f.placeholder = ph
}
