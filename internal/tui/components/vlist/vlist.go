// Package vlist is the virtualized list component behind the dashboard
// panels. Items render themselves; the list asks the virtualization engine
// which indices intersect the viewport, renders only those, reports their
// measured heights back, and paints the resulting line window.
package vlist

import (
	"log/slog"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/rivo/uniseg"
	"github.com/zeebo/xxh3"

	"github.com/yousefs-portfolio/devops-dash-sub001/internal/csync"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/metrics"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/components/core/layout"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/tui/util"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/vscroll"
)

const (
	ItemNotFound = -1

	// ViewportDefaultScrollSize is how many lines a plain scroll step moves.
	ViewportDefaultScrollSize = 5

	// Rendering a window can change measured heights, which can shift the
	// window itself. Passes are bounded; positions stop moving as soon as a
	// pass reports no height changes.
	maxMeasurePasses = 4
)

// Item is one list entry. An item paints itself at the width it was given;
// the list never restyles item output, it only windows it.
type Item interface {
	util.Model
	layout.Sizeable
	ID() string
}

// List is a scrollable collection of items backed by a virtualization
// engine. All methods must be called from the program's update loop.
type List[T Item] interface {
	util.Model
	layout.Sizeable
	layout.Focusable

	MoveUp(int) tea.Cmd
	MoveDown(int) tea.Cmd
	GoToTop() tea.Cmd
	GoToBottom() tea.Cmd
	SelectItemAbove() tea.Cmd
	SelectItemBelow() tea.Cmd

	SetItems([]T) tea.Cmd
	AppendItems(...T) tea.Cmd
	PrependItem(T) tea.Cmd
	UpdateItem(string, T) tea.Cmd
	DeleteItem(string) tea.Cmd

	SetSelected(string) tea.Cmd
	SelectedItem() *T
	Items() []T
	AtBottom() bool
	Engine() *vscroll.Engine
}

type renderedItem struct {
	view   string
	height int
}

type confOptions struct {
	width, height  int
	keyMap         KeyMap
	wrap           bool
	focused        bool
	tail           bool
	enableMouse    bool
	selectedItemID string
	engineOpts     []vscroll.Option
}

type list[T Item] struct {
	*confOptions

	eng *vscroll.Engine

	items    []T
	indexMap map[string]int

	renderCache *csync.Map[string, renderedItem]
	lastVersion uint64

	// glued means the view follows the bottom edge as content grows. Only
	// meaningful in tail mode; scrolling away releases it, scrolling back
	// re-engages it.
	glued bool

	selectedIdx     int
	prevSelectedIdx int
}

type ListOption func(*confOptions)

// WithSize sets the initial size of the list.
func WithSize(width, height int) ListOption {
	return func(l *confOptions) {
		l.width = width
		l.height = height
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keyMap KeyMap) ListOption {
	return func(l *confOptions) {
		l.keyMap = keyMap
	}
}

// WithWrapNavigation makes item selection wrap at both ends.
func WithWrapNavigation() ListOption {
	return func(l *confOptions) {
		l.wrap = true
	}
}

// WithFocus sets the initial focus state.
func WithFocus(focus bool) ListOption {
	return func(l *confOptions) {
		l.focused = focus
	}
}

// WithTail glues the view to the bottom while it is already there, the way a
// log follower does. New items appended while scrolled up do not move the
// view.
func WithTail() ListOption {
	return func(l *confOptions) {
		l.tail = true
	}
}

// WithEnableMouse turns on mouse wheel scrolling.
func WithEnableMouse() ListOption {
	return func(l *confOptions) {
		l.enableMouse = true
	}
}

// WithSelectedItem sets the initially selected item.
func WithSelectedItem(id string) ListOption {
	return func(l *confOptions) {
		l.selectedItemID = id
	}
}

// WithEngineOptions passes tuning through to the virtualization engine.
func WithEngineOptions(opts ...vscroll.Option) ListOption {
	return func(l *confOptions) {
		l.engineOpts = append(l.engineOpts, opts...)
	}
}

func New[T Item](items []T, opts ...ListOption) List[T] {
	l := &list[T]{
		confOptions: &confOptions{
			keyMap:  DefaultKeyMap(),
			focused: true,
		},
		items:           items,
		indexMap:        make(map[string]int, len(items)),
		renderCache:     csync.NewMap[string, renderedItem](),
		selectedIdx:     -1,
		prevSelectedIdx: -1,
	}
	for _, opt := range opts {
		opt(l.confOptions)
	}

	// Engine units are terminal lines here, so a single line is the prior
	// for unmeasured items. Caller options may still override it.
	engineOpts := append([]vscroll.Option{vscroll.WithEstimatedItemHeight(1)}, l.engineOpts...)
	eng, err := vscroll.New(len(items), engineOpts...)
	if err != nil {
		// Tuning comes from user config; fall back rather than refuse to draw.
		slog.Warn("Invalid virtualization tuning, using engine defaults", "error", err)
		eng, _ = vscroll.New(len(items), vscroll.WithEstimatedItemHeight(1))
	}
	l.eng = eng
	l.eng.HandleResize(float64(l.height))

	for i, item := range items {
		l.indexMap[item.ID()] = i
	}
	if l.tail {
		l.eng.ScrollTo(l.eng.TotalHeight())
		l.glued = true
	}
	if l.selectedItemID != "" {
		if idx, ok := l.indexMap[l.selectedItemID]; ok {
			l.selectedIdx = idx
		}
		l.selectedItemID = ""
	}
	return l
}

// Init implements List.
func (l *list[T]) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(l.items)+1)
	for _, item := range l.items {
		cmds = append(cmds, item.Init())
	}
	l.setDefaultSelected()
	cmds = append(cmds, l.focusSelectedItem())
	return tea.Batch(cmds...)
}

// Update implements List.
func (l *list[T]) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		if l.enableMouse {
			return l.handleMouseWheel(msg)
		}
		return l, nil
	case tea.KeyPressMsg:
		if !l.focused {
			return l, nil
		}
		switch {
		case key.Matches(msg, l.keyMap.Down):
			return l, l.MoveDown(ViewportDefaultScrollSize)
		case key.Matches(msg, l.keyMap.Up):
			return l, l.MoveUp(ViewportDefaultScrollSize)
		case key.Matches(msg, l.keyMap.DownOneItem):
			return l, l.SelectItemBelow()
		case key.Matches(msg, l.keyMap.UpOneItem):
			return l, l.SelectItemAbove()
		case key.Matches(msg, l.keyMap.HalfPageDown):
			return l, l.MoveDown(l.height / 2)
		case key.Matches(msg, l.keyMap.HalfPageUp):
			return l, l.MoveUp(l.height / 2)
		case key.Matches(msg, l.keyMap.PageDown):
			return l, l.MoveDown(l.height)
		case key.Matches(msg, l.keyMap.PageUp):
			return l, l.MoveUp(l.height)
		case key.Matches(msg, l.keyMap.End):
			return l, l.GoToBottom()
		case key.Matches(msg, l.keyMap.Home):
			return l, l.GoToTop()
		}
		s := l.SelectedItem()
		if s == nil {
			return l, nil
		}
		item := *s
		updated, cmd := item.Update(msg)
		if u, ok := updated.(T); ok {
			return l, tea.Batch(cmd, l.UpdateItem(u.ID(), u))
		}
		return l, cmd
	}
	return l, nil
}

func (l *list[T]) handleMouseWheel(msg tea.MouseWheelMsg) (util.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Button {
	case tea.MouseWheelDown:
		cmd = l.MoveDown(ViewportDefaultScrollSize)
	case tea.MouseWheelUp:
		cmd = l.MoveUp(ViewportDefaultScrollSize)
	}
	return l, cmd
}

// View implements List. The output is plain text, exactly height lines of at
// most width columns; hosts apply their own chrome around it.
func (l *list[T]) View() string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}

	r := l.measureWindow()
	if v := l.eng.Version(); v != l.lastVersion {
		metrics.IndexRebuilt()
		l.lastVersion = v
	}
	if r.Empty() {
		return strings.Repeat("\n", l.height-1)
	}

	var b strings.Builder
	for i := r.Start; i <= r.End; i++ {
		ri := l.renderedFor(i)
		b.WriteString(ri.view)
		if i < r.End {
			b.WriteByte('\n')
		}
	}
	window := b.String()

	cut := int(l.eng.Offset() - l.eng.OffsetOf(r.Start))
	return cutLines(window, cut, l.height)
}

// measureWindow renders the resolved window and feeds measured heights back
// to the engine until positions settle. A glued tail view chases the bottom
// edge between passes, since measuring can move it.
func (l *list[T]) measureWindow() vscroll.Range {
	if l.glued {
		l.eng.ScrollTo(l.eng.TotalHeight())
	}
	r := l.eng.VisibleRange()
	for range maxMeasurePasses {
		changed := false
		for i := r.Start; i <= r.End && i < len(l.items); i++ {
			ri := l.renderedFor(i)
			if l.eng.Report(i, float64(ri.height)) {
				changed = true
			}
		}
		if !changed {
			break
		}
		if l.glued {
			l.eng.ScrollTo(l.eng.TotalHeight())
		}
		r = l.eng.VisibleRange()
	}
	return r
}

func (l *list[T]) renderedFor(i int) renderedItem {
	item := l.items[i]
	if cached, ok := l.renderCache.Get(item.ID()); ok {
		metrics.RenderCacheHit()
		return cached
	}
	metrics.RenderCacheMiss()
	view := item.View()
	ri := renderedItem{view: view, height: lipgloss.Height(view)}
	l.renderCache.Set(item.ID(), ri)
	return ri
}

// cutLines returns count lines of s starting at line cut, padded with blank
// lines when s runs out.
func cutLines(s string, cut, count int) string {
	offsets := []int{0}
	for pos := 0; ; {
		idx := strings.IndexByte(s[pos:], '\n')
		if idx == -1 {
			break
		}
		pos += idx + 1
		offsets = append(offsets, pos)
	}

	cut = ordered.Clamp(cut, 0, len(offsets))
	end := min(len(offsets), cut+count)
	sliced := end - cut

	var out string
	if sliced > 0 {
		start := offsets[cut]
		stop := len(s)
		if end < len(offsets) {
			stop = offsets[end] - 1
		}
		out = s[start:stop]
	}

	if pad := count - sliced; pad > 0 {
		if sliced == 0 {
			out = strings.Repeat("\n", pad-1)
		} else {
			out += strings.Repeat("\n", pad)
		}
	}
	return out
}

// SetItems implements List. The engine treats this as a new collection:
// every measurement is dropped and the end-reached edge re-arms.
func (l *list[T]) SetItems(items []T) tea.Cmd {
	var cmds []tea.Cmd
	l.items = items
	l.indexMap = make(map[string]int, len(items))
	l.renderCache = csync.NewMap[string, renderedItem]()
	for i, item := range items {
		l.indexMap[item.ID()] = i
		cmds = append(cmds, item.Init())
		if l.width > 0 && l.height > 0 {
			cmds = append(cmds, item.SetSize(l.width, l.height))
		}
	}
	if err := l.eng.ResetCollection(collectionID(items), len(items)); err != nil {
		slog.Error("Failed to reset list collection", "error", err)
	}
	l.selectedIdx = -1
	l.prevSelectedIdx = -1
	if l.tail {
		l.eng.ScrollTo(l.eng.TotalHeight())
		l.glued = true
	} else {
		l.eng.ScrollTo(0)
	}
	l.setDefaultSelected()
	cmds = append(cmds, l.focusSelectedItem())
	return tea.Batch(cmds...)
}

// AppendItems implements List. The collection grows in place, so existing
// measurements survive. In tail mode the view stays glued to the bottom if
// it was there already.
func (l *list[T]) AppendItems(items ...T) tea.Cmd {
	if len(items) == 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, item := range items {
		l.indexMap[item.ID()] = len(l.items)
		l.items = append(l.items, item)
		cmds = append(cmds, item.Init())
		if l.width > 0 && l.height > 0 {
			cmds = append(cmds, item.SetSize(l.width, l.height))
		}
	}
	if err := l.eng.SetCount(len(l.items)); err != nil {
		slog.Error("Failed to grow list collection", "error", err)
	}
	if l.glued {
		l.eng.ScrollTo(l.eng.TotalHeight())
	}
	if l.selectedIdx == ItemNotFound {
		l.setDefaultSelected()
		cmds = append(cmds, l.focusSelectedItem())
	}
	return tea.Batch(cmds...)
}

// PrependItem implements List. Indices shift, which invalidates positional
// measurements; rendered views are keyed by ID and survive, so the next
// paint re-measures from cache. The scroll anchor is preserved unless the
// view sits at the very top.
func (l *list[T]) PrependItem(item T) tea.Cmd {
	cmds := []tea.Cmd{item.Init()}
	if l.width > 0 && l.height > 0 {
		cmds = append(cmds, item.SetSize(l.width, l.height))
	}

	l.items = append([]T{item}, l.items...)
	indexMap := make(map[string]int, len(l.items))
	for i, it := range l.items {
		indexMap[it.ID()] = i
	}
	l.indexMap = indexMap
	if l.selectedIdx >= 0 {
		l.selectedIdx++
	}
	if l.prevSelectedIdx >= 0 {
		l.prevSelectedIdx++
	}

	oldOffset := l.eng.Offset()
	if err := l.eng.ResetCollection(collectionID(l.items), len(l.items)); err != nil {
		slog.Error("Failed to reset list collection", "error", err)
	}
	if oldOffset > 0 {
		ri := l.renderedFor(0)
		l.eng.Report(0, float64(ri.height))
		l.eng.ScrollTo(oldOffset + float64(ri.height))
		l.glued = l.tail && l.AtBottom()
	}
	return tea.Batch(cmds...)
}

// UpdateItem implements List.
func (l *list[T]) UpdateItem(id string, item T) tea.Cmd {
	inx, ok := l.indexMap[id]
	if !ok {
		return nil
	}
	l.items[inx] = item
	l.renderCache.Del(id)
	if item.ID() != id {
		delete(l.indexMap, id)
		l.indexMap[item.ID()] = inx
	}
	if l.glued {
		ri := l.renderedFor(inx)
		l.eng.Report(inx, float64(ri.height))
		l.eng.ScrollTo(l.eng.TotalHeight())
	}
	return nil
}

// DeleteItem implements List.
func (l *list[T]) DeleteItem(id string) tea.Cmd {
	inx, ok := l.indexMap[id]
	if !ok {
		return nil
	}
	l.items = slices.Delete(l.items, inx, inx+1)
	l.renderCache.Del(id)
	delete(l.indexMap, id)
	for i := inx; i < len(l.items); i++ {
		l.indexMap[l.items[i].ID()] = i
	}

	switch {
	case l.selectedIdx == inx:
		if inx > 0 {
			l.selectedIdx = inx - 1
		} else {
			l.selectedIdx = -1
		}
	case l.selectedIdx > inx:
		l.selectedIdx--
	}
	switch {
	case l.prevSelectedIdx == inx:
		l.prevSelectedIdx = -1
	case l.prevSelectedIdx > inx:
		l.prevSelectedIdx--
	}

	if err := l.eng.ResetCollection(collectionID(l.items), len(l.items)); err != nil {
		slog.Error("Failed to reset list collection", "error", err)
	}
	return l.focusSelectedItem()
}

// SetSelected implements List.
func (l *list[T]) SetSelected(id string) tea.Cmd {
	l.prevSelectedIdx = l.selectedIdx
	if idx, ok := l.indexMap[id]; ok {
		l.selectedIdx = idx
	} else {
		l.selectedIdx = -1
	}
	l.scrollToSelection()
	return l.focusSelectedItem()
}

// SelectedItem implements List.
func (l *list[T]) SelectedItem() *T {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.items) {
		return nil
	}
	item := l.items[l.selectedIdx]
	return &item
}

// Items implements List.
func (l *list[T]) Items() []T {
	return slices.Clone(l.items)
}

// AtBottom reports whether the view is within one line of the end of the
// scrollable extent.
func (l *list[T]) AtBottom() bool {
	return l.eng.DistanceToEnd() < 1
}

// Engine exposes the backing virtualization engine so hosts can wire
// end-reached probes and loaders to it.
func (l *list[T]) Engine() *vscroll.Engine {
	return l.eng
}

// MoveDown implements List.
func (l *list[T]) MoveDown(n int) tea.Cmd {
	before := l.eng.Offset()
	l.eng.HandleScroll(before + float64(n))
	l.glued = l.tail && l.AtBottom()
	if l.eng.Offset() == before {
		return nil
	}
	return l.keepSelectionInView()
}

// MoveUp implements List.
func (l *list[T]) MoveUp(n int) tea.Cmd {
	before := l.eng.Offset()
	l.eng.HandleScroll(before - float64(n))
	l.glued = l.tail && l.AtBottom()
	if l.eng.Offset() == before {
		return nil
	}
	return l.keepSelectionInView()
}

// GoToTop implements List.
func (l *list[T]) GoToTop() tea.Cmd {
	l.eng.ScrollTo(0)
	l.glued = l.tail && l.AtBottom()
	l.prevSelectedIdx = l.selectedIdx
	l.selectedIdx = l.firstSelectableItemBelow(-1)
	return l.focusSelectedItem()
}

// GoToBottom implements List.
func (l *list[T]) GoToBottom() tea.Cmd {
	l.eng.ScrollTo(l.eng.TotalHeight())
	l.glued = l.tail
	l.prevSelectedIdx = l.selectedIdx
	l.selectedIdx = l.firstSelectableItemAbove(len(l.items))
	return l.focusSelectedItem()
}

// SelectItemAbove implements List.
func (l *list[T]) SelectItemAbove() tea.Cmd {
	if l.selectedIdx < 0 {
		return nil
	}
	newIndex := l.firstSelectableItemAbove(l.selectedIdx)
	if newIndex == ItemNotFound {
		return nil
	}
	l.prevSelectedIdx = l.selectedIdx
	l.selectedIdx = newIndex
	l.scrollToSelection()
	return l.focusSelectedItem()
}

// SelectItemBelow implements List.
func (l *list[T]) SelectItemBelow() tea.Cmd {
	if l.selectedIdx < 0 {
		return nil
	}
	newIndex := l.firstSelectableItemBelow(l.selectedIdx)
	if newIndex == ItemNotFound {
		return nil
	}
	l.prevSelectedIdx = l.selectedIdx
	l.selectedIdx = newIndex
	l.scrollToSelection()
	return l.focusSelectedItem()
}

func (l *list[T]) setDefaultSelected() {
	if l.selectedIdx >= 0 {
		return
	}
	if l.tail {
		l.selectedIdx = l.firstSelectableItemAbove(len(l.items))
	} else {
		l.selectedIdx = l.firstSelectableItemBelow(-1)
	}
}

func (l *list[T]) firstSelectableItemAbove(inx int) int {
	for i := inx - 1; i >= 0; i-- {
		if _, ok := any(l.items[i]).(layout.Focusable); ok {
			return i
		}
	}
	if inx == 0 && l.wrap {
		return l.firstSelectableItemAbove(len(l.items))
	}
	return ItemNotFound
}

func (l *list[T]) firstSelectableItemBelow(inx int) int {
	for i := inx + 1; i < len(l.items); i++ {
		if _, ok := any(l.items[i]).(layout.Focusable); ok {
			return i
		}
	}
	if inx == len(l.items)-1 && l.wrap {
		return l.firstSelectableItemBelow(-1)
	}
	return ItemNotFound
}

// scrollToSelection moves the viewport the minimal amount that reveals the
// selected item.
func (l *list[T]) scrollToSelection() {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.items) {
		return
	}
	top := l.eng.OffsetOf(l.selectedIdx)
	bottom := top + l.eng.HeightOf(l.selectedIdx)
	offset := l.eng.Offset()
	viewport := l.eng.Viewport()
	switch {
	case top < offset:
		l.eng.ScrollTo(top)
	case bottom > offset+viewport:
		l.eng.ScrollTo(bottom - viewport)
	default:
		return
	}
	l.glued = l.tail && l.AtBottom()
}

// keepSelectionInView drags the selection along while the viewport scrolls
// past it, matching how item-wise navigation behaves in the inverse case.
func (l *list[T]) keepSelectionInView() tea.Cmd {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.items) {
		return nil
	}
	offset := l.eng.Offset()
	bound := offset + l.eng.Viewport()
	top := l.eng.OffsetOf(l.selectedIdx)
	bottom := top + l.eng.HeightOf(l.selectedIdx)

	// Taller than the viewport or still intersecting it: leave it alone.
	if bottom > offset && top < bound {
		return nil
	}

	if bottom <= offset {
		for inx := l.selectedIdx; ; {
			inx = l.firstSelectableItemBelow(inx)
			if inx == ItemNotFound {
				return nil
			}
			if l.eng.OffsetOf(inx)+l.eng.HeightOf(inx) > offset {
				l.prevSelectedIdx = l.selectedIdx
				l.selectedIdx = inx
				return l.focusSelectedItem()
			}
		}
	}

	for inx := l.selectedIdx; ; {
		inx = l.firstSelectableItemAbove(inx)
		if inx == ItemNotFound {
			return nil
		}
		if l.eng.OffsetOf(inx) < bound {
			l.prevSelectedIdx = l.selectedIdx
			l.selectedIdx = inx
			return l.focusSelectedItem()
		}
	}
}

func (l *list[T]) focusSelectedItem() tea.Cmd {
	if l.selectedIdx < 0 || !l.focused {
		return nil
	}
	cmds := make([]tea.Cmd, 0, 2)
	if l.prevSelectedIdx >= 0 && l.prevSelectedIdx != l.selectedIdx && l.prevSelectedIdx < len(l.items) {
		prev := l.items[l.prevSelectedIdx]
		if f, ok := any(prev).(layout.Focusable); ok && f.IsFocused() {
			cmds = append(cmds, f.Blur())
			l.renderCache.Del(prev.ID())
		}
	}
	if l.selectedIdx < len(l.items) {
		item := l.items[l.selectedIdx]
		if f, ok := any(item).(layout.Focusable); ok && !f.IsFocused() {
			cmds = append(cmds, f.Focus())
			l.renderCache.Del(item.ID())
		}
	}
	l.prevSelectedIdx = l.selectedIdx
	return tea.Batch(cmds...)
}

func (l *list[T]) blurSelectedItem() tea.Cmd {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.items) || l.focused {
		return nil
	}
	item := l.items[l.selectedIdx]
	if f, ok := any(item).(layout.Focusable); ok && f.IsFocused() {
		l.renderCache.Del(item.ID())
		return f.Blur()
	}
	return nil
}

// Focus implements List.
func (l *list[T]) Focus() tea.Cmd {
	l.focused = true
	return l.focusSelectedItem()
}

// Blur implements List.
func (l *list[T]) Blur() tea.Cmd {
	l.focused = false
	return l.blurSelectedItem()
}

// IsFocused implements List.
func (l *list[T]) IsFocused() bool {
	return l.focused
}

// GetSize implements List.
func (l *list[T]) GetSize() (int, int) {
	return l.width, l.height
}

// SetSize implements List. A width change re-wraps every item, so all
// rendered views and measurements are dropped.
func (l *list[T]) SetSize(width, height int) tea.Cmd {
	oldWidth := l.width
	l.width, l.height = width, height
	l.eng.HandleResize(float64(height))
	if oldWidth == width {
		return nil
	}
	l.renderCache = csync.NewMap[string, renderedItem]()
	l.eng.InvalidateAll()
	var cmds []tea.Cmd
	for _, item := range l.items {
		cmds = append(cmds, item.SetSize(width, height))
	}
	return tea.Batch(cmds...)
}

// collectionID derives a stable identity for an item set from its IDs.
func collectionID[T Item](items []T) uint64 {
	h := xxh3.New()
	for _, item := range items {
		_, _ = h.WriteString(item.ID())
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// HighlightMatches restyles the grapheme clusters of s whose byte offsets
// appear in indexes, the shape fuzzy matchers report hits in.
func HighlightMatches(s string, indexes []int, style lipgloss.Style) string {
	if len(indexes) == 0 {
		return s
	}
	matched := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		matched[i] = struct{}{}
	}
	var b strings.Builder
	gr := uniseg.NewGraphemes(s)
	offset := 0
	for gr.Next() {
		cluster := gr.Str()
		if _, ok := matched[offset]; ok {
			b.WriteString(style.Render(cluster))
		} else {
			b.WriteString(cluster)
		}
		offset += len(cluster)
	}
	return b.String()
}
