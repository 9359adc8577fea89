package vscroll

import (
	"log/slog"
	"math"
)

// Offset returns the current scroll offset.
func (e *Engine) Offset() float64 { return e.offset }

// Viewport returns the current viewport height.
func (e *Engine) Viewport() float64 { return e.viewport }

// HandleScroll processes one scroll event: the offset is clamped to the
// scrollable extent, the onScroll callback observes the processed offset,
// the visible range is recomputed, and the end-reached predicate is
// evaluated. It returns the predicate's value; the callback itself is
// edge-triggered and fires at most once per crossing.
func (e *Engine) HandleScroll(offset float64) bool {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		slog.Warn("invalid scroll offset dropped", "offset", offset)
		return e.endFired
	}
	e.offset = e.clampOffset(offset)
	if e.opts.onScroll != nil {
		e.opts.onScroll(e.offset)
	}
	e.refreshRange()
	return e.checkEndReached()
}

// HandleResize processes a viewport height change and forces a resolver
// pass. The end-reached edge flag is left alone: resizing never re-arms or
// fires the callback.
func (e *Engine) HandleResize(viewport float64) {
	if math.IsNaN(viewport) || math.IsInf(viewport, 0) {
		slog.Warn("invalid viewport height dropped", "viewport", viewport)
		return
	}
	e.viewport = viewport
	e.offset = e.clampOffset(e.offset)
	e.refreshRange()
}

// ScrollTo scrolls to an absolute offset through the regular scroll path.
func (e *Engine) ScrollTo(offset float64) {
	e.HandleScroll(offset)
}

// ScrollToItem aligns the top of item i with the top of the viewport,
// clamped to the scrollable extent.
func (e *Engine) ScrollToItem(i int) {
	e.HandleScroll(e.OffsetOf(i))
}

// EndReached reports whether the edge flag is currently set, that is, the
// last evaluation of the threshold predicate was true.
func (e *Engine) EndReached() bool { return e.endFired }

func (e *Engine) clampOffset(offset float64) float64 {
	maxOffset := e.TotalHeight() - e.viewport
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}

// sync reconciles derived state after a layout mutation (count, collection,
// or measurement change): the offset is re-clamped against the new total and
// the range and end-reached predicate are re-evaluated. Unlike HandleScroll
// this never invokes onScroll, since no scroll event occurred.
func (e *Engine) sync() {
	e.offset = e.clampOffset(e.offset)
	e.refreshRange()
	e.checkEndReached()
}

func (e *Engine) refreshRange() {
	r := e.RangeAt(e.offset, e.viewport)
	if r == e.visible {
		return
	}
	e.visible = r
	if e.opts.onRangeChanged != nil {
		e.opts.onRangeChanged(r)
	}
}

// checkEndReached evaluates offset+viewport >= total*threshold and fires the
// callback on the rising edge only. The flag re-arms when the predicate
// turns false, so re-entering the threshold zone after leaving it fires
// again.
func (e *Engine) checkEndReached() bool {
	if e.count == 0 {
		e.endFired = false
		return false
	}
	total := e.TotalHeight()
	if total <= 0 {
		e.endFired = false
		return false
	}
	crossed := e.offset+e.viewport >= total*e.opts.threshold
	switch {
	case crossed && !e.endFired:
		e.endFired = true
		if e.opts.onEndReached != nil {
			e.opts.onEndReached()
		}
	case !crossed && e.endFired:
		e.endFired = false
	}
	return crossed
}
