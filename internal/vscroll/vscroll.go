// Package vscroll implements the list virtualization engine behind the
// dashboard's scrollable panels. It maintains cumulative item offsets,
// resolves the index window intersecting a viewport, converges dynamic
// height measurements, and signals end-reached, progressive-batch, and
// infinite-scroll loading.
//
// The engine is rendering-agnostic: hosts feed it scroll, resize, and
// measurement events and paint whatever index range it resolves. All types
// in this package are meant to be owned by a single event loop (a bubbletea
// Update loop, for instance) and are not safe for concurrent use.
package vscroll

import (
	"log/slog"
	"math"
)

// Engine owns one virtualization instance: the position table for the
// current collection, its measurement cache, and the viewport state.
type Engine struct {
	opts  options
	count int

	// collectionID identifies the current item set. Replacing the
	// collection drops all measurements; growing or shrinking the same
	// collection keeps them.
	collectionID uint64

	measurements measureCache
	table        positionTable
	dirty        bool
	version      uint64

	offset   float64
	viewport float64
	visible  Range
	endFired bool
}

// New creates an engine for a collection of count items. A negative count
// or an invalid option is a contract violation and returns an error; bad
// data observed later (invalid measured heights, out-of-range indices) is
// sanitized and logged instead.
func New(count int, opts ...Option) (*Engine, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		opts:         o,
		count:        count,
		measurements: newMeasureCache(),
		dirty:        true,
	}
	e.visible = e.RangeAt(e.offset, e.viewport)
	return e, nil
}

// Count returns the number of items in the collection.
func (e *Engine) Count() int { return e.count }

// CollectionID returns the identity of the current collection.
func (e *Engine) CollectionID() uint64 { return e.collectionID }

// Version increments every time a layout input changes (count, collection,
// or a measurement). Hosts key render caches off it.
func (e *Engine) Version() uint64 { return e.version }

// SetCount resizes the current collection in place. Measurements for
// surviving indices are kept; measurements past the new end are dropped.
func (e *Engine) SetCount(n int) error {
	if n < 0 {
		return ErrNegativeCount
	}
	if n == e.count {
		return nil
	}
	if n < e.count {
		e.measurements.dropFrom(n)
	}
	e.count = n
	e.touch()
	e.sync()
	return nil
}

// ResetCollection replaces the item set entirely: the measurement cache is
// cleared wholesale and the end-reached edge flag is re-armed.
func (e *Engine) ResetCollection(id uint64, n int) error {
	if n < 0 {
		return ErrNegativeCount
	}
	e.collectionID = id
	e.count = n
	e.measurements.clear()
	e.endFired = false
	e.touch()
	e.sync()
	return nil
}

// InvalidateAll drops every measurement while keeping the collection, for
// hosts whose item layout changed globally (a width change re-wrapping every
// item, say). A no-op in fixed-height mode.
func (e *Engine) InvalidateAll() {
	if e.fixedMode() {
		return
	}
	if e.measurements.len() == 0 {
		return
	}
	e.measurements.clear()
	e.touch()
	e.sync()
}

// OffsetOf returns the top edge of item i. Indices are clamped: negative
// indices map to 0 and indices at or past the end map to the total height.
func (e *Engine) OffsetOf(i int) float64 {
	e.ensure()
	if i < 0 {
		i = 0
	}
	if i > e.count {
		i = e.count
	}
	return e.topAt(i)
}

// HeightOf returns the effective height of item i in the current layout:
// its measurement if one was reported, otherwise its estimate.
func (e *Engine) HeightOf(i int) float64 {
	if i < 0 || i >= e.count {
		return 0
	}
	e.ensure()
	return e.heightAt(i)
}

// TotalHeight returns the full scrollable extent. Reading it is O(1).
func (e *Engine) TotalHeight() float64 {
	e.ensure()
	if e.fixedMode() {
		return e.opts.fixedHeight * float64(e.count)
	}
	return e.table.total()
}

// Positions materializes the position table, one entry per item.
func (e *Engine) Positions() []ItemPosition {
	e.ensure()
	out := make([]ItemPosition, e.count)
	for i := range out {
		out[i] = ItemPosition{Index: i, Top: e.topAt(i), Height: e.heightAt(i)}
	}
	return out
}

func (e *Engine) fixedMode() bool { return e.opts.fixedHeight > 0 }

func (e *Engine) touch() {
	e.dirty = true
	e.version++
}

// ensure rebuilds the position table if any layout input changed since the
// last build. Builds are all-or-nothing: resolver passes only ever observe a
// completed table.
func (e *Engine) ensure() {
	if e.fixedMode() || !e.dirty {
		return
	}
	e.table = buildPositions(e.count, e.estimateAt, &e.measurements)
	e.dirty = false
}

// topAt is item i's top edge; i == count yields the total height.
func (e *Engine) topAt(i int) float64 {
	if e.fixedMode() {
		return e.opts.fixedHeight * float64(i)
	}
	return e.table.top(i)
}

// bottomAt is item i's bottom edge.
func (e *Engine) bottomAt(i int) float64 {
	if e.fixedMode() {
		return e.opts.fixedHeight * float64(i+1)
	}
	return e.table.top(i + 1)
}

func (e *Engine) heightAt(i int) float64 {
	if e.fixedMode() {
		return e.opts.fixedHeight
	}
	return e.table.height(i)
}

// estimateAt resolves the provisional height for index i from the height
// function, falling back to the configured estimate when the function is
// absent or returns an unusable value.
func (e *Engine) estimateAt(i int) float64 {
	if e.opts.heightFunc == nil {
		return e.opts.estimate
	}
	h := e.opts.heightFunc(i)
	if !validHeight(h) {
		slog.Warn("height function returned an invalid height, using estimate",
			"index", i, "height", h, "estimate", e.opts.estimate)
		return e.opts.estimate
	}
	return h
}

func validHeight(h float64) bool {
	return h > 0 && !math.IsNaN(h) && !math.IsInf(h, 0)
}
