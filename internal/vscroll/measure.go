package vscroll

import "log/slog"

// measureCache maps item indices to observed heights for the current
// collection. Entries persist across rebuilds and are dropped wholesale when
// the collection identity changes.
type measureCache struct {
	heights map[int]float64
}

func newMeasureCache() measureCache {
	return measureCache{heights: make(map[int]float64)}
}

// store records an observed height and reports whether the stored value
// changed. An equal report returns false, which is what keeps a stabilized
// measurement from retriggering rebuilds.
func (c *measureCache) store(index int, h float64) bool {
	prev, ok := c.heights[index]
	if ok && prev == h {
		return false
	}
	c.heights[index] = h
	return true
}

func (c *measureCache) get(index int) (float64, bool) {
	h, ok := c.heights[index]
	return h, ok
}

func (c *measureCache) dropFrom(index int) {
	for i := range c.heights {
		if i >= index {
			delete(c.heights, i)
		}
	}
}

func (c *measureCache) clear() {
	clear(c.heights)
}

func (c *measureCache) len() int { return len(c.heights) }

// Report feeds an observed item height back into the engine after the host
// laid the item out. It returns true when the measurement changed the
// layout, which is the host's cue that positions shifted and the visible
// range may need a fresh pass.
//
// In fixed-height mode reports are no-ops. An out-of-range index or an
// unusable height (zero, negative, or non-finite) is dropped with a warning;
// the item keeps its last known height.
func (e *Engine) Report(index int, height float64) bool {
	if e.fixedMode() {
		slog.Debug("measurement ignored in fixed-height mode", "index", index)
		return false
	}
	if index < 0 || index >= e.count {
		slog.Warn("measurement for out-of-range index dropped",
			"index", index, "count", e.count)
		return false
	}
	if !validHeight(height) {
		slog.Warn("invalid measured height dropped",
			"index", index, "height", height, "estimate", e.opts.estimate)
		return false
	}
	if !e.measurements.store(index, height) {
		return false
	}
	e.touch()
	e.sync()
	return true
}

// MeasuredCount returns how many items currently have a reported height.
func (e *Engine) MeasuredCount() int { return e.measurements.len() }
