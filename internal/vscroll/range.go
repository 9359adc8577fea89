package vscroll

import (
	"log/slog"
	"math"
	"sort"
)

// Range is an inclusive index window into the item collection.
type Range struct {
	Start int
	End   int
}

// EmptyRange is the resolved range of an empty collection: nothing renders.
var EmptyRange = Range{Start: 0, End: -1}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool { return r.End < r.Start }

// Contains reports whether i falls inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i <= r.End }

// VisibleRange returns the range resolved for the current viewport state.
func (e *Engine) VisibleRange() Range { return e.visible }

// RangeAt resolves the inclusive index window whose items intersect the
// viewport [offset, offset+viewport), expanded by the configured overscan
// and clamped to the collection. Items are half-open extents, so an item
// whose edge only touches the viewport boundary is left to the overscan
// margin. Deterministic: identical inputs yield identical ranges.
//
// The lower bound is a binary search over the cumulative offsets; the upper
// bound is a forward scan over the items whose tops fall inside the
// viewport.
func (e *Engine) RangeAt(offset, viewport float64) Range {
	e.ensure()
	n := e.count
	if n == 0 {
		return EmptyRange
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		slog.Warn("invalid scroll offset, treating as origin", "offset", offset)
		offset = 0
	}
	if math.IsNaN(viewport) || math.IsInf(viewport, 0) {
		slog.Warn("invalid viewport height, treating as degenerate", "viewport", viewport)
		viewport = 0
	}

	// First index whose bottom edge lies past the offset.
	start := sort.Search(n, func(i int) bool { return e.bottomAt(i) > offset })
	if start >= n {
		// Offset at or past the total height: keep the last item.
		start = n - 1
	}

	end := start
	if viewport > 0 {
		bound := offset + viewport
		for end+1 < n && e.topAt(end+1) < bound {
			end++
		}
	}

	start = max(0, start-e.opts.overscan)
	end = min(n-1, end+e.opts.overscan)
	return Range{Start: start, End: end}
}

// DistanceToEnd returns how much scrollable extent remains below the
// viewport, never negative.
func (e *Engine) DistanceToEnd() float64 {
	rest := e.TotalHeight() - (e.offset + e.viewport)
	if rest < 0 {
		return 0
	}
	return rest
}
