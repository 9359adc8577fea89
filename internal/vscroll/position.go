package vscroll

// ItemPosition is one row of the position table: the cumulative offset of
// the item's top edge and its effective height in the current layout.
type ItemPosition struct {
	Index  int
	Top    float64
	Height float64
}

// positionTable stores cumulative offsets as a prefix array with count+1
// entries: tops[i] is item i's top edge, tops[count] the total height. The
// closed prefix makes offset and total lookups O(1) and gives the resolver a
// monotonic sequence to bisect.
type positionTable struct {
	tops  []float64
	count int
}

// buildPositions accumulates offsets for count items in index order. The
// height of each item is its measurement when one exists, otherwise the
// estimate for its index. Pure: identical inputs produce identical tables.
func buildPositions(count int, estimateAt func(int) float64, measurements *measureCache) positionTable {
	tops := make([]float64, count+1)
	for i := range count {
		h, ok := measurements.get(i)
		if !ok {
			h = estimateAt(i)
		}
		tops[i+1] = tops[i] + h
	}
	return positionTable{tops: tops, count: count}
}

func (t positionTable) top(i int) float64 {
	if len(t.tops) == 0 {
		return 0
	}
	return t.tops[i]
}

func (t positionTable) height(i int) float64 {
	if len(t.tops) == 0 {
		return 0
	}
	return t.tops[i+1] - t.tops[i]
}

func (t positionTable) total() float64 {
	if len(t.tops) == 0 {
		return 0
	}
	return t.tops[t.count]
}
