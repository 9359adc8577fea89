package vscroll

import "log/slog"

// BatchLoader reveals a large collection in fixed-size increments, for
// collections that render in full rather than through a viewport window. At
// most one batch load is in flight at a time; loading while a batch is
// outstanding or after exhaustion is a no-op. Like the Engine, a loader is
// owned by a single event loop.
type BatchLoader struct {
	total     int
	revealed  int
	batchSize int
	loading   bool
	seq       uint64

	schedule func(commit func())
	onReveal func(revealed int)
}

// Batch describes one staged reveal: the items [Start, Start+Count) of the
// full collection.
type Batch struct {
	Start int
	Count int

	seq uint64
}

// BatchOption configures a [BatchLoader].
type BatchOption func(*BatchLoader)

// WithBatchSize sets how many items each load reveals. The default is
// [DefaultBatchSize].
func WithBatchSize(n int) BatchOption {
	return func(l *BatchLoader) {
		l.batchSize = n
	}
}

// WithScheduler defers batch commits to the host's next cooperative yield
// point: LoadNextBatch stages a batch and passes its commit to fn instead of
// running it inline. Event-loop hosts hand fn's argument to a deferred task
// (a bubbletea command, a timer); the default scheduler commits immediately.
func WithScheduler(fn func(commit func())) BatchOption {
	return func(l *BatchLoader) {
		l.schedule = fn
	}
}

// WithOnReveal registers a callback observing the revealed count after every
// committed batch.
func WithOnReveal(fn func(revealed int)) BatchOption {
	return func(l *BatchLoader) {
		l.onReveal = fn
	}
}

// NewBatchLoader creates a loader over a collection of total items with
// nothing revealed yet.
func NewBatchLoader(total int, opts ...BatchOption) (*BatchLoader, error) {
	if total < 0 {
		return nil, ErrNegativeCount
	}
	l := &BatchLoader{
		total:     total,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.batchSize < 1 {
		return nil, ErrInvalidBatchSize
	}
	return l, nil
}

// LoadNextBatch stages the next batch and hands its commit to the scheduler.
// While a load is in flight, or once the collection is exhausted, the call
// is a no-op. Returns the revealed count as of the call.
func (l *BatchLoader) LoadNextBatch() int {
	b, ok := l.Begin()
	if !ok {
		return l.revealed
	}
	commit := func() { l.Commit(b) }
	if l.schedule != nil {
		l.schedule(commit)
	} else {
		commit()
	}
	return l.revealed
}

// Begin stages the next batch and marks the loader in flight. It reports
// false when a batch is already outstanding or everything is revealed.
func (l *BatchLoader) Begin() (Batch, bool) {
	if l.loading || l.revealed >= l.total {
		return Batch{}, false
	}
	l.loading = true
	l.seq++
	return Batch{
		Start: l.revealed,
		Count: min(l.batchSize, l.total-l.revealed),
		seq:   l.seq,
	}, true
}

// Commit applies a staged batch and returns the new revealed count. Stale
// batches (from a previous Begin, or after a Cancel) are dropped with a
// warning.
func (l *BatchLoader) Commit(b Batch) int {
	if !l.loading || b.seq != l.seq {
		slog.Warn("stale batch commit dropped", "start", b.Start, "count", b.Count)
		return l.revealed
	}
	l.revealed += b.Count
	l.loading = false
	if l.onReveal != nil {
		l.onReveal(l.revealed)
	}
	return l.revealed
}

// Cancel abandons a staged batch without revealing anything, making the
// loader eligible for another Begin.
func (l *BatchLoader) Cancel(b Batch) {
	if l.loading && b.seq == l.seq {
		l.loading = false
	}
}

// SetTotal resizes the backing collection. The revealed count is clamped
// when the collection shrinks below it.
func (l *BatchLoader) SetTotal(n int) error {
	if n < 0 {
		return ErrNegativeCount
	}
	l.total = n
	if l.revealed > n {
		l.revealed = n
	}
	return nil
}

// Revealed returns how many items are currently revealed. Rendered output is
// always the first Revealed items of the collection in original order.
func (l *BatchLoader) Revealed() int { return l.revealed }

// Total returns the size of the backing collection.
func (l *BatchLoader) Total() int { return l.total }

// Loading reports whether a batch is in flight.
func (l *BatchLoader) Loading() bool { return l.loading }

// Exhausted reports whether every item has been revealed.
func (l *BatchLoader) Exhausted() bool { return l.revealed >= l.total }
