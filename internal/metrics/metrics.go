package metrics

import (
	"sync/atomic"
	"time"
)

// Counters accumulates virtualization and UI activity for the status
// line. All methods are safe for concurrent use.
type Counters struct {
	renderCacheHits    atomic.Int64
	renderCacheMisses  atomic.Int64
	indexRebuilds      atomic.Int64
	batchesLoaded      atomic.Int64
	itemsRevealed      atomic.Int64
	endReachedFirings  atomic.Int64
	triggerInvocations atomic.Int64

	started atomic.Int64 // unix nanoseconds
}

// NewCounters creates a counter set with the uptime clock started.
func NewCounters() *Counters {
	c := &Counters{}
	c.started.Store(time.Now().UnixNano())
	return c
}

// RenderCacheHit records a rendered line served from cache.
func (c *Counters) RenderCacheHit() {
	c.renderCacheHits.Add(1)
}

// RenderCacheMiss records a rendered line that had to be produced fresh.
func (c *Counters) RenderCacheMiss() {
	c.renderCacheMisses.Add(1)
}

// IndexRebuilt records a position table rebuild.
func (c *Counters) IndexRebuilt() {
	c.indexRebuilds.Add(1)
}

// BatchLoaded records a committed batch and the items it revealed.
func (c *Counters) BatchLoaded(items int) {
	c.batchesLoaded.Add(1)
	c.itemsRevealed.Add(int64(items))
}

// EndReachedFired records an end-of-list callback firing.
func (c *Counters) EndReachedFired() {
	c.endReachedFirings.Add(1)
}

// TriggerInvoked records a visibility trigger invocation.
func (c *Counters) TriggerInvoked() {
	c.triggerInvocations.Add(1)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Uptime             time.Duration
	RenderCacheHits    int64
	RenderCacheMisses  int64
	IndexRebuilds      int64
	BatchesLoaded      int64
	ItemsRevealed      int64
	EndReachedFirings  int64
	TriggerInvocations int64
}

// CacheHitRate returns the fraction of render lookups served from cache,
// or zero before any lookup happened.
func (s Snapshot) CacheHitRate() float64 {
	total := s.RenderCacheHits + s.RenderCacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.RenderCacheHits) / float64(total)
}

// Snapshot copies the current counter values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Uptime:             time.Since(time.Unix(0, c.started.Load())),
		RenderCacheHits:    c.renderCacheHits.Load(),
		RenderCacheMisses:  c.renderCacheMisses.Load(),
		IndexRebuilds:      c.indexRebuilds.Load(),
		BatchesLoaded:      c.batchesLoaded.Load(),
		ItemsRevealed:      c.itemsRevealed.Load(),
		EndReachedFirings:  c.endReachedFirings.Load(),
		TriggerInvocations: c.triggerInvocations.Load(),
	}
}

// Reset zeroes every counter and restarts the uptime clock.
func (c *Counters) Reset() {
	c.renderCacheHits.Store(0)
	c.renderCacheMisses.Store(0)
	c.indexRebuilds.Store(0)
	c.batchesLoaded.Store(0)
	c.itemsRevealed.Store(0)
	c.endReachedFirings.Store(0)
	c.triggerInvocations.Store(0)
	c.started.Store(time.Now().UnixNano())
}

// Default is the process-wide counter set.
var Default = NewCounters()

func RenderCacheHit()       { Default.RenderCacheHit() }
func RenderCacheMiss()      { Default.RenderCacheMiss() }
func IndexRebuilt()         { Default.IndexRebuilt() }
func BatchLoaded(items int) { Default.BatchLoaded(items) }
func EndReachedFired()      { Default.EndReachedFired() }
func TriggerInvoked()       { Default.TriggerInvoked() }

// Current snapshots the process-wide counters.
func Current() Snapshot {
	return Default.Snapshot()
}
