package region

import (
	"sync/atomic"

	"github.com/orizon-lang/regionrt/internal/atomicx"
)

// DefaultPoolBound is the build-time capacity of the free-page pool: the
// maximum number of reusable pages a root may cache before reclamation
// starts handing pages back to the page source.
const DefaultPoolBound = 1024

// RootConfig configures a Root at construction. The zero value selects the
// build-time defaults.
type RootConfig struct {
	// PoolBound caps the free-page pool. Zero selects DefaultPoolBound.
	PoolBound int

	// Source supplies and takes back OS-level pages. Nil selects the
	// platform default page source.
	Source PageSource
}

// Root is the per-owning-thread state of the region manager: the epoch
// counter, the bounded free-page pool, and the page source. A Root and
// every region anchored to it must only be mutated by the owning thread;
// the atomic accessors exist solely so best-effort observers (metering,
// the debug inspector) can read without racing the owner.
type Root struct {
	// currentTime is the monotonically non-decreasing epoch counter.
	// Advancement belongs to the allocation subsystem; the reclaimer only
	// reads it for freshness classification.
	currentTime uint64

	// pagePool is a singly linked free list of reusable pages, collectively
	// owned by the pool. pooledPages counts them and never exceeds poolBound
	// after a reclamation.
	pagePool    *Page
	pooledPages int64
	poolBound   int64

	source PageSource

	meter Meter
}

// NewRoot creates a root with the given configuration.
func NewRoot(cfg RootConfig) *Root {
	bound := int64(cfg.PoolBound)
	if bound <= 0 {
		bound = DefaultPoolBound
	}
	src := cfg.Source
	if src == nil {
		src = defaultPageSource()
	}
	return &Root{
		poolBound: bound,
		source:    src,
	}
}

// AdvanceEpoch moves the root into the next epoch. Regions not touched
// again afterwards become zombies and will be reclaimed in full.
func (root *Root) AdvanceEpoch() {
	atomic.AddUint64(&root.currentTime, 1)
}

// Epoch returns the presently active epoch.
func (root *Root) Epoch() uint64 {
	return atomic.LoadUint64(&root.currentTime)
}

// PooledPages returns the number of pages currently cached in the free pool.
func (root *Root) PooledPages() int {
	return int(atomicx.Load(&root.pooledPages))
}

// PoolBound returns the pool's capacity bound.
func (root *Root) PoolBound() int {
	return int(root.poolBound)
}

// setPooled publishes the pool count. Owner-only write; the atomic store is
// for observer reads, not for synchronization between mutators.
func (root *Root) setPooled(n int64) {
	atomic.StoreInt64(&root.pooledPages, n)
}

// acquirePage hands out a page for allocation, preferring the free pool
// over the page source.
func (root *Root) acquirePage() (*Page, error) {
	if p := root.pagePool; p != nil {
		root.pagePool = p.next
		root.setPooled(atomicx.Load(&root.pooledPages) - 1)
		p.reset()
		return p, nil
	}
	p, err := root.source.Acquire()
	if err != nil {
		return nil, err
	}
	meterAddOverhead(&root.meter, pageHeaderSize)
	return p, nil
}

// RootStats is a point-in-time, best-effort view of a root for observers.
type RootStats struct {
	Epoch       uint64 `json:"epoch"`
	PooledPages int64  `json:"pooled_pages"`
	PoolBound   int64  `json:"pool_bound"`
	Meter       Meter  `json:"meter"`
}

// Stats snapshots the root without coordinating with the owner. Safe to
// call from any goroutine.
func (root *Root) Stats() RootStats {
	return RootStats{
		Epoch:       atomic.LoadUint64(&root.currentTime),
		PooledPages: atomicx.Load(&root.pooledPages),
		PoolBound:   root.poolBound,
		Meter:       root.MeterSnapshot(),
	}
}
