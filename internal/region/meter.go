package region

import "github.com/orizon-lang/regionrt/internal/atomicx"

// Meter holds best-effort instrumentation counters. Increment sites are
// compiled in only under the "meter" build tag; without it every counter
// stays zero and functional behavior is identical. Counters are atomic so
// any goroutine may snapshot them.
type Meter struct {
	// PooledBytes is the total page memory spliced into the free pool.
	PooledBytes int64 `json:"pooled_bytes"`
	// FreedBytes is the total page memory handed back to the page source.
	FreedBytes int64 `json:"freed_bytes"`
	// OverheadBytes is the bookkeeping overhead of pages handed out.
	OverheadBytes int64 `json:"overhead_bytes"`
	// Recycled counts completed region reclamations.
	Recycled int64 `json:"recycled"`
	// ZombieReclaims counts reclamations that emptied a stale region.
	ZombieReclaims int64 `json:"zombie_reclaims"`
}

// MeterSnapshot returns a point-in-time copy of the root's meter.
func (root *Root) MeterSnapshot() Meter {
	return Meter{
		PooledBytes:    atomicx.Load(&root.meter.PooledBytes),
		FreedBytes:     atomicx.Load(&root.meter.FreedBytes),
		OverheadBytes:  atomicx.Load(&root.meter.OverheadBytes),
		Recycled:       atomicx.Load(&root.meter.Recycled),
		ZombieReclaims: atomicx.Load(&root.meter.ZombieReclaims),
	}
}
