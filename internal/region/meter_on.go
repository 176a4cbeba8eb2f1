//go:build meter

package region

import "github.com/orizon-lang/regionrt/internal/atomicx"

// In metered builds, the reclaimer and page plumbing feed the meter.

func meterAddPooledPages(m *Meter, pages int64) {
	atomicx.Add(&m.PooledBytes, pages*PageSize)
}

func meterAddFreedPages(m *Meter, pages int64) {
	atomicx.Add(&m.FreedBytes, pages*PageSize)
}

func meterAddOverhead(m *Meter, bytes int64) {
	atomicx.Add(&m.OverheadBytes, bytes)
}

func meterAddRecycled(m *Meter) {
	atomicx.Add(&m.Recycled, 1)
}

func meterAddZombie(m *Meter) {
	atomicx.Add(&m.ZombieReclaims, 1)
}
