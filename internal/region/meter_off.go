//go:build !meter

package region

// This file provides no-op metering hooks for non-instrumented builds.

func meterAddPooledPages(m *Meter, pages int64) {}

func meterAddFreedPages(m *Meter, pages int64) {}

func meterAddOverhead(m *Meter, bytes int64) {}

func meterAddRecycled(m *Meter) {}

func meterAddZombie(m *Meter) {}
