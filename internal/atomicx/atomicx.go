// Package atomicx provides the lock-free word-sized primitives the region
// reclaimer is built on: plain add, exchange-and-add, decrement-and-test,
// and compare-and-exchange. All operations are single indivisible hardware
// operations and may be used concurrently by arbitrary callers without any
// external locking. Go's sync/atomic operations are sequentially consistent,
// which covers the acquire/release ordering the reference-count decrement
// and the page-chain publication depend on.
package atomicx

import "sync/atomic"

// Add atomically adds delta to the counter at addr. It returns nothing and
// is intended for simple bookkeeping counters.
func Add(addr *int64, delta int64) {
	atomic.AddInt64(addr, delta)
}

// ExchangeAndAdd atomically adds delta to the counter at addr and returns
// the value observed before the update.
func ExchangeAndAdd(addr *int64, delta int64) int64 {
	return atomic.AddInt64(addr, delta) - delta
}

// Load atomically reads the counter at addr.
func Load(addr *int64) int64 {
	return atomic.LoadInt64(addr)
}

// DecrementAndTest atomically decrements the counter at addr and reports
// whether the decrement brought it to zero, i.e. whether the pre-decrement
// value was exactly 1.
//
// Callers must only invoke it on a counter known to currently be >= 1: the
// caller must itself hold a live reference being released. Invoking it on an
// already-zero counter is a contract violation, not a handled case.
func DecrementAndTest(addr *int64) bool {
	return atomic.AddInt64(addr, -1) == 0
}

// CompareAndExchange atomically stores next at addr iff the current value
// equals expected, and returns the value observed at the attempt. Callers
// compare the result against expected to determine success.
func CompareAndExchange(addr *int64, expected, next int64) int64 {
	for {
		if atomic.CompareAndSwapInt64(addr, expected, next) {
			return expected
		}
		if cur := atomic.LoadInt64(addr); cur != expected {
			return cur
		}
	}
}
