package region

import "github.com/orizon-lang/regionrt/internal/atomicx"

// Region is a logical bump-allocated storage unit spanning a chain of one or
// more pages. The region exclusively owns its page chain through firstPage;
// lastPage is a non-owning cached reference to the chain's tail used only
// for O(1) append and splice.
//
// All fields except dc follow single-writer discipline and belong to the
// owning thread. dc may be decremented by any thread releasing a reference
// and is accessed atomically only.
type Region struct {
	firstPage *Page
	lastPage  *Page

	// pageCount always equals the length of the page chain.
	pageCount int64

	// Bump-allocation cursor over lastPage's payload: nextFree is the offset
	// of the next free byte, lastByte the inclusive offset of the last usable
	// byte. Owned by the allocator, reset by the reclaimer.
	nextFree int
	lastByte int

	// age is the epoch stamp of the region's last use by its owner.
	age uint64

	// dc counts live external descriptors into the region. The region is
	// reclaim-eligible only at zero.
	dc int64
}

// Retain records one more live descriptor into the region. Any thread that
// lets a reference escape must call it before the reference is shared.
func (r *Region) Retain() {
	atomicx.Add(&r.dc, 1)
}

// Release drops one live descriptor and reports whether this release
// observed the transition to zero. A true return is the caller's license to
// have the region's owning root reclaim it; exactly one of any set of
// concurrent releases observes the transition.
func (r *Region) Release() bool {
	return atomicx.DecrementAndTest(&r.dc)
}

// DescriptorCount returns the current number of live descriptors.
func (r *Region) DescriptorCount() int64 {
	return atomicx.Load(&r.dc)
}

// PageCount returns the number of pages in the region's chain.
func (r *Region) PageCount() int {
	return int(r.pageCount)
}

// Age returns the epoch stamp of the region's last use.
func (r *Region) Age() uint64 {
	return r.age
}

// Pristine reports whether the region holds no pages at all, i.e. it is
// indistinguishable from a never-used region.
func (r *Region) Pristine() bool {
	return r.pageCount == 0
}

// fresh classifies the region against the owner's current epoch. A fresh
// region was touched during the presently active epoch and keeps its first
// page across reclamation; a stale ("zombie") region is reclaimed in full,
// because its retained first page could not be trusted for the current
// epoch's bump accounting.
func (r *Region) fresh(now uint64) bool {
	return r.age == now
}

// anchorSinglePage re-anchors the region to the single-page ready state:
// one page, tail cached to it, bump cursor reset to the full payload bounds
// of the retained page.
func (r *Region) anchorSinglePage() {
	r.pageCount = 1
	r.lastPage = r.firstPage
	r.firstPage.next = nil
	r.nextFree = 0
	r.lastByte = PayloadSize - 1
}

// empty reverts the region to the pristine never-used state.
func (r *Region) empty() {
	r.pageCount = 0
	r.firstPage = nil
	r.lastPage = nil
	r.nextFree = 0
	r.lastByte = 0
}
