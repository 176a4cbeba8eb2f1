package region

import "sync/atomic"

// RecycleRegion reclaims the storage of a region whose descriptor count has
// reached zero. Fresh regions keep their first page and end in the
// single-page ready state; zombie regions are reclaimed in full and revert
// to the pristine never-used state. Recyclable pages are spliced onto the
// free pool in O(1) while the pool bound permits; on overflow, pages are
// handed back to the page source one at a time from the head of the
// recyclable chain until the remainder fits.
//
// Precondition: the region was previously initialized (its chain is
// internally consistent) and its descriptor count is zero. The only
// legitimate caller, TryExpireOne, guarantees this. Production builds do
// not verify it; debug builds check every structural invariant before and
// after mutation and abort on violation.
func (root *Root) RecycleRegion(r *Region) {
	checkRecyclePre(root, r)
	invar := r

	now := root.Epoch()
	fresh := r.fresh(now)

	// Select the recyclable chain. legacy heads the pages leaving the
	// region; r.lastPage stays the tail of that chain until re-anchoring.
	var legacy *Page
	var recycle int64

	if fresh {
		first := r.firstPage
		legacy = first.next
		first.reset()
		r.nextFree = 0
		r.lastByte = PayloadSize - 1

		if legacy == nil {
			// Exactly one page: nothing to recycle.
			atomic.StoreInt64(&r.dc, 0)
			checkRecyclePost(root, r, invar, 1)
			return
		}
		recycle = r.pageCount - 1
	} else {
		legacy = r.firstPage
		if legacy == nil {
			// Already pristine.
			atomic.StoreInt64(&r.dc, 0)
			checkRecyclePost(root, r, invar, 0)
			return
		}
		recycle = r.pageCount
	}

	pooled := atomic.LoadInt64(&root.pooledPages)
	tail := r.lastPage

	if pooled+recycle <= root.poolBound {
		// The whole chain fits: prepend it to the pool in O(1).
		tail.next = root.pagePool
		root.pagePool = legacy
		meterAddPooledPages(&root.meter, recycle)
	} else {
		// Overflow: free from the head of the chain until the remainder
		// fits, then splice what is left.
		p := legacy
		remaining := recycle
		for p != nil && pooled+remaining > root.poolBound {
			next := p.next
			root.source.Release(p)
			meterAddFreedPages(&root.meter, 1)
			p = next
			remaining--
		}
		if p != nil {
			tail.next = root.pagePool
			root.pagePool = p
			meterAddPooledPages(&root.meter, remaining)
		}
	}
	root.setPooled(min(root.poolBound, pooled+recycle))

	var wantPages int64
	if fresh {
		r.anchorSinglePage()
		wantPages = 1
	} else {
		r.empty()
		meterAddZombie(&root.meter)
		wantPages = 0
	}
	meterAddRecycled(&root.meter)

	checkRecyclePost(root, r, invar, wantPages)
}
