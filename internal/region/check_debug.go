//go:build debug

package region

import (
	"fmt"
	"sync/atomic"
)

// In debug builds, every structural invariant is verified before and after
// reclamation. A violation means low-level memory corruption; continuing
// past it is itself unsafe, so the process is terminated immediately with
// no recovery or rollback.

func checkRecyclePre(root *Root, r *Region) {
	if r == nil {
		panic("region recycle: nil region pulled from the descriptor path")
	}
	if dc := atomic.LoadInt64(&r.dc); dc != 0 {
		panic(fmt.Sprintf("region recycle: region still alive, dc=%d", dc))
	}
	checkRegionShape(r)
}

func checkRecyclePost(root *Root, r, invar *Region, wantPages int64) {
	if r != invar {
		panic("region recycle: region identity changed during recycling")
	}
	if r.pageCount != wantPages {
		panic(fmt.Sprintf("region recycle: page count is %d, want %d after recycling",
			r.pageCount, wantPages))
	}
	switch wantPages {
	case 0:
		if r.firstPage != nil || r.lastPage != nil {
			panic("region recycle: emptied region still anchors pages")
		}
	case 1:
		if r.firstPage == nil || r.firstPage != r.lastPage {
			panic("region recycle: single-page region must anchor exactly its first page")
		}
		if r.firstPage.next != nil {
			panic(fmt.Sprintf("region recycle: next-page link is corrupt: %p", r.firstPage.next))
		}
	}
	checkRegionShape(r)
	if pooled := atomic.LoadInt64(&root.pooledPages); pooled > root.poolBound {
		panic(fmt.Sprintf("region recycle: pool holds %d pages, bound is %d",
			pooled, root.poolBound))
	}
}

// checkRegionShape verifies that the page count matches the chain and that
// the empty/single-page equivalences hold.
func checkRegionShape(r *Region) {
	if (r.pageCount == 0) != (r.firstPage == nil && r.lastPage == nil) {
		panic(fmt.Sprintf("region shape: page count %d disagrees with chain anchors",
			r.pageCount))
	}
	if r.pageCount == 1 && r.firstPage != r.lastPage {
		panic("region shape: one page counted but first and last pages differ")
	}
	if r.firstPage != nil {
		if got := r.firstPage.chainLen(); got != r.pageCount {
			panic(fmt.Sprintf("region shape: chain length %d, counted %d", got, r.pageCount))
		}
	}
}
