package region

import "github.com/orizon-lang/regionrt/internal/atomicx"

// ExpiredSource yields regions referenced by expired descriptors. Ordering
// policy belongs to the source; every region pulled must still carry at
// least one live descriptor at the moment it is handed out. The reclamation
// core only consumes and retires entries, it never produces them.
type ExpiredSource interface {
	// PullExpired returns the next expired region, or nil when the source
	// is drained.
	PullExpired() *Region
}

// TryExpireOne pulls at most one expired descriptor from the source and
// retires it: the referenced region's descriptor count is atomically
// decremented, and if this decrement observed the transition to zero the
// region is recycled. It reports whether an entry was processed; callers
// drain the source via repeated calls. An empty source is the one soft
// signal in this package: false is returned and nothing changes.
//
// This is the single trigger point for reclamation. It decouples "a
// reference holder finished" from "storage becomes reusable" and tolerates
// references that outlive the epoch that created the region.
func (root *Root) TryExpireOne(src ExpiredSource) bool {
	r := src.PullExpired()
	if r == nil {
		return false
	}
	if atomicx.DecrementAndTest(&r.dc) {
		root.RecycleRegion(r)
	}
	return true
}

// DrainExpired retires expired descriptors until the source reports empty
// and returns how many were processed.
func (root *Root) DrainExpired(src ExpiredSource) int {
	n := 0
	for root.TryExpireOne(src) {
		n++
	}
	return n
}
