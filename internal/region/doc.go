// Package region implements the reclamation core of a region-based memory
// manager. Objects are bump-allocated into chains of fixed-size pages tied
// to an execution epoch; once no outstanding descriptor points into a
// region, its storage is reclaimed in bulk, either into a bounded free-page
// pool or back to the underlying page source.
//
// The sharing discipline is asymmetric. A region's descriptor count is the
// only field mutated by threads other than the region's owner and is
// protected purely by atomicity. Every other region, page, and pool field is
// single-writer: mutated only by the owning thread, and only after that
// thread has itself observed the descriptor count reach zero. That observed
// zero transition is the sole license to touch the page chain or the pool.
package region
