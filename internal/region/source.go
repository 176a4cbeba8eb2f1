package region

// DescriptorQueue is an owner-local FIFO of expired region descriptors and
// the reference implementation of ExpiredSource. The descriptor subsystem
// enqueues a region here each time one of its descriptors expires; the
// owner retires entries through TryExpireOne. Single-writer like the rest
// of the root state: only the owning thread touches the queue.
type DescriptorQueue struct {
	entries []*Region
	head    int
}

// PutExpired enqueues one expired descriptor's region. The caller must hold
// a live descriptor for it (dc >= 1) until the entry is pulled and retired.
func (q *DescriptorQueue) PutExpired(r *Region) {
	q.entries = append(q.entries, r)
}

// PullExpired dequeues the oldest entry, or nil when the queue is empty.
func (q *DescriptorQueue) PullExpired() *Region {
	if q.head >= len(q.entries) {
		q.entries = q.entries[:0]
		q.head = 0
		return nil
	}
	r := q.entries[q.head]
	q.entries[q.head] = nil
	q.head++
	return r
}

// Len returns the number of entries not yet pulled.
func (q *DescriptorQueue) Len() int {
	return len(q.entries) - q.head
}
