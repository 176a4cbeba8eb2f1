package region

import "github.com/orizon-lang/regionrt/internal/atomicx"

// PageSource abstracts OS-level page acquisition. Acquire hands out a page
// in never-used state; Release returns a page the pool would not take. A
// source is consulted only by the owning thread of the root it serves.
type PageSource interface {
	Acquire() (*Page, error)
	Release(p *Page)
}

// defaultPageSource is used when RootConfig leaves Source nil.
func defaultPageSource() PageSource {
	return NewHeapPageSource()
}

// HeapPageSource allocates pages from the Go heap. It is the default source
// and the one tests use: its acquire/release counters make "pages returned
// to the OS" observable.
type HeapPageSource struct {
	acquired int64
	released int64
}

// NewHeapPageSource creates a heap-backed page source.
func NewHeapPageSource() *HeapPageSource {
	return &HeapPageSource{}
}

// Acquire allocates one page.
func (s *HeapPageSource) Acquire() (*Page, error) {
	atomicx.Add(&s.acquired, 1)
	return new(Page), nil
}

// Release drops the page back to the garbage collector.
func (s *HeapPageSource) Release(p *Page) {
	p.next = nil
	atomicx.Add(&s.released, 1)
}

// Acquired returns the number of pages handed out so far.
func (s *HeapPageSource) Acquired() int64 {
	return atomicx.Load(&s.acquired)
}

// Released returns the number of pages returned so far.
func (s *HeapPageSource) Released() int64 {
	return atomicx.Load(&s.released)
}
