//go:build unix

package region

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// OSPageSource acquires pages as anonymous private mappings, bypassing the
// Go heap entirely. Page structs are overlaid on the mappings; the source
// keeps the backing slices so Release and Close can unmap them.
type OSPageSource struct {
	mu       sync.Mutex
	mappings map[*Page][]byte
}

// NewOSPageSource creates an mmap-backed page source.
func NewOSPageSource() *OSPageSource {
	return &OSPageSource{mappings: make(map[*Page][]byte)}
}

// Acquire maps one page of anonymous memory.
func (s *OSPageSource) Acquire() (*Page, error) {
	data, err := unix.Mmap(-1, 0, PageSize, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap region page: %w", err)
	}
	p := (*Page)(unsafe.Pointer(unsafe.SliceData(data)))
	s.mu.Lock()
	s.mappings[p] = data
	s.mu.Unlock()
	return p, nil
}

// Release unmaps the page. Pages not acquired from this source are ignored.
func (s *OSPageSource) Release(p *Page) {
	s.mu.Lock()
	data, ok := s.mappings[p]
	delete(s.mappings, p)
	s.mu.Unlock()
	if ok {
		_ = unix.Munmap(data)
	}
}

// Close unmaps every outstanding page. The owning root must not use the
// source, nor any page acquired from it, afterwards.
func (s *OSPageSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for p, data := range s.mappings {
		if err := unix.Munmap(data); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.mappings, p)
	}
	return firstErr
}
