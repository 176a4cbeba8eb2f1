package region

import "fmt"

// AllocErrorCode classifies allocation failures.
type AllocErrorCode int

const (
	ErrInvalidSize AllocErrorCode = iota // Zero or negative request
	ErrTooLarge                          // Request exceeds one page payload
	ErrOutOfPages                        // Page source refused a page
)

// String returns the string representation of the error code.
func (c AllocErrorCode) String() string {
	switch c {
	case ErrInvalidSize:
		return "InvalidSize"
	case ErrTooLarge:
		return "TooLarge"
	case ErrOutOfPages:
		return "OutOfPages"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// AllocError is returned for failed region allocations.
type AllocError struct {
	Code AllocErrorCode
	Size int
	Err  error
}

// Error implements the error interface.
func (e *AllocError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("region alloc [%s]: size=%d: %v", e.Code, e.Size, e.Err)
	}
	return fmt.Sprintf("region alloc [%s]: size=%d", e.Code, e.Size)
}

// Unwrap exposes the underlying page-source error, if any.
func (e *AllocError) Unwrap() error {
	return e.Err
}

// NewRegion creates a region in the single-page ready state, stamped with
// the current epoch and carrying no descriptors.
func (root *Root) NewRegion() (*Region, error) {
	p, err := root.acquirePage()
	if err != nil {
		return nil, &AllocError{Code: ErrOutOfPages, Size: PageSize, Err: err}
	}
	r := &Region{age: root.Epoch()}
	r.firstPage = p
	r.anchorSinglePage()
	return r, nil
}

// TouchRegion stamps the region with the current epoch, keeping it fresh.
// The allocation subsystem must touch a region whenever it uses it within
// an epoch; an untouched region turns zombie once the epoch advances.
func (root *Root) TouchRegion(r *Region) {
	r.age = root.Epoch()
}

// AllocateFrom carves size bytes out of the region's current page, growing
// the chain by one page (pool first, then page source) when the bump cursor
// hits the page bound. The returned slice aliases the page payload and is
// valid until the region is recycled. Requests larger than one page payload
// are refused; size classing is out of scope here.
//
// Owner-only, like all chain mutations.
func (root *Root) AllocateFrom(r *Region, size int) ([]byte, error) {
	if size <= 0 {
		return nil, &AllocError{Code: ErrInvalidSize, Size: size}
	}
	if size > PayloadSize {
		return nil, &AllocError{Code: ErrTooLarge, Size: size}
	}

	root.TouchRegion(r)

	// A pristine region (fully reclaimed zombie) is re-established on first
	// use, exactly like a brand new one.
	if r.pageCount == 0 {
		p, err := root.acquirePage()
		if err != nil {
			return nil, &AllocError{Code: ErrOutOfPages, Size: size, Err: err}
		}
		r.firstPage = p
		r.anchorSinglePage()
	}

	if r.nextFree+size-1 > r.lastByte {
		p, err := root.acquirePage()
		if err != nil {
			return nil, &AllocError{Code: ErrOutOfPages, Size: size, Err: err}
		}
		r.lastPage.next = p
		r.lastPage = p
		r.pageCount++
		r.nextFree = 0
		r.lastByte = PayloadSize - 1
	}

	buf := r.lastPage.payload[r.nextFree : r.nextFree+size : r.nextFree+size]
	r.nextFree += size
	r.lastPage.used += int64(size)
	return buf, nil
}
