package region

const (
	// PageSize is the fixed size of one region page in bytes, header included.
	PageSize = 4096

	// pageHeaderSize reserves space for the next-page link and the used-byte
	// counter at the front of every page.
	pageHeaderSize = 16

	// PayloadSize is the number of bump-allocatable bytes in one page. The
	// usable bound of a page is payload index PayloadSize-1.
	PayloadSize = PageSize - pageHeaderSize
)

// Page is the fixed-size unit of coarse-grained allocation and reclamation.
// Pages form singly linked chains; each page exclusively owns the rest of
// its chain through the next link.
type Page struct {
	next    *Page
	used    int64
	payload [PayloadSize]byte
}

// reset returns the page to its never-used state: no successor, no used
// bytes, zeroed payload.
func (p *Page) reset() {
	p.next = nil
	p.used = 0
	clear(p.payload[:])
}

// chainLen walks the chain starting at p and returns its length. Debug-tier
// validation only; the production path never walks chains.
func (p *Page) chainLen() int64 {
	var n int64
	for q := p; q != nil; q = q.next {
		n++
	}
	return n
}
