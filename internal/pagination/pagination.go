// Package pagination implements fixed-size pagination with page clamping:
// a requested page below 1 resolves to the first page and a page past the
// end resolves to the last page, never an error.
package pagination

import "strconv"

// DefaultPageSize is the number of posts per listing page.
const DefaultPageSize = 10

// Page describes one resolved page of a listing.
type Page struct {
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// New resolves the requested page number against the total item count.
// An empty collection still has one (empty) page.
func New(requested, size, totalItems int) Page {
	if size < 1 {
		size = DefaultPageSize
	}

	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if requested < 1 {
		requested = 1
	}
	if requested > totalPages {
		requested = totalPages
	}

	return Page{
		Number:     requested,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// ParsePageParam parses the "page" query parameter. Anything that is not a
// positive integer resolves to page 1.
func ParsePageParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset returns the offset of the first item on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// PrevNumber returns the previous page number, clamped to 1.
func (p Page) PrevNumber() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// NextNumber returns the next page number, clamped to the last page.
func (p Page) NextNumber() int {
	if p.Number >= p.TotalPages {
		return p.TotalPages
	}
	return p.Number + 1
}
