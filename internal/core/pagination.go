package core

import "math"

// PageSize is the fixed number of rows on a list page.
const PageSize = 10

// Page is one page of a filtered list.
type Page[T any] struct {
	Items      []T
	Total      int // matching rows across all pages
	Number     int // 1-based page number as requested
	Size       int
	TotalPages int
}

// NewPage computes page metadata for the requested page number and the
// total number of matches. Numbers below 1 become 1. Numbers past the last
// page are kept so the caller gets an empty page rather than an error.
func NewPage[T any](number, total int) Page[T] {
	if number < 1 {
		number = 1
	}
	if total < 0 {
		total = 0
	}
	return Page[T]{
		Total:      total,
		Number:     number,
		Size:       PageSize,
		TotalPages: TotalPages(total, PageSize),
	}
}

// TotalPages returns ceil(total/size), or 0 when there is nothing to show.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Offset is the number of rows to skip for this page. It saturates at
// math.MaxInt instead of overflowing for absurd page numbers.
func (p Page[T]) Offset() int {
	if p.Size <= 0 || p.Number <= 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// InRange reports whether the page has any rows to fetch.
func (p Page[T]) InRange() bool {
	return p.Number <= p.TotalPages
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }

func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }
