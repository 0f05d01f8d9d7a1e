// internal/app/store/storeutil/storeutil.go
package storeutil

import "math"

// Window describes one page of a simple (count-free) paginated query.
// Limit is PerPage+1: the extra row only reveals whether a next page exists.
type Window struct {
	Page    int
	PerPage int
	Skip    int64
	Limit   int64
}

// NewWindow normalizes a 1-based page and page size. page < 1 becomes 1 and
// perPage < 1 becomes defaultPerPage. Pages whose offset would not fit in an
// int64 are clamped to the last representable page, which reads as empty.
func NewWindow(page, perPage, defaultPerPage int) Window {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if maxPage := math.MaxInt64/int64(perPage) + 1; int64(page) > maxPage {
		page = int(maxPage)
	}
	return Window{
		Page:    page,
		PerPage: perPage,
		Skip:    int64(page-1) * int64(perPage),
		Limit:   int64(perPage) + 1,
	}
}

// Trim drops the look-ahead row and reports whether it was there.
func Trim[T any](items []T, w Window) ([]T, bool) {
	if len(items) > w.PerPage {
		return items[:w.PerPage], true
	}
	return items, false
}
