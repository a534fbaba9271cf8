// Package pagination computes page windows for the list views.
//
// Pages are zero-indexed. A requested page below zero collapses to zero, and
// a page past the end is valid: it simply selects no rows.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultPageSize is the number of rows on every list page.
const DefaultPageSize = 10

type Page struct {
	Number       int   `json:"page"`
	Size         int   `json:"page_size"`
	Offset       int   `json:"-"`
	Total        int64 `json:"total"`
	TotalPages   int   `json:"total_pages"`
	HasPrevious  bool  `json:"has_previous"`
	HasNext      bool  `json:"has_next"`
	PreviousPage int   `json:"previous_page"`
	NextPage     int   `json:"next_page"`
}

// Offset returns the number of rows to skip for page.
func Offset(page, size int) int {
	page, size = clamp(page, size)
	return page * size
}

// Calculate returns the window for page given the total row count.
func Calculate(page, size int, total int64) Page {
	page, size = clamp(page, size)
	if total < 0 {
		total = 0
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return Page{
		Number:       page,
		Size:         size,
		Offset:       page * size,
		Total:        total,
		TotalPages:   totalPages,
		HasPrevious:  page > 0,
		HasNext:      page < totalPages-1,
		PreviousPage: max(page-1, 0),
		NextPage:     page + 1,
	}
}

// Pages lists every page index, for rendering page links.
func (p Page) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i
	}
	return out
}

// ParsePage reads a "page" query value. Missing, malformed or negative values
// yield 0; a value too large for an int saturates and is capped by clamp.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return n
	}
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// maxPage is the largest page index whose offset and successor fit in an int.
func maxPage(size int) int {
	return math.MaxInt/size - 1
}

func clamp(page, size int) (int, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	if page > maxPage(size) {
		page = maxPage(size)
	}
	return page, size
}
