// Package pagination slices ordered sequences into fixed-size, 1-based pages.
//
// Requested page numbers are never rejected: anything that is not a positive
// integer resolves to the first page and numbers past the end resolve to the
// last page.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type Page struct {
	Number      int  `json:"number"`
	NumPages    int  `json:"num_pages"`
	PerPage     int  `json:"per_page"`
	Count       int  `json:"count"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NumPages is ceil(count/perPage) with a floor of one page.
func NumPages(count, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	if count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

// ParseNumber reads a raw page query value. Missing or malformed values yield 1.
// Positive values too large for int yield math.MaxInt so they clamp to the last page.
func ParseNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return math.MaxInt
		}
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}

// Resolve computes the page metadata for a sequence of count items.
func Resolve(count, perPage int, raw string) Page {
	if perPage < 1 {
		perPage = 1
	}
	numPages := NumPages(count, perPage)

	number := ParseNumber(raw)
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:      number,
		NumPages:    numPages,
		PerPage:     perPage,
		Count:       count,
		HasPrevious: number > 1,
		HasNext:     number < numPages,
	}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

// PreviousNumber returns the previous page number, or 0 when there is none.
func (p Page) PreviousNumber() int {
	if !p.HasPrevious {
		return 0
	}
	return p.Number - 1
}

// NextNumber returns the next page number, or 0 when there is none.
func (p Page) NextNumber() int {
	if !p.HasNext {
		return 0
	}
	return p.Number + 1
}
