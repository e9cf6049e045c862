// Package pagination implements the {count, next, previous, results}
// list envelope used by every list endpoint. Pages are 1-based offsets
// with a fixed size of 10.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

const PageSize = 10

// Page is the list response envelope. Count is the size of the full
// unpaginated sequence; Next/Previous are absolute URLs or null.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// ParsePage reads the ?page= query parameter, defaulting to 1.
func ParsePage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Bounds returns the [lo, hi) slice window for a page over total items.
// An out-of-range page yields an empty window.
func Bounds(total, page int) (int, int) {
	lo := (page - 1) * PageSize
	if lo > total {
		lo = total
	}
	hi := lo + PageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}

// Slice cuts one page out of items.
func Slice[T any](items []T, page int) []T {
	lo, hi := Bounds(len(items), page)
	return items[lo:hi]
}

// Envelope builds the response envelope for the given page, deriving
// next/previous links from the request URL.
func Envelope(c echo.Context, total, page int, results any) Page {
	p := Page{Count: total, Results: results}
	if page*PageSize < total {
		p.Next = pageURL(c, page+1)
	}
	if page > 1 {
		p.Previous = pageURL(c, page-1)
	}
	return p
}

func pageURL(c echo.Context, page int) *string {
	u := *c.Request().URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	link := &url.URL{Scheme: c.Scheme(), Host: c.Request().Host, Path: u.Path, RawQuery: u.RawQuery}
	s := link.String()
	return &s
}
