// Package paging parses the page/limit query parameters used by list
// endpoints. Invalid or missing values silently fall back to defaults; list
// endpoints never reject a request over pagination input.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

const (
	// DefaultLimit is the page size when "limit" is absent or invalid.
	DefaultLimit = 20
	// MaxLimit caps the page size a caller can request.
	MaxLimit = 100
)

// Page holds parsed pagination values ready for a Mongo Find.
type Page struct {
	Number int   // 1-based page number
	Limit  int64 // documents per page
	Skip   int64 // documents to skip
}

// Parse extracts page and limit from the request query.
func Parse(r *http.Request) Page {
	page := 1
	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			page = n
		}
	}

	limit := DefaultLimit
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			limit = n
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Page{
		Number: page,
		Limit:  int64(limit),
		Skip:   int64(page-1) * int64(limit),
	}
}
