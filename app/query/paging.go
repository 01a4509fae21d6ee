package query

import (
	"net/url"
	"strconv"
)

// MaxPage bounds the page number accepted from clients.
const MaxPage = 1000

// Paging reads page, limit and sort parameters from a request's query
// string. Out-of-range values are clamped rather than rejected.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPaging is used when no configuration is supplied.
var DefaultPaging = Paging{DefaultLimit: DefaultLimit, MaxLimit: 100}

// Parse returns Params with paging and sorting filled in. Filters are left
// to the caller.
func (pg Paging) Parse(values url.Values) Params {
	if pg.DefaultLimit < 1 {
		pg.DefaultLimit = DefaultLimit
	}
	if pg.MaxLimit < pg.DefaultLimit {
		pg.MaxLimit = pg.DefaultLimit
	}

	p := Params{
		Page:      DefaultPage,
		Limit:     pg.DefaultLimit,
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}

	if pStr := values.Get("page"); pStr != "" {
		if n, err := strconv.Atoi(pStr); err == nil {
			p.Page = clamp(n, 1, MaxPage)
		}
	}
	if lStr := values.Get("limit"); lStr != "" {
		if n, err := strconv.Atoi(lStr); err == nil {
			p.Limit = clamp(n, 1, pg.MaxLimit)
		}
	}
	return p
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
