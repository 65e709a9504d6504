package domain

import (
	"fmt"
	"net/http"
	"net/url"
)

type Page[T any] struct {
	Items []T
	Total int64
}

type PaginationParams struct {
	Skip  int
	Limit int
}

func lastPageOffset(limit int, totalItems int) int {
	if limit <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems - 1) / limit * limit
}

func paginationLink(baseURL URL, rel string, skip int, limit int, description string) Link {
	target := baseURL.ModifyQuery(func(query *url.Values) {
		query.Set("skip", fmt.Sprint(skip))
		query.Set("limit", fmt.Sprint(limit))
	})
	return NewLink(rel, target.String(), http.MethodGet, description)
}

// GeneratePaginationLinks builds the navigation links for a page of results.
// self, first and last are always present; next and prev are omitted at the
// boundaries. skip is echoed into the self link unmodified, even when
// negative or past the end.
func GeneratePaginationLinks(requestURL URL, skip int, limit int, totalItems int) []Link {
	links := []Link{
		paginationLink(requestURL, "self", skip, limit, "current page"),
		paginationLink(requestURL, "first", 0, limit, "first page"),
		paginationLink(requestURL, "last", lastPageOffset(limit, totalItems), limit, "last page"),
	}
	if limit > 0 && totalItems > 0 && skip < totalItems-limit {
		links = append(links, paginationLink(requestURL, "next", skip+limit, limit, "next page"))
	}
	if skip > 0 {
		prevSkip := skip - limit
		if prevSkip < 0 {
			prevSkip = 0
		}
		links = append(links, paginationLink(requestURL, "prev", prevSkip, limit, "previous page"))
	}
	return links
}
