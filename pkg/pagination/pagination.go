package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params holds sanitized pagination parameters derived from request input.
type Params struct {
	Page  int // Current page number (1-based)
	Limit int // Number of records per page
	Skip  int // Number of records to skip
}

// Meta holds pagination metadata for list responses.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// Links holds navigation URLs for a paginated response.
// Next and Prev are nil when there is no page in that direction.
type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
}

// Result is the payload placed under "data" in a paginated response.
type Result struct {
	Items any   `json:"items"`
	Meta  Meta  `json:"meta"`
	Links Links `json:"links"`
}

// ComputeParams derives sanitized pagination parameters from raw query input.
// Malformed values are never rejected: page clamps to 1, limit clamps into
// [1, maxLimit] and falls back to defaultLimit when unparseable.
func ComputeParams(rawPage, rawLimit string, defaultLimit, maxLimit int) Params {
	page, err := strconv.Atoi(rawPage)
	if err != nil {
		page = 1
	}
	if page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// BuildMeta computes pagination metadata for the given page, limit and total
// item count. When total is 0, TotalPages is 0 and both nav flags are false.
func BuildMeta(page, limit int, total int64) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return Meta{
		CurrentPage:  page,
		ItemsPerPage: limit,
		TotalItems:   total,
		TotalPages:   totalPages,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// BuildLinks constructs navigation URLs for a paginated response.
//
// In query mode the page and limit query parameters are set on baseURL+path,
// preserving any other parameters already present in query. In path mode the
// page and limit are encoded as path segments: {baseURL}/page/{n}/limit/{l}.
// When there are no pages at all, last points at page 1 rather than page 0.
func BuildLinks(baseURL, path string, query url.Values, page, limit int, total int64, pathBased bool) Links {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	buildURL := func(p int) string {
		if pathBased {
			return fmt.Sprintf("%s/page/%d/limit/%d", baseURL, p, limit)
		}
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(p))
		q.Set("limit", strconv.Itoa(limit))
		return baseURL + path + "?" + q.Encode()
	}

	lastPage := totalPages
	if lastPage < 1 {
		lastPage = 1
	}

	links := Links{
		First: buildURL(1),
		Last:  buildURL(lastPage),
	}
	if page < totalPages {
		next := buildURL(page + 1)
		links.Next = &next
	}
	if page > 1 {
		prev := buildURL(page - 1)
		links.Prev = &prev
	}

	return links
}
