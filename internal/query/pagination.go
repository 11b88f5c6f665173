package query

import (
	"math"
	"strconv"
	"strings"

	"auditservice/internal/store"
)

const (
	DefaultPage       = 1
	DefaultPerPage    = 25
	DefaultMaxPerPage = 100
)

// Pagination is a 1-indexed page request.
type Pagination struct {
	Page    int
	PerPage int
}

// ParsePagination coerces raw page inputs. Missing or non-numeric values
// take the defaults; page is at least 1 and per_page is clamped to
// [1, maxPerPage].
func ParsePagination(page, perPage string, maxPerPage int) Pagination {
	if maxPerPage < 1 {
		maxPerPage = DefaultMaxPerPage
	}

	p := Pagination{
		Page:    atoiOr(page, DefaultPage),
		PerPage: atoiOr(perPage, DefaultPerPage),
	}

	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}

	return p
}

// Window converts the page request into a skip/limit pair. An offset past
// math.MaxInt64 saturates; no store holds that many events, so the page is
// simply empty.
func (p Pagination) Window() store.Window {
	skipped, perPage := int64(p.Page-1), int64(p.PerPage)

	offset := int64(math.MaxInt64)
	if perPage <= 0 || skipped <= math.MaxInt64/perPage {
		offset = skipped * perPage
	}

	return store.Window{
		Offset: offset,
		Limit:  perPage,
	}
}

// TotalPages is ceil(total/perPage), and 0 when nothing matches.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Meta is the page metadata reported next to every result set.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	PerPage     int   `json:"per_page"`
}

func atoiOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}
