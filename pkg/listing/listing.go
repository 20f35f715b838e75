// Package listing filters, searches and paginates in-memory collections the
// way the admin console lists them.
package listing

import "strings"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query describes one page request
type Query struct {
	Search string
	Page   int
	Limit  int
}

// Normalize applies defaults: page 1, limit DefaultLimit, limit capped at MaxLimit
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Offset returns the zero-based index of the first item on the page
func (q Query) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.Limit
}

// Filter keeps items for which it returns true
type Filter[T any] func(item T) bool

// Page is one page of results with totals for the whole filtered set
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"pages"`
}

// Apply searches with match (skipped when the search term is empty), applies
// filters, then slices out the requested page. A page past the end yields an
// empty Items slice with correct totals.
func Apply[T any](items []T, q Query, match func(item T, term string) bool, filters ...Filter[T]) Page[T] {
	q = q.Normalize()
	term := strings.ToLower(q.Search)

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if term != "" && match != nil && !match(item, term) {
			continue
		}
		if !keep(item, filters) {
			continue
		}
		filtered = append(filtered, item)
	}

	total := len(filtered)
	p := Page[T]{
		Items:      []T{},
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: TotalPages(total, q.Limit),
	}

	start := q.Offset()
	if start >= total {
		return p
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	p.Items = filtered[start:end]
	return p
}

func keep[T any](item T, filters []Filter[T]) bool {
	for _, f := range filters {
		if f != nil && !f(item) {
			return false
		}
	}
	return true
}

// TotalPages returns ceil(total/limit)
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ContainsFold reports whether any field contains the lower-cased term
func ContainsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Equals builds a filter comparing a field to want; an empty or "all" want keeps everything
func Equals[T any](want string, field func(T) string) Filter[T] {
	if want == "" || want == "all" {
		return nil
	}
	return func(item T) bool {
		return field(item) == want
	}
}
