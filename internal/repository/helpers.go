package repository

import "errors"

// nullStringOrValue returns nil for empty strings, otherwise the string value
func nullStringOrValue(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// offset converts a 1-based page into a row offset
func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// likePattern wraps a search term for ILIKE
func likePattern(term string) string {
	return "%" + term + "%"
}

// ErrReferenced is returned when a row cannot be removed because other rows point at it
var ErrReferenced = errors.New("record is still referenced")

// ErrDuplicate is returned when a unique constraint rejects a write
var ErrDuplicate = errors.New("record already exists")
