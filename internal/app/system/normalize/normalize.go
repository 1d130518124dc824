// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import "strings"

// LoginID normalizes a login identifier by trimming whitespace and converting
// to lowercase. This is the canonical way to normalize login ids before
// storage or comparison.
func LoginID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slug normalizes a page slug by trimming whitespace and converting to
// lowercase. Format validation happens separately; this only canonicalizes
// the input.
func Slug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role normalizes a role value by trimming whitespace and converting to lowercase.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status normalizes a status value by trimming whitespace and converting to lowercase.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Label normalizes a tag label by trimming whitespace. Labels keep their
// case; Fold gives a comparison key.
func Label(s string) string {
	return strings.TrimSpace(s)
}

// Fold returns a case-insensitive comparison key for a label or title.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
