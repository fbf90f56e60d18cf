// Package normalize provides canonical forms for user-supplied identity fields.
//
// Normalization happens once, at the store boundary, so that uniqueness
// checks and lookups always compare like with like.
package normalize

import "strings"

// Email lowercases and trims an email address. Empty or all-whitespace
// input normalizes to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding whitespace. Case is preserved for display;
// the case-insensitive shadow field is derived separately.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Fold lowercases and trims a string for case-insensitive shadow fields.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
