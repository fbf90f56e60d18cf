// Package htmlsanitize strips markup from user-supplied free text.
//
// Group descriptions and resource notes are stored and rendered as plain
// text, so the strict policy (remove every tag) is the right default.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML tags from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
