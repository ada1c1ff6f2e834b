// Package sanitize strips markup from free text submitted by clients.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every HTML element from s and trims surrounding whitespace.
// Entities produced by the policy are kept escaped.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strict.Sanitize(s))
}

// Slice applies Text to each element and drops the ones left empty
func Slice(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := Text(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
