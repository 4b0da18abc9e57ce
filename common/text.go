package common

import (
	"html"
	"regexp"
	"strings"
)

var (
	collapseSpaces = regexp.MustCompile(`\s+`)
	stripTags      = regexp.MustCompile(`<[^>]*>`)
)

// CleanText decodes HTML entities and collapses whitespace. Remote WordPress
// fields arrive entity-encoded ("Bar &#038; Grill"); local records always
// store the decoded form so re-imports compare equal.
func CleanText(s string) string {
	decoded := html.UnescapeString(s)
	return strings.TrimSpace(collapseSpaces.ReplaceAllString(decoded, " "))
}

// StripHTML removes markup and then cleans the remainder. Tribe event
// descriptions are rendered HTML fragments.
func StripHTML(s string) string {
	return CleanText(stripTags.ReplaceAllString(s, " "))
}
