package stringutil

import (
	"regexp"
	"strings"
)

var (
	htmlTagRE    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// StripMarkup flattens an HTML-bearing search snippet into plain text:
// tags are dropped, entities for spacing are resolved, and runs of
// whitespace collapse to single spaces.
func StripMarkup(text string) string {
	text = htmlTagRE.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
