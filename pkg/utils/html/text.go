// ABOUTME: Text utilities for cleaning strings pulled out of HTML pages
// ABOUTME: Decodes entities and normalises whitespace while keeping one paragraph per line

package html

import (
	"strings"

	"golang.org/x/net/html"
)

// DecodeEntities decodes named and numeric HTML entities
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return html.UnescapeString(text)
}

// CollapseWhitespace decodes entities and reduces every whitespace run,
// including non-breaking spaces, to a single space
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(DecodeEntities(text)), " ")
}

// NormalizeLines collapses whitespace within each line and drops blank
// lines. Line order is preserved.
func NormalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = CollapseWhitespace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
