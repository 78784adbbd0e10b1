// ABOUTME: Time parsing utilities for sitemap lastmod values and CLI date formats
// ABOUTME: Handles W3C datetime variants and translates strftime patterns to Go layouts

package time

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for sitemap lastmod values, most specific first.
// Layouts without an offset are interpreted in UTC.
var lastmodFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseLastmod parses a sitemap lastmod timestamp
func ParseLastmod(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty lastmod")
	}

	for _, format := range lastmodFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised lastmod %q", value)
}

var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'z': "-0700",
	'Z': "MST",
	'j': "002",
	'%': "%",
}

// LayoutFromStrftime converts a strftime pattern such as %Y-%m-%d into a Go
// layout. Strings without a '%' are assumed to already be Go layouts.
// Unknown directives are copied through unchanged.
func LayoutFromStrftime(format string) string {
	if !strings.Contains(format, "%") {
		return format
	}

	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			b.WriteByte(format[i])
			continue
		}
		if layout, ok := strftimeDirectives[format[i+1]]; ok {
			b.WriteString(layout)
			i++
			continue
		}
		b.WriteByte(format[i])
	}
	return b.String()
}
