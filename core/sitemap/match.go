// ABOUTME: Date matching strategies for sitemap documents
// ABOUTME: Selects article URLs and nested sitemaps for the crawl target date

package sitemap

import (
	"regexp"

	"news-summarizer/core/domain"
	timeutil "news-summarizer/pkg/utils/time"
)

var nestedSitemapPattern = regexp.MustCompile(`(?i)\.xml(\.gz)?(\?.*)?$`)

// IsNestedSitemap reports whether link looks like another sitemap document
func IsNestedSitemap(link string) bool {
	return nestedSitemapPattern.MatchString(link)
}

// DatePattern matches year, month and day in that order with at most one
// arbitrary character between them, e.g. 2023/08/13, 2023-08-13 or 20230813.
func DatePattern(target *domain.CrawlTarget) *regexp.Regexp {
	return regexp.MustCompile(target.Year() + ".?" + target.Month() + ".?" + target.Day())
}

// Matches is the outcome of running a strategy over one document
type Matches struct {
	// Articles are admitted article URLs in document order
	Articles []string

	// Nested are sitemap URLs to expand, in document order
	Nested []string

	// Skipped counts lastmod values that could not be parsed or had no loc
	Skipped int
}

// Match applies the strategy selected by the document: any lastmod
// anywhere selects the with-lastmod strategy for the whole document.
func Match(doc *Document, target *domain.CrawlTarget) Matches {
	if doc.HasLastmod() {
		return MatchWithLastmod(doc, target)
	}
	return MatchWithoutLastmod(doc, target)
}

// MatchWithLastmod keeps the loc preceding every lastmod that falls on or
// after the target date's midnight, in the lastmod's own offset. Nested
// sitemaps are expanded regardless of their URL, articles must also match
// the date pattern.
func MatchWithLastmod(doc *Document, target *domain.CrawlTarget) Matches {
	pattern := DatePattern(target)

	var m Matches
	var loc string
	for _, e := range doc.Entries {
		if e.Kind == LocEntry {
			loc = e.Value
			continue
		}

		modified, err := timeutil.ParseLastmod(e.Value)
		if err != nil || loc == "" {
			m.Skipped++
			continue
		}
		if modified.Before(target.Midnight(modified.Location())) {
			continue
		}

		switch {
		case IsNestedSitemap(loc):
			m.Nested = append(m.Nested, loc)
		case pattern.MatchString(loc):
			m.Articles = append(m.Articles, loc)
		}
	}
	return m
}

// MatchWithoutLastmod applies the date pattern to every loc
func MatchWithoutLastmod(doc *Document, target *domain.CrawlTarget) Matches {
	pattern := DatePattern(target)

	var m Matches
	for _, loc := range doc.Locs() {
		if !pattern.MatchString(loc) {
			continue
		}
		if IsNestedSitemap(loc) {
			m.Nested = append(m.Nested, loc)
		} else {
			m.Articles = append(m.Articles, loc)
		}
	}
	return m
}
