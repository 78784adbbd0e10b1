// ABOUTME: Sitemap parser expands sitemap indexes into date-matching article URLs
// ABOUTME: Walks nested sitemaps breadth first with a visited set and a depth guard

package sitemap

import (
	"context"
	"net/http"

	"news-summarizer/core/domain"
	"news-summarizer/core/errors"
	"news-summarizer/core/interfaces"
)

// DefaultMaxDepth bounds how many sitemap index levels are followed
const DefaultMaxDepth = 5

// Parser finds the article URLs published on one target date
type Parser struct {
	deps     interfaces.Dependencies
	target   *domain.CrawlTarget
	maxDepth int
}

// NewParser creates a parser for target. maxDepth <= 0 selects DefaultMaxDepth.
func NewParser(deps interfaces.Dependencies, target *domain.CrawlTarget, maxDepth int) *Parser {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{deps: deps, target: target, maxDepth: maxDepth}
}

// queued is a sitemap waiting to be fetched
type queued struct {
	url   string
	depth int
}

// Parse returns the deduplicated article URLs reachable from one sitemap,
// in order of first discovery
func (p *Parser) Parse(ctx context.Context, sitemapURL string) []string {
	return p.ParseAll(ctx, []string{sitemapURL})
}

// ParseAll expands every root sitemap and returns the union of their
// article URLs. A URL reached through several sitemaps appears once.
// A sitemap that fails to load contributes nothing and never stops its
// siblings.
func (p *Parser) ParseAll(ctx context.Context, sitemapURLs []string) []string {
	visited := make(map[string]bool)
	seen := make(map[string]bool)
	articles := make([]string, 0)

	queue := make([]queued, 0, len(sitemapURLs))
	for _, u := range sitemapURLs {
		queue = append(queue, queued{url: u})
	}

	for len(queue) > 0 {
		if ctx.Err() != nil {
			p.deps.Logger.Warn("Sitemap parsing cancelled", map[string]interface{}{
				"pending": len(queue),
				"error":   ctx.Err().Error(),
			})
			break
		}

		current := queue[0]
		queue = queue[1:]

		if visited[current.url] {
			continue
		}
		visited[current.url] = true

		p.deps.Logger.Info("Parsing sitemap", map[string]interface{}{
			"url":   current.url,
			"depth": current.depth,
		})

		doc, err := p.load(ctx, current.url)
		if err != nil {
			p.deps.Logger.Warn("Failed to load sitemap", map[string]interface{}{
				"url":   current.url,
				"error": err.Error(),
			})
			continue
		}

		matches := Match(doc, p.target)
		if matches.Skipped > 0 {
			p.deps.Logger.Debug("Skipped unusable lastmod entries", map[string]interface{}{
				"url":     current.url,
				"skipped": matches.Skipped,
			})
		}

		added := 0
		for _, link := range matches.Articles {
			if seen[link] {
				continue
			}
			seen[link] = true
			articles = append(articles, link)
			added++
		}

		for _, nested := range matches.Nested {
			if visited[nested] {
				continue
			}
			if current.depth+1 > p.maxDepth {
				p.deps.Logger.Warn("Sitemap depth limit reached", map[string]interface{}{
					"url":       nested,
					"parent":    current.url,
					"max_depth": p.maxDepth,
				})
				continue
			}
			queue = append(queue, queued{url: nested, depth: current.depth + 1})
		}

		p.deps.Logger.Info("Found links", map[string]interface{}{
			"url":     current.url,
			"links":   added,
			"nested":  len(matches.Nested),
			"lastmod": doc.HasLastmod(),
		})
	}

	return articles
}

func (p *Parser) load(ctx context.Context, sitemapURL string) (*Document, error) {
	if p.deps.HTTPClient == nil {
		return nil, &errors.FetchError{URL: sitemapURL, Err: errors.ErrNoHTTPClient}
	}

	resp, err := p.deps.HTTPClient.Get(ctx, sitemapURL)
	if err != nil {
		return nil, &errors.FetchError{URL: sitemapURL, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &errors.FetchError{URL: sitemapURL, StatusCode: resp.StatusCode()}
	}

	return ParseDocument(resp.Body())
}
