// ABOUTME: Sitemap resolver discovers a site's sitemaps from robots.txt
// ABOUTME: Falls back to /sitemap.xml when robots.txt is missing or names none

package sitemap

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/temoto/robotstxt"

	"news-summarizer/core/interfaces"
)

// Resolver finds candidate sitemap URLs for a base site
type Resolver struct {
	deps interfaces.Dependencies
}

// NewResolver creates a resolver
func NewResolver(deps interfaces.Dependencies) *Resolver {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	return &Resolver{deps: deps}
}

// Resolve returns the Sitemap directives of baseURL's robots.txt in file
// order, without duplicates. The result is never empty: any failure, or a
// robots.txt without directives, yields baseURL + "/sitemap.xml".
func (r *Resolver) Resolve(ctx context.Context, baseURL string) []string {
	baseURL = strings.TrimRight(baseURL, "/")
	robotsURL := baseURL + "/robots.txt"

	sitemaps := r.fromRobots(ctx, robotsURL)
	if len(sitemaps) == 0 {
		fallback := baseURL + "/sitemap.xml"
		r.deps.Logger.Warn("Sitemaps were not found, using fallback", map[string]interface{}{
			"robots":   robotsURL,
			"fallback": fallback,
		})
		return []string{fallback}
	}

	r.deps.Logger.Info("Retrieved sitemaps", map[string]interface{}{
		"robots":   robotsURL,
		"sitemaps": len(sitemaps),
	})
	return sitemaps
}

func (r *Resolver) fromRobots(ctx context.Context, robotsURL string) []string {
	if r.deps.HTTPClient == nil {
		return nil
	}

	r.deps.Logger.Info("Fetching robots.txt", map[string]interface{}{"url": robotsURL})

	resp, err := r.deps.HTTPClient.Get(ctx, robotsURL)
	if err != nil {
		r.deps.Logger.Warn("Unable to fetch robots.txt", map[string]interface{}{
			"url":   robotsURL,
			"error": err.Error(),
		})
		return nil
	}
	defer resp.Body().Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		r.deps.Logger.Warn("robots.txt returned non-success status", map[string]interface{}{
			"url":         robotsURL,
			"status_code": resp.StatusCode(),
		})
		return nil
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		r.deps.Logger.Warn("Unable to read robots.txt", map[string]interface{}{
			"url":   robotsURL,
			"error": err.Error(),
		})
		return nil
	}

	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		r.deps.Logger.Warn("Unable to parse robots.txt", map[string]interface{}{
			"url":   robotsURL,
			"error": err.Error(),
		})
		return nil
	}

	seen := make(map[string]bool, len(robots.Sitemaps))
	sitemaps := make([]string, 0, len(robots.Sitemaps))
	for _, s := range robots.Sitemaps {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		sitemaps = append(sitemaps, s)
	}
	return sitemaps
}
