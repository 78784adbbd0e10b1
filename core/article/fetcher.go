// ABOUTME: Article fetcher retrieves and extracts article text at a polite, fixed rate
// ABOUTME: Produces exactly one RawArticle per discovered URL, with absent text on failure

package article

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/time/rate"

	"news-summarizer/core/domain"
	"news-summarizer/core/interfaces"
)

// DefaultDelay is the minimum spacing between two article requests
const DefaultDelay = 5 * time.Second

// Config holds fetcher settings
type Config struct {
	// Delay between consecutive page requests; <= 0 disables the limit
	Delay time.Duration

	// CacheTTL for extracted text; 0 stores indefinitely
	CacheTTL time.Duration
}

// Fetcher downloads articles through a ContentExtractor
type Fetcher struct {
	deps      interfaces.Dependencies
	extractor interfaces.ContentExtractor
	limiter   *rate.Limiter
	cacheTTL  time.Duration
}

// NewFetcher creates a fetcher. The limiter is shared by every call so the
// delay holds no matter how Fetch is driven.
func NewFetcher(deps interfaces.Dependencies, extractor interfaces.ContentExtractor, cfg Config) *Fetcher {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}

	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}

	return &Fetcher{
		deps:      deps,
		extractor: extractor,
		limiter:   rate.NewLimiter(limit, 1),
		cacheTTL:  cfg.CacheTTL,
	}
}

// CacheKey returns the cache key for an article URL
func CacheKey(articleURL string) string {
	sum := sha256.Sum256([]byte(articleURL))
	return "article:" + hex.EncodeToString(sum[:])
}

// Fetch returns the article's readable text, or nil when the page could
// not be retrieved or had no content. Failures are logged, never returned.
func (f *Fetcher) Fetch(ctx context.Context, articleURL string) *string {
	if text, ok := f.cached(ctx, articleURL); ok {
		return &text
	}

	if f.extractor == nil {
		f.deps.Logger.Error("No content extractor configured", map[string]interface{}{"url": articleURL})
		return nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		f.deps.Logger.Warn("Rate limiter wait aborted", map[string]interface{}{
			"url":   articleURL,
			"error": err.Error(),
		})
		return nil
	}

	f.deps.Logger.Info("Fetching news", map[string]interface{}{"url": articleURL})

	text, err := f.extractor.Extract(ctx, articleURL)
	if err != nil {
		f.deps.Logger.Warn("Failed to retrieve text from URL", map[string]interface{}{
			"url":   articleURL,
			"error": err.Error(),
		})
		return nil
	}
	if text == "" {
		f.deps.Logger.Warn("No text extracted from URL", map[string]interface{}{"url": articleURL})
		return nil
	}

	f.store(ctx, articleURL, text)
	return &text
}

// FetchAll fetches urls sequentially and returns one RawArticle per URL in
// input order. A failed fetch yields a RawArticle with nil Text.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []domain.RawArticle {
	articles := make([]domain.RawArticle, len(urls))
	fetched := 0

	for i, u := range urls {
		articles[i] = domain.RawArticle{URL: u, Text: f.Fetch(ctx, u)}
		if articles[i].HasText() {
			fetched++
		}
	}

	f.deps.Logger.Info("News fetched", map[string]interface{}{
		"total":   len(urls),
		"fetched": fetched,
		"missing": len(urls) - fetched,
	})
	return articles
}

func (f *Fetcher) cached(ctx context.Context, articleURL string) (string, bool) {
	if f.deps.Cache == nil {
		return "", false
	}

	data, err := f.deps.Cache.Get(ctx, CacheKey(articleURL))
	if err != nil || len(data) == 0 {
		return "", false
	}

	f.deps.Logger.Debug("Article cache hit", map[string]interface{}{"url": articleURL})
	return string(data), true
}

func (f *Fetcher) store(ctx context.Context, articleURL, text string) {
	if f.deps.Cache == nil {
		return
	}

	if err := f.deps.Cache.Set(ctx, CacheKey(articleURL), []byte(text), f.cacheTTL); err != nil {
		f.deps.Logger.Warn("Failed to cache article text", map[string]interface{}{
			"url":   articleURL,
			"error": err.Error(),
		})
	}
}
