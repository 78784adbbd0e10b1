// Package interfaces defines the contracts between the pipeline core and its
// collaborators. Every external concern is injected through one of them.
package interfaces

import (
	"context"
	"time"
)

// Cache is a byte-valued key store with per-entry expiry. The article
// fetcher keeps extracted page text in it so re-runs skip the download.
//
//	err := cache.Set(ctx, article.CacheKey(link), []byte(text), 24*time.Hour)
//	data, err := cache.Get(ctx, article.CacheKey(link))
//	if err != nil {
//		// miss: download the page
//	}
type Cache interface {
	// Get returns the stored bytes, or an error for a missing or expired key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
