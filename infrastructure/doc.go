// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - analysis/inference: HTTP inference sidecar text analyzer
// - analysis/gemini: Gemini text analyzer
// - cache/memory: go-cache backed in-process cache
// - cache/redis: Redis cache
// - cache/sqlite: SQLite cache that survives restarts
// - extract: colly download with readability and goquery text extraction
// - http/standard: net/http client with a browser User-Agent and no retries
// - logger/structured: logrus logger
// - storage/filesystem: JSON Lines batches on local disk
// - storage/sqlite: SQLite articles table
// - storage/elasticsearch: Bulk indexing into Elasticsearch
//
// # Cache Implementations
//
//	cache, err := redis.NewRedisCache(redis.Config{Address: "localhost:6379"})
//	err = cache.Set(ctx, "key", []byte("value"), time.Hour)
//
// # HTTP Client
//
// Requests are attempted exactly once:
//
//	client := standard.NewStandardHTTPClient(60*time.Second, "")
//	resp, err := client.Get(ctx, "https://example.com/robots.txt")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.NewLogger(structured.Config{Level: "info", Format: "json"})
//	logger.Info("Parsing sitemap", map[string]interface{}{
//	    "url": "https://example.com/sitemap.xml",
//	})
package infrastructure
