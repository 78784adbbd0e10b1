// Package core contains the crawl and analysis pipeline of the news summarizer.
// It is designed to be framework-agnostic: every external concern is reached
// through the contracts in core/interfaces.
//
// The core package is organized into several sub-packages:
//
// - domain: CrawlTarget, RawArticle, ArticleRecord and the Analysis result
// - sitemap: robots.txt resolution and breadth-first sitemap parsing
// - article: rate limited, cache aware article fetching
// - chunker: token-budget splitting and rejoining of article text
// - workers: fixed-size pool returning results in input order
// - pipeline: the orchestrator tying discovery, fetch, analysis and storage
// - errors: validation, fetch and model error types
// - interfaces: contracts for cache, HTTP, logger, analyzer, extractor and store
//
// # Design Principles
//
// - All external dependencies are injected via interfaces
// - Every discovered article yields exactly one record
// - Only configuration errors abort a run; everything else degrades
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache, may be nil
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	fetcher := article.NewFetcher(deps, myExtractor, article.Config{Delay: article.DefaultDelay})
//	orch := pipeline.NewOrchestrator(deps, fetcher, myAnalyzer, myStore, pipeline.Config{Workers: 2})
//
//	target, err := domain.NewCrawlTarget("https://example.com", "2023-08-13", "%Y-%m-%d")
//	report, err := orch.Summarize(ctx, target)
package core
