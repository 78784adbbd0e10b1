// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the crawl and analysis core

package interfaces

// Dependencies holds the external dependencies shared by the core services
type Dependencies struct {
	// Cache stores extracted article text between runs; may be nil
	Cache Cache

	// HTTPClient fetches robots.txt and sitemap documents
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
