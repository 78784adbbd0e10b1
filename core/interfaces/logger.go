// ABOUTME: Structured logger contract shared by the core and infrastructure packages
// ABOUTME: Also provides NopLogger for components constructed without a logger

package interfaces

// Logger writes leveled messages with structured fields.
//
//	logger.Warn("Failed to load sitemap", map[string]interface{}{
//		"url":   "https://example.com/sitemap.xml",
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug is for per-request detail
	Debug(msg string, fields map[string]interface{})

	// Info is for run progress
	Info(msg string, fields map[string]interface{})

	// Warn is for recovered failures such as an unreachable sitemap or a
	// recognised model error
	Warn(msg string, fields map[string]interface{})

	// Error is for unexpected failures that still did not stop the run
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. Services fall back to it when no logger is injected.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
