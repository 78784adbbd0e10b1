// ABOUTME: HTTP client contract used for robots.txt, sitemap and inference sidecar requests
// ABOUTME: Implementations attempt each request once and never retry

package interfaces

import (
	"context"
	"io"
)

// HTTPClient performs single-attempt HTTP requests
type HTTPClient interface {
	// Get fetches url. A non-2xx status is not an error; callers inspect
	// StatusCode themselves.
	Get(ctx context.Context, url string) (Response, error)

	// Post sends a JSON body to url
	Post(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response is a received HTTP response
type Response interface {
	StatusCode() int

	// Body must be closed by the caller
	Body() io.ReadCloser

	// Header returns the first value of a header, case-insensitively,
	// or "" when absent
	Header(key string) string
}
