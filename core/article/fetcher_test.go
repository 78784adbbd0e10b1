package article

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-summarizer/core/interfaces"
)

func TestFetcher_Fetch_ReturnsText(t *testing.T) {
	extractor := &mockExtractor{}
	fetcher := NewFetcher(interfaces.Dependencies{}, extractor, Config{})

	text := fetcher.Fetch(context.Background(), "https://example.com/2023/08/13/a")

	require.NotNil(t, text)
	assert.Equal(t, "text of https://example.com/2023/08/13/a", *text)
}

func TestFetcher_Fetch_AbsentOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		extract func(ctx context.Context, pageURL string) (string, error)
	}{
		{"transport error", func(context.Context, string) (string, error) { return "", errors.New("timeout") }},
		{"empty extraction", func(context.Context, string) (string, error) { return "", nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := NewFetcher(interfaces.Dependencies{}, &mockExtractor{extractFunc: tt.extract}, Config{})

			assert.Nil(t, fetcher.Fetch(context.Background(), "https://example.com/a"))
		})
	}
}

func TestFetcher_Fetch_SpacesRequestsByDelay(t *testing.T) {
	delay := 40 * time.Millisecond
	extractor := &mockExtractor{}
	fetcher := NewFetcher(interfaces.Dependencies{}, extractor, Config{Delay: delay})

	for _, u := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
		fetcher.Fetch(context.Background(), u)
	}

	require.Len(t, extractor.times, 3)
	for i := 1; i < len(extractor.times); i++ {
		gap := extractor.times[i].Sub(extractor.times[i-1])
		assert.GreaterOrEqual(t, gap, delay-5*time.Millisecond, "gap %d", i)
	}
}

func TestFetcher_Fetch_CancelledWhileWaiting(t *testing.T) {
	extractor := &mockExtractor{}
	fetcher := NewFetcher(interfaces.Dependencies{}, extractor, Config{Delay: time.Hour})

	require.NotNil(t, fetcher.Fetch(context.Background(), "https://example.com/1"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Nil(t, fetcher.Fetch(ctx, "https://example.com/2"))
	assert.Len(t, extractor.calls, 1)
}

func TestFetcher_Fetch_UsesCache(t *testing.T) {
	cache := newMockCache()
	extractor := &mockExtractor{}
	fetcher := NewFetcher(interfaces.Dependencies{Cache: cache}, extractor, Config{Delay: time.Hour, CacheTTL: time.Minute})

	first := fetcher.Fetch(context.Background(), "https://example.com/a")
	require.NotNil(t, first)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	second := fetcher.Fetch(ctx, "https://example.com/a")

	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
	assert.Len(t, extractor.calls, 1, "cache hit should not reach the extractor or the limiter")
	assert.Equal(t, []time.Duration{time.Minute}, cache.setTTLs)
	assert.Contains(t, cache.data, CacheKey("https://example.com/a"))
}

func TestFetcher_Fetch_CacheWriteFailureStillReturnsText(t *testing.T) {
	cache := newMockCache()
	cache.setErr = errors.New("read-only")
	fetcher := NewFetcher(interfaces.Dependencies{Cache: cache}, &mockExtractor{}, Config{})

	assert.NotNil(t, fetcher.Fetch(context.Background(), "https://example.com/a"))
}

func TestFetcher_FetchAll_OneRawArticlePerURL(t *testing.T) {
	extractor := &mockExtractor{extractFunc: func(ctx context.Context, pageURL string) (string, error) {
		if strings.HasSuffix(pageURL, "/bad") {
			return "", errors.New("404")
		}
		return "body", nil
	}}
	fetcher := NewFetcher(interfaces.Dependencies{}, extractor, Config{})
	urls := []string{"https://example.com/a", "https://example.com/bad", "https://example.com/c"}

	articles := fetcher.FetchAll(context.Background(), urls)

	require.Len(t, articles, 3)
	for i, a := range articles {
		assert.Equal(t, urls[i], a.URL)
	}
	assert.True(t, articles[0].HasText())
	assert.Nil(t, articles[1].Text)
	assert.True(t, articles[2].HasText())
}

func TestFetcher_FetchAll_Empty(t *testing.T) {
	fetcher := NewFetcher(interfaces.Dependencies{}, &mockExtractor{}, Config{})

	assert.Empty(t, fetcher.FetchAll(context.Background(), nil))
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("https://example.com/a")

	assert.True(t, strings.HasPrefix(key, "article:"))
	assert.Len(t, key, len("article:")+64)
	assert.NotEqual(t, key, CacheKey("https://example.com/b"))
}
