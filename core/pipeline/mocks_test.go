package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"

	"news-summarizer/core/domain"
	"news-summarizer/core/interfaces"
)

// mockAnalyzer is a mock implementation of the TextAnalyzer interface
type mockAnalyzer struct {
	transformFunc func(ctx context.Context, text string, c interfaces.Constraints) (string, error)
	classifyFunc  func(ctx context.Context, text string) (interfaces.Classification, error)
	countFunc     func(ctx context.Context, text string) (int, error)
	maxTokens     int

	mu          sync.Mutex
	constraints []interfaces.Constraints
}

func (m *mockAnalyzer) Transform(ctx context.Context, text string, c interfaces.Constraints) (string, error) {
	m.mu.Lock()
	m.constraints = append(m.constraints, c)
	m.mu.Unlock()

	if m.transformFunc != nil {
		return m.transformFunc(ctx, text, c)
	}
	return "summary of " + text, nil
}

func (m *mockAnalyzer) Classify(ctx context.Context, text string) (interfaces.Classification, error) {
	if m.classifyFunc != nil {
		return m.classifyFunc(ctx, text)
	}
	return interfaces.Classification{Label: "POSITIVE", Score: 0.9}, nil
}

func (m *mockAnalyzer) CountTokens(ctx context.Context, text string) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, text)
	}
	return len(strings.Fields(text)), nil
}

func (m *mockAnalyzer) MaxInputTokens() int {
	if m.maxTokens == 0 {
		return 1024
	}
	return m.maxTokens
}

func (m *mockAnalyzer) TransformModel() string { return "facebook/bart-large-cnn" }
func (m *mockAnalyzer) ClassifyModel() string  { return "distilbert-sst2" }

// mockStore records WriteBatch calls
type mockStore struct {
	writeFunc func(ctx context.Context, path string, records []domain.ArticleRecord) error
	calls     int
	path      string
	records   []domain.ArticleRecord
}

func (m *mockStore) WriteBatch(ctx context.Context, path string, records []domain.ArticleRecord) error {
	m.calls++
	m.path = path
	m.records = records
	if m.writeFunc != nil {
		return m.writeFunc(ctx, path, records)
	}
	return nil
}

// mockFetcher returns canned article text keyed by URL. Missing URLs get nil text.
type mockFetcher struct {
	texts map[string]string
	urls  []string
}

func (m *mockFetcher) FetchAll(ctx context.Context, urls []string) []domain.RawArticle {
	m.urls = urls
	out := make([]domain.RawArticle, len(urls))
	for i, u := range urls {
		out[i] = domain.RawArticle{URL: u}
		if text, ok := m.texts[u]; ok {
			t := text
			out[i].Text = &t
		}
	}
	return out
}

// mockHTTPClient serves canned bodies keyed by URL, 404 otherwise
type mockHTTPClient struct {
	bodies map[string]string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if body, ok := m.bodies[url]; ok {
		return &mockResponse{statusCode: 200, body: body}, nil
	}
	return &mockResponse{statusCode: 404}, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int          { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(key string) string { return "" }

// mockLogger records messages per level
type mockLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newMockLogger() *mockLogger {
	return &mockLogger{messages: make(map[string][]string)}
}

func (m *mockLogger) record(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[level] = append(m.messages[level], msg)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record("debug", msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record("info", msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record("warn", msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record("error", msg) }

func (m *mockLogger) count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages[level])
}
