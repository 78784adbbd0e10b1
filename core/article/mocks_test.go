package article

import (
	"context"
	"errors"
	"sync"
	"time"
)

// mockExtractor is a mock implementation of the ContentExtractor interface
type mockExtractor struct {
	mu          sync.Mutex
	extractFunc func(ctx context.Context, pageURL string) (string, error)
	calls       []string
	times       []time.Time
}

func (m *mockExtractor) Extract(ctx context.Context, pageURL string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, pageURL)
	m.times = append(m.times, time.Now())
	m.mu.Unlock()

	if m.extractFunc != nil {
		return m.extractFunc(ctx, pageURL)
	}
	return "text of " + pageURL, nil
}

// mockCache is an in-memory mock of the Cache interface
type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	setErr  error
	setTTLs []time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setTTLs = append(m.setTTLs, ttl)
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
