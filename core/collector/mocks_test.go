package collector

import (
	"context"
	"sync"
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/domain"
)

// mockStore is a mock implementation of the Store interface
type mockStore struct {
	mu   sync.Mutex
	data map[string][]byte

	setCalls map[string]int
}

func newMockStore() *mockStore {
	return &mockStore{
		data:     make(map[string][]byte),
		setCalls: make(map[string]int),
	}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.setCalls[key]++
	return nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mockStore) setCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls[key]
}

// mockFeedSource is a mock implementation of the FeedSource interface
type mockFeedSource struct {
	mu           sync.Mutex
	discoverFunc func(ctx context.Context) ([]domain.CandidateItem, error)
	calls        int
}

func (m *mockFeedSource) Discover(ctx context.Context) ([]domain.CandidateItem, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.discoverFunc != nil {
		return m.discoverFunc(ctx)
	}
	return nil, nil
}

func (m *mockFeedSource) discoverCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (mockLogger) Info(msg string, fields map[string]interface{})  {}
func (mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (mockLogger) Error(msg string, fields map[string]interface{}) {}
