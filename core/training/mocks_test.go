package training

import (
	"context"
	"sync"
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
)

// mockStore is a mock implementation of the Store interface
type mockStore struct {
	mu   sync.Mutex
	data map[string][]byte

	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockHistorySource is a mock implementation of the HistorySource interface
type mockHistorySource struct {
	searchFunc func(ctx context.Context, textFilter string, startTime time.Time, maxResults int) ([]interfaces.HistoryEntry, error)
}

func (m *mockHistorySource) Search(ctx context.Context, textFilter string, startTime time.Time, maxResults int) ([]interfaces.HistoryEntry, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, textFilter, startTime, maxResults)
	}
	return nil, nil
}

// mockLookup is a mock implementation of the MetadataLookup interface
type mockLookup struct {
	resolveFunc func(ctx context.Context, contentID string) (*interfaces.Metadata, error)
}

func (m *mockLookup) Resolve(ctx context.Context, contentID string) (*interfaces.Metadata, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, contentID)
	}
	return &interfaces.Metadata{Title: "Title for " + contentID, Author: "Author"}, nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu       sync.Mutex
	warnMsgs []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnMsgs = append(m.warnMsgs, msg)
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func (m *mockLogger) warnings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.warnMsgs))
	copy(out, m.warnMsgs)
	return out
}
