package export

import (
	"context"
	"sync"

	"github.com/mauv0809/scrim-manager/internal/club"
)

var _ Publisher = (*MockPublisher)(nil)

// MockPublisher is a mock implementation of Publisher for testing.
type MockPublisher struct {
	mu sync.Mutex

	PublishFunc  func(entries []club.LeaderboardEntry) (string, error)
	PublishCalls [][]club.LeaderboardEntry
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, entries []club.LeaderboardEntry) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, entries)
	if m.PublishFunc != nil {
		return m.PublishFunc(entries)
	}
	return "https://docs.google.com/spreadsheets/d/mock", nil
}
