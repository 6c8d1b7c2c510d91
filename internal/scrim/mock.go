package scrim

import (
	"context"
	"sync"
)

var _ Store = (*MockStore)(nil)

// MockStore is a mock implementation of Store for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	CreateMatchFunc   func(winner Team, mapName string, teamA, teamB []int64) (*Match, error)
	RemoveMatchFunc   func(id int64) (*Match, []Participant, error)
	GetMatchFunc      func(id int64) (*Match, error)
	RecentMatchesFunc func(limit int) ([]MatchSummary, error)

	CreateMatchCalls []struct {
		Winner       Team
		MapName      string
		TeamA, TeamB []int64
	}
	RemoveMatchCalls   []int64
	RecentMatchesCalls []int
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateMatch(ctx context.Context, winner Team, mapName string, teamA, teamB []int64) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, struct {
		Winner       Team
		MapName      string
		TeamA, TeamB []int64
	}{winner, mapName, teamA, teamB})
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(winner, mapName, teamA, teamB)
	}
	return &Match{ID: int64(len(m.CreateMatchCalls)), WinningTeam: winner, MapName: mapName}, nil
}

func (m *MockStore) RemoveMatch(ctx context.Context, id int64) (*Match, []Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveMatchCalls = append(m.RemoveMatchCalls, id)
	if m.RemoveMatchFunc != nil {
		return m.RemoveMatchFunc(id)
	}
	return nil, nil, ErrMatchNotFound
}

func (m *MockStore) GetMatch(ctx context.Context, id int64) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(id)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) RecentMatches(ctx context.Context, limit int) ([]MatchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecentMatchesCalls = append(m.RecentMatchesCalls, limit)
	if m.RecentMatchesFunc != nil {
		return m.RecentMatchesFunc(limit)
	}
	return []MatchSummary{}, nil
}
