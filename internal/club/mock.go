package club

import (
	"context"
	"sync"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertUsersFunc    func(users []User) error
	DeleteUsersFunc    func(ids []int64) (int64, error)
	GetAllUsersFunc    func() ([]User, error)
	GetUsersFunc       func(ids []int64) ([]User, error)
	GetUserFunc        func(id int64) (*User, error)
	GetLeaderboardFunc func() ([]LeaderboardEntry, error)
	AddMapFunc         func(name string) (*Map, error)
	DeleteMapFunc      func(id int64) error
	ListMapsFunc       func() ([]Map, error)
	RandomMapFunc      func() (*Map, error)

	// Call records
	UpsertUsersCalls [][]User
	DeleteUsersCalls [][]int64
	AddMapCalls      []string
	DeleteMapCalls   []int64
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertUsersCalls = nil
	m.DeleteUsersCalls = nil
	m.AddMapCalls = nil
	m.DeleteMapCalls = nil
}

func (m *MockStore) UpsertUsers(ctx context.Context, users []User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertUsersCalls = append(m.UpsertUsersCalls, users)
	if m.UpsertUsersFunc != nil {
		return m.UpsertUsersFunc(users)
	}
	return nil
}

func (m *MockStore) DeleteUsers(ctx context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteUsersCalls = append(m.DeleteUsersCalls, ids)
	if m.DeleteUsersFunc != nil {
		return m.DeleteUsersFunc(ids)
	}
	return int64(len(ids)), nil
}

func (m *MockStore) GetAllUsers(ctx context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllUsersFunc != nil {
		return m.GetAllUsersFunc()
	}
	return []User{}, nil
}

func (m *MockStore) GetUsers(ctx context.Context, ids []int64) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUsersFunc != nil {
		return m.GetUsersFunc(ids)
	}
	return []User{}, nil
}

func (m *MockStore) GetUser(ctx context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUserFunc != nil {
		return m.GetUserFunc(id)
	}
	return nil, ErrUserNotFound
}

func (m *MockStore) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc()
	}
	return []LeaderboardEntry{}, nil
}

func (m *MockStore) AddMap(ctx context.Context, name string) (*Map, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddMapCalls = append(m.AddMapCalls, name)
	if m.AddMapFunc != nil {
		return m.AddMapFunc(name)
	}
	return &Map{ID: int64(len(m.AddMapCalls)), Name: name}, nil
}

func (m *MockStore) DeleteMap(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMapCalls = append(m.DeleteMapCalls, id)
	if m.DeleteMapFunc != nil {
		return m.DeleteMapFunc(id)
	}
	return nil
}

func (m *MockStore) ListMaps(ctx context.Context) ([]Map, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListMapsFunc != nil {
		return m.ListMapsFunc()
	}
	return []Map{}, nil
}

func (m *MockStore) RandomMap(ctx context.Context) (*Map, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RandomMapFunc != nil {
		return m.RandomMapFunc()
	}
	return nil, ErrNoMaps
}
