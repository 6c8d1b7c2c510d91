package discord

import (
	"context"
	"sync"
)

var _ DiscordClient = (*MockClient)(nil)

// MockClient is a mock implementation of the DiscordClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	GetRolesFunc   func() ([]*Role, error)
	GetMembersFunc func() ([]*Member, error)

	GetRolesCalls   int
	GetMembersCalls int
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetRolesCalls = 0
	m.GetMembersCalls = 0
}

func (m *MockClient) GetRoles(ctx context.Context) ([]*Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetRolesCalls++
	if m.GetRolesFunc != nil {
		return m.GetRolesFunc()
	}
	return []*Role{}, nil
}

func (m *MockClient) GetMembers(ctx context.Context) ([]*Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMembersCalls++
	if m.GetMembersFunc != nil {
		return m.GetMembersFunc()
	}
	return []*Member{}, nil
}
