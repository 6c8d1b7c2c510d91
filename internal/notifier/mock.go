package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/scrim"
)

var _ Notifier = (*Mock)(nil)

// AnnounceCall records one announcement.
type AnnounceCall struct {
	Match  scrim.MatchSummary
	DryRun bool
}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	AnnounceMatchRecordedFunc        func(match scrim.MatchSummary) error
	AnnounceMatchDeletedFunc         func(match scrim.MatchSummary) error
	SendLeaderboardFunc              func(entries []club.LeaderboardEntry) error
	FormatLeaderboardResponseFunc    func(entries []club.LeaderboardEntry) (any, error)
	FormatPlayerStatsResponseFunc    func(user *club.User, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records
	AnnounceMatchRecordedCalls []AnnounceCall
	AnnounceMatchDeletedCalls  []AnnounceCall
	SendLeaderboardCalls       [][]club.LeaderboardEntry
	PlayerStatsQueries         []string
	PlayerNotFoundQueries      []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnnounceMatchRecordedCalls = nil
	m.AnnounceMatchDeletedCalls = nil
	m.SendLeaderboardCalls = nil
	m.PlayerStatsQueries = nil
	m.PlayerNotFoundQueries = nil
}

func (m *Mock) AnnounceMatchRecorded(ctx context.Context, match scrim.MatchSummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnnounceMatchRecordedCalls = append(m.AnnounceMatchRecordedCalls, AnnounceCall{match, dryRun})
	if m.AnnounceMatchRecordedFunc != nil {
		return m.AnnounceMatchRecordedFunc(match)
	}
	return nil
}

func (m *Mock) AnnounceMatchDeleted(ctx context.Context, match scrim.MatchSummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnnounceMatchDeletedCalls = append(m.AnnounceMatchDeletedCalls, AnnounceCall{match, dryRun})
	if m.AnnounceMatchDeletedFunc != nil {
		return m.AnnounceMatchDeletedFunc(match)
	}
	return nil
}

func (m *Mock) SendLeaderboard(ctx context.Context, entries []club.LeaderboardEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, entries)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(entries)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(entries []club.LeaderboardEntry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(entries)
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(user *club.User, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerStatsQueries = append(m.PlayerStatsQueries, query)
	if m.FormatPlayerStatsResponseFunc != nil {
		return m.FormatPlayerStatsResponseFunc(user, query)
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerNotFoundQueries = append(m.PlayerNotFoundQueries, query)
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return "formatted_player_not_found", nil
}
