package scrim

import "context"

// Store defines the match persistence operations. Each write runs in a single transaction.
type Store interface {
	// CreateMatch inserts the match, its participants and the counter increments.
	CreateMatch(ctx context.Context, winner Team, mapName string, teamA, teamB []int64) (*Match, error)
	// RemoveMatch reverts the counters and deletes the participants and the match.
	RemoveMatch(ctx context.Context, id int64) (*Match, []Participant, error)
	GetMatch(ctx context.Context, id int64) (*Match, error)
	RecentMatches(ctx context.Context, limit int) ([]MatchSummary, error)
}
