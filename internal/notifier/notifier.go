package notifier

import (
	"context"
	"errors"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/scrim"
)

// ErrNoFormatter is returned when a response is requested but no channel is configured.
var ErrNoFormatter = errors.New("no notifier configured")

// Notifier defines a high-level interface for announcing scrim events to a chat channel.
// This decouples the rest of the application from the specific provider (Slack, Discord).
type Notifier interface {
	AnnounceMatchRecorded(ctx context.Context, match scrim.MatchSummary, dryRun bool) error
	AnnounceMatchDeleted(ctx context.Context, match scrim.MatchSummary, dryRun bool) error
	SendLeaderboard(ctx context.Context, entries []club.LeaderboardEntry, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(entries []club.LeaderboardEntry) (any, error)
	FormatPlayerStatsResponse(user *club.User, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}

type dryRunKey struct{}

// WithDryRun marks ctx so that notifiers log instead of posting.
func WithDryRun(ctx context.Context, dryRun bool) context.Context {
	return context.WithValue(ctx, dryRunKey{}, dryRun)
}

// IsDryRun reports whether ctx was marked with WithDryRun(ctx, true).
func IsDryRun(ctx context.Context) bool {
	dryRun, ok := ctx.Value(dryRunKey{}).(bool)
	return ok && dryRun
}
