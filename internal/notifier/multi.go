package notifier

import (
	"context"
	"errors"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/scrim"
)

// Multi fans announcements out to every configured notifier.
// Responses are formatted by the first one.
type Multi []Notifier

var _ Notifier = Multi(nil)

func (m Multi) each(fn func(Notifier) error) error {
	var errs []error
	for _, n := range m {
		if err := fn(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) AnnounceMatchRecorded(ctx context.Context, match scrim.MatchSummary, dryRun bool) error {
	return m.each(func(n Notifier) error { return n.AnnounceMatchRecorded(ctx, match, dryRun) })
}

func (m Multi) AnnounceMatchDeleted(ctx context.Context, match scrim.MatchSummary, dryRun bool) error {
	return m.each(func(n Notifier) error { return n.AnnounceMatchDeleted(ctx, match, dryRun) })
}

func (m Multi) SendLeaderboard(ctx context.Context, entries []club.LeaderboardEntry, dryRun bool) error {
	return m.each(func(n Notifier) error { return n.SendLeaderboard(ctx, entries, dryRun) })
}

func (m Multi) FormatLeaderboardResponse(entries []club.LeaderboardEntry) (any, error) {
	if len(m) == 0 {
		return nil, ErrNoFormatter
	}
	return m[0].FormatLeaderboardResponse(entries)
}

func (m Multi) FormatPlayerStatsResponse(user *club.User, query string) (any, error) {
	if len(m) == 0 {
		return nil, ErrNoFormatter
	}
	return m[0].FormatPlayerStatsResponse(user, query)
}

func (m Multi) FormatPlayerNotFoundResponse(query string) (any, error) {
	if len(m) == 0 {
		return nil, ErrNoFormatter
	}
	return m[0].FormatPlayerNotFoundResponse(query)
}
