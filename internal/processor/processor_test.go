package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/metrics"
	"github.com/mauv0809/scrim-manager/internal/notifier"
	"github.com/mauv0809/scrim-manager/internal/pubsub"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, v any) []byte {
	t.Helper()
	b, err := pubsub.Encode(v)
	require.NoError(t, err)
	return b
}

func TestHandleEvent(t *testing.T) {
	t.Run("recorded match is announced with display names", func(t *testing.T) {
		store := club.NewMock()
		store.GetUsersFunc = func(ids []int64) ([]club.User, error) {
			return []club.User{{ID: 1, DisplayName: "Jett"}, {ID: 3, DisplayName: "Sage"}}, nil
		}
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(store, notif, metr)

		created := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
		data := encode(t, pubsub.MatchEvent{MatchID: 8, Winner: "A", MapName: "Icebox", TeamA: []int64{1, 2}, TeamB: []int64{3}, CreatedAt: created})

		require.NoError(t, p.HandleEvent(context.Background(), pubsub.EventMatchRecorded, data))

		require.Len(t, notif.AnnounceMatchRecordedCalls, 1)
		call := notif.AnnounceMatchRecordedCalls[0]
		assert.False(t, call.DryRun)
		assert.Equal(t, int64(8), call.Match.ID)
		assert.Equal(t, scrim.TeamA, call.Match.Winner)
		assert.Equal(t, "Icebox", call.Match.MapName)
		assert.Equal(t, []string{"Jett", "Unknown"}, call.Match.TeamA)
		assert.Equal(t, []string{"Sage"}, call.Match.TeamB)
		assert.True(t, created.Equal(call.Match.CreatedAt))
		assert.Equal(t, 1, metr.MatchesRecorded())
		assert.Len(t, metr.ProcessingDurations(), 1)
	})

	t.Run("deleted match honours dry run", func(t *testing.T) {
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(club.NewMock(), notif, metr)

		ctx := notifier.WithDryRun(context.Background(), true)
		data := encode(t, pubsub.MatchEvent{MatchID: 2, Winner: "B"})
		require.NoError(t, p.HandleEvent(ctx, pubsub.EventMatchDeleted, data))

		require.Len(t, notif.AnnounceMatchDeletedCalls, 1)
		assert.True(t, notif.AnnounceMatchDeletedCalls[0].DryRun)
		assert.Equal(t, "Unknown", notif.AnnounceMatchDeletedCalls[0].Match.MapName)
		assert.Equal(t, 1, metr.MatchesDeleted())
	})

	t.Run("notifier failure does not fail the event", func(t *testing.T) {
		notif := notifier.NewMock()
		notif.AnnounceMatchRecordedFunc = func(scrim.MatchSummary) error { return errors.New("slack down") }
		p := New(club.NewMock(), notif, metrics.NewMock())

		data := encode(t, pubsub.MatchEvent{MatchID: 1, Winner: "A"})
		assert.NoError(t, p.HandleEvent(context.Background(), pubsub.EventMatchRecorded, data))
	})

	t.Run("roster sync only counts", func(t *testing.T) {
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(club.NewMock(), notif, metr)

		data := encode(t, pubsub.RosterSyncedEvent{Synced: 12})
		require.NoError(t, p.HandleEvent(context.Background(), pubsub.EventRosterSynced, data))
		assert.Equal(t, 1, metr.RosterSyncs())
		assert.Empty(t, notif.AnnounceMatchRecordedCalls)
	})

	t.Run("unknown topic", func(t *testing.T) {
		p := New(club.NewMock(), notifier.NewMock(), metrics.NewMock())
		err := p.HandleEvent(context.Background(), "booking-created", nil)
		assert.ErrorIs(t, err, ErrUnknownEvent)
	})

	t.Run("bad payload", func(t *testing.T) {
		p := New(club.NewMock(), notifier.NewMock(), metrics.NewMock())
		err := p.HandleEvent(context.Background(), pubsub.EventMatchRecorded, []byte{0xc1})
		assert.Error(t, err)
	})
}

func TestLocalDispatch(t *testing.T) {
	notif := notifier.NewMock()
	p := New(club.NewMock(), notif, metrics.NewMock())
	client := pubsub.NewLocal(p)

	err := client.SendMessage(context.Background(), pubsub.EventMatchRecorded, pubsub.MatchEvent{MatchID: 4, Winner: "B", TeamB: []int64{9}})
	require.NoError(t, err)
	require.Len(t, notif.AnnounceMatchRecordedCalls, 1)
	assert.Equal(t, []string{"Unknown"}, notif.AnnounceMatchRecordedCalls[0].Match.TeamB)
}
