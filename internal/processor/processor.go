package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/metrics"
	"github.com/mauv0809/scrim-manager/internal/notifier"
	"github.com/mauv0809/scrim-manager/internal/pubsub"
	"github.com/mauv0809/scrim-manager/internal/scrim"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics) *Processor {
	return &Processor{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
	}
}

// HandleEvent decodes a msgpack payload and reacts to it. Notification
// failures are logged and counted but do not fail the event.
func (p *Processor) HandleEvent(ctx context.Context, topic pubsub.EventType, data []byte) error {
	start := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration(time.Since(start).Seconds())
	}()

	dryRun := notifier.IsDryRun(ctx)
	log.Debug("Handling event", "topic", topic, "dryRun", dryRun)

	switch topic {
	case pubsub.EventMatchRecorded:
		var ev pubsub.MatchEvent
		if err := pubsub.Decode(data, &ev); err != nil {
			return err
		}
		p.metrics.IncMatchesRecorded()
		summary := p.summarize(ctx, ev)
		if err := p.notifier.AnnounceMatchRecorded(ctx, summary, dryRun); err != nil {
			log.Error("Failed to announce recorded match", "matchID", ev.MatchID, "error", err)
		}

	case pubsub.EventMatchDeleted:
		var ev pubsub.MatchEvent
		if err := pubsub.Decode(data, &ev); err != nil {
			return err
		}
		p.metrics.IncMatchesDeleted()
		summary := p.summarize(ctx, ev)
		if err := p.notifier.AnnounceMatchDeleted(ctx, summary, dryRun); err != nil {
			log.Error("Failed to announce deleted match", "matchID", ev.MatchID, "error", err)
		}

	case pubsub.EventRosterSynced:
		var ev pubsub.RosterSyncedEvent
		if err := pubsub.Decode(data, &ev); err != nil {
			return err
		}
		p.metrics.IncRosterSyncs()
		log.Info("Roster sync completed", "synced", ev.Synced, "removed", ev.Removed, "warnings", len(ev.Warnings))

	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, topic)
	}
	return nil
}

// summarize resolves participant ids to display names. Lookup failures
// degrade to "Unknown" rather than dropping the announcement.
func (p *Processor) summarize(ctx context.Context, ev pubsub.MatchEvent) scrim.MatchSummary {
	names := make(map[int64]string)
	ids := append(append([]int64{}, ev.TeamA...), ev.TeamB...)
	if len(ids) > 0 {
		users, err := p.store.GetUsers(ctx, ids)
		if err != nil {
			log.Warn("Failed to resolve player names", "matchID", ev.MatchID, "error", err)
		}
		for _, u := range users {
			names[u.ID] = u.DisplayName
		}
	}

	label := func(list []int64) []string {
		out := make([]string, 0, len(list))
		for _, id := range list {
			if n, ok := names[id]; ok && n != "" {
				out = append(out, n)
			} else {
				out = append(out, scrim.UnknownLabel)
			}
		}
		return out
	}

	mapName := ev.MapName
	if mapName == "" {
		mapName = scrim.UnknownLabel
	}
	return scrim.MatchSummary{
		ID:        ev.MatchID,
		CreatedAt: ev.CreatedAt,
		Winner:    scrim.Team(ev.Winner),
		MapName:   mapName,
		TeamA:     label(ev.TeamA),
		TeamB:     label(ev.TeamB),
	}
}
