package scrim

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/pubsub"
)

// Service implements the match lifecycle: record, reverse and read history.
type Service struct {
	store  Store
	events pubsub.PubSubClient
}

// NewService creates a Service. events may be nil, in which case nothing is published.
func NewService(store Store, events pubsub.PubSubClient) *Service {
	return &Service{store: store, events: events}
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// dedupe drops repeated ids while keeping the first-seen order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Validate checks a request without touching the store and returns the
// normalized rosters.
func (r RecordRequest) Validate() (teamA, teamB []int64, err error) {
	teamA, teamB = dedupe(r.TeamA), dedupe(r.TeamB)
	if len(teamA) == 0 || len(teamB) == 0 {
		return nil, nil, validationError("Both teams must have at least one player.")
	}
	inA := make(map[int64]struct{}, len(teamA))
	for _, id := range teamA {
		inA[id] = struct{}{}
	}
	for _, id := range teamB {
		if _, ok := inA[id]; ok {
			return nil, nil, validationError("A player cannot be in both teams!")
		}
	}
	if !r.Winner.Valid() {
		return nil, nil, validationError(fmt.Sprintf("winner must be %q or %q", TeamA, TeamB))
	}
	return teamA, teamB, nil
}

// RecordMatch validates the request and persists the match with its counter updates.
func (s *Service) RecordMatch(ctx context.Context, req RecordRequest) (*Match, error) {
	teamA, teamB, err := req.Validate()
	if err != nil {
		log.Warn("Rejected match", "error", err)
		return nil, err
	}

	m, err := s.store.CreateMatch(ctx, req.Winner, strings.TrimSpace(req.MapName), teamA, teamB)
	if err != nil {
		log.Error("Failed to record match", "error", err)
		return nil, err
	}

	s.publish(ctx, pubsub.EventMatchRecorded, pubsub.MatchEvent{
		MatchID:   m.ID,
		Winner:    string(m.WinningTeam),
		MapName:   m.MapName,
		TeamA:     teamA,
		TeamB:     teamB,
		CreatedAt: m.CreatedAt,
	})
	return m, nil
}

// DeleteMatch reverses a recorded match. A missing match yields ErrMatchNotFound.
func (s *Service) DeleteMatch(ctx context.Context, id int64) error {
	m, participants, err := s.store.RemoveMatch(ctx, id)
	if err != nil {
		log.Error("Failed to delete match", "matchID", id, "error", err)
		return err
	}

	ev := pubsub.MatchEvent{
		MatchID:   m.ID,
		Winner:    string(m.WinningTeam),
		MapName:   m.MapName,
		CreatedAt: m.CreatedAt,
	}
	for _, p := range participants {
		if p.Team == TeamA {
			ev.TeamA = append(ev.TeamA, p.UserID)
		} else {
			ev.TeamB = append(ev.TeamB, p.UserID)
		}
	}
	s.publish(ctx, pubsub.EventMatchDeleted, ev)
	return nil
}

// RecentMatches returns at most limit matches, newest first. The limit is capped
// at MaxHistoryLimit; a limit of zero or less yields no matches.
func (s *Service) RecentMatches(ctx context.Context, limit int) ([]MatchSummary, error) {
	if limit <= 0 {
		return []MatchSummary{}, nil
	}
	return s.store.RecentMatches(ctx, min(limit, MaxHistoryLimit))
}

func (s *Service) publish(ctx context.Context, topic pubsub.EventType, ev pubsub.MatchEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.SendMessage(ctx, topic, ev); err != nil {
		log.Error("Failed to publish match event", "topic", topic, "matchID", ev.MatchID, "error", err)
	}
}
