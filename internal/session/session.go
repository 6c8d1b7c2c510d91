package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/scrim"
)

const DefaultTTL = 2 * time.Hour

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownColumn   = errors.New("unknown column")
)

// Columns the roster picker can toggle.
const (
	ColumnTier    = "tier"
	ColumnRoles   = "roles"
	ColumnWins    = "wins"
	ColumnGames   = "total_games"
	ColumnWinRate = "win_rate"
)

var knownColumns = []string{ColumnTier, ColumnRoles, ColumnWins, ColumnGames, ColumnWinRate}

func defaultColumns() map[string]bool {
	return map[string]bool{
		ColumnTier:    true,
		ColumnRoles:   false,
		ColumnWins:    true,
		ColumnGames:   true,
		ColumnWinRate: false,
	}
}

// TeamBuilder is the per-user state of an in-progress scrim.
type TeamBuilder struct {
	ID          string          `json:"id"`
	TeamA       []int64         `json:"team_a"`
	TeamB       []int64         `json:"team_b"`
	MapName     string          `json:"map_name"`
	ShowColumns map[string]bool `json:"show_columns"`
	LastSeen    time.Time       `json:"last_seen"`
}

func (b *TeamBuilder) clone() TeamBuilder {
	return TeamBuilder{
		ID:          b.ID,
		TeamA:       slices.Clone(b.TeamA),
		TeamB:       slices.Clone(b.TeamB),
		MapName:     b.MapName,
		ShowColumns: maps.Clone(b.ShowColumns),
		LastSeen:    b.LastSeen,
	}
}

// Recorder persists a finished scrim.
type Recorder interface {
	RecordMatch(ctx context.Context, req scrim.RecordRequest) (*scrim.Match, error)
}

// Store keeps team builder sessions in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*TeamBuilder
	ttl      time.Duration
	pool     club.ClubStore
	recorder Recorder
	now      func() time.Time
}

func NewStore(pool club.ClubStore, recorder Recorder, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*TeamBuilder),
		ttl:      ttl,
		pool:     pool,
		recorder: recorder,
		now:      time.Now,
	}
}

func (s *Store) Create() TeamBuilder {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &TeamBuilder{
		ID:          uuid.NewString(),
		TeamA:       []int64{},
		TeamB:       []int64{},
		ShowColumns: defaultColumns(),
		LastSeen:    s.now(),
	}
	s.sessions[b.ID] = b
	log.Debug("Created team builder session", "session", b.ID)
	return b.clone()
}

func (s *Store) Get(id string) (TeamBuilder, error) {
	var out TeamBuilder
	err := s.update(id, func(b *TeamBuilder) error {
		out = b.clone()
		return nil
	})
	return out, err
}

// AddPlayer puts userID on team, taking them off the other side if needed.
func (s *Store) AddPlayer(id string, team scrim.Team, userID int64) (TeamBuilder, error) {
	if !team.Valid() {
		return TeamBuilder{}, fmt.Errorf("%w: unknown team %q", scrim.ErrValidation, team)
	}
	return s.mutate(id, func(b *TeamBuilder) error {
		b.TeamA = remove(b.TeamA, userID)
		b.TeamB = remove(b.TeamB, userID)
		if team == scrim.TeamA {
			b.TeamA = append(b.TeamA, userID)
		} else {
			b.TeamB = append(b.TeamB, userID)
		}
		return nil
	})
}

func (s *Store) RemovePlayer(id string, team scrim.Team, userID int64) (TeamBuilder, error) {
	if !team.Valid() {
		return TeamBuilder{}, fmt.Errorf("%w: unknown team %q", scrim.ErrValidation, team)
	}
	return s.mutate(id, func(b *TeamBuilder) error {
		if team == scrim.TeamA {
			b.TeamA = remove(b.TeamA, userID)
		} else {
			b.TeamB = remove(b.TeamB, userID)
		}
		return nil
	})
}

func (s *Store) SetMap(id, name string) (TeamBuilder, error) {
	return s.mutate(id, func(b *TeamBuilder) error {
		b.MapName = name
		return nil
	})
}

// Spin picks a random map from the pool and stores it on the session.
func (s *Store) Spin(ctx context.Context, id string) (TeamBuilder, error) {
	if _, err := s.Get(id); err != nil {
		return TeamBuilder{}, err
	}
	m, err := s.pool.RandomMap(ctx)
	if err != nil {
		return TeamBuilder{}, err
	}
	log.Info("Map selected", "session", id, "map", m.Name)
	return s.SetMap(id, m.Name)
}

// SetColumns applies visibility toggles. Unknown column names are rejected.
func (s *Store) SetColumns(id string, cols map[string]bool) (TeamBuilder, error) {
	for name := range cols {
		if !slices.Contains(knownColumns, name) {
			return TeamBuilder{}, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
	}
	return s.mutate(id, func(b *TeamBuilder) error {
		maps.Copy(b.ShowColumns, cols)
		return nil
	})
}

// Reset clears both teams and the map but keeps column preferences.
func (s *Store) Reset(id string) (TeamBuilder, error) {
	return s.mutate(id, func(b *TeamBuilder) error {
		b.TeamA = []int64{}
		b.TeamB = []int64{}
		b.MapName = ""
		return nil
	})
}

// Submit records the session's teams with the given winner and resets it.
// A map must have been selected.
func (s *Store) Submit(ctx context.Context, id string, winner scrim.Team) (*scrim.Match, error) {
	b, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if b.MapName == "" {
		return nil, fmt.Errorf("%w: Please select a map first.", scrim.ErrValidation)
	}

	m, err := s.recorder.RecordMatch(ctx, scrim.RecordRequest{
		TeamA:   b.TeamA,
		TeamB:   b.TeamB,
		Winner:  winner,
		MapName: b.MapName,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.Reset(id); err != nil {
		log.Warn("Session vanished after submit", "session", id, "error", err)
	}
	return m, nil
}

// Expire drops sessions idle for longer than the TTL and returns how many went.
func (s *Store) Expire() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, b := range s.sessions {
		if b.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		log.Info("Expired idle sessions", "count", n)
	}
	return n
}

// Run expires idle sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Expire()
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) mutate(id string, fn func(*TeamBuilder) error) (TeamBuilder, error) {
	var out TeamBuilder
	err := s.update(id, func(b *TeamBuilder) error {
		if err := fn(b); err != nil {
			return err
		}
		out = b.clone()
		return nil
	})
	return out, err
}

// update runs fn under the write lock and refreshes LastSeen.
func (s *Store) update(id string, fn func(*TeamBuilder) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	b.LastSeen = s.now()
	return fn(b)
}

func remove(ids []int64, id int64) []int64 {
	return slices.DeleteFunc(ids, func(v int64) bool { return v == id })
}
