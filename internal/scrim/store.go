package scrim

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/database"
)

// NewStore creates a new match Store. The dialect defaults to SQLite.
func NewStore(db *sql.DB, dialect ...database.Dialect) Store {
	d := database.SQLite
	if len(dialect) > 0 {
		d = dialect[0]
	}
	return &store{db: db, dialect: d}
}

func (s *store) q(query string) string {
	return database.Rebind(s.dialect, query)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// counterDelta describes how a side's counters move.
type counterDelta int

const (
	increment counterDelta = iota
	revert
)

// applyCounters updates wins/total_games for ids in one statement.
// Users that no longer exist are simply not matched.
func (s *store) applyCounters(ctx context.Context, tx execer, ids []int64, won bool, delta counterDelta) error {
	if len(ids) == 0 {
		return nil
	}
	var set string
	switch {
	case delta == increment && won:
		set = "wins = wins + 1, total_games = total_games + 1"
	case delta == increment:
		set = "total_games = total_games + 1"
	case won:
		set = "wins = CASE WHEN wins > 0 THEN wins - 1 ELSE 0 END, total_games = CASE WHEN total_games > 0 THEN total_games - 1 ELSE 0 END"
	default:
		set = "total_games = CASE WHEN total_games > 0 THEN total_games - 1 ELSE 0 END"
	}
	query := "UPDATE users SET " + set + " WHERE id IN (" + database.Placeholders(len(ids)) + ")"
	if _, err := tx.ExecContext(ctx, s.q(query), database.Int64Args(ids)...); err != nil {
		return fmt.Errorf("failed to update counters: %w", err)
	}
	return nil
}

func (s *store) CreateMatch(ctx context.Context, winner Team, mapName string, teamA, teamB []int64) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m := Match{WinningTeam: winner, MapName: mapName}
	var createdAt database.Timestamp
	err = tx.QueryRowContext(ctx, s.q(`
		INSERT INTO matches (winning_team, map_name) VALUES (?, ?)
		RETURNING id, created_at
	`), winner, nullString(mapName)).Scan(&m.ID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotCreated
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchNotCreated, err)
	}
	m.CreatedAt = createdAt.Time

	stmt, err := tx.PrepareContext(ctx, s.q("INSERT INTO match_participants (match_id, user_id, team) VALUES (?, ?, ?)"))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare participant insert: %w", err)
	}
	defer stmt.Close()
	for _, side := range []struct {
		team Team
		ids  []int64
	}{{TeamA, teamA}, {TeamB, teamB}} {
		for _, id := range side.ids {
			if _, err := stmt.ExecContext(ctx, m.ID, id, side.team); err != nil {
				return nil, fmt.Errorf("failed to insert participant %d: %w", id, err)
			}
		}
	}

	if err := s.applyCounters(ctx, tx, teamA, winner == TeamA, increment); err != nil {
		return nil, err
	}
	if err := s.applyCounters(ctx, tx, teamB, winner == TeamB, increment); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}
	log.Info("Recorded match", "matchID", m.ID, "winner", winner, "map", mapName, "team_a", len(teamA), "team_b", len(teamB))
	return &m, nil
}

func (s *store) RemoveMatch(ctx context.Context, id int64) (*Match, []Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, err := s.getMatch(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}

	rows, err := tx.QueryContext(ctx, s.q("SELECT match_id, user_id, team FROM match_participants WHERE match_id = ?"), id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query participants: %w", err)
	}
	participants, err := scanParticipants(rows)
	if err != nil {
		return nil, nil, err
	}

	var winners, losers []int64
	for _, p := range participants {
		if p.Team == m.WinningTeam {
			winners = append(winners, p.UserID)
		} else {
			losers = append(losers, p.UserID)
		}
	}
	if err := s.applyCounters(ctx, tx, winners, true, revert); err != nil {
		return nil, nil, err
	}
	if err := s.applyCounters(ctx, tx, losers, false, revert); err != nil {
		return nil, nil, err
	}

	// Participants first: match_participants references matches without a cascade.
	if _, err := tx.ExecContext(ctx, s.q("DELETE FROM match_participants WHERE match_id = ?"), id); err != nil {
		return nil, nil, fmt.Errorf("failed to delete participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.q("DELETE FROM matches WHERE id = ?"), id); err != nil {
		return nil, nil, fmt.Errorf("failed to delete match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit match deletion: %w", err)
	}
	log.Info("Deleted match and reverted stats", "matchID", id, "participants", len(participants))
	return m, participants, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *store) getMatch(ctx context.Context, q queryRower, id int64) (*Match, error) {
	var (
		m         Match
		team      string
		mapName   sql.NullString
		createdAt database.Timestamp
	)
	err := q.QueryRowContext(ctx, s.q("SELECT id, winning_team, map_name, created_at FROM matches WHERE id = ?"), id).
		Scan(&m.ID, &team, &mapName, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	m.WinningTeam = Team(team)
	m.MapName = mapName.String
	m.CreatedAt = createdAt.Time
	return &m, nil
}

func (s *store) GetMatch(ctx context.Context, id int64) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getMatch(ctx, s.db, id)
}

func (s *store) RecentMatches(ctx context.Context, limit int) ([]MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, winning_team, map_name, created_at
		FROM matches
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	var summaries []MatchSummary
	for rows.Next() {
		var (
			sum       MatchSummary
			team      string
			mapName   sql.NullString
			createdAt database.Timestamp
		)
		if err := rows.Scan(&sum.ID, &team, &mapName, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		sum.Winner = Team(team)
		sum.MapName = mapName.String
		if sum.MapName == "" {
			sum.MapName = UnknownLabel
		}
		sum.CreatedAt = createdAt.Time
		summaries = append(summaries, sum)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}
	if len(summaries) == 0 {
		return []MatchSummary{}, nil
	}

	matchIDs := make([]int64, len(summaries))
	for i, sum := range summaries {
		matchIDs[i] = sum.ID
	}
	prows, err := s.db.QueryContext(ctx, s.q("SELECT match_id, user_id, team FROM match_participants WHERE match_id IN ("+database.Placeholders(len(matchIDs))+") ORDER BY match_id, user_id"), database.Int64Args(matchIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	participants, err := scanParticipants(prows)
	if err != nil {
		return nil, err
	}

	names, err := s.displayNames(ctx, participants)
	if err != nil {
		return nil, err
	}

	byMatch := make(map[int64][]Participant, len(summaries))
	for _, p := range participants {
		byMatch[p.MatchID] = append(byMatch[p.MatchID], p)
	}
	for i := range summaries {
		summaries[i].TeamA = []string{}
		summaries[i].TeamB = []string{}
		for _, p := range byMatch[summaries[i].ID] {
			name, ok := names[p.UserID]
			if !ok {
				name = UnknownLabel
			}
			if p.Team == TeamA {
				summaries[i].TeamA = append(summaries[i].TeamA, name)
			} else {
				summaries[i].TeamB = append(summaries[i].TeamB, name)
			}
		}
	}
	return summaries, nil
}

func (s *store) displayNames(ctx context.Context, participants []Participant) (map[int64]string, error) {
	seen := make(map[int64]struct{}, len(participants))
	var ids []int64
	for _, p := range participants {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := s.db.QueryContext(ctx, s.q("SELECT id, display_name FROM users WHERE id IN ("+database.Placeholders(len(ids))+")"), database.Int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query display names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan display name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

func scanParticipants(rows *sql.Rows) ([]Participant, error) {
	defer rows.Close()
	var participants []Participant
	for rows.Next() {
		var p Participant
		var team string
		if err := rows.Scan(&p.MatchID, &p.UserID, &team); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		p.Team = Team(team)
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read participants: %w", err)
	}
	return participants, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
