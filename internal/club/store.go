package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/database"
	"github.com/mauv0809/scrim-manager/internal/tier"
)

// New creates a new ClubStore. The dialect defaults to SQLite.
func New(db *sql.DB, dialect ...database.Dialect) ClubStore {
	d := database.SQLite
	if len(dialect) > 0 {
		d = dialect[0]
	}
	return &store{
		db:      db,
		dialect: d,
	}
}

func (s *store) q(query string) string {
	return database.Rebind(s.dialect, query)
}

// UpsertUsers creates missing users and refreshes the synced fields of existing ones.
// Win and game counters are never touched here.
func (s *store) UpsertUsers(ctx context.Context, users []User) error {
	if len(users) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.q(`
		INSERT INTO users (id, name, display_name, roles, tier)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			display_name = excluded.display_name,
			roles = excluded.roles,
			tier = excluded.tier
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare user upsert: %w", err)
	}
	defer stmt.Close()

	for _, u := range users {
		t := u.Tier
		if !t.Valid() {
			t = tier.Unranked
		}
		if _, err := stmt.ExecContext(ctx, u.ID, u.Name, u.DisplayName, u.Roles, t); err != nil {
			return fmt.Errorf("failed to upsert user %d: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user upsert: %w", err)
	}
	log.Debug("Upserted users", "count", len(users))
	return nil
}

// DeleteUsers removes the given users and reports how many rows went away.
func (s *store) DeleteUsers(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM users WHERE id IN ("+database.Placeholders(len(ids))+")"), database.Int64Args(ids)...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete users: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted users: %w", err)
	}
	return n, nil
}

const userColumns = "id, name, display_name, roles, tier, wins, total_games"

func scanUser(scanner interface{ Scan(...any) error }) (User, error) {
	var u User
	var t string
	if err := scanner.Scan(&u.ID, &u.Name, &u.DisplayName, &u.Roles, &t, &u.Wins, &u.TotalGames); err != nil {
		return User{}, err
	}
	u.Tier = tier.Parse(t)
	return u, nil
}

func (s *store) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetAllUsers returns every user ordered by display name.
func (s *store) GetAllUsers(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryUsers(ctx, "SELECT "+userColumns+" FROM users ORDER BY display_name, id")
}

// GetUsers returns the users among ids that exist. Missing ids are skipped.
func (s *store) GetUsers(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryUsers(ctx, "SELECT "+userColumns+" FROM users WHERE id IN ("+database.Placeholders(len(ids))+")", database.Int64Args(ids)...)
}

func (s *store) GetUser(ctx context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, err := scanUser(s.db.QueryRowContext(ctx, s.q("SELECT "+userColumns+" FROM users WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

// GetLeaderboard ranks users by win rate, then wins, then name.
func (s *store) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := s.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{User: u, WinRate: u.WinRate()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// AddMap adds a map to the pool. Names are unique.
func (s *store) AddMap(ctx context.Context, name string) (*Map, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyMapName
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Map{Name: name}
	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO maps (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
		RETURNING id
	`), name).Scan(&m.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrMapExists, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add map: %w", err)
	}
	log.Info("Added map to pool", "map", name, "id", m.ID)
	return &m, nil
}

// DeleteMap removes a map from the pool. Matches keep their stored map name.
func (s *store) DeleteMap(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM maps WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMapNotFound
	}
	return nil
}

func (s *store) ListMaps(ctx context.Context) ([]Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM maps ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query maps: %w", err)
	}
	defer rows.Close()

	var maps []Map
	for rows.Next() {
		var m Map
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan map: %w", err)
		}
		maps = append(maps, m)
	}
	return maps, rows.Err()
}

// RandomMap picks a map uniformly from the pool.
func (s *store) RandomMap(ctx context.Context) (*Map, error) {
	maps, err := s.ListMaps(ctx)
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, ErrNoMaps
	}
	m := maps[rand.IntN(len(maps))]
	return &m, nil
}
