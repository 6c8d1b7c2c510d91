package scrim_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mauv0809/scrim-manager/internal/database"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counters struct {
	wins, total int
}

func setupTestDB(t *testing.T) (scrim.Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	for _, u := range []struct {
		id   int64
		name string
	}{{1, "Jett"}, {2, "Sova"}, {3, "Sage"}, {4, "Omen"}} {
		_, err := db.Exec("INSERT INTO users (id, name, display_name) VALUES (?, ?, ?)", u.id, u.name, u.name)
		require.NoError(t, err)
	}
	return scrim.NewStore(db), db, teardown
}

func countersOf(t *testing.T, db *sql.DB) map[int64]counters {
	t.Helper()
	rows, err := db.Query("SELECT id, wins, total_games FROM users")
	require.NoError(t, err)
	defer rows.Close()
	out := map[int64]counters{}
	for rows.Next() {
		var id int64
		var c counters
		require.NoError(t, rows.Scan(&id, &c.wins, &c.total))
		out[id] = c
	}
	return out
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestCreateMatch_UpdatesCounters(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	m, err := store.CreateMatch(context.Background(), scrim.TeamA, "Ascent", []int64{1, 2}, []int64{3})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, scrim.TeamA, m.WinningTeam)
	assert.Equal(t, "Ascent", m.MapName)
	assert.False(t, m.CreatedAt.IsZero())

	c := countersOf(t, db)
	assert.Equal(t, counters{1, 1}, c[1])
	assert.Equal(t, counters{1, 1}, c[2])
	assert.Equal(t, counters{0, 1}, c[3])
	assert.Equal(t, counters{0, 0}, c[4])
	assert.Equal(t, 3, countRows(t, db, "match_participants"))
}

func TestCreateMatch_MissingUserGetsParticipantOnly(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.CreateMatch(context.Background(), scrim.TeamB, "", []int64{1}, []int64{99})
	require.NoError(t, err)

	assert.Equal(t, 2, countRows(t, db, "match_participants"))
	assert.Equal(t, 4, countRows(t, db, "users"), "no user row is created for an unknown id")

	var mapName sql.NullString
	require.NoError(t, db.QueryRow("SELECT map_name FROM matches").Scan(&mapName))
	assert.False(t, mapName.Valid, "an empty map name is stored as NULL")
}

func TestCreateMatch_RollsBackOnFailure(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	// The same user twice violates the participant uniqueness constraint.
	_, err := store.CreateMatch(context.Background(), scrim.TeamA, "Bind", []int64{1, 1}, []int64{2})
	require.Error(t, err)

	assert.Zero(t, countRows(t, db, "matches"))
	assert.Zero(t, countRows(t, db, "match_participants"))
	for id, c := range countersOf(t, db) {
		assert.Equal(t, counters{0, 0}, c, "user %d", id)
	}
}

func TestRemoveMatch_ReversesRecording(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := store.CreateMatch(ctx, scrim.TeamB, "Haven", []int64{3}, []int64{4})
	require.NoError(t, err)
	before := countersOf(t, db)

	m, err := store.CreateMatch(ctx, scrim.TeamA, "Split", []int64{1, 2}, []int64{3, 4})
	require.NoError(t, err)

	removed, participants, err := store.RemoveMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, removed.ID)
	assert.Equal(t, "Split", removed.MapName)
	assert.Len(t, participants, 4)

	assert.Equal(t, before, countersOf(t, db))
	assert.Equal(t, 1, countRows(t, db, "matches"))
	assert.Equal(t, 2, countRows(t, db, "match_participants"))

	_, err = store.GetMatch(ctx, m.ID)
	assert.ErrorIs(t, err, scrim.ErrMatchNotFound)
}

func TestRemoveMatch_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, _, err := store.RemoveMatch(context.Background(), 12345)
	assert.ErrorIs(t, err, scrim.ErrMatchNotFound)
}

func TestRemoveMatch_FloorsAtZero(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	m, err := store.CreateMatch(ctx, scrim.TeamA, "", []int64{1}, []int64{2})
	require.NoError(t, err)

	// Counters corrupted externally below what the match contributed.
	_, err = db.Exec("UPDATE users SET wins = 0, total_games = 0")
	require.NoError(t, err)

	_, _, err = store.RemoveMatch(ctx, m.ID)
	require.NoError(t, err)

	for id, c := range countersOf(t, db) {
		assert.GreaterOrEqual(t, c.wins, 0, "user %d", id)
		assert.GreaterOrEqual(t, c.total, 0, "user %d", id)
	}
	assert.Equal(t, counters{0, 0}, countersOf(t, db)[1])
}

func TestRecentMatches(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	first, err := store.CreateMatch(ctx, scrim.TeamA, "Ascent", []int64{1, 2}, []int64{3})
	require.NoError(t, err)
	second, err := store.CreateMatch(ctx, scrim.TeamB, "", []int64{1}, []int64{4, 99})
	require.NoError(t, err)
	third, err := store.CreateMatch(ctx, scrim.TeamA, "Lotus", []int64{2}, []int64{3})
	require.NoError(t, err)

	// Force a distinct, older timestamp on the first match.
	_, err = db.Exec("UPDATE matches SET created_at = '2020-01-01 00:00:00.000' WHERE id = ?", first.ID)
	require.NoError(t, err)

	got, err := store.RecentMatches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{got[0].ID, got[1].ID, got[2].ID})
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		newer := prev.CreatedAt.After(cur.CreatedAt) || (prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID > cur.ID)
		assert.True(t, newer, "history must be strictly newest first")
	}

	assert.Equal(t, "Unknown", got[1].MapName)
	assert.Equal(t, scrim.TeamB, got[1].Winner)
	assert.Equal(t, []string{"Jett"}, got[1].TeamA)
	assert.ElementsMatch(t, []string{"Omen", "Unknown"}, got[1].TeamB)

	assert.Equal(t, "Jett, Sova", got[2].TeamAText())
	assert.Equal(t, "Sage", got[2].TeamBText())

	limited, err := store.RecentMatches(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRecentMatches_SameTimestampOrdersByID(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	var ids []int64
	for range 3 {
		m, err := store.CreateMatch(ctx, scrim.TeamA, "Bind", []int64{1}, []int64{2})
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}
	_, err := db.Exec("UPDATE matches SET created_at = '2024-05-01 12:00:00.000'")
	require.NoError(t, err)

	got, err := store.RecentMatches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.True(t, got[0].CreatedAt.Equal(got[2].CreatedAt))

	limited, err := store.RecentMatches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, ids[2], limited[0].ID)
}

func TestRecentMatches_Empty(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	got, err := store.RecentMatches(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
