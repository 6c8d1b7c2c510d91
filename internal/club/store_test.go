package club_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/database"
	"github.com/mauv0809/scrim-manager/internal/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return club.New(db), db, teardown
}

func TestUpsertUsers_CreatesWithZeroCounters(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	err := store.UpsertUsers(ctx, []club.User{
		{ID: 1, Name: "jett", DisplayName: "Jett", Roles: "Gold", Tier: tier.Gold},
		{ID: 2, Name: "sova", DisplayName: "Sova", Tier: ""},
	})
	require.NoError(t, err)

	users, err := store.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Jett", users[0].DisplayName)
	assert.Equal(t, tier.Gold, users[0].Tier)
	assert.Zero(t, users[0].Wins)
	assert.Zero(t, users[0].TotalGames)
	assert.Equal(t, tier.Unranked, users[1].Tier, "invalid tiers fall back to Unranked")
}

func TestUpsertUsers_PreservesCounters(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, store.UpsertUsers(ctx, []club.User{{ID: 1, Name: "jett", DisplayName: "Jett", Tier: tier.Iron}}))
	_, err := db.Exec("UPDATE users SET wins = 4, total_games = 7 WHERE id = 1")
	require.NoError(t, err)

	require.NoError(t, store.UpsertUsers(ctx, []club.User{{ID: 1, Name: "jett2", DisplayName: "Jetty", Roles: "Radiant", Tier: tier.Radiant}}))

	u, err := store.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "jett2", u.Name)
	assert.Equal(t, "Jetty", u.DisplayName)
	assert.Equal(t, "Radiant", u.Roles)
	assert.Equal(t, tier.Radiant, u.Tier)
	assert.Equal(t, 4, u.Wins)
	assert.Equal(t, 7, u.TotalGames)
}

func TestDeleteUsers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, store.UpsertUsers(ctx, []club.User{
		{ID: 1, Name: "a", DisplayName: "A"},
		{ID: 2, Name: "b", DisplayName: "B"},
	}))

	n, err := store.DeleteUsers(ctx, []int64{2, 99})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.DeleteUsers(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = store.GetUser(ctx, 2)
	assert.ErrorIs(t, err, club.ErrUserNotFound)
}

func TestGetUsers_SkipsMissing(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, store.UpsertUsers(ctx, []club.User{{ID: 1, Name: "a", DisplayName: "A"}}))

	users, err := store.GetUsers(ctx, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].ID)
}

func TestGetLeaderboard_Ordering(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, store.UpsertUsers(ctx, []club.User{
		{ID: 1, Name: "a", DisplayName: "Alpha"},
		{ID: 2, Name: "b", DisplayName: "Bravo"},
		{ID: 3, Name: "c", DisplayName: "Charlie"},
		{ID: 4, Name: "d", DisplayName: "Delta"},
	}))
	// Alpha 1/2 = 50%, Bravo 2/4 = 50% with more wins, Charlie 3/3 = 100%, Delta no games.
	_, err := db.Exec(`
		UPDATE users SET wins = CASE id WHEN 1 THEN 1 WHEN 2 THEN 2 WHEN 3 THEN 3 ELSE 0 END,
			total_games = CASE id WHEN 1 THEN 2 WHEN 2 THEN 4 WHEN 3 THEN 3 ELSE 0 END`)
	require.NoError(t, err)

	board, err := store.GetLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 4)

	assert.Equal(t, "Charlie", board[0].DisplayName)
	assert.InDelta(t, 100.0, board[0].WinRate, 0.001)
	assert.Equal(t, "Bravo", board[1].DisplayName)
	assert.Equal(t, "Alpha", board[2].DisplayName)
	assert.Equal(t, "Delta", board[3].DisplayName)
	assert.Zero(t, board[3].WinRate)
	for i, e := range board {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestMaps(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := store.RandomMap(ctx)
	assert.ErrorIs(t, err, club.ErrNoMaps)

	ascent, err := store.AddMap(ctx, "Ascent")
	require.NoError(t, err)
	_, err = store.AddMap(ctx, " Bind ")
	require.NoError(t, err)

	_, err = store.AddMap(ctx, "Ascent")
	assert.ErrorIs(t, err, club.ErrMapExists)
	_, err = store.AddMap(ctx, "   ")
	assert.ErrorIs(t, err, club.ErrEmptyMapName)

	maps, err := store.ListMaps(ctx)
	require.NoError(t, err)
	require.Len(t, maps, 2)
	assert.Equal(t, "Ascent", maps[0].Name)
	assert.Equal(t, "Bind", maps[1].Name)

	for range 10 {
		m, err := store.RandomMap(ctx)
		require.NoError(t, err)
		assert.Contains(t, []string{"Ascent", "Bind"}, m.Name)
	}

	// Deleting a map leaves historical matches untouched.
	_, err = db.Exec(`INSERT INTO matches (winning_team, map_name) VALUES ('A', 'Ascent')`)
	require.NoError(t, err)
	require.NoError(t, store.DeleteMap(ctx, ascent.ID))
	assert.ErrorIs(t, store.DeleteMap(ctx, ascent.ID), club.ErrMapNotFound)

	var mapName string
	require.NoError(t, db.QueryRow(`SELECT map_name FROM matches`).Scan(&mapName))
	assert.Equal(t, "Ascent", mapName)
}

func TestUserHelpers(t *testing.T) {
	u := club.User{Name: "jett", DisplayName: "Jett", Wins: 3, TotalGames: 4}
	assert.Equal(t, "Jett (jett)", u.Label())
	assert.Equal(t, 1, u.Losses())
	assert.InDelta(t, 75.0, u.WinRate(), 0.001)
	assert.Zero(t, club.User{}.WinRate())
}
