package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"users", "matches", "match_participants", "maps"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_UserDefaults(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO users (id, name, display_name) VALUES (1, 'jett', 'Jett')`)
	require.NoError(t, err)

	var tier, roles string
	var wins, total int
	err = db.QueryRow(`SELECT tier, roles, wins, total_games FROM users WHERE id = 1`).Scan(&tier, &roles, &wins, &total)
	require.NoError(t, err)
	assert.Equal(t, "Unranked", tier)
	assert.Equal(t, "", roles)
	assert.Zero(t, wins)
	assert.Zero(t, total)
}

func TestInitDB_MatchTimestampDefault(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	before := time.Now().UTC().Add(-time.Minute)
	var ts Timestamp
	err = db.QueryRow(`INSERT INTO matches (winning_team) VALUES ('A') RETURNING created_at`).Scan(&ts)
	require.NoError(t, err)
	assert.True(t, ts.After(before), "created_at should be server assigned")

	_, err = db.Exec(`INSERT INTO matches (winning_team) VALUES ('C')`)
	assert.Error(t, err, "winning team is constrained to A or B")
}

func TestInitDB_ParticipantUniqueness(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO matches (id, winning_team) VALUES (1, 'A')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO match_participants (match_id, user_id, team) VALUES (1, 10, 'A')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO match_participants (match_id, user_id, team) VALUES (1, 10, 'B')`)
	assert.Error(t, err, "a user may appear only once per match")

	_, err = db.Exec(`INSERT INTO match_participants (match_id, user_id, team) VALUES (99, 10, 'A')`)
	assert.Error(t, err, "participants must reference an existing match")
}

func TestRebind(t *testing.T) {
	q := "UPDATE users SET wins = ? WHERE id IN (?, ?)"
	assert.Equal(t, q, Rebind(SQLite, q))
	assert.Equal(t, "UPDATE users SET wins = $1 WHERE id IN ($2, $3)", Rebind(Postgres, q))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}

func TestTimestampScan(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.Scan("2025-03-01 18:30:00.250"))
	assert.Equal(t, time.Date(2025, 3, 1, 18, 30, 0, 250_000_000, time.UTC), ts.Time)

	require.NoError(t, ts.Scan([]byte("2025-03-01T18:30:00Z")))
	assert.Equal(t, 18, ts.Hour())

	now := time.Now()
	require.NoError(t, ts.Scan(now))
	assert.True(t, now.Equal(ts.Time))

	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("yesterday"))
}
