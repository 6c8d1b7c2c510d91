package scrim

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/mauv0809/scrim-manager/internal/database"
)

// Team labels one side of a scrim.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

func (t Team) Valid() bool {
	return t == TeamA || t == TeamB
}

// ParseTeam accepts "A", "B", "Team A" or "Team B" in any case.
func ParseTeam(s string) (Team, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "TEAM"))
	t := Team(s)
	return t, t.Valid()
}

const (
	// UnknownLabel stands in for missing display or map names in history.
	UnknownLabel = "Unknown"

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100

	MsgMatchRecorded = "Match recorded successfully!"
	MsgMatchDeleted  = "Match deleted and stats reverted."
)

// Match is a recorded scrim outcome.
type Match struct {
	ID          int64     `json:"id"`
	WinningTeam Team      `json:"winning_team"`
	MapName     string    `json:"map_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Participant links a user to one side of a match.
type Participant struct {
	MatchID int64 `json:"match_id"`
	UserID  int64 `json:"user_id"`
	Team    Team  `json:"team"`
}

// RecordRequest is the input for recording a match. MapName may be empty.
type RecordRequest struct {
	TeamA   []int64 `json:"team_a"`
	TeamB   []int64 `json:"team_b"`
	Winner  Team    `json:"winner"`
	MapName string  `json:"map_name"`
}

// MatchSummary is the denormalized history view of a match.
type MatchSummary struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Winner    Team      `json:"winner"`
	MapName   string    `json:"map_name"`
	TeamA     []string  `json:"team_a"`
	TeamB     []string  `json:"team_b"`
}

func (m MatchSummary) TeamAText() string {
	return strings.Join(m.TeamA, ", ")
}

func (m MatchSummary) TeamBText() string {
	return strings.Join(m.TeamB, ", ")
}

// store handles match persistence.
type store struct {
	db      *sql.DB
	dialect database.Dialect
	mu      sync.RWMutex
}
