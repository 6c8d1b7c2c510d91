package club

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/mauv0809/scrim-manager/internal/database"
	"github.com/mauv0809/scrim-manager/internal/tier"
)

// store handles all database operations for the roster and map pool.
type store struct {
	db      *sql.DB
	dialect database.Dialect
	mu      sync.RWMutex
}

// User is a community member synced from the chat platform.
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Roles       string    `json:"roles"`
	Tier        tier.Tier `json:"tier"`
	Wins        int       `json:"wins"`
	TotalGames  int       `json:"total_games"`
}

// Label is the unambiguous "Display (login)" form used in pickers.
func (u User) Label() string {
	return fmt.Sprintf("%s (%s)", u.DisplayName, u.Name)
}

// Losses is the number of recorded games the user did not win.
func (u User) Losses() int {
	return u.TotalGames - u.Wins
}

// WinRate returns wins as a percentage of games played, or 0 with no games.
func (u User) WinRate() float64 {
	if u.TotalGames <= 0 {
		return 0
	}
	return float64(u.Wins) / float64(u.TotalGames) * 100
}

// LeaderboardEntry is a user with its computed standing.
type LeaderboardEntry struct {
	User
	Rank    int     `json:"rank"`
	WinRate float64 `json:"win_rate"`
}

// Map is an entry in the map pool.
type Map struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
