package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	DefaultBaseURL = "https://discord.com/api/v10"

	// memberPageSize is the largest page the guild members endpoint returns.
	memberPageSize = 1000
)

// Member is a guild member as returned by the members endpoint.
type Member = discordgo.Member

// Role is a guild role as returned by the roles endpoint.
type Role = discordgo.Role

// APIError is a non-200 answer from Discord. Its message mirrors what the
// bot reports back to users.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Body)
}

// DisplayName picks nick, then global name, then username.
func DisplayName(m *Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return ""
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}
