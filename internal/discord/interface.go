package discord

import "context"

// DiscordClient defines the guild reads the roster sync needs.
// This allows for mock implementations to be used in tests.
type DiscordClient interface {
	GetRoles(ctx context.Context) ([]*Role, error)
	GetMembers(ctx context.Context) ([]*Member, error)
}
