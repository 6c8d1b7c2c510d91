package club

import "context"

// ClubStore defines the interface for interacting with the roster and map pool.
type ClubStore interface {
	UpsertUsers(ctx context.Context, users []User) error
	DeleteUsers(ctx context.Context, ids []int64) (int64, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	GetUsers(ctx context.Context, ids []int64) ([]User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error)

	AddMap(ctx context.Context, name string) (*Map, error)
	DeleteMap(ctx context.Context, id int64) error
	ListMaps(ctx context.Context) ([]Map, error)
	RandomMap(ctx context.Context) (*Map, error)
}
