package processor

import (
	"context"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetUsers(ctx context.Context, ids []int64) ([]club.User, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
