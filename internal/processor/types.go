package processor

import (
	"errors"

	"github.com/mauv0809/scrim-manager/internal/metrics"
	"github.com/mauv0809/scrim-manager/internal/pubsub"
)

var ErrUnknownEvent = errors.New("unknown event type")

// Processor turns published events into metrics and announcements.
type Processor struct {
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
}

var _ pubsub.Handler = (*Processor)(nil)
