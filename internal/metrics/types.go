package metrics

import "github.com/prometheus/client_golang/prometheus"

// Notification channels used as the "channel" label.
const (
	ChannelSlack   = "slack"
	ChannelDiscord = "discord"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	RosterSyncs        prometheus.Counter
	MatchesRecorded    prometheus.Counter
	MatchesDeleted     prometheus.Counter
	ProcessingDuration prometheus.Histogram
	NotifSent          *prometheus.CounterVec
	NotifFailed        *prometheus.CounterVec
	StartupTimeSeconds prometheus.Gauge
}
