package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRosterSyncs()
	IncMatchesRecorded()
	IncMatchesDeleted()
	ObserveProcessingDuration(duration float64)
	IncNotifSent(channel string)
	IncNotifFailed(channel string)
	SetStartupTime(duration float64)
}
