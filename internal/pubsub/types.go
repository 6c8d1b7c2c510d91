package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name.
type EventType string

// EventAttribute is the message attribute carrying the EventType.
const EventAttribute = "event"

const (
	EventMatchRecorded EventType = "match-recorded"
	EventMatchDeleted  EventType = "match-deleted"
	EventRosterSynced  EventType = "roster-synced"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventMatchRecorded, EventMatchDeleted, EventRosterSynced:
		return true
	}
	return false
}

// MatchEvent describes a recorded or reverted match.
type MatchEvent struct {
	MatchID   int64     `msgpack:"match_id"`
	Winner    string    `msgpack:"winner"`
	MapName   string    `msgpack:"map_name"`
	TeamA     []int64   `msgpack:"team_a"`
	TeamB     []int64   `msgpack:"team_b"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// RosterSyncedEvent summarises a completed roster sync.
type RosterSyncedEvent struct {
	Synced   int       `msgpack:"synced"`
	Removed  int       `msgpack:"removed"`
	Warnings []string  `msgpack:"warnings"`
	SyncedAt time.Time `msgpack:"synced_at"`
}
