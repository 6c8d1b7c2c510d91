package pubsub

import "context"

type PubSubClient interface {
	SendMessage(ctx context.Context, topic EventType, data any) error
}

// Handler consumes decoded event payloads.
type Handler interface {
	HandleEvent(ctx context.Context, topic EventType, data []byte) error
}
