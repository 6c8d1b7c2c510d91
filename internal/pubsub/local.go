package pubsub

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// localClient delivers events to an in-process handler when no Pub/Sub project is configured.
type localClient struct {
	handler Handler
}

// NewLocal returns a client that encodes each event and hands it straight to handler.
func NewLocal(handler Handler) PubSubClient {
	return &localClient{handler: handler}
}

func (c *localClient) SendMessage(ctx context.Context, topic EventType, data any) error {
	b, err := Encode(data)
	if err != nil {
		return err
	}
	log.Debug("Dispatching event locally", "topic", topic)
	if err := c.handler.HandleEvent(ctx, topic, b); err != nil {
		return fmt.Errorf("failed to handle %s: %w", topic, err)
	}
	return nil
}
