package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/processor"
	"github.com/mauv0809/scrim-manager/internal/pubsub"
)

// pushEnvelope is the body Google Pub/Sub push subscriptions POST.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}

// PubSubPushHandler unwraps a push delivery and hands it to handler.
// Unknown events are acknowledged so Pub/Sub stops redelivering them.
func PubSubPushHandler(handler pubsub.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}

		var env pushEnvelope
		if err := json.Unmarshal(bodyBytes, &env); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(env.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		topic := pubsub.EventType(env.Message.Attributes[pubsub.EventAttribute])
		log.Debug("Received push message", "topic", topic, "messageId", env.Message.MessageID)

		if err := handler.HandleEvent(r.Context(), topic, rawData); err != nil {
			if errors.Is(err, processor.ErrUnknownEvent) {
				log.Warn("Dropping unknown event", "topic", topic)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
