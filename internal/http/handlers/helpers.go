package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/discord"
	"github.com/mauv0809/scrim-manager/internal/notifier"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/mauv0809/scrim-manager/internal/session"
	"github.com/slack-go/slack"
)

// Response is the envelope every JSON endpoint that mutates state answers with.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	return notifier.IsDryRun(r.Context())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Response{OK: true, Message: message})
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.FromContext(r.Context())
	status, msg := http.StatusInternalServerError, err.Error()

	var apiErr *discord.APIError
	switch {
	case errors.Is(err, scrim.ErrValidation):
		status = http.StatusBadRequest
		msg = strings.TrimPrefix(msg, scrim.ErrValidation.Error()+": ")
	case errors.Is(err, club.ErrEmptyMapName), errors.Is(err, session.ErrUnknownColumn):
		status = http.StatusBadRequest
	case errors.Is(err, scrim.ErrMatchNotFound),
		errors.Is(err, club.ErrUserNotFound),
		errors.Is(err, club.ErrMapNotFound),
		errors.Is(err, club.ErrNoMaps),
		errors.Is(err, session.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, club.ErrMapExists):
		status = http.StatusConflict
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "status", status, "error", err)
	} else {
		logger.Warn("Request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, Response{OK: false, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, Response{OK: false, Message: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}
