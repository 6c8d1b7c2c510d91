package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/notifier"
	"github.com/slack-go/slack"
)

func respondFormatted(w http.ResponseWriter, msg any, err error) {
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		log.Error("Failed to format slack response", "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

func LeaderboardCommandHandler(store club.ClubStore, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.GetLeaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}
		msg, err := n.FormatLeaderboardResponse(entries)
		respondFormatted(w, msg, err)
	}
}

// PlayerStatsCommandHandler answers /player-stats <name> with the best fuzzy match.
func PlayerStatsCommandHandler(store club.ClubStore, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received player stats command", "player", query)

		users, err := store.GetAllUsers(r.Context())
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get users from store", "error", err)
			return
		}

		var msg any
		if found := club.FindUsers(query, users, 1); len(found) > 0 {
			u := found[0].User
			msg, err = n.FormatPlayerStatsResponse(&u, query)
		} else {
			msg, err = n.FormatPlayerNotFoundResponse(query)
		}
		respondFormatted(w, msg, err)
	}
}
