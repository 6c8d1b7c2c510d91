package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/export"
	"github.com/mauv0809/scrim-manager/internal/notifier"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func LeaderboardHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.GetLeaderboard(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func LeaderboardExcelHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.GetLeaderboard(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		b, err := export.Excel(entries)
		if err != nil {
			writeError(w, r, err)
			return
		}
		name := fmt.Sprintf("leaderboard-%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(b); err != nil {
			log.Error("Failed to write workbook", "error", err)
		}
	}
}

// LeaderboardSheetHandler publishes the leaderboard to Google Sheets. publisher may be nil.
func LeaderboardSheetHandler(store club.ClubStore, publisher export.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if publisher == nil {
			writeJSON(w, http.StatusServiceUnavailable, Response{OK: false, Message: "Google Sheets export is not configured."})
			return
		}
		entries, err := store.GetLeaderboard(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would publish leaderboard to Google Sheets", "rows", len(entries))
			writeOK(w, "Dry run: leaderboard not published.")
			return
		}
		url, err := publisher.Publish(r.Context(), entries)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeOK(w, url)
	}
}

func AnnounceLeaderboardHandler(store club.ClubStore, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.GetLeaderboard(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := n.SendLeaderboard(r.Context(), entries, IsDryRunFromContext(r)); err != nil {
			writeJSON(w, http.StatusBadGateway, Response{OK: false, Message: err.Error()})
			return
		}
		writeOK(w, "Leaderboard announced.")
	}
}
