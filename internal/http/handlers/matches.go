package handlers

import (
	"net/http"
	"strconv"

	"github.com/mauv0809/scrim-manager/internal/scrim"
)

type recordResponse struct {
	Response
	Match *scrim.Match `json:"match"`
}

func RecordMatchHandler(svc *scrim.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scrim.RecordRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "Invalid JSON body.")
			return
		}
		m, err := svc.RecordMatch(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, recordResponse{
			Response: Response{OK: true, Message: scrim.MsgMatchRecorded},
			Match:    m,
		})
	}
}

func ListMatchesHandler(svc *scrim.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := scrim.DefaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				badRequest(w, "limit must be a number.")
				return
			}
			limit = n
		}
		matches, err := svc.RecentMatches(r.Context(), limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func DeleteMatchHandler(svc *scrim.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			badRequest(w, "Invalid match id.")
			return
		}
		if err := svc.DeleteMatch(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		writeOK(w, scrim.MsgMatchDeleted)
	}
}
