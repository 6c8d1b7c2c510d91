package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/roster"
)

type syncResponse struct {
	Response
	roster.Result
}

func SyncRosterHandler(syncer *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting roster sync")
		res, err := syncer.Sync(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, syncResponse{
			Response: Response{OK: true, Message: res.Message()},
			Result:   res,
		})
	}
}

// ListMembersHandler lists the roster. With ?q= it returns fuzzy matches instead.
func ListMembersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := store.GetAllUsers(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		q := r.URL.Query().Get("q")
		if q == "" {
			writeJSON(w, http.StatusOK, users)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 5
		}
		writeJSON(w, http.StatusOK, club.FindUsers(q, users, limit))
	}
}
