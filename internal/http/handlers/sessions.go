package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/mauv0809/scrim-manager/internal/session"
)

func CreateSessionHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, store.Create())
	}
}

func GetSessionHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := store.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func teamPlayer(w http.ResponseWriter, r *http.Request) (scrim.Team, int64, bool) {
	team, ok := scrim.ParseTeam(r.PathValue("team"))
	if !ok {
		badRequest(w, "Team must be A or B.")
		return "", 0, false
	}
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		badRequest(w, "Invalid user id.")
		return "", 0, false
	}
	return team, userID, true
}

func AddPlayerHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, userID, ok := teamPlayer(w, r)
		if !ok {
			return
		}
		b, err := store.AddPlayer(r.PathValue("id"), team, userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func RemovePlayerHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, userID, ok := teamPlayer(w, r)
		if !ok {
			return
		}
		b, err := store.RemovePlayer(r.PathValue("id"), team, userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func SpinMapHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := store.Spin(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func SetColumnsHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cols map[string]bool
		if err := decodeJSON(r, &cols); err != nil {
			badRequest(w, "Invalid JSON body.")
			return
		}
		b, err := store.SetColumns(r.PathValue("id"), cols)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func SubmitSessionHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Winner string `json:"winner"`
		}
		if err := decodeJSON(r, &body); err != nil {
			badRequest(w, "Invalid JSON body.")
			return
		}
		winner, _ := scrim.ParseTeam(body.Winner)
		m, err := store.Submit(r.Context(), r.PathValue("id"), winner)
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

func SetMapHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := decodeJSON(r, &body); err != nil {
			badRequest(w, "Invalid JSON body.")
			return
		}
		b, err := store.SetMap(r.PathValue("id"), strings.TrimSpace(body.Name))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// ResetSessionHandler clears both teams and the chosen map.
func ResetSessionHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := store.Reset(r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}
