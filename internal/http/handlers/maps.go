package handlers

import (
	"net/http"

	"github.com/mauv0809/scrim-manager/internal/club"
)

func ListMapsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maps, err := store.ListMaps(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, maps)
	}
}

func AddMapHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := decodeJSON(r, &body); err != nil {
			badRequest(w, "Invalid JSON body.")
			return
		}
		m, err := store.AddMap(r.Context(), body.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func DeleteMapHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			badRequest(w, "Invalid map id.")
			return
		}
		if err := store.DeleteMap(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		writeOK(w, "Map removed.")
	}
}

func RandomMapHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.RandomMap(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}
