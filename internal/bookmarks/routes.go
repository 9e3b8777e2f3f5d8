package bookmarks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/akasha/internal/lore"
)

// RegisterRoutes mounts the saved-transmission API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/saved", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/toggle", handleToggle(store))
		r.Post("/status", handleStatus(store))
	})
}

type listResponse struct {
	Count    int    `json:"count"`
	Excerpts Set    `json:"excerpts"`
	Warning  string `json:"warning,omitempty"`
}

type toggleResponse struct {
	Saved    bool   `json:"saved"`
	Count    int    `json:"count"`
	Excerpts Set    `json:"excerpts"`
	Warning  string `json:"warning,omitempty"`
}

// persistWarning surfaces a swallowed write failure to the client.
func persistWarning(store *Store) string {
	if err := store.LastPersistError(); err != nil {
		return "saved transmissions could not be persisted: " + err.Error()
	}
	return ""
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set := store.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(listResponse{Count: len(set), Excerpts: set, Warning: persistWarning(store)})
	}
}

func decodeExcerpt(w http.ResponseWriter, r *http.Request) (lore.Excerpt, bool) {
	var e lore.Excerpt
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return e, false
	}
	if e.Content == "" {
		http.Error(w, `{"error":"content is required"}`, http.StatusBadRequest)
		return e, false
	}
	return e, true
}

func handleToggle(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := decodeExcerpt(w, r)
		if !ok {
			return
		}

		saved, set := store.Toggle(r.Context(), e)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toggleResponse{
			Saved:    saved,
			Count:    len(set),
			Excerpts: set,
			Warning:  persistWarning(store),
		})
	}
}

func handleStatus(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := decodeExcerpt(w, r)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"saved": store.IsSaved(e)})
	}
}
