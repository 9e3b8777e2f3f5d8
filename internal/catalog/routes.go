// Package catalog serves the read-only content API: spheres, excerpts,
// civilizations, topics, the timeline and the daily transmission.
package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/akasha/internal/article"
	"github.com/ziadkadry99/akasha/internal/lookup"
	"github.com/ziadkadry99/akasha/internal/lore"
	"github.com/ziadkadry99/akasha/internal/oracle"
)

// Catalog answers content queries against a loaded library.
type Catalog struct {
	lib       *lore.Library
	responder *oracle.Responder
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a Catalog. The responder picks daily and shuffled
// transmissions.
func New(lib *lore.Library, responder *oracle.Responder, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{lib: lib, responder: responder, logger: logger, now: time.Now}
}

// CivilizationView is a civilization with its linked transmissions.
type CivilizationView struct {
	lore.Civilization
	Keywords      []string       `json:"keywords"`
	Transmissions []lore.Excerpt `json:"transmissions"`
}

// TopicView is a topic with its transmission preview and linked
// civilizations.
type TopicView struct {
	lore.Topic
	Transmissions []lore.Excerpt      `json:"transmissions"`
	Civilizations []lore.Civilization `json:"civilizations"`
}

// Civilization builds the detail view for id.
func (c *Catalog) Civilization(id string) (CivilizationView, bool) {
	civ, ok := c.lib.Civilization(id)
	if !ok {
		return CivilizationView{}, false
	}
	return CivilizationView{
		Civilization:  civ,
		Keywords:      lookup.CivilizationKeywords(civ),
		Transmissions: nonNil(lookup.ForCivilization(c.lib.Excerpts(), civ)),
	}, true
}

// Topic builds the detail view for id. Related races that are not in the
// directory are skipped.
func (c *Catalog) Topic(id string) (TopicView, bool) {
	topic, ok := c.lib.Topic(id)
	if !ok {
		return TopicView{}, false
	}
	view := TopicView{
		Topic:         topic,
		Transmissions: nonNil(lookup.ForTopic(c.lib.Excerpts(), topic)),
		Civilizations: []lore.Civilization{},
	}
	for _, race := range topic.RelatedRaces {
		if civ, ok := c.lib.Civilization(race); ok {
			view.Civilizations = append(view.Civilizations, civ)
		}
	}
	return view, true
}

// Daily returns today's transmission, or a random one when shuffle is set.
func (c *Catalog) Daily(shuffle bool) (lore.Excerpt, bool) {
	if shuffle {
		return c.responder.Random()
	}
	return c.responder.Daily(c.now())
}

// RegisterRoutes mounts the content API routes.
func RegisterRoutes(r chi.Router, c *Catalog) {
	r.Get("/api/spheres", handleSpheres(c))
	r.Get("/api/spheres/{id}", handleSphere(c))
	r.Get("/api/excerpts", handleExcerpts(c))
	r.Get("/api/excerpts/{id}", handleExcerpt(c))
	r.Get("/api/civilizations", handleCivilizations(c))
	r.Get("/api/civilizations/{id}", handleCivilization(c))
	r.Get("/api/topics", handleTopics(c))
	r.Get("/api/topics/{id}", handleTopic(c))
	r.Get("/api/timeline", handleTimeline(c))
	r.Get("/api/daily", handleDaily(c))
	r.Get("/api/stats", handleStats(c))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError answers with a JSON error body.
func writeError(w http.ResponseWriter, msg string, code int) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	http.Error(w, string(body), code)
}

func notFound(w http.ResponseWriter, what string) {
	writeError(w, what+" not found", http.StatusNotFound)
}

func handleSpheres(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, lookup.FilterSpheres(c.lib.Spheres(), r.URL.Query().Get("q")))
	}
}

func handleSphere(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := c.lib.Sphere(chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "sphere")
			return
		}
		writeJSON(w, s)
	}
}

func handleExcerpts(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := nonNil(lookup.Search(c.lib.Excerpts(), r.URL.Query().Get("q")))
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < len(results) {
				results = results[:n]
			}
		}
		writeJSON(w, results)
	}
}

func handleExcerpt(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := c.lib.Excerpt(chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "excerpt")
			return
		}
		a, err := article.New(e)
		if err != nil {
			c.logger.Error("building article", zap.String("id", e.ID), zap.Error(err))
			writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, a)
	}
}

func handleCivilizations(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.lib.Civilizations())
	}
}

func handleCivilization(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := c.Civilization(chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "civilization")
			return
		}
		writeJSON(w, view)
	}
}

func handleTopics(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.lib.Topics())
	}
}

func handleTopic(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := c.Topic(chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "topic")
			return
		}
		writeJSON(w, view)
	}
}

func handleTimeline(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ascending := false
		switch order := r.URL.Query().Get("order"); order {
		case "", "desc":
		case "asc":
			ascending = true
		default:
			writeError(w, "order must be asc or desc", http.StatusBadRequest)
			return
		}
		writeJSON(w, lookup.Timeline(c.lib.Excerpts(), ascending, r.URL.Query().Get("year")))
	}
}

func handleDaily(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shuffle, _ := strconv.ParseBool(r.URL.Query().Get("shuffle"))
		e, ok := c.Daily(shuffle)
		if !ok {
			notFound(w, "transmission")
			return
		}
		writeJSON(w, e)
	}
}

func handleStats(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.lib.Stats())
	}
}

func nonNil(excerpts []lore.Excerpt) []lore.Excerpt {
	if excerpts == nil {
		return []lore.Excerpt{}
	}
	return excerpts
}
