// Package chat serves the oracle conversation over a websocket and a plain
// JSON endpoint.
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/akasha/internal/lore"
	"github.com/ziadkadry99/akasha/internal/oracle"
)

// A handshake timeout also clears the server's write deadline once the
// connection is upgraded, so long sessions are not cut off.
var upgrader = websocket.Upgrader{
	HandshakeTimeout: 10 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

// Message types sent to the client.
const (
	TypeGreeting = "greeting"
	TypeTyping   = "typing"
	TypeResponse = "response"
	TypeError    = "error"
)

// request is the incoming websocket message format.
type request struct {
	Type    string `json:"type"` // "ask"
	Content string `json:"content"`
}

// Message is the outgoing websocket message format.
type Message struct {
	ID      string        `json:"id"`
	Type    string        `json:"type"`
	Kind    oracle.Kind   `json:"kind,omitempty"`
	Content string        `json:"content,omitempty"`
	Excerpt *lore.Excerpt `json:"excerpt,omitempty"`
}

// Handler answers oracle questions. The delay between the typing
// indicator and the answer is cosmetic; zero disables it.
type Handler struct {
	responder *oracle.Responder
	delay     time.Duration
	logger    *zap.Logger
}

// New creates a chat handler.
func New(responder *oracle.Responder, delay time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{responder: responder, delay: delay, logger: logger}
}

// RegisterRoutes mounts the oracle endpoints.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/ws/oracle", h.handleWebSocket)
	r.Post("/api/oracle", h.handleAsk)
}

type askRequest struct {
	Query string `json:"query"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	resp := h.responder.Respond(req.Query)
	h.logger.Debug("oracle answered",
		zap.String("kind", string(resp.Kind)),
		zap.Int("score", resp.Score),
		zap.Strings("tokens", resp.Tokens))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	log := h.logger.With(zap.String("session", session))
	log.Debug("oracle session opened")

	if !h.send(conn, log, Message{Type: TypeGreeting, Content: oracle.Greeting}) {
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var req request
		if err := json.Unmarshal(msg, &req); err != nil {
			h.send(conn, log, Message{Type: TypeError, Content: "invalid message format"})
			continue
		}
		if req.Type != "ask" {
			h.send(conn, log, Message{Type: TypeError, Content: "unknown message type: " + req.Type})
			continue
		}

		if !h.send(conn, log, Message{Type: TypeTyping}) {
			return
		}
		if err := h.think(r.Context()); err != nil {
			return
		}

		resp := h.responder.Respond(req.Content)
		log.Debug("oracle answered", zap.String("kind", string(resp.Kind)), zap.Int("score", resp.Score))
		if !h.send(conn, log, Message{
			Type:    TypeResponse,
			Kind:    resp.Kind,
			Content: resp.Text,
			Excerpt: resp.Excerpt,
		}) {
			return
		}
	}
}

// think waits out the configured delay unless ctx ends first.
func (h *Handler) think(ctx context.Context) error {
	if h.delay <= 0 {
		return nil
	}
	t := time.NewTimer(h.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handler) send(conn *websocket.Conn, log *zap.Logger, m Message) bool {
	m.ID = uuid.NewString()
	if err := conn.WriteJSON(m); err != nil {
		log.Warn("websocket write", zap.Error(err))
		return false
	}
	return true
}
