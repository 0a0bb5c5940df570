package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	therapyservice "github.com/mhollis/solace/backend/internal/service/therapy"
)

// Handler relays transcript text over a websocket so voice frontends can run
// the conversation pipeline turn by turn. Speech recognition and synthesis
// happen on the client side of this boundary; only text crosses it.
type Handler struct {
	therapySvc *therapyservice.Service
	upgrader   websocket.Upgrader
}

// New creates the websocket handler.
func New(therapySvc *therapyservice.Service) *Handler {
	return &Handler{
		therapySvc: therapySvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type textMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for session=%s: %v", sessionID, err)
			}
			return
		}

		switch inbound.Type {
		case "text":
			h.handleText(conn, r, sessionID, inbound.Data)
		case "ping":
			h.send(conn, sessionID, outgoingMessage{Type: "pong"})
		default:
			h.sendError(conn, sessionID, "unsupported message type")
		}
	}
}

func (h *Handler) handleText(conn *websocket.Conn, r *http.Request, sessionID string, raw json.RawMessage) {
	var msg textMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.sendError(conn, sessionID, "invalid text payload")
		return
	}

	reply, err := h.therapySvc.Process(r.Context(), sessionID, msg.Text)
	if err != nil {
		if errors.Is(err, therapyservice.ErrEmptyInput) {
			h.sendError(conn, sessionID, "no message provided")
			return
		}
		log.Printf("[ws] process failed for session=%s: %v", sessionID, err)
		h.sendError(conn, sessionID, "failed to process message")
		return
	}

	h.send(conn, sessionID, outgoingMessage{Type: "reply", Data: reply})
}

func (h *Handler) send(conn *websocket.Conn, sessionID string, msg outgoingMessage) {
	msg.SessionID = sessionID
	msg.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[ws] write failed for session=%s: %v", sessionID, err)
	}
}

func (h *Handler) sendError(conn *websocket.Conn, sessionID, reason string) {
	h.send(conn, sessionID, outgoingMessage{Type: "error", Data: map[string]string{"error": reason}})
}
