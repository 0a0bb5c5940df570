package therapy

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mhollis/solace/backend/internal/service/session"
	therapyservice "github.com/mhollis/solace/backend/internal/service/therapy"
	"github.com/mhollis/solace/backend/pkg/utils"
)

// Handler exposes the conversation pipeline over HTTP.
type Handler struct {
	therapySvc *therapyservice.Service
}

// New creates the therapy handler.
func New(therapySvc *therapyservice.Service) *Handler {
	return &Handler{therapySvc: therapySvc}
}

// RegisterRoutes mounts the conversation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Get("/session/{sessionID}/summary", h.handleGetSummary)
	r.Get("/sessions", h.handleListSessions)
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.therapySvc.Process(r.Context(), payload.SessionID, payload.Message)
	if err != nil {
		if errors.Is(err, therapyservice.ErrEmptyInput) {
			utils.RespondError(w, http.StatusBadRequest, "no message provided")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.therapySvc.Session(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	summary, err := h.therapySvc.Summary(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	utils.RespondJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.therapySvc.Sessions(r.Context()))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"modelAvailable": h.therapySvc.ModelEnabled(),
	})
}
