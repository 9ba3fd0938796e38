// Package chat exposes the conversation REST surface consumed by the widget.
package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	model "github.com/lumessence/concierge/internal/model/chat"
	chatService "github.com/lumessence/concierge/internal/service/chat"
	"github.com/lumessence/concierge/internal/view"
	"github.com/lumessence/concierge/pkg/utils"
)

// Handler serves conversation endpoints.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/conversation", h.handleCreate)
	r.Get("/conversation/{conversationID}", h.handleFetch)
	r.Post("/conversation/{conversationID}/messages", h.handleSubmit)
}

type conversationResponse struct {
	ID         string       `json:"id"`
	UserName   string       `json:"userName,omitempty"`
	Transcript []view.Entry `json:"transcript"`
}

func conversationPayload(conv model.Conversation) conversationResponse {
	return conversationResponse{
		ID:         conv.ID,
		UserName:   conv.Context.UserName,
		Transcript: view.Render(conv.Messages),
	}
}

// handleCreate seeds a brand-new conversation and hands its ID to the widget,
// which keeps it in browser storage.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	conv := h.chatSvc.LoadOrSeed(r.Context(), uuid.NewString())
	utils.RespondJSON(w, http.StatusCreated, conversationPayload(conv))
}

// handleFetch returns the transcript for an existing conversation. Unknown or
// corrupt IDs come back freshly seeded rather than as an error.
func (h *Handler) handleFetch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")
	if id == "" {
		utils.RespondError(w, http.StatusBadRequest, "conversation id is required")
		return
	}

	conv := h.chatSvc.LoadOrSeed(r.Context(), id)
	utils.RespondJSON(w, http.StatusOK, conversationPayload(conv))
}

type submitResponse struct {
	Entries  []view.Entry `json:"entries"`
	UserName string       `json:"userName,omitempty"`
	Notice   string       `json:"notice,omitempty"`
	Kind     string       `json:"kind,omitempty"`
}

// handleSubmit runs one turn of the conversation.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")
	if id == "" {
		utils.RespondError(w, http.StatusBadRequest, "conversation id is required")
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.chatSvc.Submit(r.Context(), id, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, chatService.ErrEmptyInput):
			utils.RespondError(w, http.StatusBadRequest, "message content is required")
		case errors.Is(err, chatService.ErrSubmitInFlight):
			utils.RespondError(w, http.StatusConflict, "a submission is already in flight")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "submission failed")
		}
		return
	}

	resp := submitResponse{Entries: []view.Entry{}, Notice: outcome.Notice, Kind: outcome.Kind}
	if outcome.Ack != nil {
		if entry, ok := view.EntryFor(*outcome.Ack); ok {
			resp.Entries = append(resp.Entries, entry)
		}
		resp.UserName = h.chatSvc.LoadOrSeed(r.Context(), id).Context.UserName
	}
	if outcome.Reply != nil {
		if entry, ok := view.EntryFor(*outcome.Reply); ok {
			resp.Entries = append(resp.Entries, entry)
		}
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
