// Package stream delivers a submission's lifecycle over Server-Sent Events,
// so the widget can show its placeholder while the upstream call is pending.
package stream

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	chatService "github.com/lumessence/concierge/internal/service/chat"
	"github.com/lumessence/concierge/pkg/utils"
)

// Handler streams submit progress for one conversation turn.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates a stream handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// Event payloads sent to the widget.
type event struct {
	ConversationID string `json:"conversationId,omitempty"`
	Content        string `json:"content,omitempty"`
	Notice         string `json:"notice,omitempty"`
	Kind           string `json:"kind,omitempty"`
	Error          string `json:"error,omitempty"`
}

// HandleStreamRequest runs one submission and emits start, optional profile,
// then reply or notice, then done.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, conversationID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "start", event{ConversationID: conversationID})

	outcome, err := h.chatSvc.Submit(ctx, conversationID, userMessage)
	if err != nil {
		utils.SendSSEEvent(w, flusher, "error", event{Error: err.Error()})
		return err
	}

	if outcome.Ack != nil {
		utils.SendSSEEvent(w, flusher, "profile", event{Content: outcome.Ack.Content})
	}

	if outcome.Reply != nil {
		utils.SendSSEEvent(w, flusher, "reply", event{Content: outcome.Reply.Content})
	} else {
		utils.SendSSEEvent(w, flusher, "notice", event{Notice: outcome.Notice, Kind: outcome.Kind})
	}

	utils.SendSSEEvent(w, flusher, "done", event{ConversationID: conversationID})
	return nil
}

// ValidMessage guards the query parameter before a stream is opened.
func ValidMessage(message string) bool {
	return strings.TrimSpace(message) != ""
}
