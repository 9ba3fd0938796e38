package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/lumessence/concierge/internal/handler/chat"
	"github.com/lumessence/concierge/internal/handler/stream"
	middlewarePkg "github.com/lumessence/concierge/internal/middleware"
	chatService "github.com/lumessence/concierge/internal/service/chat"
	"github.com/lumessence/concierge/pkg/utils"
	"github.com/lumessence/concierge/web"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(chatSvc)
	streamHandler := stream.New(chatSvc)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)

		// SSE variant of submit: the widget opens this instead of POSTing
		// when it wants lifecycle events around the pending reply.
		api.Get("/stream/{conversationID}", func(w http.ResponseWriter, r *http.Request) {
			conversationID := chi.URLParam(r, "conversationID")
			userMessage := r.URL.Query().Get("message")

			if !stream.ValidMessage(userMessage) {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, conversationID, userMessage); err != nil {
				log.Error().Err(err).Str("conversation", conversationID).Msg("stream request failed")
			}
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", web.Index)

	return r
}
