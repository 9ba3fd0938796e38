package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/lumessence/concierge/internal/config"
	"github.com/lumessence/concierge/internal/handler"
	"github.com/lumessence/concierge/internal/logging"
	chatService "github.com/lumessence/concierge/internal/service/chat"
	"github.com/lumessence/concierge/internal/service/relay"
	"github.com/lumessence/concierge/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, continuing with system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)

	conversations, err := store.OpenPebble(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("failed to open conversation store")
	}
	defer func() {
		if err := conversations.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close conversation store")
		}
	}()

	relayClient := relay.NewClient(cfg.Upstream.URL, cfg.Upstream.Timeout)
	chatSvc := chatService.NewService(conversations, relayClient)

	router := handler.NewRouter(chatSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", serverCfg.Addr).Msg("concierge backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
