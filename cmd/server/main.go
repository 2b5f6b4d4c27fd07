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

	"github.com/mlindqvist/minauth/internal/config"
	"github.com/mlindqvist/minauth/internal/logging"
	"github.com/mlindqvist/minauth/internal/server"
	"github.com/mlindqvist/minauth/internal/storage/postgres"
)

func main() {
	// Optional local overrides; deployments inject real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.LogLevel)

	ctx := context.Background()
	store, err := postgres.NewUserStore(ctx, cfg.DSN(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}
	defer store.Close()

	srv := server.New(cfg, store, log)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddress()).Msg("http server listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
