package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mcdev12/reaction/go/internal/config"
	"github.com/mcdev12/reaction/go/internal/leaderboard"
	"github.com/mcdev12/reaction/go/internal/server"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

func setupServer(cfg *config.Config, store *leaderboard.Store) *http.Server {
	limiter := server.NewClientRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst, nil)

	handler := server.NewHandler(store, server.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Limiter:        limiter,
	})

	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h2c.NewHandler(handler, &http2.Server{}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// runServer serves until ctx is done, then shuts down gracefully
func runServer(ctx context.Context, srv *http.Server) error {
	errC := make(chan error, 1)
	go func() {
		defer close(errC)
		log.Info().Str("addr", srv.Addr).Msg("leaderboard server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err, ok := <-errC:
		if ok {
			return fmt.Errorf("leaderboard server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("leaderboard server shutdown failed: %w", err)
	}
	log.Info().Msg("leaderboard server shutdown complete")
	return nil
}
