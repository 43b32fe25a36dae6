package server

import (
	"errors"
	"net/http"

	"github.com/mcdev12/reaction/go/internal/leaderboard"
	"github.com/mcdev12/reaction/go/internal/models"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

const (
	LeaderboardPath = "/leaderboard.json"
	HealthPath      = "/health"
)

// LeaderboardReader is the read side of the leaderboard store
type LeaderboardReader interface {
	Load() (models.Leaderboard, error)
}

// Options configures the publisher handler
type Options struct {
	AllowedOrigins []string
	Limiter        *ClientRateLimiter
}

// NewHandler publishes the local leaderboard as the read-only JSON array
// other players can use as their remote source
func NewHandler(store LeaderboardReader, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+LeaderboardPath, func(w http.ResponseWriter, r *http.Request) {
		serveLeaderboard(w, store)
	})

	mux.HandleFunc("GET "+HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})

	var handler http.Handler = mux
	if opts.Limiter != nil {
		handler = RateLimit(opts.Limiter)(handler)
	}

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodHead, http.MethodGet},
		AllowedOrigins: opts.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(handler)
}

func serveLeaderboard(w http.ResponseWriter, store LeaderboardReader) {
	board, err := store.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load leaderboard")
		status := http.StatusInternalServerError
		if errors.Is(err, leaderboard.ErrCorruptLeaderboard) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	data, err := leaderboard.Encode(board)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode leaderboard")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(data); err != nil {
		log.Debug().Err(err).Msg("failed to write leaderboard response")
	}
}
