package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcdev12/reaction/go/internal/leaderboard"
	"github.com/mcdev12/reaction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Fetcher downloads the remote leaderboard
type Fetcher interface {
	FetchLeaderboard(ctx context.Context) (models.Leaderboard, error)
}

// Store defines what the syncer needs from the local leaderboard
type Store interface {
	Exists() (bool, error)
	Seed(board models.Leaderboard) (bool, error)
	Replace(board models.Leaderboard) error
	Merge(board models.Leaderboard) (models.Leaderboard, error)
}

// Syncer reconciles the local leaderboard file with the remote copy.
// Every entry point makes at most one request and never touches the local
// file when the download fails.
type Syncer struct {
	fetcher Fetcher
	store   Store
	policy  Policy
}

// NewSyncer creates a syncer. An empty policy means PolicyOverwrite.
func NewSyncer(fetcher Fetcher, store Store, policy Policy) *Syncer {
	if policy == "" {
		policy = PolicyOverwrite
	}
	return &Syncer{
		fetcher: fetcher,
		store:   store,
		policy:  policy,
	}
}

// Policy returns the refresh policy in use
func (s *Syncer) Policy() Policy {
	return s.policy
}

// Preload seeds the local leaderboard from the remote copy when no local file exists
func (s *Syncer) Preload(ctx context.Context) (Result, error) {
	exists, err := s.store.Exists()
	if err != nil {
		return Result{}, fmt.Errorf("failed to check local leaderboard: %w", err)
	}
	if exists {
		log.Debug().Msg("local leaderboard found, skipping download")
		return Result{Status: StatusSkipped}, nil
	}

	board, err := s.fetch(ctx)
	if err != nil {
		return Result{}, err
	}
	// a score may have been saved while the download was in flight
	written, err := s.store.Seed(board)
	if err != nil {
		return Result{}, err
	}
	if !written {
		log.Debug().Msg("local leaderboard appeared during download, keeping it")
		return Result{Status: StatusSkipped}, nil
	}

	log.Info().Int("entries", len(board)).Msg("leaderboard downloaded and saved")
	return Result{Status: StatusDownloaded, Board: board.Normalize()}, nil
}

// Refresh downloads the remote leaderboard regardless of local state and
// applies the configured policy
func (s *Syncer) Refresh(ctx context.Context) (Result, error) {
	board, err := s.fetch(ctx)
	if err != nil {
		return Result{}, err
	}

	switch s.policy {
	case PolicyMerge:
		merged, err := s.store.Merge(board)
		if err != nil {
			return Result{}, err
		}
		log.Info().Int("entries", len(merged)).Str("policy", string(s.policy)).Msg("leaderboard refreshed")
		return Result{Status: StatusMerged, Board: merged}, nil
	default:
		if err := s.store.Replace(board); err != nil {
			return Result{}, err
		}
		log.Info().Int("entries", len(board)).Str("policy", string(s.policy)).Msg("leaderboard refreshed")
		return Result{Status: StatusDownloaded, Board: board.Normalize()}, nil
	}
}

// PreloadAsync runs Preload on its own goroutine and delivers the outcome on the returned channel
func (s *Syncer) PreloadAsync(ctx context.Context) <-chan Outcome {
	return s.async(ctx, OpPreload, s.Preload)
}

// RefreshAsync runs Refresh on its own goroutine and delivers the outcome on the returned channel
func (s *Syncer) RefreshAsync(ctx context.Context) <-chan Outcome {
	return s.async(ctx, OpRefresh, s.Refresh)
}

func (s *Syncer) async(ctx context.Context, op Operation, fn func(context.Context) (Result, error)) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		res, err := fn(ctx)
		out <- Outcome{Op: op, Result: res, Err: err}
	}()
	return out
}

func (s *Syncer) fetch(ctx context.Context) (models.Leaderboard, error) {
	board, err := s.fetcher.FetchLeaderboard(ctx)
	if err == nil {
		return board, nil
	}

	log.Warn().Err(err).Msg("failed to fetch leaderboard")
	if errors.Is(err, leaderboard.ErrCorruptLeaderboard) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
}
