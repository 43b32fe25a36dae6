package main

import (
	"fmt"

	leaderboardclient "github.com/mcdev12/reaction/go/clients/leaderboard_client"
	"github.com/mcdev12/reaction/go/internal/config"
	"github.com/mcdev12/reaction/go/internal/leaderboard"
	"github.com/mcdev12/reaction/go/internal/syncer"
)

type Services struct {
	Store  *leaderboard.Store
	Syncer *syncer.Syncer
}

func setupServices(cfg *config.Config) (*Services, error) {
	// File → Store, remote client + Store → Syncer
	store := leaderboard.Open(cfg.Leaderboard.Path)

	policy, err := syncer.ParsePolicy(cfg.Remote.RefreshPolicy)
	if err != nil {
		return nil, fmt.Errorf("failed to set up syncer: %w", err)
	}
	client := leaderboardclient.NewLeaderboardClient(cfg.Remote.URL, cfg.Remote.Timeout)

	return &Services{
		Store:  store,
		Syncer: syncer.NewSyncer(client, store, policy),
	}, nil
}
