package leaderboard_client

import (
	"context"
	"fmt"
	"time"

	"github.com/mcdev12/reaction/go/clients"
	"github.com/mcdev12/reaction/go/internal/leaderboard"
	"github.com/mcdev12/reaction/go/internal/models"
)

// LeaderboardClient downloads a leaderboard published as a JSON array
type LeaderboardClient struct {
	*clients.BaseClient
}

func NewLeaderboardClient(url string, timeout time.Duration) *LeaderboardClient {
	client := &LeaderboardClient{
		BaseClient: clients.NewBaseClient(url),
	}

	client.SetHeader(AcceptHeader, JsonContentType)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return client
}

// FetchLeaderboard performs a single GET of the remote leaderboard
func (c *LeaderboardClient) FetchLeaderboard(ctx context.Context) (models.Leaderboard, error) {
	body, err := c.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	board, err := leaderboard.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode remote leaderboard: %w", err)
	}

	return board, nil
}
