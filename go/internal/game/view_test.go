package game

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mcdev12/reaction/go/internal/models"
	"github.com/mcdev12/reaction/go/internal/reaction"
	"github.com/mcdev12/reaction/go/internal/syncer"
	"github.com/stretchr/testify/assert"
)

func TestViewLeaderboard(t *testing.T) {
	var buf bytes.Buffer
	v := NewView(&buf)

	v.Leaderboard(models.Leaderboard{
		{Name: "gold", Score: 100},
		{Name: "fast", Score: 150},
		{Name: "near", Score: 230},
		{Name: "slow", Score: 320},
	}, reaction.DefaultNearBand)

	want := "Top Reaction Times\n" +
		"*  1. gold - 100 ms\n" +
		"+  2. fast - 150 ms\n" +
		"~  3. near - 230 ms\n" +
		"-  4. slow - 320 ms\n"
	assert.Equal(t, want, buf.String())
}

func TestViewEmptyLeaderboard(t *testing.T) {
	var buf bytes.Buffer
	NewView(&buf).Leaderboard(nil, reaction.DefaultNearBand)
	assert.Equal(t, "No scores yet!\n", buf.String())
}

func TestViewResultNeutral(t *testing.T) {
	var buf bytes.Buffer
	NewView(&buf).Result(reaction.Feedback{ReactionMs: 312.5, Tier: reaction.TierNeutral})
	assert.Equal(t, "Your time: 312.5 ms\n", buf.String())
}

func TestViewSyncError(t *testing.T) {
	var buf bytes.Buffer
	NewView(&buf).SyncError(errors.New("dial tcp: connection refused"))
	assert.Equal(t, "Error downloading leaderboard: dial tcp: connection refused\n", buf.String())
}

func TestViewSyncResult(t *testing.T) {
	tests := []struct {
		op     syncer.Operation
		status syncer.Status
		want   string
	}{
		{syncer.OpPreload, syncer.StatusSkipped, "Local leaderboard found. Skipping download.\n"},
		{syncer.OpPreload, syncer.StatusDownloaded, "Leaderboard downloaded and saved.\n"},
		{syncer.OpRefresh, syncer.StatusDownloaded, "Leaderboard replaced with the remote copy.\n"},
		{syncer.OpRefresh, syncer.StatusMerged, "Leaderboard merged with the remote copy.\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		NewView(&buf).SyncResult(tt.op, tt.status)
		assert.Equal(t, tt.want, buf.String(), "%s/%s", tt.op, tt.status)
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "200", FormatScore(200))
	assert.Equal(t, "231.46", FormatScore(231.456))
	assert.Equal(t, "0.5", FormatScore(0.5))
}
