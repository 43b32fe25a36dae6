package reaction

import (
	"testing"

	"github.com/mcdev12/reaction/go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	board := models.Leaderboard{
		{Name: "a", Score: 100},
		{Name: "b", Score: 200},
		{Name: "c", Score: 300},
	}

	tests := []struct {
		name     string
		reaction float64
		board    models.Leaderboard
		want     Tier
	}{
		{name: "no average", reaction: 150, board: nil, want: TierNeutral},
		{name: "faster than average", reaction: 150, board: board, want: TierAboveAverage},
		{name: "exactly average", reaction: 200, board: board, want: TierNearAverage},
		{name: "within band", reaction: 230, board: board, want: TierNearAverage},
		{name: "band edge", reaction: 250, board: board, want: TierNearAverage},
		{name: "beyond band", reaction: 260, board: board, want: TierBelowAverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.reaction, tt.board, DefaultNearBand)
			assert.Equal(t, tt.want, got.Tier)
			assert.Equal(t, tt.reaction, got.ReactionMs)
			if tt.board == nil {
				assert.False(t, got.HasAverage)
				return
			}
			assert.True(t, got.HasAverage)
			assert.Equal(t, 200.0, got.Average)
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	board := models.Leaderboard{{Name: "b", Score: 200}, {Name: "a", Score: 100}}
	before := append(models.Leaderboard{}, board...)

	first := Classify(120, board, DefaultNearBand)
	second := Classify(120, board, DefaultNearBand)

	assert.Equal(t, first, second)
	assert.Equal(t, before, board)
}

func TestRankTier(t *testing.T) {
	board := models.Leaderboard{
		{Name: "gold", Score: 100},
		{Name: "fast", Score: 150},
		{Name: "near", Score: 230},
		{Name: "slow", Score: 320},
	}
	// average = 200

	assert.Equal(t, TierBest, RankTier(board[0], board, DefaultNearBand))
	assert.Equal(t, TierAboveAverage, RankTier(board[1], board, DefaultNearBand))
	assert.Equal(t, TierNearAverage, RankTier(board[2], board, DefaultNearBand))
	assert.Equal(t, TierBelowAverage, RankTier(board[3], board, DefaultNearBand))
}
