package reaction

import "github.com/mcdev12/reaction/go/internal/models"

// DefaultNearBand is how far above the average still counts as near average
const DefaultNearBand = 50.0

// Tier is the feedback category of a reaction time
type Tier string

const (
	TierNeutral      Tier = "neutral"
	TierAboveAverage Tier = "above_average"
	TierNearAverage  Tier = "near_average"
	TierBelowAverage Tier = "below_average"
	// TierBest marks the fastest entry of a leaderboard view
	TierBest Tier = "best"
)

// Feedback is the comparison of one reaction time against the leaderboard
type Feedback struct {
	ReactionMs float64
	Tier       Tier
	Average    float64
	HasAverage bool
}

// Average returns the rounded mean of the board, false when it is empty
func Average(board models.Leaderboard) (float64, bool) {
	return board.Average()
}

// Classify compares reactionMs against the board average
func Classify(reactionMs float64, board models.Leaderboard, nearBand float64) Feedback {
	avg, ok := Average(board)
	return Feedback{
		ReactionMs: reactionMs,
		Tier:       tierFor(reactionMs, avg, ok, nearBand),
		Average:    avg,
		HasAverage: ok,
	}
}

// RankTier is the display tier of a leaderboard row: the best score is
// highlighted, the rest are compared against the board average.
func RankTier(entry models.ScoreEntry, board models.Leaderboard, nearBand float64) Tier {
	if best, ok := board.Best(); ok && entry.Score == best {
		return TierBest
	}
	avg, ok := board.Average()
	return tierFor(entry.Score, avg, ok, nearBand)
}

func tierFor(ms, avg float64, hasAvg bool, nearBand float64) Tier {
	switch {
	case !hasAvg:
		return TierNeutral
	case ms < avg:
		return TierAboveAverage
	case ms <= avg+nearBand:
		return TierNearAverage
	default:
		return TierBelowAverage
	}
}
