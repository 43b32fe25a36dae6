package models

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// MaxEntries is the number of best scores a leaderboard keeps.
const MaxEntries = 10

var (
	// ErrEmptyName is returned when a score entry has no name
	ErrEmptyName = errors.New("name is required")
	// ErrInvalidScore is returned for negative or non-finite scores
	ErrInvalidScore = errors.New("score must be a non-negative number")
)

// ScoreEntry is a single reaction time in milliseconds recorded under a player name
type ScoreEntry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// NewScoreEntry validates the name and score and rounds the score to 2 decimals
func NewScoreEntry(name string, score float64) (ScoreEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ScoreEntry{}, ErrEmptyName
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return ScoreEntry{}, fmt.Errorf("%w: %v", ErrInvalidScore, score)
	}
	return ScoreEntry{Name: name, Score: RoundScore(score)}, nil
}

// RoundScore rounds a millisecond value to 2 decimal places
func RoundScore(ms float64) float64 {
	return math.Round(ms*100) / 100
}

// Millis converts an elapsed duration into a rounded millisecond score
func Millis(d time.Duration) float64 {
	return RoundScore(float64(d) / float64(time.Millisecond))
}

// Leaderboard is an ascending list of the best (lowest) reaction times
type Leaderboard []ScoreEntry

// Normalize returns a copy sorted ascending by score and truncated to MaxEntries.
// The sort is stable so earlier entries win ties.
func (l Leaderboard) Normalize() Leaderboard {
	out := make(Leaderboard, len(l))
	copy(out, l)
	slices.SortStableFunc(out, func(a, b ScoreEntry) int {
		return cmp.Compare(a.Score, b.Score)
	})
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

// Insert returns a new normalized leaderboard containing entry if it ranks
func (l Leaderboard) Insert(entry ScoreEntry) Leaderboard {
	next := make(Leaderboard, 0, len(l)+1)
	next = append(next, l...)
	next = append(next, entry)
	return next.Normalize()
}

// Union merges two boards and keeps the best MaxEntries.
// An entry that appears in both boards is kept as many times as the larger board holds it,
// so merging a board with a copy of itself is a no-op.
func (l Leaderboard) Union(other Leaderboard) Leaderboard {
	counts := make(map[ScoreEntry]int, len(l))
	merged := make(Leaderboard, 0, len(l)+len(other))
	for _, e := range l {
		counts[e]++
		merged = append(merged, e)
	}
	for _, e := range other {
		if counts[e] > 0 {
			counts[e]--
			continue
		}
		merged = append(merged, e)
	}
	return merged.Normalize()
}

// Scores returns the raw score values in board order
func (l Leaderboard) Scores() []float64 {
	scores := make([]float64, len(l))
	for i, e := range l {
		scores[i] = e.Score
	}
	return scores
}

// Average returns the mean score rounded to 2 decimals, false when the board is empty
func (l Leaderboard) Average() (float64, bool) {
	if len(l) == 0 {
		return 0, false
	}
	var sum float64
	for _, e := range l {
		sum += e.Score
	}
	return RoundScore(sum / float64(len(l))), true
}

// Best returns the minimum score, false when the board is empty
func (l Leaderboard) Best() (float64, bool) {
	if len(l) == 0 {
		return 0, false
	}
	return slices.Min(l.Scores()), true
}

// Validate checks every entry of a decoded board
func (l Leaderboard) Validate() error {
	for i, e := range l {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}
		if math.IsNaN(e.Score) || math.IsInf(e.Score, 0) || e.Score < 0 {
			return fmt.Errorf("entry %d: %w: %v", i, ErrInvalidScore, e.Score)
		}
	}
	return nil
}
