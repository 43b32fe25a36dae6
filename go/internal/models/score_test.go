package models

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoreEntry(t *testing.T) {
	tests := []struct {
		name      string
		inName    string
		inScore   float64
		want      ScoreEntry
		wantErrIs error
	}{
		{
			name:    "rounds to two decimals",
			inName:  "alice",
			inScore: 231.4567,
			want:    ScoreEntry{Name: "alice", Score: 231.46},
		},
		{
			name:    "trims name",
			inName:  "  bob \n",
			inScore: 200,
			want:    ScoreEntry{Name: "bob", Score: 200},
		},
		{
			name:      "empty name",
			inName:    "   ",
			inScore:   200,
			wantErrIs: ErrEmptyName,
		},
		{
			name:      "negative score",
			inName:    "carol",
			inScore:   -1,
			wantErrIs: ErrInvalidScore,
		},
		{
			name:      "nan score",
			inName:    "carol",
			inScore:   math.NaN(),
			wantErrIs: ErrInvalidScore,
		},
		{
			name:    "zero is allowed",
			inName:  "dave",
			inScore: 0,
			want:    ScoreEntry{Name: "dave", Score: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewScoreEntry(tt.inName, tt.inScore)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErrIs), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMillis(t *testing.T) {
	assert.Equal(t, 250.0, Millis(250*time.Millisecond))
	assert.Equal(t, 123.46, Millis(123456789*time.Nanosecond))
	assert.Equal(t, 0.0, Millis(0))
}

func TestLeaderboardNormalize(t *testing.T) {
	board := Leaderboard{
		{Name: "c", Score: 300},
		{Name: "a", Score: 100},
		{Name: "tie-first", Score: 200},
		{Name: "tie-second", Score: 200},
	}

	got := board.Normalize()
	want := Leaderboard{
		{Name: "a", Score: 100},
		{Name: "tie-first", Score: 200},
		{Name: "tie-second", Score: 200},
		{Name: "c", Score: 300},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "c", board[0].Name, "input must not be reordered")
}

func TestLeaderboardInsertTruncates(t *testing.T) {
	var board Leaderboard
	for i := 1; i <= MaxEntries; i++ {
		board = board.Insert(ScoreEntry{Name: "p", Score: float64(i * 100)})
	}
	require.Len(t, board, MaxEntries)

	t.Run("worse than the worst is dropped", func(t *testing.T) {
		got := board.Insert(ScoreEntry{Name: "slow", Score: 5000})
		if diff := cmp.Diff(board, got); diff != "" {
			t.Fatalf("board changed (-want +got):\n%s", diff)
		}
	})

	t.Run("better entry evicts the worst", func(t *testing.T) {
		got := board.Insert(ScoreEntry{Name: "fast", Score: 50})
		require.Len(t, got, MaxEntries)
		assert.Equal(t, ScoreEntry{Name: "fast", Score: 50}, got[0])
		assert.Equal(t, 900.0, got[MaxEntries-1].Score)
	})
}

func TestLeaderboardUnion(t *testing.T) {
	local := Leaderboard{{Name: "a", Score: 100}, {Name: "b", Score: 200}}
	remote := Leaderboard{{Name: "a", Score: 100}, {Name: "z", Score: 150}}

	got := local.Union(remote)
	want := Leaderboard{{Name: "a", Score: 100}, {Name: "z", Score: 150}, {Name: "b", Score: 200}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Union() mismatch (-want +got):\n%s", diff)
	}

	t.Run("self union is a no-op", func(t *testing.T) {
		dup := Leaderboard{{Name: "a", Score: 100}, {Name: "a", Score: 100}}
		if diff := cmp.Diff(dup, dup.Union(dup)); diff != "" {
			t.Fatalf("self union changed board:\n%s", diff)
		}
	})
}

func TestLeaderboardAverageAndBest(t *testing.T) {
	board := Leaderboard{{Name: "a", Score: 100}, {Name: "b", Score: 200}, {Name: "c", Score: 300}}

	avg, ok := board.Average()
	require.True(t, ok)
	assert.Equal(t, 200.0, avg)

	best, ok := board.Best()
	require.True(t, ok)
	assert.Equal(t, 100.0, best)

	_, ok = Leaderboard{}.Average()
	assert.False(t, ok)
	_, ok = Leaderboard(nil).Best()
	assert.False(t, ok)

	avg, _ = Leaderboard{{Name: "a", Score: 100}, {Name: "b", Score: 100.01}, {Name: "c", Score: 100.01}}.Average()
	assert.Equal(t, 100.01, avg)
}

func TestLeaderboardValidate(t *testing.T) {
	assert.NoError(t, Leaderboard{{Name: "a", Score: 1}}.Validate())
	assert.ErrorIs(t, Leaderboard{{Name: "a", Score: 1}, {Name: "", Score: 2}}.Validate(), ErrEmptyName)
	assert.ErrorIs(t, Leaderboard{{Name: "a", Score: -3}}.Validate(), ErrInvalidScore)
}
