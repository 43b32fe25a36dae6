package game

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mcdev12/reaction/go/clients"
	"github.com/mcdev12/reaction/go/internal/models"
	"github.com/mcdev12/reaction/go/internal/reaction"
	"github.com/mcdev12/reaction/go/internal/syncer"
	"github.com/rs/zerolog/log"
)

// tierMarkers prefix leaderboard rows and feedback lines
var tierMarkers = map[reaction.Tier]string{
	reaction.TierBest:         "*",
	reaction.TierAboveAverage: "+",
	reaction.TierNearAverage:  "~",
	reaction.TierBelowAverage: "-",
	reaction.TierNeutral:      " ",
}

// View renders session output as plain text lines
type View struct {
	out io.Writer
}

// NewView creates a view writing to out
func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) Banner() {
	v.println("== Reaction Time Game ==")
}

func (v *View) Help() {
	v.println("Commands: s start, Enter react, l leaderboard, x reset, f refresh, h help, q quit")
}

func (v *View) Wait() {
	v.println("Wait for it...")
}

func (v *View) Now() {
	v.println("NOW! Press Enter!")
}

func (v *View) TooSoon() {
	v.println("Too soon! Wait for the signal.")
}

func (v *View) NamePrompt() {
	v.printf("Enter your name (empty to skip, %s to play again):\n", RetryCommand)
}

// Result prints the reaction time and how it compares with the leaderboard average
func (v *View) Result(f reaction.Feedback) {
	v.printf("Your time: %s ms\n", FormatScore(f.ReactionMs))

	avg := FormatScore(f.Average)
	switch f.Tier {
	case reaction.TierAboveAverage:
		v.printf("%s Above average! (%s ms)\n", tierMarkers[f.Tier], avg)
	case reaction.TierNearAverage:
		v.printf("%s Near average (%s ms)\n", tierMarkers[f.Tier], avg)
	case reaction.TierBelowAverage:
		v.printf("%s Below average (%s ms)\n", tierMarkers[f.Tier], avg)
	}
}

// Leaderboard prints the ranked board with a tier marker per row
func (v *View) Leaderboard(board models.Leaderboard, nearBand float64) {
	if len(board) == 0 {
		v.println("No scores yet!")
		return
	}
	v.println("Top Reaction Times")
	for i, e := range board {
		tier := reaction.RankTier(e, board, nearBand)
		v.printf("%s %2d. %s - %s ms\n", tierMarkers[tier], i+1, e.Name, FormatScore(e.Score))
	}
}

// SyncError explains a failed download; local data is never changed by one
func (v *View) SyncError(err error) {
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) {
		v.printf("Failed to fetch leaderboard: %d\n", statusErr.Code)
		return
	}
	v.printf("Error downloading leaderboard: %v\n", err)
}

// SyncResult reports what a successful preload or refresh did to the local file
func (v *View) SyncResult(op syncer.Operation, status syncer.Status) {
	switch {
	case status == syncer.StatusSkipped:
		v.println("Local leaderboard found. Skipping download.")
	case op == syncer.OpPreload:
		v.println("Leaderboard downloaded and saved.")
	case status == syncer.StatusMerged:
		v.println("Leaderboard merged with the remote copy.")
	default:
		v.println("Leaderboard replaced with the remote copy.")
	}
}

// Status prints a single status line
func (v *View) Status(msg string) {
	v.println(msg)
}

// Statusf prints a formatted status line
func (v *View) Statusf(format string, args ...any) {
	v.printf(format+"\n", args...)
}

func (v *View) println(msg string) {
	v.printf("%s\n", msg)
}

func (v *View) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(v.out, format, args...); err != nil {
		log.Debug().Err(err).Msg("failed to write output")
	}
}

// FormatScore prints a score with at most 2 decimals and no trailing zeros
func FormatScore(ms float64) string {
	return strconv.FormatFloat(models.RoundScore(ms), 'f', -1, 64)
}
