package game

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/reaction/go/internal/leaderboard"
	"github.com/mcdev12/reaction/go/internal/models"
	"github.com/mcdev12/reaction/go/internal/reaction"
	"github.com/mcdev12/reaction/go/internal/syncer"
	"github.com/rs/zerolog/log"
)

// RetryCommand restarts the round from the name prompt instead of saving
const RetryCommand = "/retry"

// LeaderboardStore defines what the session needs from the leaderboard
type LeaderboardStore interface {
	Path() string
	Load() (models.Leaderboard, error)
	Save(entry models.ScoreEntry) (models.Leaderboard, error)
	Reset() (bool, error)
}

// RemoteSyncer runs downloads off the event loop
type RemoteSyncer interface {
	PreloadAsync(ctx context.Context) <-chan syncer.Outcome
	RefreshAsync(ctx context.Context) <-chan syncer.Outcome
}

type mode int

const (
	modeCommand mode = iota
	modeName
)

// Session is the terminal front end. It owns a single event loop: every
// state machine transition and every store call happens on the goroutine
// running Run. Downloads report back on a channel consumed by the loop.
type Session struct {
	store    LeaderboardStore
	remote   RemoteSyncer
	stimulus *reaction.Stimulus
	view     *View

	nearBand float64
	preload  bool

	mode    mode
	pending float64
	roundID string
	timerC  <-chan time.Time
	syncC   <-chan syncer.Outcome
}

// Option configures a Session
type Option func(*Session)

// WithNearBand sets how far above the average still counts as near average
func WithNearBand(ms float64) Option {
	return func(s *Session) { s.nearBand = ms }
}

// WithPreload makes Run seed a missing leaderboard from the remote copy on start
func WithPreload() Option {
	return func(s *Session) { s.preload = true }
}

// NewSession creates a session. remote may be nil when no download source is configured.
func NewSession(store LeaderboardStore, remote RemoteSyncer, stimulus *reaction.Stimulus, out io.Writer, opts ...Option) *Session {
	s := &Session{
		store:    store,
		remote:   remote,
		stimulus: stimulus,
		view:     NewView(out),
		nearBand: reaction.DefaultNearBand,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes input lines until quit, end of input or ctx cancellation.
// A pending stimulus and any in-flight download are cancelled on return.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.stimulus.Cancel()

	lines := readLines(ctx, in)

	s.view.Banner()
	if s.preload && s.remote != nil {
		s.view.Status("Checking for local leaderboard...")
		s.syncC = s.remote.PreloadAsync(ctx)
	}
	s.view.Help()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				if s.mode == modeName {
					s.view.Status("Score discarded.")
				}
				return nil
			}
			if quit := s.handleLine(ctx, line); quit {
				return nil
			}

		case <-s.timerC:
			s.timerC = nil
			s.trigger()

		case out, ok := <-s.syncC:
			s.syncC = nil
			if ok {
				s.handleSync(out)
			}
		}
	}
}

func (s *Session) handleLine(ctx context.Context, line string) bool {
	if s.mode == modeName {
		s.handleName(line)
		return false
	}

	switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
	case "":
		s.react()
	case "s", "start":
		s.start()
	case "l", "leaderboard":
		s.showLeaderboard()
	case "x", "reset":
		s.reset()
	case "f", "refresh":
		s.refresh(ctx)
	case "h", "help", "?":
		s.view.Help()
	case "q", "quit", "exit":
		return true
	default:
		s.view.Statusf("Unknown command %q. Type h for help.", cmd)
	}
	return false
}

func (s *Session) start() {
	timer, delay, err := s.stimulus.Arm()
	if err != nil {
		s.view.Status("Round already in progress.")
		return
	}
	s.timerC = timer.Chan()
	s.roundID = uuid.New().String()[:8]

	log.Debug().Str("round_id", s.roundID).Dur("delay", delay).Msg("round started")
	s.view.Wait()
}

func (s *Session) trigger() {
	if err := s.stimulus.Trigger(); err != nil {
		log.Warn().Err(err).Str("round_id", s.roundID).Msg("stimulus fired outside a round")
		return
	}
	s.view.Now()
}

func (s *Session) react() {
	ms, err := s.stimulus.Respond()
	switch {
	case errors.Is(err, reaction.ErrTooSoon):
		log.Debug().Str("round_id", s.roundID).Msg("response before stimulus")
		s.view.TooSoon()
		return
	case errors.Is(err, reaction.ErrNotStarted):
		s.view.Status("Type s and press Enter to start a round.")
		return
	case err != nil:
		log.Error().Err(err).Str("round_id", s.roundID).Msg("failed to record response")
		return
	}

	board, err := s.store.Load()
	if err != nil {
		s.reportLoadError(err)
		board = nil
	}
	feedback := reaction.Classify(ms, board, s.nearBand)

	log.Info().
		Str("round_id", s.roundID).
		Float64("reaction_ms", ms).
		Str("tier", string(feedback.Tier)).
		Msg("round complete")

	s.view.Result(feedback)
	s.pending = ms
	s.mode = modeName
	s.view.NamePrompt()
}

func (s *Session) handleName(line string) {
	name := strings.TrimSpace(line)
	s.mode = modeCommand

	switch name {
	case "":
		s.view.Status("Score discarded.")
		return
	case RetryCommand:
		s.start()
		return
	}

	entry, err := models.NewScoreEntry(name, s.pending)
	if err != nil {
		s.view.Statusf("Could not record score: %v", err)
		return
	}
	if _, err := s.store.Save(entry); err != nil {
		log.Error().Err(err).Str("path", s.store.Path()).Msg("failed to save score")
		if errors.Is(err, leaderboard.ErrCorruptLeaderboard) {
			s.reportLoadError(err)
		}
		s.view.Statusf("Could not save score: %v", err)
		return
	}
	s.showLeaderboard()
}

func (s *Session) showLeaderboard() {
	board, err := s.store.Load()
	if err != nil {
		s.reportLoadError(err)
		return
	}
	s.view.Leaderboard(board, s.nearBand)
}

func (s *Session) reset() {
	removed, err := s.store.Reset()
	if err != nil {
		s.view.Statusf("Could not reset leaderboard: %v", err)
		return
	}
	if removed {
		s.view.Status("Leaderboard has been cleared.")
	} else {
		s.view.Status("No leaderboard file found.")
	}
	s.showLeaderboard()
}

func (s *Session) refresh(ctx context.Context) {
	if s.remote == nil {
		s.view.Status("No remote leaderboard configured.")
		return
	}
	if s.syncC != nil {
		s.view.Status("A download is already in progress.")
		return
	}
	s.view.Status("Downloading leaderboard...")
	s.syncC = s.remote.RefreshAsync(ctx)
}

func (s *Session) handleSync(out syncer.Outcome) {
	if out.Err != nil {
		s.view.SyncError(out.Err)
		return
	}
	s.view.SyncResult(out.Op, out.Result.Status)
	if out.Op == syncer.OpRefresh {
		s.showLeaderboard()
	}
}

func (s *Session) reportLoadError(err error) {
	if errors.Is(err, leaderboard.ErrCorruptLeaderboard) {
		s.view.Statusf("Warning: %s is corrupt (%v). Reset it with x.", s.store.Path(), err)
		return
	}
	s.view.Statusf("Could not read leaderboard: %v", err)
}

func readLines(ctx context.Context, in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Warn().Err(err).Msg("input closed with error")
		}
	}()
	return ch
}
