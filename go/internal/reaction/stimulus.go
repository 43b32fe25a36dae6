package reaction

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/reaction/go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMinDelay = 2000 * time.Millisecond
	DefaultMaxDelay = 5000 * time.Millisecond
)

// State is a step of a reaction round
type State int

const (
	StateIdle State = iota
	StateArmed
	// StateTriggered is held only while the stimulus is being shown
	StateTriggered
	StateAwaitingResponse
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateTriggered:
		return "triggered"
	case StateAwaitingResponse:
		return "awaiting_response"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DelayFunc picks the wait before the stimulus is shown
type DelayFunc func() time.Duration

// UniformDelay returns a DelayFunc drawing uniformly from [min, max)
func UniformDelay(min, max time.Duration) DelayFunc {
	return func() time.Duration {
		if max <= min {
			return min
		}
		return min + rand.N(max-min)
	}
}

// Stimulus is the round state machine. It is not safe for concurrent use;
// all transitions are driven from a single event loop.
type Stimulus struct {
	clock clockwork.Clock
	delay DelayFunc

	state       State
	timer       clockwork.Timer
	triggeredAt time.Time
}

// Option configures a Stimulus
type Option func(*Stimulus)

// WithClock sets the clock used for timers and timestamps
func WithClock(clock clockwork.Clock) Option {
	return func(s *Stimulus) { s.clock = clock }
}

// WithDelay sets the delay source
func WithDelay(delay DelayFunc) Option {
	return func(s *Stimulus) { s.delay = delay }
}

// NewStimulus creates an idle state machine with a real clock and
// the default 2-5s uniform delay
func NewStimulus(opts ...Option) *Stimulus {
	s := &Stimulus{
		clock: clockwork.NewRealClock(),
		delay: UniformDelay(DefaultMinDelay, DefaultMaxDelay),
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state
func (s *Stimulus) State() State {
	return s.state
}

// Arm starts a round. The returned timer fires when the stimulus should be shown;
// the caller must then call Trigger.
func (s *Stimulus) Arm() (clockwork.Timer, time.Duration, error) {
	if s.state != StateIdle {
		return nil, 0, ErrAlreadyArmed
	}
	d := s.delay()
	s.timer = s.clock.NewTimer(d)
	s.state = StateArmed

	log.Debug().Dur("delay", d).Msg("stimulus armed")
	return s.timer, d, nil
}

// Trigger shows the stimulus and starts timing the response
func (s *Stimulus) Trigger() error {
	if s.state != StateArmed {
		return fmt.Errorf("cannot trigger from state %s", s.state)
	}
	s.state = StateTriggered
	s.timer = nil
	s.triggeredAt = s.clock.Now()
	s.state = StateAwaitingResponse
	return nil
}

// Respond records the player's input. It returns the reaction time in
// milliseconds rounded to 2 decimals and returns the machine to idle.
// Input before the stimulus yields ErrTooSoon and leaves the round armed.
func (s *Stimulus) Respond() (float64, error) {
	switch s.state {
	case StateArmed:
		return 0, ErrTooSoon
	case StateAwaitingResponse:
		elapsed := s.clock.Since(s.triggeredAt)
		if elapsed < 0 {
			elapsed = 0
		}
		s.state = StateIdle
		return models.Millis(elapsed), nil
	default:
		return 0, ErrNotStarted
	}
}

// Cancel stops a pending round and returns to idle
func (s *Stimulus) Cancel() {
	if s.timer != nil {
		stopAndDrainTimer(s.timer)
		s.timer = nil
	}
	s.state = StateIdle
}

// stopAndDrainTimer stops a timer and drains a value that already fired
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
