package reaction

import "errors"

var (
	// ErrTooSoon is returned when the player responds before the stimulus fires
	ErrTooSoon = errors.New("too soon")
	// ErrNotStarted is returned when the player responds with no round in progress
	ErrNotStarted = errors.New("round not started")
	// ErrAlreadyArmed is returned when a round is started while another is in progress
	ErrAlreadyArmed = errors.New("round already in progress")
)
