package leaderboard

import "errors"

// ErrCorruptLeaderboard is returned when the leaderboard file cannot be decoded
var ErrCorruptLeaderboard = errors.New("corrupt leaderboard")
