package syncer

import (
	"fmt"

	"github.com/mcdev12/reaction/go/internal/models"
)

// Policy decides how a refresh combines the remote board with local scores
type Policy string

const (
	// PolicyOverwrite replaces the local board. Scores earned locally since the
	// last download are lost.
	PolicyOverwrite Policy = "overwrite"
	// PolicyMerge unions both boards and keeps the best entries
	PolicyMerge Policy = "merge"
)

// ParsePolicy validates a policy name
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyOverwrite, PolicyMerge:
		return p, nil
	default:
		return "", fmt.Errorf("unknown refresh policy %q", s)
	}
}

// Status is what a sync did to the local file
type Status string

const (
	StatusSkipped    Status = "skipped"
	StatusDownloaded Status = "downloaded"
	StatusMerged     Status = "merged"
)

// Operation names the sync entry point that produced an Outcome
type Operation string

const (
	OpPreload Operation = "preload"
	OpRefresh Operation = "refresh"
)

// Result describes a completed sync
type Result struct {
	Status Status
	Board  models.Leaderboard
}

// Outcome is delivered by the async entry points
type Outcome struct {
	Op     Operation
	Result Result
	Err    error
}
