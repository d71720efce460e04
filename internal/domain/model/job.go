package model

import "time"

// Job is a generation request travelling through the async queue.
type Job struct {
	ID        string     // match id assigned on submit
	RequestID string     // caller supplied idempotency key, may be empty
	Players   []Player   // roster snapshot
	TeamCount int        // requested number of teams
	Strategy  string     // auto, n_team or two_team; empty means auto
	Buddies   [][]string // buddy groups, two-team path only
	Submitted time.Time  // enqueue time
}
