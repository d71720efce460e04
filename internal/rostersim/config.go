// Package rostersim drives a running teamforge server with random rosters
// and checks every returned partition.
package rostersim

import "time"

// Defaults.
const (
	DefaultRosters    = 200
	DefaultMinPlayers = 8
	DefaultMaxPlayers = 30
	DefaultMaxTeams   = 5
	DefaultRPS        = 50
	DefaultTimeout    = 10 * time.Second
	DefaultPoll       = 20 * time.Millisecond
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL    string        // base URL of the service
	Rosters    int           // rosters to submit
	MinPlayers int           // smallest roster
	MaxPlayers int           // largest roster
	MaxTeams   int           // team count is drawn from [2, MaxTeams]
	Workers    int           // concurrent requests
	RPS        float64       // request rate limit; <= 0 disables pacing
	Timeout    time.Duration // per request timeout
	Async      bool          // submit via POST /matches and poll instead of POST /generate
}

// normalized fills zero values with defaults.
func (c Config) normalized() Config {
	if c.Rosters <= 0 {
		c.Rosters = DefaultRosters
	}
	if c.MinPlayers < 2 {
		c.MinPlayers = DefaultMinPlayers
	}
	if c.MaxPlayers < c.MinPlayers {
		c.MaxPlayers = max(c.MinPlayers, DefaultMaxPlayers)
	}
	if c.MaxTeams < 2 {
		c.MaxTeams = DefaultMaxTeams
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Succeeded  int
	Rejected   int
	Failed     int
	Violations int
	Perfect    int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
