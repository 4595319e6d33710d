// Package simulate drives a running ladder server through a generated
// season and checks its ratings against a local replay.
package simulate

import (
	"time"

	"github.com/okian/ladder/internal/domain/model"
)

// Defaults for a season.
const (
	DefaultPlayers = 8
	DefaultMatches = 40
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for a simulated season.
type Config struct {
	BaseURL    string        // Base URL of the server
	Players    int           // Number of players to register
	Matches    int           // Number of matches to record
	Seed       uint64        // Seed for the match schedule; equal seeds give equal seasons
	Workers    int           // Concurrent requests while seeding and reading ranks
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON file for the generated schedule
}

func (c *Config) withDefaults() {
	if c.Players < 2 {
		c.Players = DefaultPlayers
	}
	if c.Matches < 0 {
		c.Matches = 0
	}
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Season is a generated roster and match schedule.
type Season struct {
	Players []string            `json:"players"`
	Matches []model.MatchRecord `json:"matches"`
}

// Report summarises a run.
type Report struct {
	PlayersAdded    int
	MatchesRecorded int
	Standings       []model.Standing
	Duration        time.Duration
}
