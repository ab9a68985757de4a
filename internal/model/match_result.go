package model

import (
	"time"

	"github.com/google/uuid"
)

// MatchResult is the persisted record of one finished level.
type MatchResult struct {
	ID              uuid.UUID
	Outcome         string // "won" or "lost"
	Elapsed         time.Duration
	MapName         string
	MapDigest       string
	FriendlySpawned int
	HostileSpawned  int
	Kills           int
	FinishedAt      time.Time
}

// Won reports whether the player destroyed every enemy tower.
func (r *MatchResult) Won() bool { return r.Outcome == "won" }
