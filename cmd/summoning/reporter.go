package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/world"
)

// PathStats exposes path service counters.
type PathStats interface {
	InFlight() int
	Completed() uint64
}

// Reporter periodically logs the simulation status.
type Reporter struct {
	source   SnapshotSource
	paths    PathStats
	interval time.Duration
}

// NewReporter creates a reporter logging every interval. paths may be nil.
func NewReporter(source SnapshotSource, paths PathStats, interval time.Duration) *Reporter {
	return &Reporter{source: source, paths: paths, interval: interval}
}

// Run logs status until ctx is canceled (blocks).
func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *Reporter) report() {
	snap := r.source.Snapshot()
	if snap == nil {
		return
	}
	if r.paths == nil {
		slog.Info("status", "summary", FormatStatus(snap))
		return
	}
	slog.Info("status",
		"summary", FormatStatus(snap),
		"pathsInFlight", r.paths.InFlight(),
		"pathsCompleted", r.paths.Completed())
}

// FormatStatus renders a one-line summary of snap.
func FormatStatus(snap *world.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%s player=%d/%d res=%d",
		snap.Elapsed.Round(time.Second),
		snap.Player.Health, snap.Player.MaxHealth,
		snap.Player.Resources)

	for _, t := range snap.Enemies {
		mark := ""
		if t.Selected {
			mark = "*"
		}
		fmt.Fprintf(&b, " %s%s=%d(%.0f%%)", mark, t.Name, t.Health, t.HealthPct*100)
	}

	friendly, hostile := 0, 0
	for _, m := range snap.Minions {
		if m.Type == model.Friendly {
			friendly++
		} else {
			hostile++
		}
	}
	fmt.Fprintf(&b, " minions=%d/%d kills=%d", friendly, hostile, snap.Stats.Kills)

	if snap.Outcome != world.OutcomeRunning {
		fmt.Fprintf(&b, " outcome=%s", snap.Outcome)
	}
	return b.String()
}
