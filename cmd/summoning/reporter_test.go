package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/world"
)

func TestFormatStatus(t *testing.T) {
	snap := &world.Snapshot{
		Elapsed: 90 * time.Second,
		Outcome: world.OutcomeLost,
		Player:  world.TowerView{Health: 0, MaxHealth: 1000, Resources: 5},
		Enemies: []world.TowerView{
			{Name: "Tower_5_1", Health: 1000, HealthPct: 1},
			{Name: "Tower_5_3", Health: 400, HealthPct: 0.4, Selected: true},
		},
		Minions: []world.MinionView{
			{Type: model.Friendly},
			{Type: model.Hostile},
			{Type: model.Hostile},
		},
		Stats: world.Stats{Kills: 6},
	}

	got := FormatStatus(snap)

	assert.Equal(t,
		"t=1m30s player=0/1000 res=5 Tower_5_1=1000(100%) *Tower_5_3=400(40%) minions=1/2 kills=6 outcome=lost",
		got)
}

func TestReporter_StopsOnCancel(t *testing.T) {
	r := NewReporter(fixedSnapshot{&world.Snapshot{}}, nil, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, r.Run(ctx), context.DeadlineExceeded)
}

type fixedPathStats struct {
	inFlight  int
	completed uint64
}

func (f fixedPathStats) InFlight() int     { return f.inFlight }
func (f fixedPathStats) Completed() uint64 { return f.completed }

func TestReporter_LogsPathCounters(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := NewReporter(fixedSnapshot{&world.Snapshot{}}, fixedPathStats{inFlight: 2, completed: 7}, time.Millisecond)
	r.report()

	out := buf.String()
	assert.Contains(t, out, "pathsInFlight=2")
	assert.Contains(t, out, "pathsCompleted=7")
}

func TestReporter_SkipsUntilFirstSnapshot(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	NewReporter(fixedSnapshot{}, nil, time.Millisecond).report()

	assert.Empty(t, buf.String())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warn").String())
	assert.Equal(t, "INFO", parseLogLevel("verbose").String())
}
