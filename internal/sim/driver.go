package sim

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/summoning/internal/clock"
	"github.com/udisondev/summoning/internal/world"
)

// Stepper is a simulation advanced one step at a time.
type Stepper interface {
	Step(now int64) world.Snapshot
	Finished() bool
}

// Driver runs the fixed-rate simulation loop and publishes the latest
// snapshot for readers on other goroutines.
type Driver struct {
	scene    Stepper
	clock    clock.Clock
	interval time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	doneOnce sync.Once

	latest atomic.Pointer[world.Snapshot]
	steps  atomic.Uint64
}

// NewDriver creates a driver stepping scene every interval.
func NewDriver(scene Stepper, clk clock.Clock, interval time.Duration) *Driver {
	return &Driver{
		scene:    scene,
		clock:    clk,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the tick loop. It blocks until the context is canceled, Stop is
// called or the scene finishes; the last two return nil.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	slog.Info("simulation driver started", "interval", d.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation driver stopping")
			return ctx.Err()

		case <-d.stopCh:
			slog.Info("simulation driver stopped")
			return nil

		case <-ticker.C:
			snap := d.StepOnce()
			if snap.Outcome != world.OutcomeRunning {
				slog.Info("simulation finished",
					"outcome", snap.Outcome,
					"elapsed", snap.Elapsed,
					"steps", d.Steps())
				return nil
			}
		}
	}
}

// StepOnce advances the scene to the current clock time and publishes the
// snapshot.
func (d *Driver) StepOnce() world.Snapshot {
	snap := d.scene.Step(d.clock.NowMillis())
	d.latest.Store(&snap)
	d.steps.Add(1)

	if d.scene.Finished() {
		d.doneOnce.Do(func() { close(d.done) })
	}
	if world.IsDebugEnabled() {
		slog.Debug("simulation step", "tick", snap.Tick, "minions", len(snap.Minions))
	}
	return snap
}

// Stop stops the tick loop. Safe to call more than once.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}

// Snapshot returns the latest published snapshot, nil before the first step.
func (d *Driver) Snapshot() *world.Snapshot {
	return d.latest.Load()
}

// Done is closed once the scene has finished.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Steps returns the number of steps taken.
func (d *Driver) Steps() uint64 {
	return d.steps.Load()
}
