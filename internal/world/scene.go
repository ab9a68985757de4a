package world

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/summoning/internal/combat"
	"github.com/udisondev/summoning/internal/data"
	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/nav"
	"github.com/udisondev/summoning/internal/spawn"
)

// Result describes how a scene ended.
type Result struct {
	Outcome Outcome
	Elapsed time.Duration // survival time since the first step
	Stats   Stats
}

// Notifier is told once when the scene ends.
type Notifier interface {
	LevelComplete(r Result)
	GameOver(r Result)
}

// SceneConfig holds the tunables a scene is built with.
type SceneConfig struct {
	Tower           model.TowerStats
	TowerSize       float64 // hit-test box edge
	Enemy           spawn.Kind
	Minion          model.MinionStats // shared movement and combat values
	CollisionStrike int32
	SpawnCooldown   int64 // ms
	CommandQueue    int
}

// Scene owns all towers and minions of one level and advances them one step
// at a time. Step must be called from a single goroutine; Submit is safe from
// any goroutine.
type Scene struct {
	nav      nav.Pathfinder
	notifier Notifier
	resolver *combat.Resolver

	player       *model.Tower
	destinations []*model.Tower // live enemy towers, creation order
	selected     *model.Tower
	towerSize    float64

	commanded  *spawn.Commanded
	autonomous []*spawn.Autonomous
	minions    []*model.Minion

	commands chan Command

	tick    uint64
	started bool
	startAt int64
	now     int64
	outcome Outcome
	stats   Stats
}

// NewScene builds the towers and spawners of lvl. Enemy towers are created in
// map scan order; the last one created starts selected.
func NewScene(
	lvl *data.Level,
	templates spawn.Templates,
	pf nav.Pathfinder,
	lights model.Lights,
	notifier Notifier,
	cfg SceneConfig,
) *Scene {
	queue := cfg.CommandQueue
	if queue <= 0 {
		queue = 64
	}
	factory := spawn.NewFactory(pf, lights, NewObjectIDGenerator(), cfg.Minion)

	s := &Scene{
		nav:       pf,
		notifier:  notifier,
		resolver:  combat.NewResolver(cfg.CollisionStrike),
		towerSize: cfg.TowerSize,
		commands:  make(chan Command, queue),
	}

	s.player = model.NewTower(towerName(lvl.Player), model.RolePlayer, 0, lvl.Player.Column, lvl.Player.Row, cfg.Tower)
	for i, cell := range lvl.Enemies {
		t := model.NewTower(towerName(cell), model.RoleEnemy, i+1, cell.Column, cell.Row, cfg.Tower)
		s.destinations = append(s.destinations, t)
		s.autonomous = append(s.autonomous, spawn.NewAutonomous(t, s.player, cfg.Enemy, factory))
		s.selected = t
	}
	s.commanded = spawn.NewCommanded(s.player, templates, factory, cfg.SpawnCooldown)

	return s
}

func towerName(c nav.Cell) string {
	return fmt.Sprintf("Tower_%d_%d", c.Column, c.Row)
}

// Submit queues cmd for the next step. Returns false if the queue is full.
func (s *Scene) Submit(cmd Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		slog.Warn("command dropped, queue full", "kind", cmd.Kind)
		return false
	}
}

// Player returns the player tower.
func (s *Scene) Player() *model.Tower { return s.player }

// Selected returns the selected destination, nil if none.
func (s *Scene) Selected() *model.Tower { return s.selected }

// Destinations returns the live enemy towers in creation order.
func (s *Scene) Destinations() []*model.Tower { return s.destinations }

// Minions returns the minions still in play.
func (s *Scene) Minions() []*model.Minion { return s.minions }

// Outcome returns the end state, OutcomeRunning until the scene ends.
func (s *Scene) Outcome() Outcome { return s.outcome }

// Finished reports whether the scene ended.
func (s *Scene) Finished() bool { return s.outcome != OutcomeRunning }

// Step advances the scene to now and returns a snapshot of the result.
// Once finished the scene is frozen and Step only reports it.
func (s *Scene) Step(now int64) Snapshot {
	if !s.started {
		s.started = true
		s.startAt = now
	}
	if s.Finished() {
		return s.snapshot()
	}
	s.tick++
	s.now = now

	s.drainCommands()
	s.updateTowers()
	s.updateMinions()

	for _, k := range s.resolver.Sweep(s.minions, now) {
		s.stats.Kills++
		if IsDebugEnabled() {
			slog.Debug("collision kill", "killer", k.Killer.Name(), "victim", k.Victim.Name())
		}
	}

	s.compact()
	s.checkEnd()

	return s.snapshot()
}

func (s *Scene) drainCommands() {
	for {
		select {
		case cmd := <-s.commands:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Scene) apply(cmd Command) {
	switch cmd.Kind {
	case CommandSpawn:
		m, r := s.commanded.Spawn(cmd.Template, s.selected, s.now)
		if r != spawn.Accepted {
			s.stats.Refusals++
			slog.Debug("spawn refused", "template", cmd.Template, "reason", r)
			return
		}
		s.minions = append(s.minions, m)
		s.stats.FriendlySpawned++
	case CommandSelect:
		s.Select(cmd.X, cmd.Y)
	default:
		slog.Warn("unknown command", "kind", cmd.Kind)
	}
}

// Select makes the first live enemy tower whose box contains (x, y) the
// selected destination. Returns false and keeps the selection on a miss.
func (s *Scene) Select(x, y float64) bool {
	p := nav.Vec2{X: x, Y: y}
	for _, t := range s.destinations {
		box := nav.CenteredRect(s.nav.CellToWorld(t.Column(), t.Row()), s.towerSize)
		if box.Contains(p) {
			s.selected = t
			slog.Debug("destination selected", "tower", t.Name())
			return true
		}
	}
	return false
}

func (s *Scene) updateTowers() {
	s.player.GainPower(s.now)

	for _, a := range s.autonomous {
		owner := a.Owner()
		if owner.IsDead() {
			continue
		}
		owner.GainPower(s.now)
		if m, r := a.Tick(); r == spawn.Accepted {
			s.minions = append(s.minions, m)
			s.stats.HostileSpawned++
		}
	}

	s.pruneDestinations()
}

// pruneDestinations drops dead towers from the live set and moves the
// selection to the first remaining tower if the selected one died.
func (s *Scene) pruneDestinations() {
	live := s.destinations[:0]
	for _, t := range s.destinations {
		if t.IsDead() {
			slog.Info("destination removed", "tower", t.Name())
			continue
		}
		live = append(live, t)
	}
	clear(s.destinations[len(live):])
	s.destinations = live

	if s.selected != nil && s.selected.IsDead() {
		s.selected = nil
		if len(s.destinations) > 0 {
			s.selected = s.destinations[0]
			slog.Info("selection moved", "tower", s.selected.Name())
		}
	}
}

func (s *Scene) updateMinions() {
	tc := &model.TickContext{Now: s.now, Nav: s.nav}
	for _, m := range s.minions {
		if m.Active() {
			m.Update(tc)
		}
	}
}

// compact removes dead and unreachable minions. Their visuals were released
// when they left play.
func (s *Scene) compact() {
	live := s.minions[:0]
	for _, m := range s.minions {
		if m.Active() {
			live = append(live, m)
			continue
		}
		if m.State() == model.StateUnreachable {
			s.stats.Unreachable++
		}
		if m.Type() == model.Friendly {
			s.stats.FriendlyLost++
		} else {
			s.stats.HostileLost++
		}
	}
	clear(s.minions[len(live):])
	s.minions = live
}

func (s *Scene) checkEnd() {
	s.pruneDestinations()

	switch {
	case len(s.destinations) == 0:
		s.finish(OutcomeWon)
	case s.player.IsDead():
		s.finish(OutcomeLost)
	}
}

func (s *Scene) finish(o Outcome) {
	s.outcome = o
	s.teardown()
	r := Result{
		Outcome: o,
		Elapsed: s.elapsed(),
		Stats:   s.stats,
	}
	slog.Info("scene finished",
		"outcome", o,
		"elapsed", r.Elapsed,
		"minutes", fmt.Sprintf("%.2f", r.Elapsed.Minutes()))

	if s.notifier == nil {
		return
	}
	if o == OutcomeWon {
		s.notifier.LevelComplete(r)
	} else {
		s.notifier.GameOver(r)
	}
}

// teardown destroys the minions still in play. Their visuals are released and
// in-flight path results are dropped.
func (s *Scene) teardown() {
	for _, m := range s.minions {
		m.Kill()
	}
	clear(s.minions)
	s.minions = s.minions[:0]
}

func (s *Scene) elapsed() time.Duration {
	return time.Duration(s.now-s.startAt) * time.Millisecond
}

func (s *Scene) snapshot() Snapshot {
	snap := Snapshot{
		Tick:    s.tick,
		Now:     s.now,
		Elapsed: s.elapsed(),
		Outcome: s.outcome,
		Player:  towerView(s.player, false),
		Enemies: make([]TowerView, 0, len(s.destinations)),
		Minions: make([]MinionView, 0, len(s.minions)),
		Stats:   s.stats,
	}
	for _, t := range s.destinations {
		snap.Enemies = append(snap.Enemies, towerView(t, t == s.selected))
	}
	for _, m := range s.minions {
		snap.Minions = append(snap.Minions, minionView(m))
	}
	return snap
}
