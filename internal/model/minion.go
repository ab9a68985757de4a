package model

import (
	"log/slog"

	"github.com/udisondev/summoning/internal/nav"
)

// MinionType determines which opposing type a minion fights.
type MinionType uint8

const (
	Friendly MinionType = iota
	Hostile
)

func (t MinionType) String() string {
	switch t {
	case Friendly:
		return "friendly"
	case Hostile:
		return "hostile"
	default:
		return "unknown"
	}
}

// State is the lifecycle state of a minion.
type State uint8

const (
	StatePending State = iota
	StateMoving
	StateAttacking
	StateDead
	StateUnreachable
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateMoving:
		return "moving"
	case StateAttacking:
		return "attacking"
	case StateDead:
		return "dead"
	case StateUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// MinionStats are the per-minion combat and movement values.
type MinionStats struct {
	Health         int32
	TowerDamage    int32
	KillReward     int32
	TowerHitReward int32

	Speed          float64 // units per step
	MoveInterval   int64   // ms between steps
	DamageCooldown int64   // ms between damage taken
	Size           float64 // AABB edge
	ArriveEpsilon  float64
}

// Minion is a mobile unit walking from its summoner toward its destination.
// Not safe for concurrent use; only the path ticket crosses goroutines.
type Minion struct {
	id    uint32
	name  string
	kind  MinionType
	state State

	health         int32
	maxHealth      int32
	towerDamage    int32
	killReward     int32
	towerHitReward int32

	path []nav.Cell
	next int
	pos  nav.Vec2

	speed   float64
	size    float64
	epsilon float64
	move    Cooldown
	damage  Cooldown

	summoner    *Tower
	destination *Tower

	visual   Visual
	ticket   *nav.Ticket
	attacked bool
}

// NewMinion creates a minion in Pending state waiting on ticket.
func NewMinion(
	id uint32,
	name string,
	kind MinionType,
	summoner, destination *Tower,
	pos nav.Vec2,
	stats MinionStats,
	visual Visual,
	ticket *nav.Ticket,
) *Minion {
	if visual == nil {
		visual = nopVisual{}
	}
	return &Minion{
		id:             id,
		name:           name,
		kind:           kind,
		state:          StatePending,
		health:         stats.Health,
		maxHealth:      stats.Health,
		towerDamage:    stats.TowerDamage,
		killReward:     stats.KillReward,
		towerHitReward: stats.TowerHitReward,
		pos:            pos,
		speed:          stats.Speed,
		size:           stats.Size,
		epsilon:        stats.ArriveEpsilon,
		move:           NewCooldown(stats.MoveInterval),
		damage:         NewStrictCooldown(stats.DamageCooldown),
		summoner:       summoner,
		destination:    destination,
		visual:         visual,
		ticket:         ticket,
	}
}

// ID returns the object ID.
func (m *Minion) ID() uint32 { return m.id }

// Name returns the display name.
func (m *Minion) Name() string { return m.name }

// Type returns the faction type.
func (m *Minion) Type() MinionType { return m.kind }

// State returns the lifecycle state.
func (m *Minion) State() State { return m.state }

// Health returns current health.
func (m *Minion) Health() int32 { return m.health }

// MaxHealth returns maximum health.
func (m *Minion) MaxHealth() int32 { return m.maxHealth }

// TowerDamage returns the damage dealt on arrival.
func (m *Minion) TowerDamage() int32 { return m.towerDamage }

// KillReward returns the reward credited when this minion kills an opponent.
func (m *Minion) KillReward() int32 { return m.killReward }

// TowerHitReward returns the reward granted to the summoner on arrival.
func (m *Minion) TowerHitReward() int32 { return m.towerHitReward }

// Position returns the current position.
func (m *Minion) Position() nav.Vec2 { return m.pos }

// Summoner returns the tower that created the minion.
func (m *Minion) Summoner() *Tower { return m.summoner }

// Destination returns the tower the minion walks to.
func (m *Minion) Destination() *Tower { return m.destination }

// Path returns the consumed path (nil while pending).
func (m *Minion) Path() []nav.Cell { return m.path }

// NextWaypoint returns the index of the waypoint being approached.
func (m *Minion) NextWaypoint() int { return m.next }

// Bounds returns the axis-aligned bounds centered on the position.
func (m *Minion) Bounds() nav.Rect { return nav.CenteredRect(m.pos, m.size) }

// Intersects reports whether the bounds of m and o overlap.
func (m *Minion) Intersects(o *Minion) bool { return m.Bounds().Intersects(o.Bounds()) }

// Active reports whether the minion still takes part in the simulation.
func (m *Minion) Active() bool {
	return m.state != StateDead && m.state != StateUnreachable
}

// Update runs one step of the state machine.
func (m *Minion) Update(tc *TickContext) {
	if m.state == StatePending {
		m.pollPath()
	}
	if m.state == StateMoving {
		m.advance(tc)
	}
}

// pollPath consumes a delivered path. Absent results are a no-op.
func (m *Minion) pollPath() {
	if m.ticket == nil {
		return
	}
	res := m.ticket.Poll()
	if res == nil {
		return
	}
	m.ticket = nil

	if !res.Found() {
		m.state = StateUnreachable
		m.releaseVisual()
		slog.Debug("minion destination unreachable",
			"minion", m.name,
			"destination", m.destination.Name())
		return
	}

	m.path = res.Cells
	m.next = 0
	m.state = StateMoving
}

// advance performs at most one move attempt per move interval.
func (m *Minion) advance(tc *TickContext) {
	if !m.move.Ready(tc.Now) {
		return
	}
	m.move.Stamp(tc.Now)

	if m.next >= len(m.path) {
		m.state = StateAttacking
		m.attack(tc.Now)
		return
	}

	wp := m.path[m.next]
	target := tc.Nav.CellToWorld(wp.Column, wp.Row)
	delta := target.Sub(m.pos)
	dist := delta.Len()

	if dist <= m.epsilon {
		m.next++
		return
	}
	if m.speed >= dist {
		m.pos = target
		return
	}
	ratio := m.speed / dist
	m.pos.X += delta.X * ratio
	m.pos.Y += delta.Y * ratio
}

// attack resolves the one-shot arrival hit and kills the minion.
func (m *Minion) attack(now int64) {
	if m.attacked {
		return
	}
	m.attacked = true

	killed := m.destination.ReceiveDamage(m.towerDamage)
	m.summoner.GainPowerExt(m.towerHitReward, true, now)

	slog.Debug("minion reached destination",
		"minion", m.name,
		"destination", m.destination.Name(),
		"damage", m.towerDamage,
		"destinationHealth", m.destination.Health(),
		"destroyed", killed)

	m.die()
}

// ReceiveDamage applies amount if the damage cooldown of this minion elapsed.
// Returns true if the hit was lethal; the minion is then Dead.
// Inactive minions and non-positive amounts are ignored.
func (m *Minion) ReceiveDamage(amount int32, now int64) bool {
	if amount <= 0 || !m.Active() {
		return false
	}
	if !m.damage.TryFire(now) {
		return false
	}

	m.health -= amount
	if m.health > 0 {
		return false
	}
	m.health = 0
	m.die()
	return true
}

// Kill removes the minion from play regardless of its state.
func (m *Minion) Kill() {
	if !m.Active() {
		return
	}
	m.die()
}

func (m *Minion) die() {
	m.state = StateDead
	m.releaseVisual()
}

// releaseVisual frees the owned visual and abandons any in-flight path request.
func (m *Minion) releaseVisual() {
	if m.ticket != nil {
		m.ticket.Cancel()
		m.ticket = nil
	}
	if m.visual != nil {
		m.visual.Release()
		m.visual = nil
	}
}
