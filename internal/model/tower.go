package model

import (
	"log/slog"

	"github.com/udisondev/summoning/internal/nav"
)

// Role distinguishes the two tower factions.
type Role uint8

const (
	RolePlayer Role = iota
	RoleEnemy
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// TowerStats holds the economy parameters of a tower.
type TowerStats struct {
	MaxHealth         int32
	PowerGain         int32
	PowerGainInterval int64 // ms
	ExtGainCooldown   int64 // ms
}

// Tower is a stationary entity with health and a resource economy.
// Not safe for concurrent use; the simulation tick owns it.
type Tower struct {
	name   string
	role   Role
	index  int // creation order
	column int
	row    int

	health    int32
	maxHealth int32
	resources int32
	powerGain int32

	passive  Cooldown // passive gain interval
	external Cooldown // reward from tower hits
}

// NewTower creates a tower at full health with no resources.
func NewTower(name string, role Role, index, column, row int, stats TowerStats) *Tower {
	maxHealth := stats.MaxHealth
	if maxHealth < 1 {
		maxHealth = 1
	}
	return &Tower{
		name:      name,
		role:      role,
		index:     index,
		column:    column,
		row:       row,
		health:    maxHealth,
		maxHealth: maxHealth,
		powerGain: stats.PowerGain,
		passive:   NewCooldown(stats.PowerGainInterval),
		external:  NewStrictCooldown(stats.ExtGainCooldown),
	}
}

// Name returns the tower name.
func (t *Tower) Name() string { return t.name }

// Role returns the faction of the tower.
func (t *Tower) Role() Role { return t.role }

// Index returns the creation order of the tower.
func (t *Tower) Index() int { return t.index }

// Column returns the grid column.
func (t *Tower) Column() int { return t.column }

// Row returns the grid row.
func (t *Tower) Row() int { return t.row }

// Cell returns the grid cell of the tower.
func (t *Tower) Cell() nav.Cell { return nav.Cell{Column: t.column, Row: t.row} }

// Health returns current health.
func (t *Tower) Health() int32 { return t.health }

// MaxHealth returns maximum health.
func (t *Tower) MaxHealth() int32 { return t.maxHealth }

// Resources returns the current resource balance.
func (t *Tower) Resources() int32 { return t.resources }

// IsDead reports whether health reached zero.
func (t *Tower) IsDead() bool { return t.health <= 0 }

// HealthPercentage returns health in [0, 1].
func (t *Tower) HealthPercentage() float64 {
	return float64(t.health) / float64(t.maxHealth)
}

// GainPower adds the passive gain if the gain interval elapsed.
// Returns true if resources were added.
func (t *Tower) GainPower(now int64) bool {
	if !t.passive.TryFire(now) {
		return false
	}
	t.resources += t.powerGain
	return true
}

// GainPowerExt adds amount. With enforceCooldown the add happens only if the
// external reward window elapsed since the last gated add; without it the add
// is unconditional and the window is left untouched.
// Non-positive amounts are ignored.
func (t *Tower) GainPowerExt(amount int32, enforceCooldown bool, now int64) bool {
	if amount <= 0 {
		return false
	}
	if enforceCooldown && !t.external.TryFire(now) {
		return false
	}
	t.resources += amount
	return true
}

// Spend subtracts cost if the balance covers it.
func (t *Tower) Spend(cost int32) bool {
	if cost <= 0 || t.resources < cost {
		return false
	}
	t.resources -= cost
	return true
}

// ReceiveDamage subtracts amount and clamps health at zero. Returns true only
// for the call that brought health from positive to zero.
// Non-positive amounts are ignored.
func (t *Tower) ReceiveDamage(amount int32) bool {
	if amount <= 0 || t.health <= 0 {
		return false
	}
	t.health -= amount
	if t.health > 0 {
		return false
	}
	t.health = 0
	slog.Info("tower defeated", "tower", t.name, "role", t.role)
	return true
}
