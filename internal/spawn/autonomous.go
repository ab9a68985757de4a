package spawn

import (
	"log/slog"

	"github.com/udisondev/summoning/internal/model"
)

// Autonomous spawns a fixed kind toward a fixed target whenever its owner can
// afford it.
type Autonomous struct {
	owner   *model.Tower
	target  *model.Tower
	kind    Kind
	factory *Factory
	spawned int
}

// NewAutonomous creates the spawner of an enemy tower.
func NewAutonomous(owner, target *model.Tower, kind Kind, factory *Factory) *Autonomous {
	return &Autonomous{owner: owner, target: target, kind: kind, factory: factory}
}

// Owner returns the tower that pays for spawns.
func (a *Autonomous) Owner() *model.Tower { return a.owner }

// Spawned returns the number of minions created so far.
func (a *Autonomous) Spawned() int { return a.spawned }

// Tick spawns at most one minion.
func (a *Autonomous) Tick() (*model.Minion, Refusal) {
	switch {
	case a.owner.IsDead():
		return nil, RefusedDead
	case a.target == nil || a.target.IsDead():
		return nil, RefusedNoTarget
	case !a.owner.Spend(a.kind.Cost):
		return nil, RefusedNoResources
	}

	a.spawned++
	m := a.factory.Create(a.kind, model.Hostile, a.owner, a.target, a.spawned)
	slog.Debug("autonomous spawn",
		"minion", m.Name(),
		"owner", a.owner.Name(),
		"resources", a.owner.Resources())
	return m, Accepted
}
