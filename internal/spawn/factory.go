package spawn

import (
	"fmt"

	"github.com/udisondev/summoning/internal/data"
	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/nav"
)

// IDGenerator hands out unique minion object IDs.
type IDGenerator interface {
	NextMinionID() uint32
}

// Kind is the per-kind part of minion stats plus its presentation.
type Kind struct {
	Name           string
	Cost           int32
	Health         int32
	TowerDamage    int32
	KillReward     int32
	TowerHitReward int32
	Visual         string
	Color          [3]uint8
}

// KindFromTemplate converts a loaded template.
func KindFromTemplate(t *data.MinionTemplate) Kind {
	return Kind{
		Name:           t.Name,
		Cost:           t.Cost,
		Health:         t.Health,
		TowerDamage:    t.TowerDamage,
		KillReward:     t.KillReward,
		TowerHitReward: t.TowerHitReward,
		Visual:         t.Visual,
		Color:          t.Color(),
	}
}

// Factory builds minions and issues their path requests.
type Factory struct {
	nav    nav.Pathfinder
	lights model.Lights
	ids    IDGenerator
	base   model.MinionStats // movement and combat values shared by all kinds
}

// NewFactory creates a factory. base supplies speed, move interval, damage
// cooldown, size and arrive epsilon; the per-kind fields of base are ignored.
func NewFactory(pf nav.Pathfinder, lights model.Lights, ids IDGenerator, base model.MinionStats) *Factory {
	if lights == nil {
		lights = model.NopLights{}
	}
	return &Factory{nav: pf, lights: lights, ids: ids, base: base}
}

// Create places a Pending minion on the owner cell and requests its path to
// destination. Never blocks.
func (f *Factory) Create(kind Kind, mtype model.MinionType, owner, destination *model.Tower, seq int) *model.Minion {
	stats := f.base
	stats.Health = kind.Health
	stats.TowerDamage = kind.TowerDamage
	stats.KillReward = kind.KillReward
	stats.TowerHitReward = kind.TowerHitReward

	pos := f.nav.CellToWorld(owner.Column(), owner.Row())
	ticket := nav.Request(f.nav, owner.Cell(), destination.Cell())
	visual := f.lights.Acquire(kind.Visual, pos, kind.Color)
	name := fmt.Sprintf("%s_%s_%d", owner.Name(), kind.Name, seq)

	return model.NewMinion(f.ids.NextMinionID(), name, mtype, owner, destination, pos, stats, visual, ticket)
}
