package spawn

import (
	"errors"
	"log/slog"

	"github.com/udisondev/summoning/internal/data"
	"github.com/udisondev/summoning/internal/model"
)

// Templates resolves template names.
type Templates interface {
	Lookup(name string) (*data.MinionTemplate, error)
}

// Commanded spawns player-chosen kinds toward the selected destination,
// limited by a spawn cooldown.
type Commanded struct {
	owner     *model.Tower
	templates Templates
	factory   *Factory
	cooldown  model.Cooldown
	spawned   int
}

// NewCommanded creates the spawner of the player tower.
func NewCommanded(owner *model.Tower, templates Templates, factory *Factory, cooldownMillis int64) *Commanded {
	return &Commanded{
		owner:     owner,
		templates: templates,
		factory:   factory,
		cooldown:  model.NewCooldown(cooldownMillis),
	}
}

// Owner returns the tower that pays for spawns.
func (c *Commanded) Owner() *model.Tower { return c.owner }

// Spawned returns the number of minions created so far.
func (c *Commanded) Spawned() int { return c.spawned }

// Spawn creates a minion of the named template walking to destination.
// Nothing is spent on refusal.
func (c *Commanded) Spawn(name string, destination *model.Tower, now int64) (*model.Minion, Refusal) {
	if c.owner.IsDead() {
		return nil, RefusedDead
	}

	tmpl, err := c.templates.Lookup(name)
	if err != nil {
		if !errors.Is(err, data.ErrUnknownTemplate) {
			slog.Error("template lookup failed", "template", name, "error", err)
		} else {
			slog.Debug("spawn refused", "template", name, "reason", RefusedUnknownTemplate)
		}
		return nil, RefusedUnknownTemplate
	}

	switch {
	case c.owner.Resources() < tmpl.Cost:
		return nil, RefusedNoResources
	case !c.cooldown.Ready(now):
		return nil, RefusedCooldown
	case destination == nil || destination.IsDead():
		return nil, RefusedNoTarget
	}

	c.owner.Spend(tmpl.Cost)
	c.cooldown.Stamp(now)
	c.spawned++

	m := c.factory.Create(KindFromTemplate(tmpl), model.Friendly, c.owner, destination, c.spawned)
	slog.Debug("commanded spawn",
		"minion", m.Name(),
		"destination", destination.Name(),
		"resources", c.owner.Resources())
	return m, Accepted
}
