package spawn_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/summoning/internal/data"
	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/nav"
	"github.com/udisondev/summoning/internal/spawn"
	"github.com/udisondev/summoning/internal/testutil"
)

type counterIDs struct{ next atomic.Uint32 }

func (c *counterIDs) NextMinionID() uint32 { return c.next.Add(1) }

var (
	towerStats = model.TowerStats{
		MaxHealth:         1000,
		PowerGain:         10,
		PowerGainInterval: 3000,
		ExtGainCooldown:   1000,
	}
	baseStats = model.MinionStats{
		Speed:          1.5,
		MoveInterval:   1,
		DamageCooldown: 1000,
		Size:           16,
		ArriveEpsilon:  1,
	}
	enemyKind = spawn.Kind{
		Name:           "Minion",
		Cost:           30,
		Health:         100,
		TowerDamage:    50,
		KillReward:     10,
		TowerHitReward: 25,
		Visual:         "enemy",
		Color:          [3]uint8{255, 0, 0},
	}
)

const templatesDoc = `
minions:
  Minion: {cost: 30, health: 100, tower_damage: 50, kill_reward: 10, tower_hit_reward: 25, visual: minion, light_color: [255, 255, 255]}
  Tank: {cost: 60, health: 300, tower_damage: 20, visual: tank, light_color: [0, 120, 255]}
`

type fixture struct {
	pf      *testutil.FakePathfinder
	lights  *testutil.CountingLights
	factory *spawn.Factory
	player  *model.Tower
	enemy   *model.Tower
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		pf:     testutil.NewFakePathfinder(10),
		lights: &testutil.CountingLights{},
		player: model.NewTower("Tower_1_1", model.RolePlayer, 0, 1, 1, towerStats),
		enemy:  model.NewTower("Tower_8_1", model.RoleEnemy, 1, 8, 1, towerStats),
	}
	f.factory = spawn.NewFactory(f.pf, f.lights, &counterIDs{}, baseStats)
	return f
}

func (f *fixture) commanded(t *testing.T) *spawn.Commanded {
	t.Helper()
	reg, err := data.ParseMinionTemplates([]byte(templatesDoc))
	require.NoError(t, err)
	return spawn.NewCommanded(f.player, reg, f.factory, 1000)
}

func TestCommanded_ExactResources(t *testing.T) {
	f := newFixture(t)
	c := f.commanded(t)
	f.player.GainPowerExt(30, false, 0)

	m, r := c.Spawn("Minion", f.enemy, 0)

	require.Equal(t, spawn.Accepted, r)
	require.NotNil(t, m)
	assert.Equal(t, int32(0), f.player.Resources())
	assert.Equal(t, model.Friendly, m.Type())
	assert.Equal(t, model.StatePending, m.State())
	assert.Equal(t, int32(100), m.Health())
	assert.Equal(t, "Tower_1_1_Minion_1", m.Name())
	assert.Same(t, f.player, m.Summoner())
	assert.Same(t, f.enemy, m.Destination())
	assert.Equal(t, nav.Vec2{X: 10, Y: 10}, m.Position())

	reqs := f.pf.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, nav.Cell{Column: 1, Row: 1}, reqs[0].Start)
	assert.Equal(t, nav.Cell{Column: 8, Row: 1}, reqs[0].Goal)

	visuals := f.lights.Visuals()
	require.Len(t, visuals, 1)
	assert.Equal(t, "minion", visuals[0].Key)
	assert.Equal(t, [3]uint8{255, 255, 255}, visuals[0].Color)
}

func TestCommanded_InsufficientResources(t *testing.T) {
	f := newFixture(t)
	c := f.commanded(t)
	f.player.GainPowerExt(29, false, 0)

	m, r := c.Spawn("Minion", f.enemy, 0)

	assert.Nil(t, m)
	assert.Equal(t, spawn.RefusedNoResources, r)
	assert.Equal(t, int32(29), f.player.Resources())
	assert.Empty(t, f.pf.Requests())
	assert.Empty(t, f.lights.Visuals())
}

func TestCommanded_Cooldown(t *testing.T) {
	f := newFixture(t)
	c := f.commanded(t)
	f.player.GainPowerExt(200, false, 0)

	_, r := c.Spawn("Minion", f.enemy, 0)
	require.Equal(t, spawn.Accepted, r)

	_, r = c.Spawn("Minion", f.enemy, 999)
	assert.Equal(t, spawn.RefusedCooldown, r)
	assert.Equal(t, int32(170), f.player.Resources())

	_, r = c.Spawn("Tank", f.enemy, 1000)
	assert.Equal(t, spawn.Accepted, r)
	assert.Equal(t, int32(110), f.player.Resources())
	assert.Equal(t, 2, c.Spawned())
}

func TestCommanded_NoTarget(t *testing.T) {
	f := newFixture(t)
	c := f.commanded(t)
	f.player.GainPowerExt(30, false, 0)

	m, r := c.Spawn("Minion", nil, 0)
	assert.Nil(t, m)
	assert.Equal(t, spawn.RefusedNoTarget, r)
	assert.Equal(t, int32(30), f.player.Resources())

	// refusal did not consume the cooldown
	_, r = c.Spawn("Minion", f.enemy, 0)
	assert.Equal(t, spawn.Accepted, r)
}

func TestCommanded_DeadTarget(t *testing.T) {
	f := newFixture(t)
	c := f.commanded(t)
	f.player.GainPowerExt(30, false, 0)
	f.enemy.ReceiveDamage(1000)

	_, r := c.Spawn("Minion", f.enemy, 0)
	assert.Equal(t, spawn.RefusedNoTarget, r)
}

func TestCommanded_UnknownTemplate(t *testing.T) {
	f := newFixture(t)
	c := f.commanded(t)
	f.player.GainPowerExt(100, false, 0)

	_, r := c.Spawn("Dragon", f.enemy, 0)
	assert.Equal(t, spawn.RefusedUnknownTemplate, r)
	assert.Equal(t, int32(100), f.player.Resources())
}

func TestCommanded_DeadOwner(t *testing.T) {
	f := newFixture(t)
	c := f.commanded(t)
	f.player.GainPowerExt(100, false, 0)
	f.player.ReceiveDamage(1000)

	_, r := c.Spawn("Minion", f.enemy, 0)
	assert.Equal(t, spawn.RefusedDead, r)
}

func TestAutonomous_Tick(t *testing.T) {
	tests := []struct {
		name      string
		resources int32
		want      spawn.Refusal
		left      int32
	}{
		{"exact resources", 30, spawn.Accepted, 0},
		{"one short", 29, spawn.RefusedNoResources, 29},
		{"surplus", 45, spawn.Accepted, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a := spawn.NewAutonomous(f.enemy, f.player, enemyKind, f.factory)
			f.enemy.GainPowerExt(tt.resources, false, 0)

			m, r := a.Tick()

			assert.Equal(t, tt.want, r)
			assert.Equal(t, tt.left, f.enemy.Resources())
			if tt.want == spawn.Accepted {
				require.NotNil(t, m)
				assert.Equal(t, model.Hostile, m.Type())
				assert.Same(t, f.player, m.Destination())
				assert.Len(t, f.pf.Requests(), 1)
			} else {
				assert.Nil(t, m)
			}
		})
	}
}

func TestAutonomous_OneSpawnPerTick(t *testing.T) {
	f := newFixture(t)
	a := spawn.NewAutonomous(f.enemy, f.player, enemyKind, f.factory)
	f.enemy.GainPowerExt(90, false, 0)

	_, r := a.Tick()
	require.Equal(t, spawn.Accepted, r)
	assert.Equal(t, int32(60), f.enemy.Resources())
	assert.Equal(t, 1, a.Spawned())
}

func TestAutonomous_DeadOwnerOrTarget(t *testing.T) {
	f := newFixture(t)
	a := spawn.NewAutonomous(f.enemy, f.player, enemyKind, f.factory)
	f.enemy.GainPowerExt(90, false, 0)

	f.player.ReceiveDamage(1000)
	_, r := a.Tick()
	assert.Equal(t, spawn.RefusedNoTarget, r)

	f.enemy.ReceiveDamage(1000)
	_, r = a.Tick()
	assert.Equal(t, spawn.RefusedDead, r)
	assert.Equal(t, int32(90), f.enemy.Resources())
}

func TestFactory_UniqueIDs(t *testing.T) {
	f := newFixture(t)
	a := f.factory.Create(enemyKind, model.Hostile, f.enemy, f.player, 1)
	b := f.factory.Create(enemyKind, model.Hostile, f.enemy, f.player, 2)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "Tower_8_1_Minion_2", b.Name())
}

func TestRefusal_String(t *testing.T) {
	assert.Equal(t, "accepted", spawn.Accepted.String())
	assert.Equal(t, "cooldown", spawn.RefusedCooldown.String())
}
