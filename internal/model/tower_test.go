package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTowerStats = TowerStats{
	MaxHealth:         1000,
	PowerGain:         10,
	PowerGainInterval: 3000,
	ExtGainCooldown:   1000,
}

func newTestTower() *Tower {
	return NewTower("Tower_1_1", RoleEnemy, 0, 1, 1, testTowerStats)
}

func TestNewTower(t *testing.T) {
	tw := newTestTower()

	assert.Equal(t, "Tower_1_1", tw.Name())
	assert.Equal(t, RoleEnemy, tw.Role())
	assert.Equal(t, int32(1000), tw.Health())
	assert.Equal(t, int32(1000), tw.MaxHealth())
	assert.Equal(t, int32(0), tw.Resources())
	assert.False(t, tw.IsDead())
	assert.InDelta(t, 1.0, tw.HealthPercentage(), 1e-9)
}

func TestTower_GainPower(t *testing.T) {
	tw := newTestTower()

	assert.True(t, tw.GainPower(0))
	assert.Equal(t, int32(10), tw.Resources())

	// same instant: no additional effect
	assert.False(t, tw.GainPower(0))
	assert.Equal(t, int32(10), tw.Resources())

	assert.False(t, tw.GainPower(2999))
	assert.True(t, tw.GainPower(3000))
	assert.Equal(t, int32(20), tw.Resources())
}

func TestTower_GainPowerExt_Cooldown(t *testing.T) {
	tw := newTestTower()

	assert.True(t, tw.GainPowerExt(25, true, 0))
	assert.False(t, tw.GainPowerExt(25, true, 1000), "window must be exceeded")
	assert.True(t, tw.GainPowerExt(25, true, 1001))
	assert.Equal(t, int32(50), tw.Resources())
}

func TestTower_GainPowerExt_Unconditional(t *testing.T) {
	tw := newTestTower()

	require.True(t, tw.GainPowerExt(25, true, 0))

	// uncooled add inside the window succeeds and does not move the stamp
	assert.True(t, tw.GainPowerExt(10, false, 500))
	assert.True(t, tw.GainPowerExt(10, false, 500))
	assert.True(t, tw.GainPowerExt(25, true, 1001))
	assert.Equal(t, int32(70), tw.Resources())

	fresh := newTestTower()
	assert.True(t, fresh.GainPowerExt(10, false, 0))
	assert.True(t, fresh.GainPowerExt(25, true, 0), "uncooled add must not arm the window")
}

func TestTower_GainPowerExt_NonPositive(t *testing.T) {
	tw := newTestTower()

	assert.False(t, tw.GainPowerExt(0, false, 0))
	assert.False(t, tw.GainPowerExt(-5, false, 0))
	assert.False(t, tw.GainPowerExt(-5, true, 0))
	assert.Equal(t, int32(0), tw.Resources())

	// rejected amounts do not consume the window
	assert.True(t, tw.GainPowerExt(5, true, 0))
}

func TestTower_Spend(t *testing.T) {
	tw := newTestTower()
	tw.resources = 30

	assert.False(t, tw.Spend(31))
	assert.Equal(t, int32(30), tw.Resources())

	assert.True(t, tw.Spend(30))
	assert.Equal(t, int32(0), tw.Resources())

	assert.False(t, tw.Spend(0))
	assert.False(t, tw.Spend(-1))
}

func TestTower_ReceiveDamage(t *testing.T) {
	tw := newTestTower()

	assert.False(t, tw.ReceiveDamage(400))
	assert.Equal(t, int32(600), tw.Health())

	assert.True(t, tw.ReceiveDamage(700), "crossing zero reports the kill")
	assert.Equal(t, int32(0), tw.Health())
	assert.True(t, tw.IsDead())

	assert.False(t, tw.ReceiveDamage(50), "already dead")
	assert.Equal(t, int32(0), tw.Health())
}

func TestTower_ReceiveDamage_ExactlyZero(t *testing.T) {
	tw := newTestTower()

	assert.True(t, tw.ReceiveDamage(1000))
	assert.Equal(t, int32(0), tw.Health())
}

func TestTower_ReceiveDamage_Zero(t *testing.T) {
	tw := newTestTower()

	assert.False(t, tw.ReceiveDamage(0))
	assert.False(t, tw.ReceiveDamage(-10))
	assert.Equal(t, int32(1000), tw.Health())

	tw.ReceiveDamage(1000)
	assert.False(t, tw.ReceiveDamage(0))
	assert.Equal(t, int32(0), tw.Health())
}

func TestTower_InvariantsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tw := newTestTower()
	now := int64(0)
	kills := 0

	for range 5000 {
		now += rng.Int64N(200)
		switch rng.IntN(4) {
		case 0:
			tw.GainPower(now)
		case 1:
			tw.GainPowerExt(rng.Int32N(60)-10, rng.IntN(2) == 0, now)
		case 2:
			tw.Spend(rng.Int32N(60) - 10)
		case 3:
			if tw.ReceiveDamage(rng.Int32N(60) - 10) {
				kills++
			}
		}

		require.GreaterOrEqual(t, tw.Health(), int32(0))
		require.LessOrEqual(t, tw.Health(), tw.MaxHealth())
		require.GreaterOrEqual(t, tw.Resources(), int32(0))
	}

	assert.LessOrEqual(t, kills, 1)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "player", RolePlayer.String())
	assert.Equal(t, "enemy", RoleEnemy.String())
	assert.Equal(t, "unknown", Role(9).String())
}
