package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCooldown_NeverFiredIsReady(t *testing.T) {
	c := NewCooldown(1000)
	assert.True(t, c.Ready(0))
	assert.True(t, c.Ready(-5000))
}

func TestCooldown_InclusiveWindow(t *testing.T) {
	c := NewCooldown(1000)
	c.Stamp(500)

	assert.False(t, c.Ready(1499))
	assert.True(t, c.Ready(1500))
}

func TestCooldown_StrictWindow(t *testing.T) {
	c := NewStrictCooldown(1000)
	c.Stamp(500)

	assert.False(t, c.Ready(1500))
	assert.True(t, c.Ready(1501))
}

func TestCooldown_TryFire(t *testing.T) {
	c := NewCooldown(10)

	assert.True(t, c.TryFire(0))
	assert.False(t, c.TryFire(5))
	assert.True(t, c.TryFire(10))

	// rejected attempts do not restamp
	assert.False(t, c.Ready(19))
	assert.True(t, c.Ready(20))
}
