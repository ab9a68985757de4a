package model

import "github.com/udisondev/summoning/internal/nav"

// Visual is a presentation handle (sprite light, marker) owned by exactly one
// minion and released when the minion is destroyed.
type Visual interface {
	Release()
}

// Lights hands out visuals for newly created minions.
type Lights interface {
	Acquire(key string, pos nav.Vec2, color [3]uint8) Visual
}

// NopLights is a Lights implementation for headless runs.
type NopLights struct{}

// Acquire returns a visual whose Release does nothing.
func (NopLights) Acquire(string, nav.Vec2, [3]uint8) Visual { return nopVisual{} }

type nopVisual struct{}

func (nopVisual) Release() {}
