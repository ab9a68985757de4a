package testutil

import (
	"sync"

	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/nav"
)

// CountingVisual counts Release calls.
type CountingVisual struct {
	Key   string
	Color [3]uint8

	mu       sync.Mutex
	releases int
}

// Release records one release.
func (v *CountingVisual) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.releases++
}

// Releases returns how many times Release was called.
func (v *CountingVisual) Releases() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.releases
}

// CountingLights hands out CountingVisuals and keeps them for inspection.
type CountingLights struct {
	mu      sync.Mutex
	visuals []*CountingVisual
}

// Acquire creates and records a visual.
func (l *CountingLights) Acquire(key string, _ nav.Vec2, color [3]uint8) model.Visual {
	l.mu.Lock()
	defer l.mu.Unlock()
	v := &CountingVisual{Key: key, Color: color}
	l.visuals = append(l.visuals, v)
	return v
}

// Visuals returns the visuals acquired so far.
func (l *CountingLights) Visuals() []*CountingVisual {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*CountingVisual, len(l.visuals))
	copy(out, l.visuals)
	return out
}

// Live returns the number of acquired visuals not yet released.
func (l *CountingLights) Live() int {
	live := 0
	for _, v := range l.Visuals() {
		if v.Releases() == 0 {
			live++
		}
	}
	return live
}
