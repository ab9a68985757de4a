package model

// Cooldown gates an action by the time elapsed since it last fired.
// A gate that never fired is ready. Strict gates require the elapsed time to
// exceed the window; the others accept equality.
type Cooldown struct {
	window int64
	strict bool
	last   int64
	fired  bool
}

// NewCooldown creates a gate ready once now-last >= window.
func NewCooldown(window int64) Cooldown {
	return Cooldown{window: window}
}

// NewStrictCooldown creates a gate ready once now-last > window.
func NewStrictCooldown(window int64) Cooldown {
	return Cooldown{window: window, strict: true}
}

// Ready reports whether the gate is open at now.
func (c *Cooldown) Ready(now int64) bool {
	if !c.fired {
		return true
	}
	elapsed := now - c.last
	if c.strict {
		return elapsed > c.window
	}
	return elapsed >= c.window
}

// Stamp records that the action fired at now.
func (c *Cooldown) Stamp(now int64) {
	c.last = now
	c.fired = true
}

// TryFire stamps and returns true if the gate was open.
func (c *Cooldown) TryFire(now int64) bool {
	if !c.Ready(now) {
		return false
	}
	c.Stamp(now)
	return true
}
