package model

import "github.com/udisondev/summoning/internal/nav"

// TickContext carries the collaborators of one simulation step.
type TickContext struct {
	Now int64 // ms, from the shared clock
	Nav nav.Pathfinder
}
