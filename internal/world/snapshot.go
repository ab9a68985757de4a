package world

import (
	"time"

	"github.com/udisondev/summoning/internal/model"
)

// Outcome is the end state of a scene.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// TowerView is a read-only copy of tower state.
type TowerView struct {
	Name      string
	Role      model.Role
	Column    int
	Row       int
	Health    int32
	MaxHealth int32
	HealthPct float64 // health in [0, 1]
	Resources int32
	Selected  bool
}

// MinionView is a read-only copy of minion state.
type MinionView struct {
	ID        uint32
	Name      string
	Type      model.MinionType
	State     model.State
	X, Y      float64
	Health    int32
	MaxHealth int32
}

// Snapshot is the presentation-facing result of one step. It shares no
// memory with the scene.
type Snapshot struct {
	Tick    uint64
	Now     int64
	Elapsed time.Duration
	Outcome Outcome

	Player  TowerView
	Enemies []TowerView // live destinations in creation order
	Minions []MinionView

	Stats Stats
}

// Selected returns the selected enemy tower view, if any.
func (s *Snapshot) Selected() (TowerView, bool) {
	for _, t := range s.Enemies {
		if t.Selected {
			return t, true
		}
	}
	return TowerView{}, false
}

// Stats are cumulative scene counters.
type Stats struct {
	FriendlySpawned int
	HostileSpawned  int
	FriendlyLost    int
	HostileLost     int
	Kills           int
	Unreachable     int
	Refusals        int
}

func towerView(t *model.Tower, selected bool) TowerView {
	return TowerView{
		Name:      t.Name(),
		Role:      t.Role(),
		Column:    t.Column(),
		Row:       t.Row(),
		Health:    t.Health(),
		MaxHealth: t.MaxHealth(),
		HealthPct: t.HealthPercentage(),
		Resources: t.Resources(),
		Selected:  selected,
	}
}

func minionView(m *model.Minion) MinionView {
	pos := m.Position()
	return MinionView{
		ID:        m.ID(),
		Name:      m.Name(),
		Type:      m.Type(),
		State:     m.State(),
		X:         pos.X,
		Y:         pos.Y,
		Health:    m.Health(),
		MaxHealth: m.MaxHealth(),
	}
}
