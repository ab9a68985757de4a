package spawn

// Refusal is the outcome of a spawn attempt. Accepted is the zero value.
type Refusal uint8

const (
	Accepted Refusal = iota
	RefusedNoResources
	RefusedCooldown
	RefusedNoTarget
	RefusedUnknownTemplate
	RefusedDead
)

func (r Refusal) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RefusedNoResources:
		return "no resources"
	case RefusedCooldown:
		return "cooldown"
	case RefusedNoTarget:
		return "no target"
	case RefusedUnknownTemplate:
		return "unknown template"
	case RefusedDead:
		return "summoner dead"
	default:
		return "unknown"
	}
}
