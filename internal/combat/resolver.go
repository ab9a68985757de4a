package combat

import (
	"log/slog"

	"github.com/udisondev/summoning/internal/model"
)

// Kill records one lethal collision strike.
type Kill struct {
	Killer   *model.Minion
	Victim   *model.Minion
	Credited *model.Tower // receives the killer's kill reward
	Reward   int32
}

// Resolver applies collision combat between opposing minions.
//
// Damage cooldown is tracked per victim, not per attacker/victim pair: a
// minion touching several opponents at once only takes the first strike
// processed in each cooldown window.
type Resolver struct {
	strike int32
}

// NewResolver creates a resolver dealing strike damage per collision.
func NewResolver(strike int32) *Resolver {
	return &Resolver{strike: strike}
}

// Sweep checks every unordered pair of Moving minions once, in slice order.
// Opposing pairs with overlapping bounds strike each other; both strikes of a
// pair are applied, so mutual kills happen. A pair is skipped if either side
// stopped moving earlier in the same sweep.
func (r *Resolver) Sweep(minions []*model.Minion, now int64) []Kill {
	moving := make([]*model.Minion, 0, len(minions))
	for _, m := range minions {
		if m.State() == model.StateMoving {
			moving = append(moving, m)
		}
	}

	var kills []Kill
	for i := range moving {
		a := moving[i]
		for _, b := range moving[i+1:] {
			if a.State() != model.StateMoving {
				break
			}
			if b.State() != model.StateMoving || a.Type() == b.Type() || !a.Intersects(b) {
				continue
			}

			bDied := b.ReceiveDamage(r.strike, now)
			aDied := a.ReceiveDamage(r.strike, now)
			if bDied {
				kills = append(kills, r.credit(a, b, now))
			}
			if aDied {
				kills = append(kills, r.credit(b, a, now))
			}
		}
	}
	return kills
}

func (r *Resolver) credit(killer, victim *model.Minion, now int64) Kill {
	tower := victim.Destination()
	reward := killer.KillReward()
	tower.GainPowerExt(reward, false, now)

	slog.Debug("minion killed",
		"killer", killer.Name(),
		"victim", victim.Name(),
		"credited", tower.Name(),
		"reward", reward)

	return Kill{Killer: killer, Victim: victim, Credited: tower, Reward: reward}
}
