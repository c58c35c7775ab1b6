package diplomacy

import (
	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// Per-turn drift constants.
const (
	relationDecayPerTurn  = 0.5 // extreme relations relax toward neutral
	compatibilityWeight   = 0.1 // personality compatibility drift per turn
	warDeclarationPenalty = 50.0
)

// Default treaty durations and goodwill bumps, applied when a proposal is
// accepted.
const (
	NonAggressionTurns    = 50
	AllianceTurns         = 100
	TradePactTurns        = 60
	NonAggressionGoodwill = 15.0
	AllianceGoodwill      = 25.0
	TradePactGoodwill     = 10.0
	PeaceGoodwill         = 20.0
	WarPenalty            = warDeclarationPenalty
)

// Tick advances the diplomatic model by one full round: timed treaties count
// down and expire (wars persist), extreme relation values relax toward zero,
// and personality compatibility drifts each pair slightly. Every resulting
// value stays clamped to [-100,100].
func (t *Table) Tick(personalities map[civ.CivId]civ.Personality) {
	for _, r := range t.relations {
		kept := r.Treaties[:0]
		for _, treaty := range r.Treaties {
			if treaty.Kind == War {
				kept = append(kept, treaty)
				continue
			}
			treaty.TurnsRemaining--
			if treaty.TurnsRemaining > 0 {
				kept = append(kept, treaty)
			}
		}
		r.Treaties = kept

		switch {
		case r.Value > 0:
			r.Value -= relationDecayPerTurn
			if r.Value < 0 {
				r.Value = 0
			}
		case r.Value < 0:
			r.Value += relationDecayPerTurn
			if r.Value > 0 {
				r.Value = 0
			}
		}

		pa, okA := personalities[r.Pair.A]
		pb, okB := personalities[r.Pair.B]
		if okA && okB {
			r.Value = clamp(r.Value + Compatibility(pa, pb)*compatibilityWeight)
		}
	}
}

// Compatibility scores how naturally two personalities get along, in [-1,1].
// Shared tech focus and mutual treaty-honoring pull relations up; mismatched
// interventionism and militarism pull them down.
func Compatibility(a, b civ.Personality) float64 {
	c := 1.0 - abs(a.TechFocus-b.TechFocus)
	c -= abs(a.Interventionism-b.Interventionism) * 0.5
	c += (a.HonorTreaties + b.HonorTreaties) * 0.25
	c -= abs(a.Militarism-b.Militarism) * 0.3
	if c < -1 {
		return -1
	}
	if c > 1 {
		return 1
	}
	return c
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
