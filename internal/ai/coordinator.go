package ai

import (
	"github.com/rs/zerolog/log"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// Coordinator runs every registered strategy for each AI civilization once
// per turn, merges the proposals, and throttles chatty civilizations with
// decision cooldowns.
type Coordinator struct {
	strategies []Strategy
	cooldowns  map[civ.CivId]int
}

// NewCoordinator creates a coordinator with the standard strategy set.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		strategies: []Strategy{
			NewUtilityStrategy(),
			NewGOAPStrategy(),
			NewHTNStrategy(),
		},
		cooldowns: make(map[civ.CivId]int),
	}
}

// Cooldown returns the remaining cooldown turns for a civilization.
func (c *Coordinator) Cooldown(id civ.CivId) int {
	return c.cooldowns[id]
}

// TickCooldowns decrements every active cooldown by one turn. Call once at
// the start of each global turn.
func (c *Coordinator) TickCooldowns() {
	for id, remaining := range c.cooldowns {
		if remaining <= 1 {
			delete(c.cooldowns, id)
			continue
		}
		c.cooldowns[id] = remaining - 1
	}
}

// GenerateTurnDecisions produces this turn's decisions for every AI
// civilization in the world view. Civilizations on cooldown are skipped and
// produce no entry. Player-controlled civilizations are never decided for.
func (c *Coordinator) GenerateTurnDecisions(view *civ.WorldView) map[civ.CivId][]civ.AIAction {
	decisions := make(map[civ.CivId][]civ.AIAction)
	for _, id := range view.SortedIds() {
		snap := view.Civs[id]
		if snap == nil || snap.ID != id {
			log.Warn().Int("civ", int(id)).Msg("skipping inconsistent snapshot")
			continue
		}
		if snap.Player {
			continue
		}
		if c.cooldowns[id] > 0 {
			continue
		}
		actions := c.decide(snap)
		if len(actions) > 0 {
			decisions[id] = actions
		}
		c.cooldowns[id] = cooldownFor(len(actions))
	}
	return decisions
}

// DecisionsFor runs the strategies for a single civilization, ignoring
// cooldowns. Returns nil for unknown or player civilizations.
func (c *Coordinator) DecisionsFor(view *civ.WorldView, id civ.CivId) []civ.AIAction {
	snap, ok := view.Civs[id]
	if !ok || snap == nil || snap.Player {
		return nil
	}
	return c.decide(snap)
}

func (c *Coordinator) decide(snap *civ.Snapshot) []civ.AIAction {
	var proposals []civ.AIAction
	for _, strategy := range c.strategies {
		actions := strategy.Propose(snap)
		log.Debug().
			Int("civ", int(snap.ID)).
			Str("strategy", strategy.Name()).
			Int("proposed", len(actions)).
			Msg("strategy ran")
		proposals = append(proposals, actions...)
	}

	merged := dedupeActions(proposals)
	sortByPriority(merged)
	if len(merged) > maxDecisionsPerTurn {
		merged = merged[:maxDecisionsPerTurn]
	}
	return merged
}

// dedupeActions collapses actions that target the same thing, keeping the
// highest priority proposal for each key. First-seen key order is preserved
// so ties between strategies resolve deterministically.
func dedupeActions(actions []civ.AIAction) []civ.AIAction {
	index := make(map[string]int, len(actions))
	var out []civ.AIAction
	for _, action := range actions {
		key := civ.DedupeKey(action)
		if i, seen := index[key]; seen {
			if civ.ActionPriority(action) > civ.ActionPriority(out[i]) {
				out[i] = action
			}
			continue
		}
		index[key] = len(out)
		out = append(out, action)
	}
	return out
}

// cooldownFor maps a turn's decision count to the cooldown the civilization
// earns. Quiet civilizations decide every turn; busy ones rest.
func cooldownFor(decisions int) int {
	switch {
	case decisions <= maxActionsNoCooldown:
		return 0
	case decisions <= maxActionsShortCooldown:
		return shortCooldownTurns
	default:
		return longCooldownTurns
	}
}
