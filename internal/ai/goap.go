package ai

import (
	"fmt"
	"sort"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// World-state keys tracked by the planner. Values are fixed-point ints
// (hundredths) so states hash cleanly into the closed set.
const (
	stateGold       = "gold"
	stateTerritory  = "territory"
	stateTech       = "tech_count"
	stateIncome     = "income"
	stateStrength   = "military_strength"
	stateTradeCount = "trade_routes"
	stateCities     = "cities"
	stateExplored   = "explored_tiles"
	stateCapital    = "has_capital"
)

const stateScale = 100

// worldState is the planner's symbolic view of a civilization. Keys missing
// from the map read as zero.
type worldState map[string]int

func (ws worldState) get(key string) float64 {
	return float64(ws[key]) / stateScale
}

func (ws worldState) set(key string, value float64) {
	ws[key] = int(value * stateScale)
}

func (ws worldState) clone() worldState {
	out := make(worldState, len(ws))
	for k, v := range ws {
		out[k] = v
	}
	return out
}

// fingerprint renders the state deterministically for closed-set membership.
func (ws worldState) fingerprint() string {
	keys := make([]string, 0, len(ws))
	for k := range ws {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%s=%d;", k, ws[k])
	}
	return out
}

// satisfies reports whether every key in goal is met or exceeded.
func (ws worldState) satisfies(goal worldState) bool {
	for k, want := range goal {
		if ws[k] < want {
			return false
		}
	}
	return true
}

// goapGoal names a desired end state. The goal state holds only the keys the
// goal cares about; unrelated keys (notably gold, which planning drains) never
// block satisfaction.
type goapGoal struct {
	name  string
	state worldState
}

// goapAction is a planning operator: preconditions on the symbolic state,
// effects applied on expansion, and a cost that both orders plans and drains
// gold.
type goapAction struct {
	name          string
	cost          float64
	preconditions worldState
	effects       worldState
	build         func(snap *civ.Snapshot, priority float64) (civ.AIAction, bool)
}

func (a goapAction) applicable(ws worldState) bool {
	for k, want := range a.preconditions {
		if ws[k] < want {
			return false
		}
	}
	return true
}

func (a goapAction) apply(ws worldState) worldState {
	next := ws.clone()
	for k, delta := range a.effects {
		next[k] += delta
	}
	next.set(stateGold, next.get(stateGold)-a.cost*goapGoldCostScale)
	return next
}

// GOAPStrategy plans action sequences toward personality-driven goals with a
// breadth-first search over a symbolic world state, then proposes only the
// first step of the cheapest plan found.
type GOAPStrategy struct {
	actions []goapAction
}

// NewGOAPStrategy creates the planner with its built-in operator table.
func NewGOAPStrategy() *GOAPStrategy {
	return &GOAPStrategy{actions: buildGoapActions()}
}

func (s *GOAPStrategy) Name() string { return "goap" }

// Propose plans toward each selected goal and emits the first action of each
// successful plan, prioritized inversely to the plan's total cost.
func (s *GOAPStrategy) Propose(snap *civ.Snapshot) []civ.AIAction {
	start := snapshotState(snap)
	goals := selectGoals(snap, start)

	var actions []civ.AIAction
	for _, goal := range goals {
		plan, cost, ok := s.plan(start, goal)
		if !ok || len(plan) == 0 {
			continue
		}
		priority := clamp01(1 - cost/10)
		if action, built := plan[0].build(snap, priority); built {
			actions = append(actions, action)
		}
	}
	sortByPriority(actions)
	return actions
}

// plan runs a bounded breadth-first search from start to goal. It returns the
// operator sequence and its total cost, or ok=false when no plan exists
// within the depth and expansion limits.
func (s *GOAPStrategy) plan(start worldState, goal goapGoal) ([]goapAction, float64, bool) {
	type node struct {
		state worldState
		plan  []goapAction
		cost  float64
	}

	if start.satisfies(goal.state) {
		return nil, 0, false
	}

	frontier := []node{{state: start}}
	closed := map[string]bool{start.fingerprint(): true}
	expansions := 0

	for len(frontier) > 0 && expansions < maxPlanExpansions {
		current := frontier[0]
		frontier = frontier[1:]
		if len(current.plan) >= maxPlanningDepth {
			continue
		}

		for _, action := range s.actions {
			if !action.applicable(current.state) {
				continue
			}
			expansions++
			next := action.apply(current.state)
			fp := next.fingerprint()
			if closed[fp] {
				continue
			}
			closed[fp] = true

			plan := make([]goapAction, len(current.plan), len(current.plan)+1)
			copy(plan, current.plan)
			plan = append(plan, action)
			cost := current.cost + action.cost

			if next.satisfies(goal.state) {
				return plan, cost, true
			}
			frontier = append(frontier, node{state: next, plan: plan, cost: cost})
		}
	}
	return nil, 0, false
}

// snapshotState projects the civilization into the planner's symbolic view.
func snapshotState(snap *civ.Snapshot) worldState {
	ws := worldState{}
	ws.set(stateGold, snap.Economy.Gold)
	ws.set(stateTerritory, float64(len(snap.Territories)))
	ws.set(stateTech, float64(len(snap.Known)))
	ws.set(stateIncome, snap.Economy.Income)
	ws.set(stateStrength, snap.Military.TotalStrength)
	ws.set(stateTradeCount, float64(len(snap.Economy.TradeRoutes)))
	ws.set(stateCities, float64(len(snap.Cities)))
	ws.set(stateExplored, float64(len(snap.Territories)))
	if snap.HasCapital {
		ws.set(stateCapital, 1)
	}
	return ws
}

// selectGoals picks the goals worth planning toward given the civilization's
// personality and current situation.
func selectGoals(snap *civ.Snapshot, start worldState) []goapGoal {
	var goals []goapGoal
	goal := func(name string, key string, target float64) {
		want := worldState{}
		want.set(key, target)
		goals = append(goals, goapGoal{name: name, state: want})
	}

	if snap.Personality.LandHunger > personalityModerate {
		goal("expand_territory", stateTerritory, start.get(stateTerritory)+territoryExpansionTarget)
	}
	if snap.Personality.Militarism > personalityModerate {
		target := start.get(stateStrength) * militaryMultiplierTarget
		if target < buildMilitaryStrengthEffect {
			target = buildMilitaryStrengthEffect
		}
		goal("build_military", stateStrength, target)
	}
	if snap.Personality.TechFocus > personalityModerate {
		goal("advance_technology", stateTech, start.get(stateTech)+techAdvancementTarget)
	}
	if snap.Personality.IndustryFocus > personalityHigh {
		want := worldState{}
		want.set(stateIncome, start.get(stateIncome)*incomeMultiplierTarget)
		want.set(stateTradeCount, start.get(stateTradeCount)+tradeRoutesTarget)
		goals = append(goals, goapGoal{name: "develop_economy", state: want})
	}
	if snap.Personality.ExplorationDrive > explorationThreshold && snap.Turn < earlyGameExplorationLimit {
		goal("explore_territory", stateExplored, start.get(stateExplored)+explorationTarget)
	}
	return goals
}

// state builds a worldState from plain float values, applying the fixed-point
// scaling on the way in.
func state(values map[string]float64) worldState {
	ws := make(worldState, len(values))
	for k, v := range values {
		ws.set(k, v)
	}
	return ws
}

func buildGoapActions() []goapAction {
	return []goapAction{
		{
			name:          "expand",
			cost:          expandActionCost,
			preconditions: state(map[string]float64{stateGold: expandGoldRequirement}),
			effects:       state(map[string]float64{stateTerritory: expandTerritoryEffect}),
			build: func(snap *civ.Snapshot, priority float64) (civ.AIAction, bool) {
				if !snap.HasCapital {
					return nil, false
				}
				return civ.Expand{Target: expansionTarget(snap), Priority: priority}, true
			},
		},
		{
			name:          "research",
			cost:          researchActionCost,
			preconditions: state(map[string]float64{stateGold: researchGoldRequirement}),
			effects:       state(map[string]float64{stateTech: researchTechEffect}),
			build: func(snap *civ.Snapshot, priority float64) (civ.AIAction, bool) {
				tech, ok := nextUnknownTech(snap)
				if !ok {
					return nil, false
				}
				return civ.Research{Technology: tech, Priority: priority}, true
			},
		},
		{
			name:          "build_military",
			cost:          buildMilitaryActionCost,
			preconditions: state(map[string]float64{stateGold: buildMilitaryGoldRequirement, stateCities: buildMilitaryCityRequirement}),
			effects:       state(map[string]float64{stateStrength: buildMilitaryStrengthEffect}),
			build: func(snap *civ.Snapshot, priority float64) (civ.AIAction, bool) {
				if !snap.HasCapital {
					return nil, false
				}
				return civ.BuildUnit{Unit: civ.Infantry, At: snap.Capital, Priority: priority}, true
			},
		},
		{
			name:          "trade",
			cost:          tradeActionCost,
			preconditions: state(map[string]float64{stateCities: tradeCityRequirement}),
			effects:       state(map[string]float64{stateTradeCount: tradeRouteEffect, stateIncome: tradeIncomeEffect}),
			build: func(snap *civ.Snapshot, priority float64) (civ.AIAction, bool) {
				partner, ok := bestTradePartner(snap)
				if !ok {
					return nil, false
				}
				return civ.Trade{Partner: partner, Resource: civ.Gold, Priority: priority}, true
			},
		},
		{
			name:          "build_economic",
			cost:          buildEconomicActionCost,
			preconditions: state(map[string]float64{stateGold: buildEconomicGoldRequirement, stateCities: buildEconomicCityRequirement}),
			effects:       state(map[string]float64{stateIncome: buildEconomicIncomeEffect}),
			build: func(snap *civ.Snapshot, priority float64) (civ.AIAction, bool) {
				if !snap.HasCapital {
					return nil, false
				}
				building := civ.Market
				if hasBuilding(snap, civ.Market) {
					building = civ.Workshop
				}
				return civ.BuildBuilding{Building: building, At: snap.Capital, Priority: priority}, true
			},
		},
		{
			name:          "explore",
			cost:          exploreActionCost,
			preconditions: state(map[string]float64{stateCapital: exploreCapitalRequirement}),
			effects:       state(map[string]float64{stateExplored: exploreTilesEffect}),
			build: func(snap *civ.Snapshot, priority float64) (civ.AIAction, bool) {
				if !snap.HasCapital {
					return nil, false
				}
				return civ.Explore{Target: exploreTarget(snap), Priority: priority}, true
			},
		},
	}
}
