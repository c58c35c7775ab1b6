package ai

import (
	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// UtilityStrategy scores a fixed set of candidate action types with weighted
// heuristics and proposes every action that clears the consideration
// threshold, using the score as the action priority.
type UtilityStrategy struct {
	functions []utilityFunction
}

// utilityFunction evaluates one candidate action type. score returns a value
// in [0,1]; build materializes the action once the score clears the
// threshold, or reports false when no concrete target exists.
type utilityFunction struct {
	name  string
	score func(snap *civ.Snapshot) float64
	build func(snap *civ.Snapshot, score float64) (civ.AIAction, bool)
}

// NewUtilityStrategy creates the scorer with its built-in heuristic set.
func NewUtilityStrategy() *UtilityStrategy {
	return &UtilityStrategy{functions: buildUtilityFunctions()}
}

func (s *UtilityStrategy) Name() string { return "utility" }

// Propose evaluates every heuristic and keeps the actions scoring above the
// consideration threshold, sorted best first.
func (s *UtilityStrategy) Propose(snap *civ.Snapshot) []civ.AIAction {
	var actions []civ.AIAction
	for _, fn := range s.functions {
		score := clamp01(fn.score(snap))
		if score <= considerationThreshold {
			continue
		}
		if action, ok := fn.build(snap, score); ok {
			actions = append(actions, action)
		}
	}
	sortByPriority(actions)
	return actions
}

func buildUtilityFunctions() []utilityFunction {
	return []utilityFunction{
		{
			name: "expand_territory",
			score: func(snap *civ.Snapshot) float64 {
				if !snap.HasCapital {
					return 0
				}
				saturation := float64(len(snap.Territories)) / maxExpansionFactor
				if saturation > 1 {
					saturation = 1
				}
				return snap.Personality.LandHunger * (1 - saturation)
			},
			build: func(snap *civ.Snapshot, score float64) (civ.AIAction, bool) {
				target := expansionTarget(snap)
				return civ.Expand{Target: target, Priority: score}, true
			},
		},
		{
			name: "research_technology",
			score: func(snap *civ.Snapshot) float64 {
				capacity := snap.Economy.Gold / goldToResearchDivisor
				if capacity > 1 {
					capacity = 1
				}
				return snap.Personality.TechFocus * capacity
			},
			build: func(snap *civ.Snapshot, score float64) (civ.AIAction, bool) {
				tech, ok := nextUnknownTech(snap)
				if !ok {
					return nil, false
				}
				return civ.Research{Technology: tech, Priority: score}, true
			},
		},
		{
			name: "build_military",
			score: func(snap *civ.Snapshot) float64 {
				threat := rivalThreat(snap)
				factor := threat / (snap.Military.TotalStrength + 1)
				if factor > threatFactorMax {
					factor = threatFactorMax
				}
				return snap.Personality.Militarism * (baseMilitarismWeight + factor*0.5)
			},
			build: func(snap *civ.Snapshot, score float64) (civ.AIAction, bool) {
				if !snap.HasCapital {
					return nil, false
				}
				unit := civ.Archer
				if len(snap.Military.Units) < initialUnitThreshold {
					unit = civ.Infantry
				}
				return civ.BuildUnit{Unit: unit, At: snap.Capital, Priority: score}, true
			},
		},
		{
			name: "develop_economy",
			score: func(snap *civ.Snapshot) float64 {
				pressure := economicPressureMax
				if snap.Economy.Income > 0 {
					pressure = snap.Economy.Expenses / snap.Economy.Income
					if pressure > economicPressureMax {
						pressure = economicPressureMax
					}
				}
				return snap.Personality.IndustryFocus * (economicPressureBase + pressure*economicPressureScale)
			},
			build: func(snap *civ.Snapshot, score float64) (civ.AIAction, bool) {
				if !snap.HasCapital {
					return nil, false
				}
				building := civ.Market
				if hasBuilding(snap, civ.Market) {
					building = civ.Workshop
				}
				return civ.BuildBuilding{Building: building, At: snap.Capital, Priority: score}, true
			},
		},
		{
			name: "establish_trade",
			score: func(snap *civ.Snapshot) float64 {
				if len(snap.Relations) == 0 {
					return 0
				}
				saturation := float64(len(snap.Economy.TradeRoutes)) / tradeSaturationRoutes
				if saturation > 1 {
					saturation = 1
				}
				return snap.Personality.IndustryFocus * (1 - saturation) * tradeUtilityMultiplier
			},
			build: func(snap *civ.Snapshot, score float64) (civ.AIAction, bool) {
				partner, ok := bestTradePartner(snap)
				if !ok {
					return nil, false
				}
				return civ.Trade{Partner: partner, Resource: civ.Gold, Priority: score}, true
			},
		},
		{
			name: "explore_frontier",
			score: func(snap *civ.Snapshot) float64 {
				if !snap.HasCapital {
					return 0
				}
				return snap.Personality.ExplorationDrive * stageMultiplier(snap.Turn) * territoryMultiplier(len(snap.Territories))
			},
			build: func(snap *civ.Snapshot, score float64) (civ.AIAction, bool) {
				return civ.Explore{Target: exploreTarget(snap), Priority: score}, true
			},
		},
	}
}

// rivalThreat sums observable rival strength weighted by capital proximity.
// Closer and stronger rivals contribute more; rivals beyond the proximity
// range are ignored.
func rivalThreat(snap *civ.Snapshot) float64 {
	if !snap.HasCapital {
		return 0
	}
	threat := 0.0
	for _, r := range snap.Relations {
		if !r.OtherHasCapital {
			continue
		}
		dist := snap.Capital.DistanceTo(r.OtherCapital)
		if dist >= rivalProximityRange {
			continue
		}
		threat += r.OtherStrength / (dist + 1)
	}
	return threat
}

func hasBuilding(snap *civ.Snapshot, kind civ.BuildingType) bool {
	for _, city := range snap.Cities {
		for _, b := range city.Buildings {
			if b.Type == kind {
				return true
			}
		}
	}
	return false
}

func stageMultiplier(turn int) float64 {
	switch {
	case turn < earlyGameTurnThreshold:
		return earlyGameExploreMult
	case turn < midGameTurnThreshold:
		return midGameExploreMult
	default:
		return lateGameExploreMult
	}
}

func territoryMultiplier(territories int) float64 {
	switch {
	case territories < fewTerritoriesThreshold:
		return fewTerritoriesMult
	case territories < moderateTerritoriesThreshold:
		return moderateTerritoriesMult
	default:
		return manyTerritoriesMult
	}
}

// expansionTarget picks an adjacent tile near the capital, rotating the
// direction with the turn counter so repeated attempts spread out.
func expansionTarget(snap *civ.Snapshot) civ.Position {
	dirs := [...][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	d := dirs[snap.Turn%len(dirs)]
	return civ.Position{X: snap.Capital.X + d[0], Y: snap.Capital.Y + d[1]}
}

// exploreTarget aims a scouting push a few tiles out from the capital,
// rotating direction by turn.
func exploreTarget(snap *civ.Snapshot) civ.Position {
	dirs := [...][2]int{{5, 0}, {-5, 0}, {0, 5}, {0, -5}, {3, 3}, {-3, 3}}
	d := dirs[snap.Turn%len(dirs)]
	return civ.Position{X: snap.Capital.X + d[0], Y: snap.Capital.Y + d[1]}
}
