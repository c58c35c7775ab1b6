package ai

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// taskEnv exposes a civilization snapshot to compiled method preconditions.
// Method names form the expression vocabulary.
type taskEnv struct {
	snap *civ.Snapshot
}

func (e taskEnv) Gold() float64             { return e.snap.Economy.Gold }
func (e taskEnv) MilitaryStrength() float64 { return e.snap.Military.TotalStrength }
func (e taskEnv) CityCount() int            { return len(e.snap.Cities) }
func (e taskEnv) Turn() int                 { return e.snap.Turn }
func (e taskEnv) Knows(tech string) bool    { return e.snap.Knows(tech) }

func (e taskEnv) HasEnemies() bool {
	for _, r := range e.snap.Relations {
		if r.AtWar || r.Value < hostileRelationCut {
			return true
		}
	}
	return false
}

func (e taskEnv) HasAllies() bool {
	for _, r := range e.snap.Relations {
		if r.Allied {
			return true
		}
	}
	return false
}

// Compound task names. Each decomposes through one of its methods; primitives
// bottom out in concrete actions.
const (
	taskConquest      = "conquest"
	taskDiplomatic    = "diplomatic"
	taskEconomic      = "economic"
	taskTechnological = "technological"
	taskDefensive     = "defensive"

	taskEconomicDevelopment = "economic_development"
)

// Primitive task names.
const (
	primitiveBuildArmy           = "build_army"
	primitiveBuildInfrastructure = "build_infrastructure"
	primitiveResearchTechnology  = "research_technology"
	primitiveEstablishTrade      = "establish_trade"
	primitiveFormAlliance        = "form_alliance"
	primitiveDeclareWar          = "declare_war"
	primitiveDefendTerritory     = "defend_territory"
	primitiveExpandTerritory     = "expand_territory"
)

// htnMethod is one way of accomplishing a compound task. The condition is an
// expression over taskEnv, compiled once at construction.
type htnMethod struct {
	name         string
	conditionSrc string
	condition    *vm.Program
	subtasks     []string
}

// HTNStrategy decomposes personality-selected high level tasks into primitive
// actions through condition-gated method networks.
type HTNStrategy struct {
	methods map[string][]htnMethod
}

// NewHTNStrategy creates the strategy and compiles every method precondition.
// It panics on a malformed expression since the networks are fixed at build
// time.
func NewHTNStrategy() *HTNStrategy {
	s := &HTNStrategy{methods: buildTaskNetworks()}
	for task, methods := range s.methods {
		for i := range methods {
			prog, err := expr.Compile(methods[i].conditionSrc, expr.Env(taskEnv{}), expr.AsBool())
			if err != nil {
				panic(fmt.Sprintf("compile method %s/%s: %v", task, methods[i].name, err))
			}
			methods[i].condition = prog
		}
	}
	return s
}

func (s *HTNStrategy) Name() string { return "htn" }

// Propose selects root tasks for the civilization's personality and situation,
// decomposes each through the first applicable method, and materializes the
// resulting primitives.
func (s *HTNStrategy) Propose(snap *civ.Snapshot) []civ.AIAction {
	env := taskEnv{snap: snap}
	var actions []civ.AIAction
	for _, task := range selectRootTasks(snap, env) {
		for _, primitive := range s.decompose(task, env, 0) {
			if action, ok := materializePrimitive(primitive, snap); ok {
				actions = append(actions, action)
			}
		}
	}
	sortByPriority(actions)
	return actions
}

// maxDecompositionDepth bounds recursion through compound subtasks.
const maxDecompositionDepth = 4

// decompose resolves a task name into primitive task names. Compound tasks
// expand through their first method whose condition holds; primitives pass
// through unchanged.
func (s *HTNStrategy) decompose(task string, env taskEnv, depth int) []string {
	methods, compound := s.methods[task]
	if !compound {
		return []string{task}
	}
	if depth >= maxDecompositionDepth {
		return nil
	}
	for _, m := range methods {
		ok, err := vm.Run(m.condition, env)
		if err != nil {
			log.Warn().Err(err).Str("task", task).Str("method", m.name).Msg("method condition failed")
			continue
		}
		if !ok.(bool) {
			continue
		}
		var primitives []string
		for _, sub := range m.subtasks {
			primitives = append(primitives, s.decompose(sub, env, depth+1)...)
		}
		return primitives
	}
	return nil
}

func selectRootTasks(snap *civ.Snapshot, env taskEnv) []string {
	var tasks []string
	p := snap.Personality
	if env.HasEnemies() {
		tasks = append(tasks, taskDefensive)
	}
	if p.LandHunger > personalityHigh && p.Militarism > personalityModerate {
		tasks = append(tasks, taskConquest)
	}
	if p.Interventionism > personalityModerate {
		tasks = append(tasks, taskDiplomatic)
	}
	if p.IndustryFocus > personalityHigh {
		tasks = append(tasks, taskEconomic)
	}
	if p.TechFocus > personalityHigh {
		tasks = append(tasks, taskTechnological)
	}
	return tasks
}

func buildTaskNetworks() map[string][]htnMethod {
	return map[string][]htnMethod{
		taskConquest: {
			{
				name:         "aggressive_conquest",
				conditionSrc: "MilitaryStrength() >= 50.0 && Gold() >= 100.0",
				subtasks:     []string{primitiveBuildArmy, primitiveResearchTechnology, primitiveDeclareWar},
			},
			{
				name:         "preparation_phase",
				conditionSrc: "CityCount() >= 1",
				subtasks:     []string{primitiveBuildArmy, primitiveBuildInfrastructure, taskEconomicDevelopment},
			},
		},
		taskDiplomatic: {
			{
				name:         "alliance_building",
				conditionSrc: "Turn() > 10",
				subtasks:     []string{primitiveEstablishTrade, primitiveFormAlliance},
			},
		},
		taskEconomic: {
			{
				name:         "infrastructure_focus",
				conditionSrc: "CityCount() >= 1",
				subtasks:     []string{primitiveBuildInfrastructure, primitiveEstablishTrade, primitiveExpandTerritory},
			},
		},
		taskTechnological: {
			{
				name:         "research_focus",
				conditionSrc: "Gold() >= 50.0",
				subtasks:     []string{primitiveResearchTechnology, primitiveBuildInfrastructure},
			},
		},
		taskDefensive: {
			{
				name:         "defensive_buildup",
				conditionSrc: "HasEnemies()",
				subtasks:     []string{primitiveBuildArmy, primitiveDefendTerritory, primitiveFormAlliance},
			},
		},
		taskEconomicDevelopment: {
			{
				name:         "trade_and_industry",
				conditionSrc: "CityCount() >= 1",
				subtasks:     []string{primitiveBuildInfrastructure, primitiveEstablishTrade},
			},
		},
	}
}

// materializePrimitive turns a primitive task name into a concrete action for
// the civilization, or reports false when the snapshot offers no valid target.
func materializePrimitive(primitive string, snap *civ.Snapshot) (civ.AIAction, bool) {
	switch primitive {
	case primitiveBuildArmy:
		if !snap.HasCapital {
			return nil, false
		}
		unit := civ.Archer
		if len(snap.Military.Units) < initialUnitThreshold {
			unit = civ.Infantry
		}
		return civ.BuildUnit{Unit: unit, At: snap.Capital, Priority: buildUnitPriority}, true
	case primitiveBuildInfrastructure:
		if !snap.HasCapital {
			return nil, false
		}
		building := civ.Market
		if hasBuilding(snap, civ.Market) {
			building = civ.Workshop
		}
		return civ.BuildBuilding{Building: building, At: snap.Capital, Priority: buildInfraPriority}, true
	case primitiveResearchTechnology:
		tech, ok := nextUnknownTech(snap)
		if !ok {
			return nil, false
		}
		return civ.Research{Technology: tech, Priority: researchTechPriority}, true
	case primitiveEstablishTrade:
		partner, ok := bestTradePartner(snap)
		if !ok {
			return nil, false
		}
		return civ.Trade{Partner: partner, Resource: civ.Gold, Priority: establishTradePriority}, true
	case primitiveFormAlliance:
		partner, ok := bestAllianceCandidate(snap)
		if !ok {
			return nil, false
		}
		return civ.Diplomacy{Target: partner, Action: civ.ProposeAlliance, Priority: diplomacyPriority}, true
	case primitiveDeclareWar:
		target, ok := weakestRival(snap)
		if !ok {
			return nil, false
		}
		return civ.Diplomacy{Target: target, Action: civ.DeclareWar, Priority: militaryActionPriority}, true
	case primitiveDefendTerritory:
		if !snap.HasCapital {
			return nil, false
		}
		return civ.Defend{At: snap.Capital, Priority: militaryActionPriority}, true
	case primitiveExpandTerritory:
		if !snap.HasCapital {
			return nil, false
		}
		return civ.Expand{Target: expansionTarget(snap), Priority: establishCityPriority}, true
	}
	return nil, false
}

// bestAllianceCandidate finds the warmest relation above the alliance
// threshold that is not already an ally or an enemy.
func bestAllianceCandidate(snap *civ.Snapshot) (civ.CivId, bool) {
	best := diplomacySearchSeed
	var candidate civ.CivId
	found := false
	for _, r := range snap.Relations {
		if r.Allied || r.AtWar {
			continue
		}
		if r.Value > allianceThreshold && r.Value > best {
			best = r.Value
			candidate = r.Other
			found = true
		}
	}
	return candidate, found
}

// weakestRival picks the weakest known civilization whose strength falls below
// the weakness threshold relative to our own. Civilizations without an
// observed capital are skipped.
func weakestRival(snap *civ.Snapshot) (civ.CivId, bool) {
	cutoff := snap.Military.TotalStrength * weaknessThreshold
	var target civ.CivId
	weakest := 0.0
	found := false
	for _, r := range snap.Relations {
		if r.Allied || !r.OtherHasCapital {
			continue
		}
		if r.OtherStrength >= cutoff {
			continue
		}
		if !found || r.OtherStrength < weakest {
			weakest = r.OtherStrength
			target = r.Other
			found = true
		}
	}
	return target, found
}
