package ai

// Utility scoring tunables.
const (
	considerationThreshold = 0.3 // minimum utility score to keep an action
	maxExpansionFactor     = 8.0 // territory saturation divisor for land hunger
	goldToResearchDivisor  = 100.0
	rivalProximityRange    = 20.0 // capitals closer than this contribute threat
	threatFactorMax        = 2.0
	baseMilitarismWeight   = 0.5
	initialUnitThreshold   = 2 // below this, train infantry before archers
	tradeSaturationRoutes  = 5.0
	maxTradeDistance       = 30.0
	economicPressureMax    = 2.0
	economicPressureBase   = 0.3
	economicPressureScale  = 0.7
	tradeUtilityMultiplier = 0.8
)

// Game-stage exploration multipliers.
const (
	earlyGameTurnThreshold = 20
	midGameTurnThreshold   = 50
	earlyGameExploreMult   = 1.5
	midGameExploreMult     = 1.0
	lateGameExploreMult    = 0.5

	fewTerritoriesThreshold      = 3
	moderateTerritoriesThreshold = 6
	fewTerritoriesMult           = 1.2
	moderateTerritoriesMult      = 1.0
	manyTerritoriesMult          = 0.7
)

// GOAP planning bounds and goal targets.
const (
	maxPlanningDepth  = 10
	maxPlanExpansions = 1000

	territoryExpansionTarget = 3.0
	techAdvancementTarget    = 2.0
	incomeMultiplierTarget   = 1.5
	tradeRoutesTarget        = 2.0
	explorationTarget        = 10.0
	militaryMultiplierTarget = 1.5
)

// GOAP action costs, preconditions, and effects.
const (
	expandActionCost      = 2.0
	expandGoldRequirement = 10.0
	expandTerritoryEffect = 1.0

	researchActionCost      = 3.0
	researchGoldRequirement = 50.0
	researchTechEffect      = 1.0

	buildMilitaryActionCost      = 2.5
	buildMilitaryGoldRequirement = 30.0
	buildMilitaryCityRequirement = 1.0
	buildMilitaryStrengthEffect  = 10.0

	tradeActionCost      = 1.5
	tradeCityRequirement = 1.0
	tradeRouteEffect     = 1.0
	tradeIncomeEffect    = 5.0

	buildEconomicActionCost      = 2.0
	buildEconomicGoldRequirement = 25.0
	buildEconomicCityRequirement = 1.0
	buildEconomicIncomeEffect    = 3.0

	exploreActionCost         = 1.0
	exploreCapitalRequirement = 1.0
	exploreTilesEffect        = 5.0

	goapGoldCostScale = 5.0 // each action drains gold at cost * scale
)

// HTN decomposition priorities and gates.
const (
	establishCityPriority  = 0.8
	buildUnitPriority      = 0.7
	diplomacyPriority      = 0.7
	buildInfraPriority     = 0.6
	researchTechPriority   = 0.6
	militaryActionPriority = 0.6
	establishTradePriority = 0.5
	explorePriority        = 0.5

	allianceThreshold   = 20.0   // minimum relation value to consider an alliance
	diplomacySearchSeed = -100.0 // seed for worst/best relation scans
	weaknessThreshold   = 0.7    // rivals below this fraction of our strength are targets
	hostileRelationCut  = -20.0  // relations below this count as enemies
)

// Coordinator decision shaping and cooldown assignment.
const (
	maxDecisionsPerTurn = 8

	personalityModerate       = 0.5
	personalityHigh           = 0.7
	explorationThreshold      = 0.4
	earlyGameExplorationLimit = 30

	shortCooldownTurns = 1
	longCooldownTurns  = 2

	// Action-count bands that select the cooldown. One action or fewer is
	// free; two or three earn the short cooldown; anything more the long one.
	maxActionsNoCooldown    = 1
	maxActionsShortCooldown = 3
)
