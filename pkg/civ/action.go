package civ

import "fmt"

// ActionKind labels each AIAction variant.
type ActionKind string

const (
	KindExpand        ActionKind = "expand"
	KindResearch      ActionKind = "research"
	KindBuildUnit     ActionKind = "build_unit"
	KindBuildBuilding ActionKind = "build_building"
	KindTrade         ActionKind = "trade"
	KindAttack        ActionKind = "attack"
	KindDiplomacy     ActionKind = "diplomacy"
	KindDefend        ActionKind = "defend"
	KindExplore       ActionKind = "explore"
)

// UnitType enumerates buildable military units.
type UnitType string

const (
	Infantry UnitType = "infantry"
	Archer   UnitType = "archer"
	Cavalry  UnitType = "cavalry"
)

// BuildingType enumerates constructible city buildings.
type BuildingType string

const (
	Market   BuildingType = "market"
	Workshop BuildingType = "workshop"
	Barracks BuildingType = "barracks"
	Granary  BuildingType = "granary"
)

// ResourceKind enumerates tradeable resources.
type ResourceKind string

const (
	Gold ResourceKind = "gold"
	Food ResourceKind = "food"
	Iron ResourceKind = "iron"
)

// DiplomaticActionKind enumerates moves a civilization can make toward another.
type DiplomaticActionKind string

const (
	ProposeAlliance      DiplomaticActionKind = "propose_alliance"
	ProposeNonAggression DiplomaticActionKind = "propose_non_aggression"
	ProposeTradePact     DiplomaticActionKind = "propose_trade_pact"
	DeclareWar           DiplomaticActionKind = "declare_war"
	MakePeace            DiplomaticActionKind = "make_peace"
	BreakTreaty          DiplomaticActionKind = "break_treaty"
)

// AIAction is the closed set of strategic moves a civilization can decide on.
// Every variant carries a priority in [0,1]; higher executes first. The set
// is sealed: consumers switch over the concrete types and list every variant,
// so adding one is a compile-visible change at each switch via ActionKindOf.
type AIAction interface {
	isAction()
}

// Expand claims an adjacent unowned tile.
type Expand struct {
	Target   Position
	Priority float64
}

// Research advances a named technology.
type Research struct {
	Technology string
	Priority   float64
}

// BuildUnit trains a military unit at a position.
type BuildUnit struct {
	Unit     UnitType
	At       Position
	Priority float64
}

// BuildBuilding constructs a building at a position.
type BuildBuilding struct {
	Building BuildingType
	At       Position
	Priority float64
}

// Trade establishes a trade route with a partner civilization.
type Trade struct {
	Partner  CivId
	Resource ResourceKind
	Priority float64
}

// Attack strikes another civilization at a position.
type Attack struct {
	Target   CivId
	At       Position
	Priority float64
}

// Diplomacy performs a diplomatic move toward another civilization.
type Diplomacy struct {
	Target   CivId
	Action   DiplomaticActionKind
	Priority float64
}

// Defend fortifies a position with nearby units.
type Defend struct {
	At       Position
	Priority float64
}

// Explore scouts toward a target position.
type Explore struct {
	Target   Position
	Priority float64
}

func (Expand) isAction()        {}
func (Research) isAction()      {}
func (BuildUnit) isAction()     {}
func (BuildBuilding) isAction() {}
func (Trade) isAction()         {}
func (Attack) isAction()        {}
func (Diplomacy) isAction()     {}
func (Defend) isAction()        {}
func (Explore) isAction()       {}

// ActionKindOf returns the kind tag for any action variant.
func ActionKindOf(a AIAction) ActionKind {
	switch a.(type) {
	case Expand:
		return KindExpand
	case Research:
		return KindResearch
	case BuildUnit:
		return KindBuildUnit
	case BuildBuilding:
		return KindBuildBuilding
	case Trade:
		return KindTrade
	case Attack:
		return KindAttack
	case Diplomacy:
		return KindDiplomacy
	case Defend:
		return KindDefend
	case Explore:
		return KindExplore
	}
	panic(fmt.Sprintf("civ: unknown action type %T", a))
}

// ActionPriority returns the priority carried by any action variant.
func ActionPriority(a AIAction) float64 {
	switch v := a.(type) {
	case Expand:
		return v.Priority
	case Research:
		return v.Priority
	case BuildUnit:
		return v.Priority
	case BuildBuilding:
		return v.Priority
	case Trade:
		return v.Priority
	case Attack:
		return v.Priority
	case Diplomacy:
		return v.Priority
	case Defend:
		return v.Priority
	case Explore:
		return v.Priority
	}
	panic(fmt.Sprintf("civ: unknown action type %T", a))
}

// DedupeKey identifies an action by (kind, target) for coordinator merging:
// two actions with the same key are duplicates and only the higher-priority
// one survives.
func DedupeKey(a AIAction) string {
	switch v := a.(type) {
	case Expand:
		return fmt.Sprintf("%s:%d,%d", KindExpand, v.Target.X, v.Target.Y)
	case Research:
		return fmt.Sprintf("%s:%s", KindResearch, v.Technology)
	case BuildUnit:
		return fmt.Sprintf("%s:%s:%d,%d", KindBuildUnit, v.Unit, v.At.X, v.At.Y)
	case BuildBuilding:
		return fmt.Sprintf("%s:%s:%d,%d", KindBuildBuilding, v.Building, v.At.X, v.At.Y)
	case Trade:
		return fmt.Sprintf("%s:%d", KindTrade, v.Partner)
	case Attack:
		return fmt.Sprintf("%s:%d", KindAttack, v.Target)
	case Diplomacy:
		return fmt.Sprintf("%s:%d:%s", KindDiplomacy, v.Target, v.Action)
	case Defend:
		return fmt.Sprintf("%s:%d,%d", KindDefend, v.At.X, v.At.Y)
	case Explore:
		return fmt.Sprintf("%s:%d,%d", KindExplore, v.Target.X, v.Target.Y)
	}
	panic(fmt.Sprintf("civ: unknown action type %T", a))
}

// Describe renders a short human-readable summary used in logs.
func Describe(a AIAction) string {
	switch v := a.(type) {
	case Expand:
		return fmt.Sprintf("expand to (%d,%d)", v.Target.X, v.Target.Y)
	case Research:
		return fmt.Sprintf("research %s", v.Technology)
	case BuildUnit:
		return fmt.Sprintf("build %s at (%d,%d)", v.Unit, v.At.X, v.At.Y)
	case BuildBuilding:
		return fmt.Sprintf("build %s at (%d,%d)", v.Building, v.At.X, v.At.Y)
	case Trade:
		return fmt.Sprintf("trade %s with civ %d", v.Resource, v.Partner)
	case Attack:
		return fmt.Sprintf("attack civ %d at (%d,%d)", v.Target, v.At.X, v.At.Y)
	case Diplomacy:
		return fmt.Sprintf("%s toward civ %d", v.Action, v.Target)
	case Defend:
		return fmt.Sprintf("defend (%d,%d)", v.At.X, v.At.Y)
	case Explore:
		return fmt.Sprintf("explore toward (%d,%d)", v.Target.X, v.Target.Y)
	}
	panic(fmt.Sprintf("civ: unknown action type %T", a))
}
