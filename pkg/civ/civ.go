package civ

import (
	"math"
	"sort"
)

// CivId uniquely identifies a civilization. Ids are opaque, assigned once at
// spawn, and used as the join key across queues, cooldowns, and relations.
type CivId int

// Position is a tile coordinate on the world map.
type Position struct {
	X int
	Y int
}

// DistanceTo returns the euclidean distance between two positions.
func (p Position) DistanceTo(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Personality holds the trait vector that drives AI decision making.
// All traits are in [0,1].
type Personality struct {
	LandHunger       float64 // desire to expand territory
	IndustryFocus    float64 // focus on economic development
	TechFocus        float64 // investment in research
	Interventionism  float64 // willingness to interfere abroad
	RiskTolerance    float64 // willingness to take risks
	HonorTreaties    float64 // diplomatic reliability
	Militarism       float64 // focus on military strength
	Isolationism     float64 // preference for isolation
	ExplorationDrive float64 // urge to scout unknown territory
}

// DefaultPersonality returns a fully neutral trait vector.
func DefaultPersonality() Personality {
	return Personality{
		LandHunger:       0.5,
		IndustryFocus:    0.5,
		TechFocus:        0.5,
		Interventionism:  0.5,
		RiskTolerance:    0.5,
		HonorTreaties:    0.5,
		Militarism:       0.5,
		Isolationism:     0.5,
		ExplorationDrive: 0.5,
	}
}

// TradeRoute connects two capitals and generates income each turn.
type TradeRoute struct {
	From     Position
	To       Position
	Value    float64
	Security float64
}

// Economy is the economic state of a civilization.
type Economy struct {
	Gold        float64
	Income      float64
	Expenses    float64
	Production  float64
	TradeRoutes []TradeRoute
}

// DefaultEconomy returns the starting economy for a freshly spawned civilization.
func DefaultEconomy() Economy {
	return Economy{
		Gold:       100,
		Income:     10,
		Expenses:   5,
		Production: 8,
	}
}

// MilitaryUnit is a single controlled unit.
type MilitaryUnit struct {
	ID       int
	Type     UnitType
	Position Position
	Strength float64
}

// Military aggregates a civilization's forces.
type Military struct {
	Units         []MilitaryUnit
	TotalStrength float64
}

// Building is a constructed improvement inside a city.
type Building struct {
	Type  BuildingType
	Level int
}

// City is an owned settlement.
type City struct {
	Name       string
	Position   Position
	Population int
	Buildings  []Building
}

// Territory is a single owned tile outside city centers.
type Territory struct {
	Position        Position
	ControlStrength float64
}

// RelationView is the read-only projection of one diplomatic relation as seen
// from the snapshot owner's side. The Other* fields describe what this
// civilization can observe about the rival; snapshot assembly fills them in.
type RelationView struct {
	Other           CivId
	Value           float64 // clamped to [-100,100] by the diplomacy table
	Allied          bool
	AtWar           bool
	TradePact       bool
	OtherStrength   float64
	OtherHasCapital bool
	OtherCapital    Position
}

// Snapshot is an immutable point-in-time projection of one civilization,
// built fresh each decision cycle. Strategies receive snapshots and nothing
// else, so nothing they do can corrupt live world state.
type Snapshot struct {
	ID          CivId
	Name        string
	Player      bool // player-controlled civs never receive AI decisions
	Turn        int  // global turn the snapshot was taken on
	Personality Personality
	Economy     Economy
	Military    Military
	HasCapital  bool
	Capital     Position
	Known       map[string]bool // researched technologies
	Cities      []City
	Territories []Territory
	Relations   []RelationView
}

// Knows reports whether the technology has been researched.
func (s *Snapshot) Knows(tech string) bool {
	return s.Known[tech]
}

// RelationWith returns the relation view toward the given civilization, if any.
func (s *Snapshot) RelationWith(other CivId) (RelationView, bool) {
	for _, r := range s.Relations {
		if r.Other == other {
			return r, true
		}
	}
	return RelationView{}, false
}

// WorldView is the read-only world state handed to the coordinator each
// cycle: one snapshot per living civilization plus the global turn counter.
type WorldView struct {
	Turn int
	Civs map[CivId]*Snapshot
}

// SortedIds returns the civilization ids in ascending order. Decision
// generation iterates ids this way so output never depends on map order.
func (v *WorldView) SortedIds() []CivId {
	ids := make([]CivId, 0, len(v.Civs))
	for id := range v.Civs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
