// Package engine owns the mutable game state and drives it forward: the
// world model, snapshot assembly, action execution, and the headless turn
// runner that ties the decision layer to all of it.
package engine

import (
	"github.com/rs/zerolog/log"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/diplomacy"
)

// Civ is the live, mutable state of one civilization. Strategies never see
// this type; they work from snapshots.
type Civ struct {
	ID          civ.CivId
	Name        string
	Player      bool
	Personality civ.Personality
	Economy     civ.Economy
	Military    civ.Military
	HasCapital  bool
	Capital     civ.Position
	Known       map[string]bool
	Cities      []civ.City
	Territories []civ.Territory

	nextUnitID int
}

// World is the full mutable game state: every living civilization, the
// shared diplomatic table, and the global turn counter.
type World struct {
	Turn      int
	Civs      map[civ.CivId]*Civ
	Diplomacy *diplomacy.Table
}

// NewWorld creates an empty world at turn 1.
func NewWorld() *World {
	return &World{
		Turn:      1,
		Civs:      make(map[civ.CivId]*Civ),
		Diplomacy: diplomacy.NewTable(),
	}
}

// AddCiv spawns a civilization with a capital city at the given position and
// neutral relations toward every civilization already in the world.
func (w *World) AddCiv(id civ.CivId, name string, player bool, personality civ.Personality, capital civ.Position) *Civ {
	c := &Civ{
		ID:          id,
		Name:        name,
		Player:      player,
		Personality: personality,
		Economy:     civ.DefaultEconomy(),
		HasCapital:  true,
		Capital:     capital,
		Known:       make(map[string]bool),
		Cities: []civ.City{{
			Name:       name,
			Position:   capital,
			Population: 1,
		}},
		Territories: []civ.Territory{{
			Position:        capital,
			ControlStrength: 1,
		}},
	}
	for existing := range w.Civs {
		w.Diplomacy.Relation(id, existing)
	}
	w.Civs[id] = c
	log.Info().Int("civ", int(id)).Str("name", name).Bool("player", player).Msg("civilization spawned")
	return c
}

// RemoveCiv eliminates a civilization, dropping its relations with it.
func (w *World) RemoveCiv(id civ.CivId) {
	if _, ok := w.Civs[id]; !ok {
		return
	}
	delete(w.Civs, id)
	w.Diplomacy.RemoveCiv(id)
	log.Info().Int("civ", int(id)).Msg("civilization eliminated")
}

// Civ returns the live state for a civilization id.
func (w *World) Civ(id civ.CivId) (*Civ, bool) {
	c, ok := w.Civs[id]
	return c, ok
}

// OwnsTile reports whether the civilization controls the given position.
func (c *Civ) OwnsTile(p civ.Position) bool {
	for _, t := range c.Territories {
		if t.Position == p {
			return true
		}
	}
	return false
}

// addUnit trains a unit and updates the aggregate strength.
func (c *Civ) addUnit(kind civ.UnitType, at civ.Position) civ.MilitaryUnit {
	c.nextUnitID++
	unit := civ.MilitaryUnit{
		ID:       c.nextUnitID,
		Type:     kind,
		Position: at,
		Strength: unitStrength(kind),
	}
	c.Military.Units = append(c.Military.Units, unit)
	c.Military.TotalStrength += unit.Strength
	return unit
}

func unitStrength(kind civ.UnitType) float64 {
	switch kind {
	case civ.Infantry:
		return 10
	case civ.Archer:
		return 8
	case civ.Cavalry:
		return 15
	default:
		return 5
	}
}

// CollectIncome applies one turn of economic flow for every civilization:
// income plus trade route value, minus expenses. Gold never goes negative.
func (w *World) CollectIncome() {
	for _, c := range w.Civs {
		net := c.Economy.Income - c.Economy.Expenses
		for _, route := range c.Economy.TradeRoutes {
			net += route.Value * route.Security
		}
		c.Economy.Gold += net
		if c.Economy.Gold < 0 {
			c.Economy.Gold = 0
		}
	}
}
