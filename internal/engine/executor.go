package engine

import (
	"errors"
	"fmt"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/diplomacy"
)

// Execution failure kinds. Callers match with errors.Is to decide whether a
// failed action is worth retrying.
var (
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrTileOccupied          = errors.New("tile occupied")
	ErrDiplomaticRestriction = errors.New("diplomatic restriction")
	ErrTechnicalFailure      = errors.New("technical failure")
)

// Gold costs charged on execution.
const (
	expandGoldCost   = 10.0
	researchGoldCost = 50.0
	unitGoldCost     = 30.0
	buildingGoldCost = 25.0

	tradeRouteIncome     = 5.0
	buildingIncomeBonus  = 3.0
	treatyBreakPenalty   = 15.0
	defendGatherDistance = 5.0
)

// Execute applies one decided action to the world on behalf of a
// civilization. Failures leave the world unchanged.
func Execute(w *World, actor civ.CivId, action civ.AIAction) error {
	c, ok := w.Civ(actor)
	if !ok {
		return fmt.Errorf("civ %d: %w", actor, ErrInvalidTarget)
	}

	switch a := action.(type) {
	case civ.Expand:
		return executeExpand(w, c, a)
	case civ.Research:
		return executeResearch(c, a)
	case civ.BuildUnit:
		return executeBuildUnit(c, a)
	case civ.BuildBuilding:
		return executeBuildBuilding(c, a)
	case civ.Trade:
		return executeTrade(w, c, a)
	case civ.Attack:
		return executeAttack(w, c, a)
	case civ.Diplomacy:
		return executeDiplomacy(w, c, a)
	case civ.Defend:
		return executeDefend(c, a)
	case civ.Explore:
		return executeExplore(c, a)
	default:
		return fmt.Errorf("action %T: %w", action, ErrTechnicalFailure)
	}
}

func executeExpand(w *World, c *Civ, a civ.Expand) error {
	if c.Economy.Gold < expandGoldCost {
		return fmt.Errorf("expand needs %.0f gold: %w", expandGoldCost, ErrInsufficientResources)
	}
	for _, other := range w.Civs {
		if other.OwnsTile(a.Target) {
			return fmt.Errorf("tile (%d,%d): %w", a.Target.X, a.Target.Y, ErrTileOccupied)
		}
	}
	c.Economy.Gold -= expandGoldCost
	c.Territories = append(c.Territories, civ.Territory{Position: a.Target, ControlStrength: 1})
	return nil
}

func executeResearch(c *Civ, a civ.Research) error {
	if c.Knows(a.Technology) {
		return fmt.Errorf("technology %s already known: %w", a.Technology, ErrInvalidTarget)
	}
	if c.Economy.Gold < researchGoldCost {
		return fmt.Errorf("research needs %.0f gold: %w", researchGoldCost, ErrInsufficientResources)
	}
	c.Economy.Gold -= researchGoldCost
	c.Known[a.Technology] = true
	return nil
}

// Knows reports whether the civilization has researched the technology.
func (c *Civ) Knows(tech string) bool { return c.Known[tech] }

func executeBuildUnit(c *Civ, a civ.BuildUnit) error {
	if len(c.Cities) == 0 {
		return fmt.Errorf("no city to train in: %w", ErrInvalidTarget)
	}
	if c.Economy.Gold < unitGoldCost {
		return fmt.Errorf("unit needs %.0f gold: %w", unitGoldCost, ErrInsufficientResources)
	}
	c.Economy.Gold -= unitGoldCost
	c.addUnit(a.Unit, a.At)
	return nil
}

func executeBuildBuilding(c *Civ, a civ.BuildBuilding) error {
	city := c.cityAt(a.At)
	if city == nil {
		return fmt.Errorf("no city at (%d,%d): %w", a.At.X, a.At.Y, ErrInvalidTarget)
	}
	if c.Economy.Gold < buildingGoldCost {
		return fmt.Errorf("building needs %.0f gold: %w", buildingGoldCost, ErrInsufficientResources)
	}
	c.Economy.Gold -= buildingGoldCost
	for i := range city.Buildings {
		if city.Buildings[i].Type == a.Building {
			city.Buildings[i].Level++
			c.Economy.Income += buildingIncomeBonus
			return nil
		}
	}
	city.Buildings = append(city.Buildings, civ.Building{Type: a.Building, Level: 1})
	c.Economy.Income += buildingIncomeBonus
	return nil
}

func (c *Civ) cityAt(p civ.Position) *civ.City {
	for i := range c.Cities {
		if c.Cities[i].Position == p {
			return &c.Cities[i]
		}
	}
	return nil
}

func executeTrade(w *World, c *Civ, a civ.Trade) error {
	partner, ok := w.Civ(a.Partner)
	if !ok || !partner.HasCapital {
		return fmt.Errorf("trade partner %d: %w", a.Partner, ErrInvalidTarget)
	}
	if r, found := w.Diplomacy.Lookup(c.ID, a.Partner); found && r.AtWar() {
		return fmt.Errorf("cannot trade while at war with %d: %w", a.Partner, ErrDiplomaticRestriction)
	}
	c.Economy.TradeRoutes = append(c.Economy.TradeRoutes, civ.TradeRoute{
		From:     c.Capital,
		To:       partner.Capital,
		Value:    tradeRouteIncome,
		Security: 1,
	})
	c.Economy.Income += tradeRouteIncome
	w.Diplomacy.SetTradeAgreement(c.ID, a.Partner, true)
	return nil
}

func executeAttack(w *World, c *Civ, a civ.Attack) error {
	if len(c.Military.Units) == 0 {
		return fmt.Errorf("no units to attack with: %w", ErrInsufficientResources)
	}
	target, ok := w.Civ(a.Target)
	if !ok {
		return fmt.Errorf("attack target %d: %w", a.Target, ErrInvalidTarget)
	}
	if r, found := w.Diplomacy.Lookup(c.ID, a.Target); found && r.Allied() {
		return fmt.Errorf("cannot attack ally %d: %w", a.Target, ErrDiplomaticRestriction)
	}
	w.Diplomacy.DeclareWar(c.ID, a.Target, w.Turn, diplomacy.WarPenalty)
	resolveBattle(c, target)
	return nil
}

// resolveBattle removes the weaker side's weakest unit. A tie favors the
// defender.
func resolveBattle(attacker, defender *Civ) {
	if attacker.Military.TotalStrength > defender.Military.TotalStrength {
		defender.removeWeakestUnit()
		return
	}
	attacker.removeWeakestUnit()
}

func (c *Civ) removeWeakestUnit() {
	if len(c.Military.Units) == 0 {
		return
	}
	weakest := 0
	for i, u := range c.Military.Units {
		if u.Strength < c.Military.Units[weakest].Strength {
			weakest = i
		}
	}
	c.Military.TotalStrength -= c.Military.Units[weakest].Strength
	c.Military.Units = append(c.Military.Units[:weakest], c.Military.Units[weakest+1:]...)
	if c.Military.TotalStrength < 0 {
		c.Military.TotalStrength = 0
	}
}

func executeDiplomacy(w *World, c *Civ, a civ.Diplomacy) error {
	if _, ok := w.Civ(a.Target); !ok {
		return fmt.Errorf("diplomacy target %d: %w", a.Target, ErrInvalidTarget)
	}
	r := w.Diplomacy.Relation(c.ID, a.Target)

	switch a.Action {
	case civ.ProposeAlliance:
		if r.AtWar() {
			return fmt.Errorf("alliance with active enemy %d: %w", a.Target, ErrDiplomaticRestriction)
		}
		w.Diplomacy.AddTreaty(c.ID, a.Target, diplomacy.Alliance, diplomacy.AllianceTurns, diplomacy.AllianceGoodwill)
	case civ.ProposeNonAggression:
		if r.AtWar() {
			return fmt.Errorf("non-aggression with active enemy %d: %w", a.Target, ErrDiplomaticRestriction)
		}
		w.Diplomacy.AddTreaty(c.ID, a.Target, diplomacy.NonAggression, diplomacy.NonAggressionTurns, diplomacy.NonAggressionGoodwill)
	case civ.ProposeTradePact:
		if r.AtWar() {
			return fmt.Errorf("trade pact with active enemy %d: %w", a.Target, ErrDiplomaticRestriction)
		}
		w.Diplomacy.AddTreaty(c.ID, a.Target, diplomacy.TradePact, diplomacy.TradePactTurns, diplomacy.TradePactGoodwill)
		w.Diplomacy.SetTradeAgreement(c.ID, a.Target, true)
	case civ.DeclareWar:
		if r.Allied() {
			return fmt.Errorf("war on ally %d: %w", a.Target, ErrDiplomaticRestriction)
		}
		w.Diplomacy.DeclareWar(c.ID, a.Target, w.Turn, diplomacy.WarPenalty)
	case civ.MakePeace:
		if !r.AtWar() {
			return fmt.Errorf("not at war with %d: %w", a.Target, ErrInvalidTarget)
		}
		w.Diplomacy.MakePeace(c.ID, a.Target, diplomacy.PeaceGoodwill)
	case civ.BreakTreaty:
		if len(r.Treaties) == 0 {
			return fmt.Errorf("no treaty with %d: %w", a.Target, ErrInvalidTarget)
		}
		breakTreaties(w, c.ID, a.Target)
	default:
		return fmt.Errorf("diplomatic action %s: %w", a.Action, ErrTechnicalFailure)
	}
	return nil
}

// breakTreaties drops every friendly treaty with the target and applies the
// reputation cost.
func breakTreaties(w *World, a, b civ.CivId) {
	r := w.Diplomacy.Relation(a, b)
	kept := r.Treaties[:0]
	for _, treaty := range r.Treaties {
		if treaty.Kind == diplomacy.War {
			kept = append(kept, treaty)
		}
	}
	r.Treaties = kept
	r.TradeAgreement = false
	w.Diplomacy.ApplyDelta(a, b, -treatyBreakPenalty)
}

func executeDefend(c *Civ, a civ.Defend) error {
	if len(c.Military.Units) == 0 {
		return fmt.Errorf("no units to defend with: %w", ErrInsufficientResources)
	}
	moved := 0
	for i := range c.Military.Units {
		if c.Military.Units[i].Position.DistanceTo(a.At) <= defendGatherDistance {
			c.Military.Units[i].Position = a.At
			moved++
		}
	}
	if moved == 0 {
		return fmt.Errorf("no units within range of (%d,%d): %w", a.At.X, a.At.Y, ErrInvalidTarget)
	}
	return nil
}

func executeExplore(c *Civ, a civ.Explore) error {
	if len(c.Military.Units) == 0 {
		return fmt.Errorf("no units to scout with: %w", ErrInsufficientResources)
	}
	c.Military.Units[0].Position = a.Target
	return nil
}
