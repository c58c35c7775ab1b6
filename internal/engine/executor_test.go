package engine

import (
	"errors"
	"testing"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/diplomacy"
)

func testWorld() *World {
	w := NewWorld()
	w.AddCiv(1, "Aurelia", false, civ.DefaultPersonality(), civ.Position{X: 10, Y: 10})
	w.AddCiv(2, "Borealis", false, civ.DefaultPersonality(), civ.Position{X: 40, Y: 40})
	return w
}

func TestExecuteExpand(t *testing.T) {
	w := testWorld()
	c := w.Civs[1]
	target := civ.Position{X: 11, Y: 10}

	if err := Execute(w, 1, civ.Expand{Target: target, Priority: 0.5}); err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if !c.OwnsTile(target) {
		t.Error("expanded tile not owned")
	}
	if c.Economy.Gold != 100-expandGoldCost {
		t.Errorf("gold = %v, want %v", c.Economy.Gold, 100-expandGoldCost)
	}
}

func TestExecuteExpandOccupied(t *testing.T) {
	w := testWorld()
	err := Execute(w, 1, civ.Expand{Target: civ.Position{X: 40, Y: 40}, Priority: 0.5})
	if !errors.Is(err, ErrTileOccupied) {
		t.Errorf("err = %v, want ErrTileOccupied", err)
	}
}

func TestExecuteExpandBroke(t *testing.T) {
	w := testWorld()
	w.Civs[1].Economy.Gold = 5
	err := Execute(w, 1, civ.Expand{Target: civ.Position{X: 11, Y: 10}, Priority: 0.5})
	if !errors.Is(err, ErrInsufficientResources) {
		t.Errorf("err = %v, want ErrInsufficientResources", err)
	}
}

func TestExecuteResearch(t *testing.T) {
	w := testWorld()
	c := w.Civs[1]

	if err := Execute(w, 1, civ.Research{Technology: "Writing", Priority: 0.5}); err != nil {
		t.Fatalf("research failed: %v", err)
	}
	if !c.Knows("Writing") {
		t.Error("technology not learned")
	}
	if c.Economy.Gold != 100-researchGoldCost {
		t.Errorf("gold = %v, want %v", c.Economy.Gold, 100-researchGoldCost)
	}

	err := Execute(w, 1, civ.Research{Technology: "Writing", Priority: 0.5})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("re-research err = %v, want ErrInvalidTarget", err)
	}
}

func TestExecuteBuildUnit(t *testing.T) {
	w := testWorld()
	c := w.Civs[1]

	if err := Execute(w, 1, civ.BuildUnit{Unit: civ.Infantry, At: c.Capital, Priority: 0.5}); err != nil {
		t.Fatalf("build unit failed: %v", err)
	}
	if len(c.Military.Units) != 1 {
		t.Fatalf("units = %d, want 1", len(c.Military.Units))
	}
	if c.Military.TotalStrength != unitStrength(civ.Infantry) {
		t.Errorf("strength = %v, want %v", c.Military.TotalStrength, unitStrength(civ.Infantry))
	}
}

func TestExecuteBuildBuilding(t *testing.T) {
	w := testWorld()
	c := w.Civs[1]
	income := c.Economy.Income

	if err := Execute(w, 1, civ.BuildBuilding{Building: civ.Market, At: c.Capital, Priority: 0.5}); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(c.Cities[0].Buildings) != 1 || c.Cities[0].Buildings[0].Level != 1 {
		t.Fatalf("buildings = %+v, want one level-1 market", c.Cities[0].Buildings)
	}
	if c.Economy.Income != income+buildingIncomeBonus {
		t.Errorf("income = %v, want %v", c.Economy.Income, income+buildingIncomeBonus)
	}

	c.Economy.Gold = 100
	if err := Execute(w, 1, civ.BuildBuilding{Building: civ.Market, At: c.Capital, Priority: 0.5}); err != nil {
		t.Fatalf("upgrade failed: %v", err)
	}
	if c.Cities[0].Buildings[0].Level != 2 {
		t.Errorf("level = %d, want 2 after rebuilding", c.Cities[0].Buildings[0].Level)
	}

	err := Execute(w, 1, civ.BuildBuilding{Building: civ.Market, At: civ.Position{X: 99, Y: 99}, Priority: 0.5})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("err = %v, want ErrInvalidTarget for no city", err)
	}
}

func TestExecuteTrade(t *testing.T) {
	w := testWorld()
	c := w.Civs[1]
	income := c.Economy.Income

	if err := Execute(w, 1, civ.Trade{Partner: 2, Resource: civ.Gold, Priority: 0.5}); err != nil {
		t.Fatalf("trade failed: %v", err)
	}
	if len(c.Economy.TradeRoutes) != 1 {
		t.Fatal("no trade route created")
	}
	if c.Economy.Income != income+tradeRouteIncome {
		t.Errorf("income = %v, want %v", c.Economy.Income, income+tradeRouteIncome)
	}
	r, _ := w.Diplomacy.Lookup(1, 2)
	if !r.TradeAgreement {
		t.Error("trade agreement not recorded")
	}
}

func TestExecuteTradeAtWar(t *testing.T) {
	w := testWorld()
	w.Diplomacy.DeclareWar(1, 2, 1, diplomacy.WarPenalty)

	err := Execute(w, 1, civ.Trade{Partner: 2, Resource: civ.Gold, Priority: 0.5})
	if !errors.Is(err, ErrDiplomaticRestriction) {
		t.Errorf("err = %v, want ErrDiplomaticRestriction", err)
	}
}

func TestExecuteAttack(t *testing.T) {
	w := testWorld()
	attacker := w.Civs[1]
	defender := w.Civs[2]
	attacker.addUnit(civ.Infantry, attacker.Capital)
	attacker.addUnit(civ.Infantry, attacker.Capital)
	defender.addUnit(civ.Archer, defender.Capital)

	if err := Execute(w, 1, civ.Attack{Target: 2, At: defender.Capital, Priority: 0.5}); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	r, _ := w.Diplomacy.Lookup(1, 2)
	if !r.AtWar() {
		t.Error("attack should put the pair at war")
	}
	if len(defender.Military.Units) != 0 {
		t.Error("weaker defender should lose its unit")
	}
}

func TestExecuteAttackNeedsUnits(t *testing.T) {
	w := testWorld()
	err := Execute(w, 1, civ.Attack{Target: 2, At: civ.Position{X: 40, Y: 40}, Priority: 0.5})
	if !errors.Is(err, ErrInsufficientResources) {
		t.Errorf("err = %v, want ErrInsufficientResources", err)
	}
}

func TestExecuteAttackAllyRestricted(t *testing.T) {
	w := testWorld()
	w.Civs[1].addUnit(civ.Infantry, w.Civs[1].Capital)
	w.Diplomacy.AddTreaty(1, 2, diplomacy.Alliance, diplomacy.AllianceTurns, 0)

	err := Execute(w, 1, civ.Attack{Target: 2, At: civ.Position{X: 40, Y: 40}, Priority: 0.5})
	if !errors.Is(err, ErrDiplomaticRestriction) {
		t.Errorf("err = %v, want ErrDiplomaticRestriction", err)
	}
}

func TestExecuteDiplomacyAlliance(t *testing.T) {
	w := testWorld()
	if err := Execute(w, 1, civ.Diplomacy{Target: 2, Action: civ.ProposeAlliance, Priority: 0.5}); err != nil {
		t.Fatalf("alliance failed: %v", err)
	}
	r, _ := w.Diplomacy.Lookup(1, 2)
	if !r.Allied() {
		t.Error("alliance not recorded")
	}
	if r.Value != diplomacy.AllianceGoodwill {
		t.Errorf("value = %v, want %v", r.Value, diplomacy.AllianceGoodwill)
	}
}

func TestExecuteDiplomacyWarAndPeace(t *testing.T) {
	w := testWorld()

	err := Execute(w, 1, civ.Diplomacy{Target: 2, Action: civ.MakePeace, Priority: 0.5})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("peace without war err = %v, want ErrInvalidTarget", err)
	}

	if err := Execute(w, 1, civ.Diplomacy{Target: 2, Action: civ.DeclareWar, Priority: 0.5}); err != nil {
		t.Fatalf("declare war failed: %v", err)
	}
	if err := Execute(w, 1, civ.Diplomacy{Target: 2, Action: civ.MakePeace, Priority: 0.5}); err != nil {
		t.Fatalf("make peace failed: %v", err)
	}
	r, _ := w.Diplomacy.Lookup(1, 2)
	if r.AtWar() {
		t.Error("still at war after peace")
	}
}

func TestExecuteDiplomacyUnknownTarget(t *testing.T) {
	w := testWorld()
	err := Execute(w, 1, civ.Diplomacy{Target: 99, Action: civ.ProposeAlliance, Priority: 0.5})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("err = %v, want ErrInvalidTarget", err)
	}
}

func TestExecuteDefend(t *testing.T) {
	w := testWorld()
	c := w.Civs[1]
	c.addUnit(civ.Infantry, civ.Position{X: 12, Y: 10})
	c.addUnit(civ.Archer, civ.Position{X: 30, Y: 30}) // out of gather range

	if err := Execute(w, 1, civ.Defend{At: c.Capital, Priority: 0.5}); err != nil {
		t.Fatalf("defend failed: %v", err)
	}
	if c.Military.Units[0].Position != c.Capital {
		t.Error("nearby unit did not reposition")
	}
	if c.Military.Units[1].Position == c.Capital {
		t.Error("distant unit should stay put")
	}
}

func TestExecuteExploreNeedsUnits(t *testing.T) {
	w := testWorld()
	err := Execute(w, 1, civ.Explore{Target: civ.Position{X: 20, Y: 20}, Priority: 0.5})
	if !errors.Is(err, ErrInsufficientResources) {
		t.Errorf("err = %v, want ErrInsufficientResources", err)
	}
}

func TestExecuteUnknownCiv(t *testing.T) {
	w := testWorld()
	err := Execute(w, 99, civ.Explore{Target: civ.Position{X: 20, Y: 20}, Priority: 0.5})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("err = %v, want ErrInvalidTarget", err)
	}
}
