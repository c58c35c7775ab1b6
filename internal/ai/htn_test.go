package ai

import (
	"testing"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

func TestTaskEnvPredicates(t *testing.T) {
	snap := testSnapshot()
	snap.Relations = []civ.RelationView{
		{Other: 2, Value: -30},
		{Other: 3, Value: 50, Allied: true},
	}
	env := taskEnv{snap: snap}

	if !env.HasEnemies() {
		t.Error("relation below hostile cut should count as an enemy")
	}
	if !env.HasAllies() {
		t.Error("allied relation should count")
	}
	if env.CityCount() != 1 {
		t.Errorf("CityCount = %d, want 1", env.CityCount())
	}
	if env.Gold() != snap.Economy.Gold {
		t.Errorf("Gold = %v, want %v", env.Gold(), snap.Economy.Gold)
	}
}

func TestDecomposeConquestNeedsStrength(t *testing.T) {
	s := NewHTNStrategy()

	weak := testSnapshot()
	weak.Economy.Gold = 200
	weak.Military.TotalStrength = 10
	primitives := s.decompose(taskConquest, taskEnv{snap: weak}, 0)
	for _, p := range primitives {
		if p == primitiveDeclareWar {
			t.Error("weak civ should fall through to preparation, not war")
		}
	}

	strong := testSnapshot()
	strong.Economy.Gold = 200
	strong.Military.TotalStrength = 80
	primitives = s.decompose(taskConquest, taskEnv{snap: strong}, 0)
	found := false
	for _, p := range primitives {
		if p == primitiveDeclareWar {
			found = true
		}
	}
	if !found {
		t.Error("strong rich civ should decompose to aggressive conquest")
	}
}

func TestDecomposeExpandsCompoundSubtasks(t *testing.T) {
	s := NewHTNStrategy()
	snap := testSnapshot()
	snap.Economy.Gold = 50 // below aggressive conquest gate
	snap.Military.TotalStrength = 10

	primitives := s.decompose(taskConquest, taskEnv{snap: snap}, 0)
	trade := false
	for _, p := range primitives {
		if p == primitiveEstablishTrade {
			trade = true
		}
		if p == taskEconomicDevelopment {
			t.Error("compound subtask leaked through decomposition")
		}
	}
	if !trade {
		t.Error("preparation phase should expand economic development into trade")
	}
}

func TestDiplomaticTaskGatedByTurn(t *testing.T) {
	s := NewHTNStrategy()
	snap := testSnapshot()
	snap.Turn = 5

	if got := s.decompose(taskDiplomatic, taskEnv{snap: snap}, 0); len(got) != 0 {
		t.Errorf("turn 5 decomposed to %v, alliance building opens after turn 10", got)
	}

	snap.Turn = 11
	if got := s.decompose(taskDiplomatic, taskEnv{snap: snap}, 0); len(got) == 0 {
		t.Error("turn 11 should decompose the diplomatic task")
	}
}

func TestBestAllianceCandidate(t *testing.T) {
	snap := testSnapshot()
	snap.Relations = []civ.RelationView{
		{Other: 2, Value: 10},               // below threshold
		{Other: 3, Value: 40},               // best candidate
		{Other: 4, Value: 60, Allied: true}, // already allied
		{Other: 5, Value: 70, AtWar: true},  // enemy
	}

	got, ok := bestAllianceCandidate(snap)
	if !ok || got != 3 {
		t.Errorf("candidate = %d (ok=%v), want 3", got, ok)
	}

	snap.Relations = snap.Relations[:1]
	if _, ok := bestAllianceCandidate(snap); ok {
		t.Error("no candidate should clear the threshold")
	}
}

func TestWeakestRival(t *testing.T) {
	snap := testSnapshot()
	snap.Military.TotalStrength = 100
	snap.Relations = []civ.RelationView{
		{Other: 2, OtherStrength: 90, OtherHasCapital: true}, // too strong
		{Other: 3, OtherStrength: 40, OtherHasCapital: true},
		{Other: 4, OtherStrength: 20, OtherHasCapital: true}, // weakest
		{Other: 5, OtherStrength: 5, OtherHasCapital: false}, // unlocated
		{Other: 6, OtherStrength: 10, OtherHasCapital: true, Allied: true},
	}

	got, ok := weakestRival(snap)
	if !ok || got != 4 {
		t.Errorf("rival = %d (ok=%v), want 4", got, ok)
	}
}

func TestHTNProposeWarTargetsWeakEnemy(t *testing.T) {
	s := NewHTNStrategy()
	snap := testSnapshot()
	snap.Personality = civ.Personality{LandHunger: 0.8, Militarism: 0.8}
	snap.Economy.Gold = 200
	snap.Military.TotalStrength = 80
	snap.Military.Units = []civ.MilitaryUnit{{ID: 1, Type: civ.Infantry, Strength: 80}}
	snap.Relations = []civ.RelationView{
		{Other: 2, Value: -30, OtherStrength: 20, OtherHasCapital: true, OtherCapital: civ.Position{X: 60, Y: 50}},
	}

	var war *civ.Diplomacy
	for _, a := range s.Propose(snap) {
		if d, ok := a.(civ.Diplomacy); ok && d.Action == civ.DeclareWar {
			war = &d
			break
		}
	}
	if war == nil {
		t.Fatal("conqueror with weak enemy should declare war")
	}
	if war.Target != 2 {
		t.Errorf("war target = %d, want 2", war.Target)
	}
}

func TestHTNProposeNothingForIsolationist(t *testing.T) {
	s := NewHTNStrategy()
	snap := testSnapshot()
	snap.Personality = civ.Personality{Isolationism: 1.0}

	if actions := s.Propose(snap); len(actions) != 0 {
		t.Errorf("isolationist proposed %d actions, want none", len(actions))
	}
}
