package ai

import (
	"testing"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// stubStrategy proposes a fixed action list, for coordinator tests.
type stubStrategy struct {
	name    string
	actions []civ.AIAction
}

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Propose(*civ.Snapshot) []civ.AIAction {
	return append([]civ.AIAction(nil), s.actions...)
}

func testWorldView(snaps ...*civ.Snapshot) *civ.WorldView {
	view := &civ.WorldView{Turn: 1, Civs: make(map[civ.CivId]*civ.Snapshot)}
	for _, s := range snaps {
		view.Civs[s.ID] = s
	}
	return view
}

func TestGenerateTurnDecisionsEmptyWorld(t *testing.T) {
	c := NewCoordinator()
	decisions := c.GenerateTurnDecisions(testWorldView())
	if len(decisions) != 0 {
		t.Errorf("empty world produced %d decision lists", len(decisions))
	}
}

func TestGenerateTurnDecisionsSkipsPlayers(t *testing.T) {
	c := NewCoordinator()
	player := testSnapshot()
	player.Player = true
	player.Personality = civ.Personality{LandHunger: 1.0}

	decisions := c.GenerateTurnDecisions(testWorldView(player))
	if _, ok := decisions[player.ID]; ok {
		t.Error("player civ received AI decisions")
	}
}

func TestGenerateTurnDecisionsSkipsInconsistentSnapshots(t *testing.T) {
	c := NewCoordinator()
	snap := testSnapshot()
	view := testWorldView(snap)
	view.Civs[9] = nil
	mismatched := testSnapshot()
	mismatched.ID = 1
	view.Civs[7] = mismatched

	// Must not panic; the healthy civ still gets decisions considered.
	decisions := c.GenerateTurnDecisions(view)
	if _, ok := decisions[9]; ok {
		t.Error("nil snapshot produced decisions")
	}
	if _, ok := decisions[7]; ok {
		t.Error("mismatched snapshot produced decisions")
	}
}

func TestCooldownSuppressesDecisions(t *testing.T) {
	c := NewCoordinator()
	snap := testSnapshot()
	snap.Personality = civ.Personality{
		LandHunger:       0.9,
		TechFocus:        0.9,
		IndustryFocus:    0.9,
		Militarism:       0.9,
		ExplorationDrive: 0.9,
	}
	snap.Economy.Gold = 500
	view := testWorldView(snap)

	first := c.GenerateTurnDecisions(view)
	if len(first[snap.ID]) <= maxActionsShortCooldown {
		t.Fatalf("busy civ made %d decisions, expected enough to earn the long cooldown", len(first[snap.ID]))
	}
	if c.Cooldown(snap.ID) != longCooldownTurns {
		t.Fatalf("cooldown = %d, want %d", c.Cooldown(snap.ID), longCooldownTurns)
	}

	second := c.GenerateTurnDecisions(view)
	if _, ok := second[snap.ID]; ok {
		t.Error("civ on cooldown still received decisions")
	}

	for i := 0; i < longCooldownTurns; i++ {
		c.TickCooldowns()
	}
	third := c.GenerateTurnDecisions(view)
	if _, ok := third[snap.ID]; !ok {
		t.Error("cooldown expired but civ got no decisions")
	}
}

func TestQuietCivGetsNoCooldown(t *testing.T) {
	tests := []struct {
		decisions int
		want      int
	}{
		{0, 0},
		{1, 0},
		{2, shortCooldownTurns},
		{3, shortCooldownTurns},
		{4, longCooldownTurns},
		{8, longCooldownTurns},
	}
	for _, tt := range tests {
		if got := cooldownFor(tt.decisions); got != tt.want {
			t.Errorf("cooldownFor(%d) = %d, want %d", tt.decisions, got, tt.want)
		}
	}
}

func TestDedupeKeepsHighestPriority(t *testing.T) {
	target := civ.Position{X: 51, Y: 50}
	actions := []civ.AIAction{
		civ.Expand{Target: target, Priority: 0.4},
		civ.Research{Technology: "Writing", Priority: 0.5},
		civ.Expand{Target: target, Priority: 0.9},
	}

	out := dedupeActions(actions)
	if len(out) != 2 {
		t.Fatalf("got %d actions, want 2", len(out))
	}
	e, ok := out[0].(civ.Expand)
	if !ok {
		t.Fatalf("first-seen key order not preserved, got %T first", out[0])
	}
	if e.Priority != 0.9 {
		t.Errorf("kept priority %v, want the higher 0.9", e.Priority)
	}
}

func TestDecideCapsDecisions(t *testing.T) {
	var flood []civ.AIAction
	for i := 0; i < maxDecisionsPerTurn*2; i++ {
		flood = append(flood, civ.Expand{
			Target:   civ.Position{X: i, Y: 0},
			Priority: float64(i) / 20,
		})
	}
	c := &Coordinator{
		strategies: []Strategy{stubStrategy{name: "flood", actions: flood}},
		cooldowns:  make(map[civ.CivId]int),
	}

	got := c.decide(testSnapshot())
	if len(got) != maxDecisionsPerTurn {
		t.Fatalf("got %d decisions, want cap of %d", len(got), maxDecisionsPerTurn)
	}
	// Highest priorities survive the cut.
	if civ.ActionPriority(got[0]) < civ.ActionPriority(got[len(got)-1]) {
		t.Error("decisions not sorted best first")
	}
}

func TestGenerateTurnDecisionsDeterministic(t *testing.T) {
	build := func() *civ.WorldView {
		a := testSnapshot()
		a.ID = 1
		b := testSnapshot()
		b.ID = 2
		b.Personality = civ.Personality{TechFocus: 0.9}
		b.Economy.Gold = 300
		return testWorldView(a, b)
	}

	first := NewCoordinator().GenerateTurnDecisions(build())
	second := NewCoordinator().GenerateTurnDecisions(build())

	if len(first) != len(second) {
		t.Fatalf("decision map sizes differ: %d vs %d", len(first), len(second))
	}
	for id, actions := range first {
		other := second[id]
		if len(actions) != len(other) {
			t.Fatalf("civ %d: %d vs %d actions", id, len(actions), len(other))
		}
		for i := range actions {
			if civ.DedupeKey(actions[i]) != civ.DedupeKey(other[i]) {
				t.Errorf("civ %d action %d differs: %s vs %s",
					id, i, civ.DedupeKey(actions[i]), civ.DedupeKey(other[i]))
			}
		}
	}
}
