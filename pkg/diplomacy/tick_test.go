package diplomacy

import (
	"testing"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

func TestTickExpiresTimedTreaties(t *testing.T) {
	table := NewTable()
	table.AddTreaty(1, 2, NonAggression, 2, 0)

	table.Tick(nil)
	r, _ := table.Lookup(1, 2)
	if !r.HasTreaty(NonAggression) {
		t.Fatal("treaty should survive first tick")
	}

	table.Tick(nil)
	r, _ = table.Lookup(1, 2)
	if r.HasTreaty(NonAggression) {
		t.Error("treaty should expire after its duration")
	}
}

func TestTickWarsPersist(t *testing.T) {
	table := NewTable()
	table.DeclareWar(1, 2, 1, WarPenalty)
	for i := 0; i < 200; i++ {
		table.Tick(nil)
	}
	r, _ := table.Lookup(1, 2)
	if !r.AtWar() {
		t.Error("wars never expire on their own")
	}
}

func TestTickDecaysTowardZero(t *testing.T) {
	table := NewTable()
	table.ApplyDelta(1, 2, 1.2)
	table.ApplyDelta(3, 4, -1.2)

	table.Tick(nil)
	table.Tick(nil)
	table.Tick(nil)

	pos, _ := table.Lookup(1, 2)
	neg, _ := table.Lookup(3, 4)
	if pos.Value != 0 {
		t.Errorf("positive relation = %v, want decayed to 0 without overshoot", pos.Value)
	}
	if neg.Value != 0 {
		t.Errorf("negative relation = %v, want decayed to 0 without overshoot", neg.Value)
	}
}

func TestTickCompatibilityDrift(t *testing.T) {
	table := NewTable()
	table.Relation(1, 2)

	scholars := civ.Personality{TechFocus: 0.9, HonorTreaties: 0.9}
	personalities := map[civ.CivId]civ.Personality{1: scholars, 2: scholars}

	table.Tick(personalities)
	r, _ := table.Lookup(1, 2)
	if r.Value <= 0 {
		t.Errorf("compatible pair drifted to %v, want positive", r.Value)
	}
}

func TestCompatibilityBounds(t *testing.T) {
	tests := []struct {
		name string
		a, b civ.Personality
	}{
		{"identical maxed", civ.Personality{TechFocus: 1, HonorTreaties: 1}, civ.Personality{TechFocus: 1, HonorTreaties: 1}},
		{"opposed", civ.Personality{TechFocus: 1, Interventionism: 1, Militarism: 1}, civ.Personality{}},
		{"neutral", civ.DefaultPersonality(), civ.DefaultPersonality()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compatibility(tt.a, tt.b)
			if c < -1 || c > 1 {
				t.Errorf("Compatibility = %v, want within [-1,1]", c)
			}
		})
	}
}
