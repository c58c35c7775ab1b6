package engine

import (
	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// BuildWorldView assembles the read-only view handed to the decision layer:
// one deep-copied snapshot per living civilization, with each relation view
// enriched with what the owner can observe about the other side.
func BuildWorldView(w *World) *civ.WorldView {
	view := &civ.WorldView{
		Turn: w.Turn,
		Civs: make(map[civ.CivId]*civ.Snapshot, len(w.Civs)),
	}
	for id, c := range w.Civs {
		view.Civs[id] = buildSnapshot(w, c)
	}
	return view
}

func buildSnapshot(w *World, c *Civ) *civ.Snapshot {
	snap := &civ.Snapshot{
		ID:          c.ID,
		Name:        c.Name,
		Player:      c.Player,
		Turn:        w.Turn,
		Personality: c.Personality,
		HasCapital:  c.HasCapital,
		Capital:     c.Capital,
		Known:       make(map[string]bool, len(c.Known)),
		Cities:      append([]civ.City(nil), c.Cities...),
		Territories: append([]civ.Territory(nil), c.Territories...),
	}
	for tech := range c.Known {
		snap.Known[tech] = true
	}
	for i := range snap.Cities {
		snap.Cities[i].Buildings = append([]civ.Building(nil), snap.Cities[i].Buildings...)
	}

	snap.Economy = c.Economy
	snap.Economy.TradeRoutes = append([]civ.TradeRoute(nil), c.Economy.TradeRoutes...)
	snap.Military = c.Military
	snap.Military.Units = append([]civ.MilitaryUnit(nil), c.Military.Units...)

	snap.Relations = w.Diplomacy.ViewsFor(c.ID)
	for i := range snap.Relations {
		other, ok := w.Civs[snap.Relations[i].Other]
		if !ok {
			continue
		}
		snap.Relations[i].OtherStrength = other.Military.TotalStrength
		snap.Relations[i].OtherHasCapital = other.HasCapital
		snap.Relations[i].OtherCapital = other.Capital
	}
	return snap
}
