// Package ai implements the per-civilization decision layer: three planning
// strategies (utility scoring, GOAP, HTN) and the coordinator that merges
// their proposals into ranked decision lists under per-civilization cooldowns.
package ai

import (
	"sort"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// Strategy proposes candidate actions for one civilization. Implementations
// are pure functions of the snapshot: they never touch live world state, and
// an empty result means "no good move found", which is a normal outcome
// rather than an error.
type Strategy interface {
	Name() string
	Propose(snap *civ.Snapshot) []civ.AIAction
}

// sortByPriority orders actions highest-priority first, preserving proposal
// order among equals so output is deterministic.
func sortByPriority(actions []civ.AIAction) {
	sort.SliceStable(actions, func(i, j int) bool {
		return civ.ActionPriority(actions[i]) > civ.ActionPriority(actions[j])
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// availableTechs is the fixed early-game research ladder, in order.
var availableTechs = []string{
	"Agriculture",
	"Bronze Working",
	"Writing",
	"Mathematics",
	"Iron Working",
}

// nextUnknownTech returns the first unresearched technology, if any remain.
func nextUnknownTech(snap *civ.Snapshot) (string, bool) {
	for _, tech := range availableTechs {
		if !snap.Knows(tech) {
			return tech, true
		}
	}
	return "", false
}

// bestTradePartner picks the non-hostile rival with the highest relation
// value whose capital is within trading range.
func bestTradePartner(snap *civ.Snapshot) (civ.CivId, bool) {
	best := civ.CivId(-1)
	bestValue := diplomacySearchSeed
	for _, r := range snap.Relations {
		if r.AtWar {
			continue
		}
		if snap.HasCapital && r.OtherHasCapital &&
			snap.Capital.DistanceTo(r.OtherCapital) > maxTradeDistance {
			continue
		}
		if r.Value > bestValue {
			bestValue = r.Value
			best = r.Other
		}
	}
	return best, best >= 0
}
