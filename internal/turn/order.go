// Package turn tracks whose turn it is and the phase the game loop is in.
package turn

import "github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"

// NoCiv is returned by rotation lookups when no civilizations remain.
const NoCiv civ.CivId = -1

// Order is the fixed rotation of civilizations within a global turn.
type Order struct {
	roster  []civ.CivId
	index   int
	players map[civ.CivId]bool
}

// NewOrder builds a rotation over roster. Civilizations in players are
// human-controlled; everyone else is AI.
func NewOrder(roster []civ.CivId, players []civ.CivId) *Order {
	set := make(map[civ.CivId]bool, len(players))
	for _, id := range players {
		set[id] = true
	}
	return &Order{roster: append([]civ.CivId(nil), roster...), players: set}
}

// Len returns the number of civilizations in the rotation.
func (o *Order) Len() int { return len(o.roster) }

// CurrentCiv returns the civilization whose turn it is, or NoCiv when every
// civilization has been removed from the rotation.
func (o *Order) CurrentCiv() civ.CivId {
	if len(o.roster) == 0 {
		return NoCiv
	}
	return o.roster[o.index]
}

// PeekNext returns the civilization after the current one without advancing,
// or NoCiv when the rotation is empty.
func (o *Order) PeekNext() civ.CivId {
	if len(o.roster) == 0 {
		return NoCiv
	}
	return o.roster[(o.index+1)%len(o.roster)]
}

// Advance moves to the next civilization. It returns true exactly when the
// rotation wraps back to the first civilization, which marks the end of a
// global turn. An empty rotation wraps immediately.
func (o *Order) Advance() bool {
	if len(o.roster) == 0 {
		return true
	}
	o.index = (o.index + 1) % len(o.roster)
	return o.index == 0
}

// IsPlayerCiv reports whether a civilization is human-controlled.
func (o *Order) IsPlayerCiv(id civ.CivId) bool {
	return o.players[id]
}

// Remove drops an eliminated civilization from the rotation. The current
// position is preserved relative to the surviving civilizations.
func (o *Order) Remove(id civ.CivId) {
	for i, c := range o.roster {
		if c != id {
			continue
		}
		o.roster = append(o.roster[:i], o.roster[i+1:]...)
		if i < o.index || o.index >= len(o.roster) {
			o.index--
		}
		if o.index < 0 {
			o.index = 0
		}
		delete(o.players, id)
		return
	}
}
