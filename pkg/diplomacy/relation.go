package diplomacy

import (
	"sort"

	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

// Relation value bounds. Every mutator clamps into this range.
const (
	MinRelation = -100.0
	MaxRelation = 100.0
)

// TreatyKind labels each treaty variant.
type TreatyKind string

const (
	NonAggression TreatyKind = "non_aggression"
	Alliance      TreatyKind = "alliance"
	TradePact     TreatyKind = "trade_pact"
	War           TreatyKind = "war"
)

// Treaty is one active agreement (or war) between a pair of civilizations.
// Timed treaties carry TurnsRemaining; War carries the turn it started and
// never expires on its own.
type Treaty struct {
	Kind           TreatyKind
	TurnsRemaining int
	StartedTurn    int
}

// Pair is the unordered key for a relation record. Normalize before using it
// as a map key so (a,b) and (b,a) address the same record.
type Pair struct {
	A civ.CivId
	B civ.CivId
}

// NormalizePair orders the two ids so each unordered pair has one canonical key.
func NormalizePair(a, b civ.CivId) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Relation is the single shared record between two civilizations. There is
// exactly one record per unordered pair; both sides read and mutate it, so
// every update goes through the Table as one operation.
type Relation struct {
	Pair           Pair
	Value          float64
	Treaties       []Treaty
	TradeAgreement bool
}

// HasTreaty reports whether a treaty of the given kind is active.
func (r *Relation) HasTreaty(kind TreatyKind) bool {
	for _, t := range r.Treaties {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

// AtWar reports whether the pair is currently at war.
func (r *Relation) AtWar() bool { return r.HasTreaty(War) }

// Allied reports whether an alliance treaty is active.
func (r *Relation) Allied() bool { return r.HasTreaty(Alliance) }

func clamp(v float64) float64 {
	if v < MinRelation {
		return MinRelation
	}
	if v > MaxRelation {
		return MaxRelation
	}
	return v
}

// Table owns every relation record. It is the only state two civilizations
// share; all mutations touch the one record for the pair.
type Table struct {
	relations map[Pair]*Relation
}

// NewTable creates an empty relation table.
func NewTable() *Table {
	return &Table{relations: make(map[Pair]*Relation)}
}

// Relation returns the record for the pair, creating a neutral one on first use.
func (t *Table) Relation(a, b civ.CivId) *Relation {
	key := NormalizePair(a, b)
	r, ok := t.relations[key]
	if !ok {
		r = &Relation{Pair: key}
		t.relations[key] = r
	}
	return r
}

// Lookup returns the record for the pair without creating one.
func (t *Table) Lookup(a, b civ.CivId) (*Relation, bool) {
	r, ok := t.relations[NormalizePair(a, b)]
	return r, ok
}

// ApplyDelta shifts the relation value by delta, clamped to [-100,100].
func (t *Table) ApplyDelta(a, b civ.CivId, delta float64) float64 {
	r := t.Relation(a, b)
	r.Value = clamp(r.Value + delta)
	return r.Value
}

// SetTradeAgreement flips the trade-agreement flag for the pair.
func (t *Table) SetTradeAgreement(a, b civ.CivId, active bool) {
	t.Relation(a, b).TradeAgreement = active
}

// AddTreaty records a timed treaty and applies its goodwill bump in the same
// update. Duplicate kinds refresh the duration instead of stacking.
func (t *Table) AddTreaty(a, b civ.CivId, kind TreatyKind, turns int, goodwill float64) {
	r := t.Relation(a, b)
	for i := range r.Treaties {
		if r.Treaties[i].Kind == kind {
			r.Treaties[i].TurnsRemaining = turns
			r.Value = clamp(r.Value + goodwill)
			return
		}
	}
	r.Treaties = append(r.Treaties, Treaty{Kind: kind, TurnsRemaining: turns})
	r.Value = clamp(r.Value + goodwill)
}

// DeclareWar replaces any friendly treaties with a war record and applies the
// relation penalty as part of the same update.
func (t *Table) DeclareWar(a, b civ.CivId, currentTurn int, penalty float64) {
	r := t.Relation(a, b)
	if r.AtWar() {
		return
	}
	kept := r.Treaties[:0]
	for _, treaty := range r.Treaties {
		if treaty.Kind == War {
			kept = append(kept, treaty)
		}
	}
	r.Treaties = append(kept, Treaty{Kind: War, StartedTurn: currentTurn})
	r.TradeAgreement = false
	r.Value = clamp(r.Value - penalty)
}

// MakePeace removes any war record and applies the goodwill bump.
func (t *Table) MakePeace(a, b civ.CivId, goodwill float64) {
	r := t.Relation(a, b)
	kept := r.Treaties[:0]
	for _, treaty := range r.Treaties {
		if treaty.Kind != War {
			kept = append(kept, treaty)
		}
	}
	r.Treaties = kept
	r.Value = clamp(r.Value + goodwill)
}

// RemoveCiv deletes every relation involving the given civilization. Called
// when a civilization is eliminated.
func (t *Table) RemoveCiv(id civ.CivId) {
	for key := range t.relations {
		if key.A == id || key.B == id {
			delete(t.relations, key)
		}
	}
}

// ViewsFor projects every relation involving the given civilization into the
// read-only form embedded in snapshots, ordered by the other civ's id.
func (t *Table) ViewsFor(id civ.CivId) []civ.RelationView {
	var views []civ.RelationView
	for key, r := range t.relations {
		var other civ.CivId
		switch id {
		case key.A:
			other = key.B
		case key.B:
			other = key.A
		default:
			continue
		}
		views = append(views, civ.RelationView{
			Other:     other,
			Value:     r.Value,
			Allied:    r.Allied(),
			AtWar:     r.AtWar(),
			TradePact: r.HasTreaty(TradePact) || r.TradeAgreement,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Other < views[j].Other })
	return views
}

// Len returns the number of relation records.
func (t *Table) Len() int { return len(t.relations) }
