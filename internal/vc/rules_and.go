package vc

import "github.com/araxis-games/hexvc/internal/bitset"

// andClosure runs the AND rule outward from a
// newly-processed Full vc: for each endpoint pi of vc (both, unless pi
// is an edge sentinel and and_over_edge is disabled), walk every
// neighbor z of pi already connected to pi by an existing Full, and try
// to chain vc with that Full through pi to connect vc's other endpoint
// to z.
func (bd *Builder) andClosure(set *VCSet, log *ChangeLog, vc Connection) {
	endpoints := [2]int{vc.End1, vc.End2}
	for i, pi := range endpoints {
		if bd.board.IsEdge(pi) && !bd.params.AndOverEdge {
			continue
		}
		other := endpoints[1-i]
		nbsPi := bd.nbs[pi]
		nbsPi.IterSet(func(z int) bool {
			if z == vc.End1 || z == vc.End2 {
				return true
			}
			if vc.Carrier.Test(z) {
				return true
			}
			zList, ok := set.TryList(Full, z, pi)
			if !ok {
				return true
			}
			capSet := bd.cap[vc.End1].Or(bd.cap[vc.End2]).Or(bd.cap[z])
			unCapSet := capSet.Not()
			restricted := zList.SoftIntersection().And(vc.Carrier.And(unCapSet))
			if restricted.Any() {
				return true
			}
			for _, a := range zList.SoftPrefix() {
				if !a.Processed {
					continue
				}
				if a.Carrier.Test(other) {
					continue
				}
				bd.tryAndCombine(set, log, other, z, pi, vc, a, capSet)
			}
			return true
		})
	}
}

// tryAndCombine attempts to emit a new connection between other and z,
// chaining vc (other<->pi) with a (z<->pi) through the shared
// intermediate pi. If pi is empty, the natural result is a Semi keyed
// on pi: pi is the one cell whose capture by the opponent breaks the
// chain, and z — being an endpoint of the new connection — can never be
// a valid key. If pi is own-colored, the natural result is a Full.
func (bd *Builder) tryAndCombine(set *VCSet, log *ChangeLog, other, z, pi int, vc, a Connection, capSet bitset.Bitset) {
	intersection := a.Carrier.And(vc.Carrier)
	carrierBase := vc.Carrier.Or(a.Carrier)

	if bd.pos.Color(pi) == bd.color {
		bd.stats.AndFullAttempts++
		switch {
		case intersection.None():
			if bd.insertFull(set, log, other, z, carrierBase, RuleAnd) != Failed {
				bd.stats.AndFullSuccesses++
			}
		case intersection.IsSubsetOf(capSet):
			if bd.insertFull(set, log, other, z, carrierBase.Or(capSet), RuleAnd) != Failed {
				bd.stats.AndFullSuccesses++
			}
		default:
			if reduced := intersection.AndNot(capSet); reduced.Count() == 1 {
				key := reduced.FirstSet()
				if bd.insertSemi(set, log, other, z, key, carrierBase.Or(capSet), RuleAnd) != Failed {
					bd.stats.AndFullSuccesses++
				}
			}
		}
		return
	}

	bd.stats.AndSemiAttempts++
	carrierWithKey := carrierBase.Or(bitset.Of(pi))
	switch {
	case intersection.None():
		if bd.insertSemi(set, log, other, z, pi, carrierWithKey, RuleAnd) != Failed {
			bd.stats.AndSemiSuccesses++
		}
	case intersection.IsSubsetOf(capSet):
		if bd.insertSemi(set, log, other, z, pi, carrierWithKey.Or(capSet), RuleAnd) != Failed {
			bd.stats.AndSemiSuccesses++
		}
	default:
		// The singleton-intersection fallback only applies when the
		// natural output would be a Full; pi already empty means the
		// natural output here is a Semi, so there is no fallback.
	}
}
