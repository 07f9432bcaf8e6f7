package vc

import "github.com/araxis-games/hexvc/internal/bitset"

// processSemis runs the OR rule on the Semi list for (x, y): if the
// list's hard intersection (outside cap[x] ∪ cap[y]) is non-empty there
// is nothing to union, so it returns immediately.
// Otherwise it tries the OR rule's subset search and, failing that,
// synthesizes a single Full from the whole list via Union or
// GreedyUnion (tagged RuleAll).
func (bd *Builder) processSemis(set *VCSet, log *ChangeLog, x, y int) {
	list, ok := set.TryList(Semi, x, y)
	if !ok || list.Len() == 0 {
		return
	}
	// Mark the prefix before anything else: a semi is processed once the
	// builder has looked at it for OR-combination, whether or not the
	// list's intersection was empty enough to combine anything this time.
	prefix := list.SoftPrefix()
	for i := range prefix {
		list.MarkProcessed(log, i)
	}

	capXY := bd.cap[x].Or(bd.cap[y])
	if list.HardIntersection().AndNot(capXY).Any() {
		return
	}

	produced := bd.orRule(set, log, x, y, list, capXY)
	if !produced {
		var carrier bitset.Bitset
		if bd.params.UseGreedyUnion {
			carrier = list.GreedyUnion()
		} else {
			carrier = list.Union()
		}
		bd.stats.OrAttempts++
		if bd.insertFull(set, log, x, y, carrier.Or(capXY), RuleAll) != Failed {
			bd.stats.OrSuccesses++
		}
	}
}

// orRule dispatches to the bounded or enhanced OR algorithm depending on
// max_ors. Both reduce to the same subset search over
// the soft prefix's processed semis, differing only in how many semis
// the search is allowed to combine at once. This deliberately skips
// reimplementing the four-range partition-refinement scratch layout
// sometimes used for enhanced OR, since that is only an optimization
// over this same search, never a different result (see DESIGN.md).
func (bd *Builder) orRule(set *VCSet, log *ChangeLog, x, y int, list *VCList, capXY bitset.Bitset) bool {
	entries := processedEntries(list.SoftPrefix())
	if bd.params.MaxOrs < 16 {
		return bd.subsetOR(set, log, x, y, entries, capXY, bd.params.MaxOrs)
	}
	return bd.subsetOR(set, log, x, y, entries, capXY, len(entries))
}

func processedEntries(prefix []Connection) []Connection {
	out := make([]Connection, 0, len(prefix))
	for _, e := range prefix {
		if e.Processed {
			out = append(out, e)
		}
	}
	return out
}

// subsetOR enumerates subsets of size 2..maxDepth of entries,
// depth-first with an index-per-level, tracking a running AND and OR;
// it emits a Full whenever the running AND (outside capXY) is empty,
// and prunes a branch as soon as adding the next semi stops shrinking
// the running AND.
func (bd *Builder) subsetOR(set *VCSet, log *ChangeLog, x, y int, entries []Connection, capXY bitset.Bitset, maxDepth int) bool {
	produced := false
	n := len(entries)

	var dfs func(start int, runningAnd, runningOr bitset.Bitset, depth int)
	dfs = func(start int, runningAnd, runningOr bitset.Bitset, depth int) {
		if depth >= 2 {
			bd.stats.DoOrs++
			if runningAnd.AndNot(capXY).None() {
				bd.stats.OrAttempts++
				if bd.insertFull(set, log, x, y, runningOr.Or(capXY), RuleOr) != Failed {
					bd.stats.OrSuccesses++
					bd.stats.GoodOrs++
					produced = true
				}
			}
		}
		if depth == maxDepth {
			return
		}
		for i := start; i < n; i++ {
			e := entries[i]
			newAnd := runningAnd.And(e.Carrier)
			if depth > 0 && newAnd.Equal(runningAnd) {
				continue
			}
			dfs(i+1, newAnd, runningOr.Or(e.Carrier), depth+1)
		}
	}
	dfs(0, bitset.Universe(), bitset.Bitset{}, 0)
	return produced
}
