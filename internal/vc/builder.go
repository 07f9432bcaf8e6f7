package vc

import (
	"github.com/araxis-games/hexvc/internal/bitset"
	"github.com/araxis-games/hexvc/internal/board"
	"github.com/araxis-games/hexvc/internal/pattern"
)

// Params are the builder's tunable knobs.
type Params struct {
	MaxOrs                   int
	AndOverEdge              bool
	UsePatterns              bool
	UseNonEdgePatterns       bool
	UseGreedyUnion           bool
	AbortOnWinningConnection bool
}

// DefaultParams returns the engine's documented defaults.
func DefaultParams() Params {
	return Params{
		MaxOrs:                   4,
		AndOverEdge:              false,
		UsePatterns:              true,
		UseNonEdgePatterns:       true,
		UseGreedyUnion:           true,
		AbortOnWinningConnection: false,
	}
}

// Builder derives Full and Semi connections for one color over a Board,
// from scratch (BuildStatic) or incrementally after a move
// (BuildIncremental).
type Builder struct {
	board   *board.Board
	color   board.Color
	library *pattern.Library
	params  Params

	pos    *board.Position
	groups *board.Groups
	cap    map[int]bitset.Bitset
	nbs    map[int]bitset.Bitset

	fulls *FullsQueue
	semis *SemiEndsQueue
	stats Statistics
}

// NewBuilder constructs a Builder for color on b, consulting lib for
// captured-set and VC-pattern facts.
func NewBuilder(b *board.Board, color board.Color, lib *pattern.Library, params Params) *Builder {
	return &Builder{
		board:   b,
		color:   color,
		library: lib,
		params:  params,
		fulls:   NewFullsQueue(),
		semis:   NewSemiEndsQueue(),
	}
}

// Stats returns the counters accumulated by the most recent build.
func (bd *Builder) Stats() Statistics { return bd.stats }

// BuildStatic derives set from scratch against pos/groups:
// clear prior state, seed Base connections from group adjacency, seed
// Pattern connections from the library, then run the fixed-point search.
func (bd *Builder) BuildStatic(set *VCSet, groups *board.Groups, pos *board.Position) {
	set.Clear()
	bd.fulls.Reset()
	bd.semis.Reset()
	bd.stats.reset()
	bd.nbs = make(map[int]bitset.Bitset)
	bd.pos = pos
	bd.groups = groups
	bd.cap = bd.library.CapturedSet(pos, groups)

	for _, captain := range groups.Captains() {
		groups.EmptyNbs(pos, captain).IterSet(func(y int) bool {
			bd.stats.BaseAttempts++
			if bd.insertFull(set, nil, captain, y, bitset.Bitset{}, RuleBase) != Failed {
				bd.stats.BaseSuccesses++
			}
			return true
		})
	}

	if bd.params.UsePatterns {
		bd.seedPatternFulls(set, nil, pos, groups)
	}

	bd.runFixedPoint(set, nil)
}

// BuildIncremental updates set in place after a move that played addedOwn
// (this builder's color) and addedOther (the opponent) on the same turn's
// board change, moving from oldGroups to newGroups. log
// records every mutation so the caller can roll the update back.
func (bd *Builder) BuildIncremental(set *VCSet, oldGroups, newGroups *board.Groups, pos *board.Position, addedOwn, addedOther bitset.Bitset, log *ChangeLog) {
	if addedOwn.Intersects(addedOther) {
		panic("vc: BuildIncremental requires disjoint addedOwn/addedOther")
	}
	bd.fulls.Reset()
	bd.semis.Reset()
	bd.stats.reset()
	bd.nbs = make(map[int]bitset.Bitset)
	bd.pos = pos
	bd.groups = newGroups
	bd.cap = bd.library.CapturedSet(pos, newGroups)

	// Step 1: kill every VC whose carrier the opponent's new stones touch.
	for _, p := range set.Pairs(Full) {
		removed := set.List(Full, p[0], p[1]).RemoveAllContaining(log, addedOther)
		bd.stats.Killed0 += len(removed)
	}
	for _, p := range set.Pairs(Semi) {
		removed := set.List(Semi, p[0], p[1]).RemoveAllContaining(log, addedOther)
		bd.stats.Killed1 += len(removed)
	}

	// Step 2: merge/shrink every list pair whose old captains survived
	// into the new grouping, re-keying to the new captains. A pair only
	// needs visiting when at least one of its old captains is affected —
	// one of addedOwn's own cells, or the captain of an old own-color
	// group adjacent to a newly played own stone — or is no longer a
	// captain under newGroups; every other pair is already correctly
	// keyed and untouched by addedOwn, so re-keying it to itself and
	// shrinking by a carrier it never intersects would be a no-op, and
	// is skipped outright.
	affected := bd.affectedCaptains(oldGroups, addedOwn)
	for _, p := range unionPairs(set.Pairs(Full), set.Pairs(Semi)) {
		ox, oy := p[0], p[1]
		cx, cy := newGroups.CaptainOf(ox), newGroups.CaptainOf(oy)
		if cx == -1 || cy == -1 {
			bd.dropInvalidPair(set, log, ox, oy)
			continue
		}
		if cx == cy {
			bd.dropInvalidPair(set, log, ox, oy)
			continue
		}
		if !affected.Test(ox) && !affected.Test(oy) && cx == ox && cy == oy {
			continue
		}
		bd.mergeShrinkPair(set, log, addedOwn, ox, oy, cx, cy)
	}

	// Step 3: re-seed Pattern connections against the new position.
	if bd.params.UsePatterns {
		bd.seedPatternFulls(set, log, pos, newGroups)
	}

	// Step 4: nbs must reflect exactly the pairs with a live Full list.
	clear(bd.nbs)
	for _, p := range set.Pairs(Full) {
		bd.nbsAdd(p[0], p[1])
	}

	// Step 5: resume the fixed-point search over whatever the merge left
	// queued, plus anything seeded in step 3.
	bd.runFixedPoint(set, log)
}

// mergeShrinkPair moves/shrinks the VC list pair (ox, oy) into its
// post-merge destination (cx, cy): entries whose carrier survives
// addedOwn untouched are moved over wholesale (a no-op when the pair
// didn't actually change key); entries addedOwn touches are shrunk, or,
// for a Semi whose key was played, upgraded to a Full. The nbs graph is
// not touched here: step 4 of BuildIncremental rebuilds it from the
// surviving Full pairs before the fixed-point search needs it.
func (bd *Builder) mergeShrinkPair(set *VCSet, log *ChangeLog, addedOwn bitset.Bitset, ox, oy, cx, cy int) {
	fullOut := set.List(Full, cx, cy)
	semiOut := set.List(Semi, cx, cy)

	if fullIn, ok := set.TryList(Full, ox, oy); ok {
		removed := fullIn.RemoveAllContaining(log, addedOwn)
		if fullIn != fullOut {
			for _, e := range fullIn.RemoveAll(log) {
				if fullOut.Add(log, e) != Failed {
					bd.fulls.Push(e.normalizeEndpoints(cx, cy))
				}
			}
		}
		for _, e := range removed {
			shrunk := ShrinkFull(e, addedOwn, cx, cy)
			if fullOut.Add(log, shrunk) != Failed {
				bd.fulls.Push(shrunk)
				bd.stats.Shrunk0++
			}
		}
	}

	if semiIn, ok := set.TryList(Semi, ox, oy); ok {
		removed := semiIn.RemoveAllContaining(log, addedOwn)
		if semiIn != semiOut {
			for _, e := range semiIn.RemoveAll(log) {
				if semiOut.Add(log, e) != Failed {
					bd.semis.Push(cx, cy)
				}
			}
		}
		for _, e := range removed {
			if addedOwn.Test(e.Key) {
				upgraded := UpgradeSemi(e, addedOwn, cx, cy)
				if fullOut.Add(log, upgraded) != Failed {
					semiOut.RemoveSuperSetsOf(log, upgraded.Carrier)
					bd.fulls.Push(upgraded)
					bd.stats.Upgraded++
				}
				continue
			}
			shrunk := ShrinkSemi(e, addedOwn, cx, cy)
			if semiOut.Add(log, shrunk) != Failed {
				bd.semis.Push(cx, cy)
				bd.stats.Shrunk1++
			}
		}
	}
}

// affectedCaptains computes the merge phase's affected set: addedOwn
// itself, plus the captain of every old own-color group (per
// oldGroups.IsOwnGroup — a real stone group, not an empty pseudo-group)
// that neighbors one of addedOwn's cells.
func (bd *Builder) affectedCaptains(oldGroups *board.Groups, addedOwn bitset.Bitset) bitset.Bitset {
	affected := addedOwn
	addedOwn.IterSet(func(cell int) bool {
		for _, nb := range bd.board.Neighbors(cell) {
			captain := oldGroups.CaptainOf(nb)
			if captain != -1 && oldGroups.IsOwnGroup(captain) {
				affected.Set(captain)
			}
		}
		return true
	})
	return affected
}

// dropInvalidPair discards a list pair whose old captains no longer name
// a valid pair under the new grouping (one was captured by the opponent,
// or both merged into the same new captain).
func (bd *Builder) dropInvalidPair(set *VCSet, log *ChangeLog, ox, oy int) {
	if l, ok := set.TryList(Full, ox, oy); ok {
		bd.stats.Killed0 += len(l.RemoveAll(log))
	}
	if l, ok := set.TryList(Semi, ox, oy); ok {
		bd.stats.Killed1 += len(l.RemoveAll(log))
	}
}

// seedPatternFulls inserts every library VC-pattern match as a Base Full,
// subject to use_non_edge_patterns.
func (bd *Builder) seedPatternFulls(set *VCSet, log *ChangeLog, pos *board.Position, groups *board.Groups) {
	for _, m := range bd.library.VCPatternMatches(pos, groups) {
		if !bd.params.UseNonEdgePatterns && !bd.board.IsEdge(m.End1) && !bd.board.IsEdge(m.End2) {
			continue
		}
		carrier := bitset.Of(m.Carrier[0], m.Carrier[1])
		bd.stats.PatternAttempts++
		if bd.insertFull(set, log, m.End1, m.End2, carrier, RulePattern) != Failed {
			bd.stats.PatternSuccesses++
		}
	}
}

// runFixedPoint drains FullsQueue (running AND-closure on each) before
// SemiEndsQueue (running the OR rule on each), repeating until both are
// empty, with an early exit once the winning connection exists if
// abort_on_winning_connection is set.
func (bd *Builder) runFixedPoint(set *VCSet, log *ChangeLog) {
	for {
		if vc, ok := bd.fulls.Pop(); ok {
			bd.processFulls(set, log, vc)
		} else if pair, ok := bd.semis.Pop(); ok {
			bd.processSemis(set, log, pair[0], pair[1])
		} else {
			return
		}
		if bd.params.AbortOnWinningConnection {
			// The winning lists are keyed by the edges' current captains: an
			// edge sentinel captains any group it has merged into, and equal
			// captains mean the connection is already realized on the board.
			c1 := bd.groups.CaptainOf(bd.board.ColorEdge1(bd.color))
			c2 := bd.groups.CaptainOf(bd.board.ColorEdge2(bd.color))
			if c1 == c2 || set.Exists(Full, c1, c2) {
				return
			}
		}
	}
}

// processFulls marks vc processed (skipping it if it was already, or if
// it has since been removed from its list) and fires the AND rule from it.
func (bd *Builder) processFulls(set *VCSet, log *ChangeLog, vc Connection) {
	list, ok := set.TryList(Full, vc.End1, vc.End2)
	if !ok {
		return
	}
	idx, ok := list.FindInList(vc)
	if !ok {
		return
	}
	if list.Entries()[idx].Processed {
		return
	}
	list.MarkProcessed(log, idx)
	bd.andClosure(set, log, list.Entries()[idx])
}

// insertFull builds and adds a Full(x, y, carrier), queuing it and
// recording the x<->y adjacency in nbs on success.
func (bd *Builder) insertFull(set *VCSet, log *ChangeLog, x, y int, carrier bitset.Bitset, rule Rule) AddResult {
	vc := NewFull(x, y, carrier, rule)
	res := set.List(Full, x, y).Add(log, vc)
	if res != Failed {
		bd.fulls.Push(vc)
		bd.nbsAdd(x, y)
	}
	return res
}

// insertSemi builds and adds a Semi(x, y, carrier, key), queuing the pair
// for the OR rule on success.
func (bd *Builder) insertSemi(set *VCSet, log *ChangeLog, x, y, key int, carrier bitset.Bitset, rule Rule) AddResult {
	vc := NewSemi(x, y, carrier, key, rule)
	res := set.List(Semi, x, y).Add(log, vc)
	if res != Failed {
		bd.semis.Push(x, y)
	}
	return res
}

func (bd *Builder) nbsAdd(x, y int) {
	sx := bd.nbs[x]
	sx.Set(y)
	bd.nbs[x] = sx
	sy := bd.nbs[y]
	sy.Set(x)
	bd.nbs[y] = sy
}

// unionPairs returns the deduplicated union of a and b, order preserved.
func unionPairs(a, b [][2]int) [][2]int {
	seen := make(map[[2]int]bool, len(a)+len(b))
	out := make([][2]int, 0, len(a)+len(b))
	for _, arr := range [][][2]int{a, b} {
		for _, p := range arr {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
