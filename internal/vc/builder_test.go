package vc

import (
	"testing"

	"github.com/araxis-games/hexvc/internal/bitset"
	"github.com/araxis-games/hexvc/internal/board"
	"github.com/araxis-games/hexvc/internal/pattern"
)

func newTestBuilder(t *testing.T, color board.Color) (*Builder, *board.Board) {
	return newTestBuilderSize(t, color, 3)
}

func newTestBuilderSize(t *testing.T, color board.Color, size int) (*Builder, *board.Board) {
	t.Helper()
	b := board.New(size)
	lib, err := pattern.Load("")
	if err != nil {
		t.Fatalf("pattern.Load: %v", err)
	}
	return NewBuilder(b, color, lib, DefaultParams()), b
}

func cellAt(b *board.Board, row, col int) int { return row*b.Size + col }

// Empty board: every board/edge pair adjacent across the top row connects
// North with an empty carrier, and likewise for the bottom row/South; the
// two edges themselves are never directly connected.
func TestBuildStaticEmptyBoardSeedsEdgeBaseFulls(t *testing.T) {
	bd, b := newTestBuilder(t, board.Black)
	pos := board.NewPosition(b)
	groups := board.Build(pos, board.Black)
	set := NewVCSet(board.Black)

	bd.BuildStatic(set, groups, pos)

	for col := 0; col < b.Size; col++ {
		top := cellAt(b, 0, col)
		if !set.Exists(Full, b.North, top) {
			t.Errorf("expected Full(North, %s)", b.CellName(top))
		}
		bottom := cellAt(b, b.Size-1, col)
		if !set.Exists(Full, b.South, bottom) {
			t.Errorf("expected Full(South, %s)", b.CellName(bottom))
		}
	}
	if set.Exists(Full, b.North, b.South) {
		t.Errorf("North and South should not be directly connected on an empty board")
	}
}

// A lone stone's single-member group gets a Base Full to every one of its
// empty neighbors, with an empty carrier.
func TestBuildStaticSingleGroupBaseFullsToAllEmptyNeighbors(t *testing.T) {
	bd, b := newTestBuilder(t, board.Black)
	pos := board.NewPosition(b)
	stone := cellAt(b, 1, 1) // b2, the center cell
	pos.Play(stone, board.Black)
	groups := board.Build(pos, board.Black)
	set := NewVCSet(board.Black)

	bd.BuildStatic(set, groups, pos)

	captain := groups.CaptainOf(stone)
	empties := groups.EmptyNbs(pos, captain)
	if empties.Count() == 0 {
		t.Fatalf("test setup: expected the lone stone to have empty neighbors")
	}
	empties.IterSet(func(nb int) bool {
		list, ok := set.TryList(Full, captain, nb)
		if !ok || list.Len() == 0 {
			t.Errorf("expected a Base Full from the stone's group to %s", b.CellName(nb))
			return true
		}
		found := false
		for _, e := range list.Entries() {
			if e.Rule == RuleBase && e.Carrier.None() {
				found = true
			}
		}
		if !found {
			t.Errorf("expected an empty-carrier Base Full to %s", b.CellName(nb))
		}
		return true
	})
}

// A solid own-stone row spanning the board's width produces an edge-to-edge
// Full once the fixed-point search closes the gaps above and below it.
func TestBuildStaticFullRowProducesEdgeToEdgeFull(t *testing.T) {
	bd, b := newTestBuilder(t, board.Black)
	pos := board.NewPosition(b)
	for col := 0; col < b.Size; col++ {
		pos.Play(cellAt(b, 1, col), board.Black)
	}
	groups := board.Build(pos, board.Black)
	set := NewVCSet(board.Black)

	bd.BuildStatic(set, groups, pos)

	if !set.Exists(Full, b.North, b.South) {
		t.Fatalf("expected a North-South Full once the middle row's gaps close")
	}
}

// Two own stones at true bridge distance (sharing exactly two empty
// neighbors) are seeded as a pattern Full over those two cells. The
// stones sit away from the board's own edge rows so neither merges with
// an edge sentinel group.
func TestBuildStaticBridgePatternProducesFull(t *testing.T) {
	bd, b := newTestBuilderSize(t, board.Black, 5)
	pos := board.NewPosition(b)
	s1 := cellAt(b, 1, 1) // b2
	s2 := cellAt(b, 2, 2) // c3 — bridge partner of b2
	pos.Play(s1, board.Black)
	pos.Play(s2, board.Black)
	groups := board.Build(pos, board.Black)
	set := NewVCSet(board.Black)

	bd.BuildStatic(set, groups, pos)

	list, ok := set.TryList(Full, s1, s2)
	if !ok {
		t.Fatalf("expected a Full list between the bridge stones")
	}
	var found Connection
	hasPattern := false
	for _, e := range list.Entries() {
		if e.Rule == RulePattern {
			found = e
			hasPattern = true
		}
	}
	if !hasPattern {
		t.Fatalf("expected a pattern-seeded Full between the bridge stones")
	}
	if found.Carrier.Count() != 2 {
		t.Fatalf("expected the bridge Full's carrier to have exactly 2 cells, got %d", found.Carrier.Count())
	}
	c2, b3 := cellAt(b, 1, 2), cellAt(b, 2, 1)
	if !found.Carrier.Test(c2) || !found.Carrier.Test(b3) {
		t.Fatalf("expected the bridge carrier to be {%s, %s}, got %v", b.CellName(c2), b.CellName(b3), found.Carrier.Cells())
	}
	if bd.Stats().PatternSuccesses == 0 {
		t.Errorf("expected PatternSuccesses to be incremented")
	}
}

// Two own stones two cells apart sharing exactly one empty neighbor form a
// Semi through that neighbor via AND-closure.
func TestBuildStaticAndClosureFormsSemiThroughSharedNeighbor(t *testing.T) {
	bd, b := newTestBuilderSize(t, board.Black, 5)
	pos := board.NewPosition(b)
	s1 := cellAt(b, 1, 1) // b2
	s2 := cellAt(b, 3, 1) // b4 — shares only b3 as a common neighbor with b2
	pos.Play(s1, board.Black)
	pos.Play(s2, board.Black)
	groups := board.Build(pos, board.Black)
	set := NewVCSet(board.Black)
	bd.BuildStatic(set, groups, pos)

	shared := cellAt(b, 2, 1) // b3
	semiList, ok := set.TryList(Semi, s1, s2)
	if !ok {
		t.Fatalf("expected a Semi list between %s and %s", b.CellName(s1), b.CellName(s2))
	}
	hasKeyedSemi := false
	for _, e := range semiList.Entries() {
		if e.Key == shared {
			hasKeyedSemi = true
		}
	}
	if !hasKeyedSemi {
		t.Fatalf("expected a Semi(%s, %s) keyed on %s", b.CellName(s1), b.CellName(s2), b.CellName(shared))
	}
}

// Playing a Semi's key cell with the connection's own color upgrades it
// to a Full with the key removed from the carrier. The key is adjacent to
// one endpoint's stone (so the pair lands in the affected set) but not to
// the other, and neither endpoint's captain changes.
func TestBuildIncrementalUpgradesSemiOnKeyPlay(t *testing.T) {
	bd, b := newTestBuilderSize(t, board.Black, 5)
	pos := board.NewPosition(b)
	x := cellAt(b, 1, 1) // b2
	y := cellAt(b, 1, 4) // e2 — not adjacent to x or the key
	pos.Play(x, board.Black)
	pos.Play(y, board.Black)
	oldGroups := board.Build(pos, board.Black)

	key := cellAt(b, 1, 2)   // c2, adjacent to x's stone only
	other := cellAt(b, 2, 3) // d3, the carrier's surviving cell
	set := NewVCSet(board.Black)
	set.List(Semi, x, y).Add(nil, NewSemi(x, y, bitset.Of(key, other), key, RuleBase))

	pos.Play(key, board.Black)
	newGroups := board.Build(pos, board.Black)
	if newGroups.CaptainOf(x) != x || newGroups.CaptainOf(y) != y {
		t.Fatalf("test setup: playing the key should not change either endpoint's captain")
	}

	log := NewChangeLog()
	bd.BuildIncremental(set, oldGroups, newGroups, pos, bitset.Of(key), bitset.Bitset{}, log)

	fullList, ok := set.TryList(Full, x, y)
	if !ok || fullList.Len() == 0 {
		t.Fatalf("expected the Semi to have upgraded to a Full between %s and %s", b.CellName(x), b.CellName(y))
	}
	for _, e := range fullList.Entries() {
		if e.Carrier.Test(key) {
			t.Errorf("played key %s should not remain in any surviving carrier", b.CellName(key))
		}
		if !e.Carrier.Test(other) {
			t.Errorf("expected the surviving carrier cell %s to remain", b.CellName(other))
		}
	}
	if bd.Stats().Upgraded == 0 {
		t.Errorf("expected Upgraded to be incremented")
	}
}

// Playing an opponent stone on a bridge's carrier cell kills the bridge
// Full (and any Semi touching that carrier cell).
func TestBuildIncrementalKillsConnectionsTouchedByOpponent(t *testing.T) {
	bd, b := newTestBuilderSize(t, board.Black, 5)
	pos := board.NewPosition(b)
	s1 := cellAt(b, 1, 1) // b2
	s2 := cellAt(b, 2, 2) // c3
	pos.Play(s1, board.Black)
	pos.Play(s2, board.Black)
	oldGroups := board.Build(pos, board.Black)
	set := NewVCSet(board.Black)
	bd.BuildStatic(set, oldGroups, pos)

	if !set.Exists(Full, s1, s2) {
		t.Fatalf("test setup: expected a bridge Full before the intrusion")
	}

	intruded := cellAt(b, 1, 2) // c2, one of the bridge's carrier cells
	pos.Play(intruded, board.White)
	newGroups := board.Build(pos, board.Black)
	log := NewChangeLog()
	var none bitset.Bitset
	added := bitset.Of(intruded)
	bd.BuildIncremental(set, oldGroups, newGroups, pos, none, added, log)

	if bd.Stats().Killed0+bd.Stats().Killed1 == 0 {
		t.Fatalf("expected at least one killed connection after the intrusion")
	}
	for _, p := range set.Pairs(Full) {
		for _, e := range set.List(Full, p[0], p[1]).Entries() {
			if e.Carrier.Test(intruded) {
				t.Errorf("no surviving Full should carry the intruded-on cell %s", b.CellName(intruded))
			}
		}
	}
}

// Rolling an incremental build's ChangeLog back to its pre-build mark
// restores the VCSet to exactly its prior contents.
func TestBuildIncrementalRollbackRestoresVCSet(t *testing.T) {
	bd, b := newTestBuilderSize(t, board.Black, 5)
	pos := board.NewPosition(b)
	s1 := cellAt(b, 1, 1)
	s2 := cellAt(b, 2, 2)
	pos.Play(s1, board.Black)
	pos.Play(s2, board.Black)
	oldGroups := board.Build(pos, board.Black)
	set := NewVCSet(board.Black)
	bd.BuildStatic(set, oldGroups, pos)

	before := snapshotPairCarriers(set)

	intruded := cellAt(b, 1, 2)
	pos.Play(intruded, board.White)
	newGroups := board.Build(pos, board.Black)
	log := NewChangeLog()
	mark := log.Mark()
	var none bitset.Bitset
	added := bitset.Of(intruded)
	bd.BuildIncremental(set, oldGroups, newGroups, pos, none, added, log)

	log.RollbackTo(mark)
	after := snapshotPairCarriers(set)

	if len(before) != len(after) {
		t.Fatalf("rollback changed the number of non-empty pairs: before=%d after=%d", len(before), len(after))
	}
	for k, v := range before {
		if after[k] != v {
			t.Errorf("pair %v: carrier signature changed after rollback: before=%s after=%s", k, v, after[k])
		}
	}
}

func snapshotPairCarriers(set *VCSet) map[[3]int]string {
	out := make(map[[3]int]string)
	for kind := Type(Full); kind <= Semi; kind++ {
		for _, p := range set.Pairs(kind) {
			list := set.List(kind, p[0], p[1])
			sig := ""
			for _, e := range list.Entries() {
				sig += boolToTag(e.Kind) + carrierSig(e)
			}
			out[[3]int{int(kind), p[0], p[1]}] = sig
		}
	}
	return out
}

func boolToTag(k Type) string {
	if k == Full {
		return "F"
	}
	return "S"
}

func carrierSig(e Connection) string {
	s := "["
	for _, c := range e.Carrier.Cells() {
		s += string(rune('a' + c%32))
	}
	return s + "]"
}
