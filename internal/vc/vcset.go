package vc

import "github.com/araxis-games/hexvc/internal/board"

// VCSet is the per-color lattice of VCLists indexed by unordered
// endpoint pair, one table for Full connections and one for Semi.
// Lookups by endpoint pair are O(1).
type VCSet struct {
	Color board.Color

	fulls map[[2]int]*VCList
	semis map[[2]int]*VCList
}

// NewVCSet constructs an empty set for color.
func NewVCSet(color board.Color) *VCSet {
	return &VCSet{
		Color: color,
		fulls: make(map[[2]int]*VCList),
		semis: make(map[[2]int]*VCList),
	}
}

// Clear empties both tables, as BuildStatic does at the start of a
// batch build.
func (s *VCSet) Clear() {
	s.fulls = make(map[[2]int]*VCList)
	s.semis = make(map[[2]int]*VCList)
}

func (s *VCSet) table(kind Type) map[[2]int]*VCList {
	if kind == Full {
		return s.fulls
	}
	return s.semis
}

// List returns the VCList for (x, y, kind), creating an empty one on
// first access.
func (s *VCSet) List(kind Type, x, y int) *VCList {
	key := pairKey(x, y)
	t := s.table(kind)
	l, ok := t[key]
	if !ok {
		l = NewVCList(x, y, kind)
		t[key] = l
	}
	return l
}

// TryList returns the VCList for (x, y, kind) without creating one.
func (s *VCSet) TryList(kind Type, x, y int) (*VCList, bool) {
	l, ok := s.table(kind)[pairKey(x, y)]
	return l, ok
}

// Exists reports whether any connection of kind exists between x and y.
func (s *VCSet) Exists(kind Type, x, y int) bool {
	l, ok := s.TryList(kind, x, y)
	return ok && l.Len() > 0
}

// Pairs returns every endpoint pair with a non-empty list of kind, for
// iteration (e.g. rebuilding the nbs graph).
func (s *VCSet) Pairs(kind Type) [][2]int {
	t := s.table(kind)
	out := make([][2]int, 0, len(t))
	for k, l := range t {
		if l.Len() > 0 {
			out = append(out, k)
		}
	}
	return out
}

func pairKey(x, y int) [2]int {
	a, b := orderedPair(x, y)
	return [2]int{a, b}
}
