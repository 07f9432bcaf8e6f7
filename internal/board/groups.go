package board

import "github.com/araxis-games/hexvc/internal/bitset"

// Group is a maximal same-color-connected component belonging to the
// player the enclosing Groups was built for. It is addressed by its
// captain: the canonical representative cell of the component.
type Group struct {
	Captain int
	Members bitset.Bitset
}

// Groups is a union-find-style partition of one color's stones on a
// Position, plus a singleton pseudo-group for every empty cell so that
// connection building can treat "a group or an empty cell" uniformly
// through Captain. Opponent-colored cells have no captain (CaptainOf
// returns -1).
type Groups struct {
	board *Board
	own   Color

	captain []int          // captain[cell]: captain cell, or -1 if cell is opponent-colored
	group   map[int]*Group // captain -> group, present only for stone groups (lone stones included), not empty cells
}

// Build partitions pos into Groups for the own color: own-colored stones
// (including own's edge sentinels) are merged into connected components;
// every empty cell is its own singleton pseudo-group; opponent cells have
// no captain.
func Build(pos *Position, own Color) *Groups {
	b := pos.Board
	g := &Groups{
		board:   b,
		own:     own,
		captain: make([]int, len(b.neighbors)),
		group:   make(map[int]*Group),
	}
	for i := range g.captain {
		g.captain[i] = -1
	}

	visited := make([]bool, len(b.neighbors))
	for _, cell := range b.Cells() {
		c := pos.Color(cell)
		if c == Empty {
			g.captain[cell] = cell
			continue
		}
		if c != own {
			continue
		}
		if visited[cell] {
			continue
		}
		// BFS the connected component of own-colored stones starting here.
		var members bitset.Bitset
		queue := []int{cell}
		visited[cell] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members.Set(cur)
			for _, nb := range b.Neighbors(cur) {
				if pos.Color(nb) == own && !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		// A group containing an edge sentinel is captained by that edge, so
		// edge-to-edge lookups stay keyed by the sentinels themselves even
		// after stones merge into them. A group holding both edges (the game
		// is over) takes the first.
		captain := members.FirstSet()
		if e1 := b.ColorEdge1(own); members.Test(e1) {
			captain = e1
		} else if e2 := b.ColorEdge2(own); members.Test(e2) {
			captain = e2
		}
		members.IterSet(func(m int) bool {
			g.captain[m] = captain
			return true
		})
		g.group[captain] = &Group{Captain: captain, Members: members}
	}
	return g
}

// CaptainOf returns the captain of cell's group: cell itself for an empty
// cell, the component's representative for an own-colored stone, or -1 for
// an opponent-colored cell.
func (g *Groups) CaptainOf(cell int) int {
	return g.captain[cell]
}

// IsCaptain reports whether cell is the captain of its own group (always
// true for empty cells and edge sentinels that are alone).
func (g *Groups) IsCaptain(cell int) bool {
	return g.captain[cell] == cell
}

// Members returns the member bitset of the group captained by captain. For
// an empty singleton pseudo-group this is just {captain}.
func (g *Groups) Members(captain int) bitset.Bitset {
	if grp, ok := g.group[captain]; ok {
		return grp.Members
	}
	return bitset.Of(captain)
}

// IsOwnGroup reports whether captain represents a real own-stone group
// (as opposed to an empty singleton pseudo-group). Used by incremental
// rebuilds to classify a neighbor's old captain without needing the old
// Position back.
func (g *Groups) IsOwnGroup(captain int) bool {
	_, ok := g.group[captain]
	return ok
}

// Captains returns every captain cell currently in play: one per stone
// group plus one per empty cell.
func (g *Groups) Captains() []int {
	out := make([]int, 0, len(g.captain))
	for cell, cap := range g.captain {
		if cap == cell {
			out = append(out, cell)
		}
	}
	return out
}

// Nbs returns the union of empty-or-own-color neighbors of the group
// captained by captain).
func (g *Groups) Nbs(captain int) bitset.Bitset {
	var nbs bitset.Bitset
	g.Members(captain).IterSet(func(m int) bool {
		for _, nb := range g.board.Neighbors(m) {
			if g.captain[nb] != -1 {
				nbs.Set(nb)
			}
		}
		return true
	})
	nbs.Reset(captain)
	return nbs
}

// EmptyNbs returns the empty-cell-only neighbors of the group captained by
// captain, used to seed Base VCs.
func (g *Groups) EmptyNbs(pos *Position, captain int) bitset.Bitset {
	var nbs bitset.Bitset
	g.Members(captain).IterSet(func(m int) bool {
		for _, nb := range g.board.Neighbors(m) {
			if pos.Color(nb) == Empty {
				nbs.Set(nb)
			}
		}
		return true
	})
	return nbs
}
