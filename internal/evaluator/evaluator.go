// Package evaluator is a thin heuristic stand-in for neural-net position
// scoring: it consults a player's Full/Semi virtual connections rather than
// any learned weights. It exists only to give the solver's leaf ordering a
// signal beyond exact win/loss.
package evaluator

import (
	"github.com/araxis-games/hexvc/internal/board"
	"github.com/araxis-games/hexvc/internal/vc"
)

// fullWeight and semiWeight set a Full connection's score above a Semi's of
// the same carrier size, since a Full needs no further help to realize.
const (
	fullWeight = 1.0
	semiWeight = 0.5
	winScore   = 1e6
)

// WinScore is the score Score returns for a realized edge-to-edge Full,
// exported so callers (e.g. the solver) can recognize a proven win without
// re-deriving the constant.
func WinScore() float64 { return winScore }

// Score rates how close color is to connecting its two edges, using
// groups and set (color's own grouping and VCSet, already built against
// the current position). A won position — the edges share a captain, or
// a Full exists between them — returns winScore; otherwise the score is
// the sum of every Full and Semi's weight, discounted by carrier size so
// a connection needing fewer intervening cells counts for more.
func Score(b *board.Board, color board.Color, groups *board.Groups, set *vc.VCSet) float64 {
	e1, e2 := b.ColorEdge1(color), b.ColorEdge2(color)
	if groups.CaptainOf(e1) == groups.CaptainOf(e2) || set.Exists(vc.Full, e1, e2) {
		return winScore
	}

	total := 0.0
	for _, p := range set.Pairs(vc.Full) {
		list := set.List(vc.Full, p[0], p[1])
		for _, e := range list.Entries() {
			total += fullWeight / float64(1+e.Carrier.Count())
		}
	}
	for _, p := range set.Pairs(vc.Semi) {
		list := set.List(vc.Semi, p[0], p[1])
		for _, e := range list.Entries() {
			total += semiWeight / float64(1+e.Carrier.Count())
		}
	}
	return total
}

// Compare returns Score(black) - Score(white), a signed evaluation where
// positive favors Black, matching the solver's minimax sign convention.
func Compare(b *board.Board, blackGroups, whiteGroups *board.Groups, blackSet, whiteSet *vc.VCSet) float64 {
	return Score(b, board.Black, blackGroups, blackSet) - Score(b, board.White, whiteGroups, whiteSet)
}
