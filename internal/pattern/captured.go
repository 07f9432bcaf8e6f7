package pattern

import (
	"github.com/araxis-games/hexvc/internal/bitset"
	"github.com/araxis-games/hexvc/internal/board"
)

// CapturedSet computes cap[p] for every empty cell p: the cells the
// opponent is forced to reply into if the active player plays p. Only
// the "captured-bridge" family is consulted; it is always loaded (Load
// enforces this), so CapturedSet never needs to check l.Enabled for it.
//
// groups must already be built for the active player (the one about to
// play p).
func (l *Library) CapturedSet(pos *board.Position, groups *board.Groups) map[int]bitset.Bitset {
	captured := make(map[int]bitset.Bitset)
	for _, br := range findBridges(pos, groups) {
		merge := func(into, with int) {
			cur := captured[into]
			cur.Set(with)
			captured[into] = cur
		}
		merge(br.c1, br.c2)
		merge(br.c2, br.c1)
	}
	return captured
}
