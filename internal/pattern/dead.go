package pattern

import "github.com/araxis-games/hexvc/internal/board"

// DeadCells returns the empty cells on pos that have no empty neighbor of
// their own, for board-output annotation only. A dead
// cell can never sit on the carrier of a connection that still has room
// to grow through it, but this is a display convenience, not a VC
// derivation input: BuildStatic/BuildIncremental never call this.
func DeadCells(pos *board.Position) []int {
	b := pos.Board
	var out []int
	for _, cell := range b.BoardCells() {
		if pos.Color(cell) != board.Empty {
			continue
		}
		dead := true
		for _, nb := range b.Neighbors(cell) {
			if pos.Color(nb) == board.Empty {
				dead = false
				break
			}
		}
		if dead {
			out = append(out, cell)
		}
	}
	return out
}
