package board

import (
	"fmt"
	"strconv"

	"github.com/araxis-games/hexvc/internal/bitset"
)

// hex neighbor offsets in (row, col) space, for the standard rhombus Hex
// layout: a cell's six neighbors are up, up-right, left, right, down-left,
// and down.
var neighborDeltas = [6][2]int{
	{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0},
}

// Board is the fixed geometry of a Hex board of a given Size: cell
// addressing, adjacency, and the four edge sentinels. It holds
// no game state — that lives in Position.
type Board struct {
	Size     int
	NumCells int // Size*Size

	// Edge sentinel cell ids. Black connects North<->South; White connects
	// West<->East.
	North, South, West, East int

	neighbors [][]int // neighbors[cell] = adjacent cell ids, board cells and edges alike
}

// New builds a Board for an NxN Hex board. size must be small enough that
// size*size+4 fits within bitset.B (19 is the largest supported size).
func New(size int) *Board {
	if size < 1 {
		panic("board: size must be >= 1")
	}
	numCells := size * size
	if numCells+4 > bitset.B {
		panic(fmt.Sprintf("board: size %d needs %d cells, exceeds bitset.B=%d", size, numCells+4, bitset.B))
	}

	b := &Board{
		Size:     size,
		NumCells: numCells,
		North:    numCells,
		South:    numCells + 1,
		West:     numCells + 2,
		East:     numCells + 3,
	}
	b.neighbors = make([][]int, numCells+4)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			cell := r*size + c
			b.neighbors[cell] = b.boardNeighborsOf(r, c)
		}
	}
	for col := 0; col < size; col++ {
		b.neighbors[b.North] = append(b.neighbors[b.North], col) // row 0
		b.neighbors[b.South] = append(b.neighbors[b.South], (size-1)*size+col)
	}
	for row := 0; row < size; row++ {
		b.neighbors[b.West] = append(b.neighbors[b.West], row*size) // col 0
		b.neighbors[b.East] = append(b.neighbors[b.East], row*size+size-1)
	}
	return b
}

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.Size && c >= 0 && c < b.Size
}

func (b *Board) boardNeighborsOf(r, c int) []int {
	var out []int
	for _, d := range neighborDeltas {
		nr, nc := r+d[0], c+d[1]
		if b.inBounds(nr, nc) {
			out = append(out, nr*b.Size+nc)
		}
	}
	if r == 0 {
		out = append(out, b.North)
	}
	if r == b.Size-1 {
		out = append(out, b.South)
	}
	if c == 0 {
		out = append(out, b.West)
	}
	if c == b.Size-1 {
		out = append(out, b.East)
	}
	return out
}

// Cells returns every addressable cell id (board cells + the four edge
// sentinels), for iteration.
func (b *Board) Cells() []int {
	out := make([]int, b.NumCells+4)
	for i := range out {
		out[i] = i
	}
	return out
}

// BoardCells returns only the real board cells (excludes edge sentinels).
func (b *Board) BoardCells() []int {
	out := make([]int, b.NumCells)
	for i := range out {
		out[i] = i
	}
	return out
}

// Neighbors returns the cell ids adjacent to cell, board cells and edges
// alike.
func (b *Board) Neighbors(cell int) []int {
	return b.neighbors[cell]
}

// NeighborSet returns the neighbors of cell as a Bitset.
func (b *Board) NeighborSet(cell int) bitset.Bitset {
	return bitset.Of(b.neighbors[cell]...)
}

// IsEdge reports whether cell is one of the four edge sentinels.
func (b *Board) IsEdge(cell int) bool {
	return cell == b.North || cell == b.South || cell == b.West || cell == b.East
}

// ColorEdge1 returns the first edge sentinel for color (North for Black,
// West for White).
func (b *Board) ColorEdge1(c Color) int {
	if c == Black {
		return b.North
	}
	return b.West
}

// ColorEdge2 returns the second edge sentinel for color (South for Black,
// East for White).
func (b *Board) ColorEdge2(c Color) int {
	if c == Black {
		return b.South
	}
	return b.East
}

// EdgeColor returns the color that owns an edge sentinel cell. Panics if
// cell is not an edge.
func (b *Board) EdgeColor(cell int) Color {
	switch cell {
	case b.North, b.South:
		return Black
	case b.West, b.East:
		return White
	default:
		panic("board: EdgeColor called on a non-edge cell")
	}
}

// RowCol decomposes a board cell into its (row, col). Panics for edges.
func (b *Board) RowCol(cell int) (row, col int) {
	if b.IsEdge(cell) {
		panic("board: RowCol called on an edge sentinel")
	}
	return cell / b.Size, cell % b.Size
}

// CellName renders a cell using the usual Hex notation (a1, b2, ...) or the
// sentinel's name.
func (b *Board) CellName(cell int) string {
	switch cell {
	case b.North:
		return "N"
	case b.South:
		return "S"
	case b.West:
		return "W"
	case b.East:
		return "E"
	}
	row, col := b.RowCol(cell)
	return fmt.Sprintf("%c%d", 'a'+col, row+1)
}

// CellFromName parses the inverse of CellName: "a1".."z.." or one of the
// edge sentinel letters (N, S, W, E). Returns an error for malformed input
// or a cell outside the board.
func (b *Board) CellFromName(name string) (int, error) {
	switch name {
	case "N":
		return b.North, nil
	case "S":
		return b.South, nil
	case "W":
		return b.West, nil
	case "E":
		return b.East, nil
	}
	if len(name) < 2 {
		return 0, fmt.Errorf("board: malformed cell name %q", name)
	}
	col := int(name[0] - 'a')
	row, err := strconv.Atoi(name[1:])
	if err != nil {
		return 0, fmt.Errorf("board: malformed cell name %q: %w", name, err)
	}
	row--
	if col < 0 || col >= b.Size || row < 0 || row >= b.Size {
		return 0, fmt.Errorf("board: cell name %q out of range for a %dx%d board", name, b.Size, b.Size)
	}
	return row*b.Size + col, nil
}
