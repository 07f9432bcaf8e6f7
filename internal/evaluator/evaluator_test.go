package evaluator

import (
	"testing"

	"github.com/araxis-games/hexvc/internal/board"
	"github.com/araxis-games/hexvc/internal/pattern"
	"github.com/araxis-games/hexvc/internal/vc"
)

func buildFor(t *testing.T, b *board.Board, pos *board.Position, color board.Color) (*board.Groups, *vc.VCSet) {
	t.Helper()
	lib, err := pattern.Load("")
	if err != nil {
		t.Fatalf("pattern.Load: %v", err)
	}
	groups := board.Build(pos, color)
	set := vc.NewVCSet(color)
	vc.NewBuilder(b, color, lib, vc.DefaultParams()).BuildStatic(set, groups, pos)
	return groups, set
}

// A solid middle row is not yet a physical North-South connection, but
// the VC engine proves the edge-to-edge Full, which Score must report as
// a win.
func TestScoreDetectsVirtualEdgeToEdgeWin(t *testing.T) {
	b := board.New(3)
	pos := board.NewPosition(b)
	for col := 0; col < b.Size; col++ {
		pos.Play(1*b.Size+col, board.Black)
	}
	groups, set := buildFor(t, b, pos, board.Black)
	if got := Score(b, board.Black, groups, set); got != WinScore() {
		t.Fatalf("Score = %v, want the win score for a proven edge-to-edge Full", got)
	}
}

// A solid middle column physically joins North and South into one group
// (the edges share a captain), which Score must report as a win even
// though no (North, South) list exists anymore.
func TestScoreDetectsPhysicalConnection(t *testing.T) {
	b := board.New(3)
	pos := board.NewPosition(b)
	for row := 0; row < b.Size; row++ {
		pos.Play(row*b.Size+1, board.Black)
	}
	groups, set := buildFor(t, b, pos, board.Black)
	if groups.CaptainOf(b.North) != groups.CaptainOf(b.South) {
		t.Fatalf("test setup: expected the column to merge North and South")
	}
	if got := Score(b, board.Black, groups, set); got != WinScore() {
		t.Fatalf("Score = %v, want the win score for a physically connected position", got)
	}
}

func TestCompareFavorsConnectedBlack(t *testing.T) {
	b := board.New(3)
	pos := board.NewPosition(b)
	for col := 0; col < b.Size; col++ {
		pos.Play(1*b.Size+col, board.Black)
	}
	blackGroups, blackSet := buildFor(t, b, pos, board.Black)
	whiteGroups, whiteSet := buildFor(t, b, pos, board.White)
	if cmp := Compare(b, blackGroups, whiteGroups, blackSet, whiteSet); cmp <= 0 {
		t.Fatalf("Compare = %v, want a positive score for the connected side", cmp)
	}
}
