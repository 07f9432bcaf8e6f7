package sgf

import (
	"testing"

	"github.com/araxis-games/hexvc/internal/board"
)

func TestParseSimpleMainLine(t *testing.T) {
	input := "(;FF[4]GM[11]SZ[11];B[ab];W[cd];B[ef])"
	g, warnings, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.BoardSize != 11 {
		t.Fatalf("board size = %d, want 11", g.BoardSize)
	}
	if len(g.Moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(g.Moves))
	}
	want := []Move{
		{Color: board.Black, Col: 0, Row: 1},
		{Color: board.White, Col: 2, Row: 3},
		{Color: board.Black, Col: 4, Row: 5},
	}
	for i, m := range g.Moves {
		if m != want[i] {
			t.Errorf("move %d = %+v, want %+v", i, m, want[i])
		}
	}
	foundIgnored := 0
	for _, w := range warnings {
		t.Logf("warning: %s", w.Message)
		foundIgnored++
	}
	if foundIgnored != 2 { // FF and GM are both unrecognized
		t.Errorf("expected 2 ignored-property warnings, got %d", foundIgnored)
	}
}

func TestParseStopsAtFirstVariation(t *testing.T) {
	input := "(;SZ[11];B[ab](;W[cd])(;W[ef]))"
	g, _, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(g.Moves) != 1 {
		t.Fatalf("expected the main line to stop before any variation, got %d moves", len(g.Moves))
	}
	if g.Moves[0].Col != 0 || g.Moves[0].Row != 1 {
		t.Errorf("unexpected move %+v", g.Moves[0])
	}
}

func TestParsePassMoveWarnsAndSkips(t *testing.T) {
	input := "(;SZ[11];B[ab];W[])"
	g, warnings, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(g.Moves) != 1 {
		t.Fatalf("expected the pass move to be skipped, got %d moves", len(g.Moves))
	}
	foundPassWarning := false
	for _, w := range warnings {
		if w.Message == "W[] pass move skipped" {
			foundPassWarning = true
		}
	}
	if !foundPassWarning {
		t.Errorf("expected a pass-move warning, got %+v", warnings)
	}
}

func TestParseMissingSizeErrors(t *testing.T) {
	if _, _, err := Parse("(;B[ab])"); err == nil {
		t.Fatalf("expected an error for a missing SZ property")
	}
}

func TestParseMissingGameTreeErrors(t *testing.T) {
	if _, _, err := Parse("FF[4]SZ[11]"); err == nil {
		t.Fatalf("expected an error for input with no '(' game tree")
	}
}

func TestMoveCellUsesRowMajorIndexing(t *testing.T) {
	b := board.New(11)
	m := Move{Color: board.Black, Col: 3, Row: 2}
	if got, want := m.Cell(b), 2*11+3; got != want {
		t.Errorf("Cell() = %d, want %d", got, want)
	}
}
