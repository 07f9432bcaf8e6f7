package pattern

import (
	"os"
	"testing"

	"github.com/araxis-games/hexvc/internal/board"
)

func TestLoadEmbeddedDefaultsHasRequiredFamily(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if !lib.Enabled("captured-bridge") {
		t.Fatal("captured-bridge must be enabled from embedded defaults")
	}
	if !lib.Enabled("vc-bridge") {
		t.Fatal("vc-bridge should be enabled from embedded defaults")
	}
}

func TestLoadMissingSearchPathFallsBackToEmbedded(t *testing.T) {
	lib, err := Load("/does/not/exist")
	if err != nil {
		t.Fatalf("Load should fall back to embedded defaults, got error: %v", err)
	}
	if !lib.Enabled("captured-bridge") {
		t.Fatal("expected fallback to embedded families")
	}
}

func TestLoadRejectsDirWithoutRequiredFamily(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/other.txt", []byte("not the required family\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error when captured-bridge family is missing")
	}
}

func TestNamesSorted(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	names := lib.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

// buildBridgePosition sets up the classic two-stone Hex bridge: two own
// stones at hex-distance 2 sharing exactly two empty neighbors. The
// stones sit two rows away from Black's own edges so neither also forms
// an edge bridge, keeping this the position's only bridge.
func buildBridgePosition(t *testing.T) (*board.Board, *board.Position, *board.Groups) {
	t.Helper()
	b := board.New(7)
	pos := board.NewPosition(b)
	// row2,col2 and row3,col3 are a bridge: they share (row2,col3) and
	// (row3,col2) as their only two common empty neighbors.
	s1 := 2*b.Size + 2
	s2 := 3*b.Size + 3
	pos.Play(s1, board.Black)
	pos.Play(s2, board.Black)
	groups := board.Build(pos, board.Black)
	return b, pos, groups
}

func TestFindBridgesDetectsClassicBridge(t *testing.T) {
	_, pos, groups := buildBridgePosition(t)
	bridges := findBridges(pos, groups)
	if len(bridges) != 1 {
		t.Fatalf("expected exactly one bridge, got %d: %+v", len(bridges), bridges)
	}
}

func TestCapturedSetPopulatesBothCarrierCells(t *testing.T) {
	_, pos, groups := buildBridgePosition(t)
	lib, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	captured := lib.CapturedSet(pos, groups)
	bridges := findBridges(pos, groups)
	br := bridges[0]
	cap1 := captured[br.c1]
	if !cap1.Test(br.c2) {
		t.Fatalf("cap[%d] should contain %d", br.c1, br.c2)
	}
	cap2 := captured[br.c2]
	if !cap2.Test(br.c1) {
		t.Fatalf("cap[%d] should contain %d", br.c2, br.c1)
	}
}

func TestVCPatternMatchesEmitsBridgeCarrier(t *testing.T) {
	_, pos, groups := buildBridgePosition(t)
	lib, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	matches := lib.VCPatternMatches(pos, groups)
	if len(matches) != 1 {
		t.Fatalf("expected 1 base full match, got %d", len(matches))
	}
	m := matches[0]
	if m.Carrier[0] == m.Carrier[1] {
		t.Fatal("carrier cells must be distinct")
	}
}

func TestDeadCellsReportsFullySurroundedCell(t *testing.T) {
	b := board.New(3)
	pos := board.NewPosition(b)
	// Fully surround the center cell (row1,col1 = cell 4) with stones so it
	// has no empty neighbor left.
	for _, cell := range b.Neighbors(4) {
		if pos.Color(cell) == board.Empty {
			pos.Play(cell, board.Black)
		}
	}
	dead := DeadCells(pos)
	found := false
	for _, d := range dead {
		if d == 4 {
			found = true
		}
	}
	if !found {
		t.Fatal("center cell should be reported dead once fully surrounded")
	}
}
