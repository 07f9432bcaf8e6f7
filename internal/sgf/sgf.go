package sgf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araxis-games/hexvc/internal/board"
)

// Warning mirrors a tolerated, non-fatal parsing hiccup (an unsupported
// property, an empty-value pass move) so a caller can surface it without
// aborting the import.
type Warning struct {
	Message string
}

// Move is one recorded ply: a color and a 0-indexed (col, row) SGF point.
type Move struct {
	Color board.Color
	Col   int
	Row   int
}

// Cell resolves m against b's indexing (row-major, matching board.Board).
func (m Move) Cell(b *board.Board) int {
	return m.Row*b.Size + m.Col
}

// Game is the parsed subset of an SGF record this package supports: board
// size and the main line's alternating moves. Variations (sub-trees after
// the first branch point) are ignored — only the main line is imported.
type Game struct {
	BoardSize int
	Moves     []Move
}

var propRe = regexp.MustCompile(`([A-Za-z]{1,2})\[([^\]]*)\]`)

// Parse reads an SGF game record and returns its board size and main-line
// move sequence. Non-fatal issues (an unrecognized property, a pass move)
// are reported as Warnings rather than failing the parse; a malformed tree
// (no game-tree open paren, an unterminated node) returns an error.
func Parse(input string) (Game, []Warning, error) {
	nodes, err := splitMainLine(input)
	if err != nil {
		return Game{}, nil, err
	}

	var g Game
	var warnings []Warning
	sawSize := false

	for _, node := range nodes {
		for _, m := range propRe.FindAllStringSubmatch(node, -1) {
			key, val := strings.ToUpper(m[1]), m[2]
			switch key {
			case "SZ":
				n, err := strconv.Atoi(val)
				if err != nil {
					return Game{}, warnings, fmt.Errorf("sgf: malformed SZ value %q: %w", val, err)
				}
				g.BoardSize = n
				sawSize = true
			case "B", "W":
				color := board.Black
				if key == "W" {
					color = board.White
				}
				if val == "" {
					warnings = append(warnings, Warning{Message: fmt.Sprintf("%s[] pass move skipped", key)})
					continue
				}
				col, row, err := parsePoint(val)
				if err != nil {
					return Game{}, warnings, fmt.Errorf("sgf: malformed move %s[%s]: %w", key, val, err)
				}
				g.Moves = append(g.Moves, Move{Color: color, Col: col, Row: row})
			default:
				warnings = append(warnings, Warning{Message: fmt.Sprintf("ignored property %s[%s]", key, val)})
			}
		}
	}

	if !sawSize {
		return Game{}, warnings, fmt.Errorf("sgf: missing SZ property")
	}
	return g, warnings, nil
}

func parsePoint(val string) (col, row int, err error) {
	if len(val) != 2 {
		return 0, 0, fmt.Errorf("point must be exactly 2 characters, got %q", val)
	}
	col = int(val[0] - 'a')
	row = int(val[1] - 'a')
	if col < 0 || col > 25 || row < 0 || row > 25 {
		return 0, 0, fmt.Errorf("point %q out of the a-z range", val)
	}
	return col, row, nil
}

// splitMainLine walks input's game-tree, returning the node texts (the
// content between each ';') of the main line only: scanning stops the
// moment a sub-variation branch point is reached, discarding everything
// after it.
func splitMainLine(input string) ([]string, error) {
	start := strings.IndexByte(input, '(')
	if start == -1 {
		return nil, fmt.Errorf("sgf: no game tree found (missing '(')")
	}

	var nodes []string
	var node strings.Builder
	depth := 1
	inBracket := false
	haveNode := false

	for i := start + 1; i < len(input); i++ {
		ch := input[i]
		if inBracket {
			if ch == ']' {
				inBracket = false
			}
			node.WriteByte(ch)
			continue
		}
		switch ch {
		case '[':
			inBracket = true
			node.WriteByte(ch)
		case '(':
			// A sub-variation starts here: the main line ends.
			if haveNode {
				nodes = append(nodes, node.String())
			}
			return nodes, nil
		case ')':
			depth--
			if depth == 0 {
				if haveNode {
					nodes = append(nodes, node.String())
				}
				return nodes, nil
			}
			node.WriteByte(ch)
		case ';':
			if haveNode {
				nodes = append(nodes, node.String())
			}
			node.Reset()
			haveNode = true
		default:
			node.WriteByte(ch)
		}
	}
	return nil, fmt.Errorf("sgf: unterminated game tree (missing ')')")
}
