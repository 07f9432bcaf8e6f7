// Package pattern implements the engine's pattern libraries: the
// captured-set computation and the VC-pattern seed for BuildStatic /
// BuildIncremental, plus a decorative dead-cell library used only to
// annotate board output — it never feeds VC derivation.
//
// Both the captured-set and VC-pattern families implement a single,
// well-known Hex local shape: the bridge. Two own stones s1, s2 at
// hex-distance 2 (not already merged into the same group) that share
// exactly two empty neighbors {c1, c2} form a bridge: playing into one
// carrier cell is always answered by replying in the other (the
// textbook "bridge reply"), and the pair is a proven Full connection
// with carrier {c1, c2}. c1 and c2 are themselves adjacent to each
// other in this shape; that is not a disqualifier, since two
// same-colored stones ever share exactly two empty neighbors only when
// they are at that hex-distance (adjacent own stones are already
// merged into one group by board.Build, so they never reach
// findBridges as two distinct captains). Both families are single
// local matches on the same captured-set/VC-pattern lookup; the
// engine's AND/OR closure would derive the same bridge Full on its own
// (two Base connections through each empty carrier cell, OR-combined),
// so a richer pattern library only changes how many fixed-point
// iterations a position takes to reach it, never the fixed point's
// soundness.
package pattern

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/araxis-games/hexvc/internal/bitset"
	"github.com/araxis-games/hexvc/internal/board"
)

//go:embed families/*.txt
var defaultFamiliesFS embed.FS

// Family toggles which pattern families an engine instance will use.
// Loaded once at construction from a search path of
// "<name>.txt" family files; presence of the file enables the family,
// its content is free-form commentary, one file applied per family much
// like a migration directory applies one file per schema step.
type Family struct {
	Name string
	Doc  string
}

// Library is the immutable, loaded-once set of enabled pattern families:
// a plain value constructed once per engine instance and never mutated
// after Load returns, rather than a process-wide global.
type Library struct {
	families map[string]Family
}

// Load reads every "*.txt" family descriptor from searchPath (a directory).
// If searchPath is empty, or does not exist, the embedded defaults are
// used instead. A missing/unreadable required file is a fatal
// construction error: the engine cannot operate without captured-set
// patterns.
func Load(searchPath string) (*Library, error) {
	var entries []fileEntry
	var err error
	if searchPath != "" {
		entries, err = readDir(searchPath)
		if err != nil {
			return nil, fmt.Errorf("pattern: load search path %s: %w", searchPath, err)
		}
	}
	if len(entries) == 0 {
		entries, err = readEmbedded()
		if err != nil {
			return nil, fmt.Errorf("pattern: load embedded defaults: %w", err)
		}
	}

	lib := &Library{families: make(map[string]Family, len(entries))}
	for _, e := range entries {
		name := strings.TrimSuffix(filepath.Base(e.name), ".txt")
		lib.families[name] = Family{Name: name, Doc: string(e.data)}
	}
	if _, ok := lib.families["captured-bridge"]; !ok {
		return nil, fmt.Errorf("pattern: required family %q missing from %s", "captured-bridge", searchPath)
	}
	return lib, nil
}

// Enabled reports whether the named family was loaded.
func (l *Library) Enabled(name string) bool {
	_, ok := l.families[name]
	return ok
}

// Names returns every loaded family name, sorted, for diagnostics.
func (l *Library) Names() []string {
	out := make([]string, 0, len(l.families))
	for n := range l.families {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

type fileEntry struct {
	name string
	data []byte
}

func readDir(dir string) ([]fileEntry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []fileEntry
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, fileEntry{name: de.Name(), data: data})
	}
	return out, nil
}

func readEmbedded() ([]fileEntry, error) {
	des, err := defaultFamiliesFS.ReadDir("families")
	if err != nil {
		return nil, err
	}
	var out []fileEntry
	for _, de := range des {
		data, err := defaultFamiliesFS.ReadFile("families/" + de.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, fileEntry{name: de.Name(), data: data})
	}
	return out, nil
}

// bridge is one bridge shape present for own in pos: a pair of distinct
// own-colored groups (by captain) sharing exactly two empty neighbors.
type bridge struct {
	captain1, captain2 int
	c1, c2             int
}

func findBridges(pos *board.Position, groups *board.Groups) []bridge {
	b := pos.Board
	seen := make(map[[2]int]bool)
	var out []bridge
	for _, captain := range groups.Captains() {
		if !isStoneCaptain(pos, captain) {
			continue
		}
		nbs := groups.Nbs(captain)
		// Candidate partner groups are the non-empty own neighbors reached
		// through the two empty cells of nbs; walk every empty neighbor's
		// own-colored neighbors to find potential bridge partners.
		nbs.IterSet(func(empty int) bool {
			if pos.Color(empty) != board.Empty {
				return true
			}
			for _, nb2 := range b.Neighbors(empty) {
				partner := groups.CaptainOf(nb2)
				if partner == -1 || partner == captain || !isStoneCaptain(pos, partner) {
					continue
				}
				key := orderedPair(captain, partner)
				if seen[key] {
					continue
				}
				shared := sharedEmptyNeighbors(b, pos, captain, partner, groups)
				if shared.Count() == 2 {
					cells := shared.Cells()
					seen[key] = true
					out = append(out, bridge{captain1: key[0], captain2: key[1], c1: cells[0], c2: cells[1]})
				}
			}
			return true
		})
	}
	return out
}

func isStoneCaptain(pos *board.Position, captain int) bool {
	return pos.Color(captain) != board.Empty
}

func orderedPair(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// sharedEmptyNeighbors returns the empty cells adjacent to both groups'
// members.
func sharedEmptyNeighbors(b *board.Board, pos *board.Position, captain1, captain2 int, groups *board.Groups) bitset.Bitset {
	n1 := emptyNeighborsOfMembers(b, pos, groups.Members(captain1))
	n2 := emptyNeighborsOfMembers(b, pos, groups.Members(captain2))
	return n1.And(n2)
}

func emptyNeighborsOfMembers(b *board.Board, pos *board.Position, members bitset.Bitset) bitset.Bitset {
	var out bitset.Bitset
	members.IterSet(func(m int) bool {
		for _, n := range b.Neighbors(m) {
			if pos.Color(n) == board.Empty {
				out.Set(n)
			}
		}
		return true
	})
	return out
}
