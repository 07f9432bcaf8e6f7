// Package vc implements the Virtual Connection engine: the deductive
// prover that, given a position and a color, derives every Full and
// Semi connection between groups/cells reachable through AND/OR closure
// over Base connections.
package vc

import (
	"fmt"

	"github.com/araxis-games/hexvc/internal/bitset"
)

// Type distinguishes a proven (Full) connection from a conditional
// (Semi) one.
type Type int

const (
	Full Type = iota
	Semi
)

func (t Type) String() string {
	if t == Full {
		return "full"
	}
	return "semi"
}

// Rule records which derivation produced a Connection, for diagnostics
// and Statistics.
type Rule int

const (
	RuleBase Rule = iota
	RulePattern
	RuleAnd
	RuleOr
	RuleAll
)

func (r Rule) String() string {
	switch r {
	case RuleBase:
		return "base"
	case RulePattern:
		return "pattern"
	case RuleAnd:
		return "and"
	case RuleOr:
		return "or"
	case RuleAll:
		return "all"
	default:
		return "unknown"
	}
}

// Connection is a single proven (Full) or conditional (Semi) link
// between two endpoints, carried by a set of cells. Invariants:
//
//   - End1 != End2.
//   - The carrier never contains an endpoint, and never intersects
//     opponent stones (it holds cells that were empty, or own stones
//     left behind by an incremental shrink).
//   - A Semi's key is a member of its own carrier: playing the key
//     upgrades the Semi to a Full. Full.Key is unused (-1).
type Connection struct {
	End1, End2 int
	Carrier    bitset.Bitset
	Kind       Type
	Rule       Rule
	Key        int  // meaningful only for Semi; -1 for Full
	Processed  bool // whether the builder has already fired its derivation rules on this VC
}

// NewFull builds a Full connection, validating that the endpoints
// differ.
func NewFull(end1, end2 int, carrier bitset.Bitset, rule Rule) Connection {
	if end1 == end2 {
		panic(fmt.Sprintf("vc: Full connection endpoints must differ, got %d", end1))
	}
	return Connection{End1: end1, End2: end2, Carrier: carrier, Kind: Full, Rule: rule, Key: -1}
}

// NewSemi builds a Semi connection with the given key cell, validating
// that the endpoints differ and that the key is a member of the carrier.
func NewSemi(end1, end2 int, carrier bitset.Bitset, key int, rule Rule) Connection {
	if end1 == end2 {
		panic(fmt.Sprintf("vc: Semi connection endpoints must differ, got %d", end1))
	}
	if !carrier.Test(key) {
		panic(fmt.Sprintf("vc: Semi key %d must be a member of its own carrier", key))
	}
	return Connection{End1: end1, End2: end2, Carrier: carrier, Kind: Semi, Rule: rule, Key: key}
}

// normalizeEndpoints returns c with End1/End2 set to (want1, want2) — used
// when storing a Connection inside a VCList whose own (End1, End2) key is
// canonically ordered, or that belongs to the pair's new captains.
func (c Connection) normalizeEndpoints(want1, want2 int) Connection {
	if c.End1 == want1 && c.End2 == want2 {
		return c
	}
	c.End1, c.End2 = want1, want2
	return c
}

// Endpoints returns the connection's endpoints as an unordered pair key,
// used to index VCSet's per-pair tables.
func (c Connection) Endpoints() (int, int) {
	return orderedPair(c.End1, c.End2)
}

func orderedPair(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}

// HasEndpoint reports whether cell is one of c's endpoints.
func (c Connection) HasEndpoint(cell int) bool {
	return c.End1 == cell || c.End2 == cell
}

// OtherEndpoint returns the endpoint of c that is not cell. Panics if
// cell is not one of c's endpoints.
func (c Connection) OtherEndpoint(cell int) int {
	switch cell {
	case c.End1:
		return c.End2
	case c.End2:
		return c.End1
	default:
		panic(fmt.Sprintf("vc: cell %d is not an endpoint of connection (%d,%d)", cell, c.End1, c.End2))
	}
}
