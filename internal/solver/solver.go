// Package solver is a thin, sequential move-search layer over the VC
// engine: a depth-bounded negamax alpha-beta search and a minimal
// depth-first proof-number (DFPN) search, both consulting vc.VCSet.Exists
// for immediate wins and internal/evaluator for leaf ordering. Neither
// search runs in parallel, matching the VC engine's own single-threaded
// build; this
// package simply never introduces any of its own.
package solver

import (
	"math"

	"github.com/araxis-games/hexvc/internal/board"
	"github.com/araxis-games/hexvc/internal/evaluator"
	"github.com/araxis-games/hexvc/internal/pattern"
	"github.com/araxis-games/hexvc/internal/vc"
)

// Solver holds the fixed context (board geometry, pattern library, VC
// build parameters) shared across every search it runs.
type Solver struct {
	board   *board.Board
	library *pattern.Library
	params  vc.Params
}

// New constructs a Solver for b, building each candidate's VCSet with lib
// and params.
func New(b *board.Board, lib *pattern.Library, params vc.Params) *Solver {
	return &Solver{board: b, library: lib, params: params}
}

// Result is one search's verdict: the best cell found, its signed score
// (positive favors the side to move), and whether that score is an exact
// win/loss proof rather than a heuristic estimate.
type Result struct {
	Cell   int
	Score  float64
	Proven bool
}

// connected reports whether color has its two edges connected on pos —
// physically (the edge sentinels share a group captain) or virtually (a
// proven Full between them) — building that color's VCSet from scratch
// to check.
func (s *Solver) connected(pos *board.Position, color board.Color) bool {
	set, groups := s.buildSet(pos, color)
	e1, e2 := s.board.ColorEdge1(color), s.board.ColorEdge2(color)
	if groups.CaptainOf(e1) == groups.CaptainOf(e2) {
		return true
	}
	return set.Exists(vc.Full, e1, e2)
}

func (s *Solver) buildSet(pos *board.Position, color board.Color) (*vc.VCSet, *board.Groups) {
	groups := board.Build(pos, color)
	set := vc.NewVCSet(color)
	vc.NewBuilder(s.board, color, s.library, s.params).BuildStatic(set, groups, pos)
	return set, groups
}

func emptyCells(pos *board.Position, b *board.Board) []int {
	var cells []int
	for _, c := range b.BoardCells() {
		if pos.Color(c) == board.Empty {
			cells = append(cells, c)
		}
	}
	return cells
}

// AlphaBeta searches depth plies ahead from pos with toMove to move,
// returning the best reply found. A move that realizes an immediate
// edge-to-edge connection is always proven and returned without further
// search. At the depth horizon, the leaf score comes from
// evaluator.Compare rather than a proof.
func (s *Solver) AlphaBeta(pos *board.Position, toMove board.Color, depth int) Result {
	return s.alphaBeta(pos, toMove, depth, -math.MaxFloat64, math.MaxFloat64)
}

func (s *Solver) alphaBeta(pos *board.Position, toMove board.Color, depth int, alpha, beta float64) Result {
	candidates := emptyCells(pos, s.board)
	if len(candidates) == 0 {
		return Result{Cell: -1, Score: 0, Proven: true}
	}

	best := Result{Cell: candidates[0], Score: -math.MaxFloat64, Proven: false}
	for _, cell := range candidates {
		child := pos.Clone()
		child.Play(cell, toMove)

		if s.connected(child, toMove) {
			return Result{Cell: cell, Score: evaluator.WinScore(), Proven: true}
		}

		var childScore float64
		var childProven bool
		if depth <= 1 {
			blackSet, blackGroups := s.buildSet(child, board.Black)
			whiteSet, whiteGroups := s.buildSet(child, board.White)
			cmp := evaluator.Compare(s.board, blackGroups, whiteGroups, blackSet, whiteSet)
			if toMove == board.White {
				cmp = -cmp
			}
			childScore, childProven = cmp, false
		} else {
			reply := s.alphaBeta(child, toMove.Other(), depth-1, -beta, -alpha)
			childScore, childProven = -reply.Score, reply.Proven
		}

		if childScore > best.Score {
			best = Result{Cell: cell, Score: childScore, Proven: childProven}
		}
		if best.Score > alpha {
			alpha = best.Score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// DFPN runs a minimal disjunction/conjunction search for an exact win,
// bounded by maxNodes rather than a real proof-number heuristic: the
// mover's node is a disjunction (any winning reply proves a win), the
// opponent's is a conjunction (every reply must still lead to the mover
// winning). Returns won=false with cell=-1 if the node budget is
// exhausted before either side's outcome is proven — an honest "unknown",
// not a disproof.
func (s *Solver) DFPN(pos *board.Position, toMove board.Color, maxNodes int) (won bool, cell int) {
	nodes := 0
	won, cell, _ = s.dfpn(pos, toMove, maxNodes, &nodes)
	return won, cell
}

func (s *Solver) dfpn(pos *board.Position, toMove board.Color, maxNodes int, nodes *int) (won bool, cell int, exhausted bool) {
	*nodes++
	if *nodes > maxNodes {
		return false, -1, true
	}

	candidates := emptyCells(pos, s.board)
	for _, c := range candidates {
		child := pos.Clone()
		child.Play(c, toMove)
		if s.connected(child, toMove) {
			return true, c, false
		}
	}

	// No immediate win: try to prove toMove wins by showing some reply
	// leaves the opponent with no winning continuation of their own.
	for _, c := range candidates {
		child := pos.Clone()
		child.Play(c, toMove)

		oppWins, _, oppExhausted := s.dfpn(child, toMove.Other(), maxNodes, nodes)
		if oppExhausted {
			return false, -1, true
		}
		if !oppWins {
			return true, c, false
		}
	}
	return false, -1, false
}
