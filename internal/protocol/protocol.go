// Package protocol is hexvc's text command dispatcher: a line-oriented,
// GTP-style command set external to the VC engine itself. A Dispatcher
// owns one live board/position and drives
// vc.Builder.BuildIncremental after every move, so both internal/transport
// (HTTP-over-unix-socket) and cmd/hexctl's stdin REPL can share the exact
// same engine session logic.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/araxis-games/hexvc/internal/bitset"
	"github.com/araxis-games/hexvc/internal/board"
	"github.com/araxis-games/hexvc/internal/evaluator"
	"github.com/araxis-games/hexvc/internal/pattern"
	"github.com/araxis-games/hexvc/internal/solver"
	"github.com/araxis-games/hexvc/internal/vc"
)

// Job is the status of an asynchronous solve request, looked up by
// its uuid.
type Job struct {
	Done   bool
	Result string
	Err    error
}

// Dispatcher holds one engine session: the board, its position, and each
// color's groups/VCSet/builder, kept in sync move by move.
type Dispatcher struct {
	library *pattern.Library
	params  vc.Params

	mu       sync.Mutex
	board    *board.Board
	pos      *board.Position
	groups   map[board.Color]*board.Groups
	sets     map[board.Color]*vc.VCSet
	builders map[board.Color]*vc.Builder
	history  []historyEntry

	jobsMu sync.Mutex
	jobs   map[string]*Job
}

type historyEntry struct {
	cell  int
	color board.Color
}

// New constructs a Dispatcher with an empty boardSize x boardSize board.
func New(boardSize int, lib *pattern.Library, params vc.Params) *Dispatcher {
	d := &Dispatcher{
		library: lib,
		params:  params,
		jobs:    make(map[string]*Job),
	}
	d.reset(boardSize)
	return d
}

func (d *Dispatcher) reset(boardSize int) {
	d.board = board.New(boardSize)
	d.pos = board.NewPosition(d.board)
	d.groups = map[board.Color]*board.Groups{
		board.Black: board.Build(d.pos, board.Black),
		board.White: board.Build(d.pos, board.White),
	}
	d.sets = map[board.Color]*vc.VCSet{
		board.Black: vc.NewVCSet(board.Black),
		board.White: vc.NewVCSet(board.White),
	}
	d.builders = map[board.Color]*vc.Builder{
		board.Black: vc.NewBuilder(d.board, board.Black, d.library, d.params),
		board.White: vc.NewBuilder(d.board, board.White, d.library, d.params),
	}
	for _, c := range []board.Color{board.Black, board.White} {
		d.builders[c].BuildStatic(d.sets[c], d.groups[c], d.pos)
	}
	d.history = nil
}

// SetLibrary swaps in a freshly loaded pattern library (e.g. after a
// dev/--watch reload). It takes effect for every VC build from this point
// on; the Library itself is immutable, so in-flight reads of the old
// pointer from a concurrently running solve job are unaffected.
func (d *Dispatcher) SetLibrary(lib *pattern.Library) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.library = lib
	for _, c := range []board.Color{board.Black, board.White} {
		d.builders[c] = vc.NewBuilder(d.board, c, d.library, d.params)
		d.builders[c].BuildStatic(d.sets[c], d.groups[c], d.pos)
	}
}

// Dispatch parses and runs one command line, returning a GTP-style
// response: "= <result>" on success, "? <message>" on failure.
func (d *Dispatcher) Dispatch(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "? empty command"
	}
	cmd, args := fields[0], fields[1:]

	d.mu.Lock()
	defer d.mu.Unlock()

	switch cmd {
	case "boardsize":
		return d.cmdBoardSize(args)
	case "play":
		return d.cmdPlay(args)
	case "genmove":
		return d.cmdGenMove(args)
	case "showboard":
		return d.cmdShowBoard()
	case "vc-list":
		return d.cmdVCList(args)
	case "vc-stats":
		return d.cmdVCStats(args)
	case "solve":
		return d.cmdSolve(args)
	case "job":
		return d.cmdJobStatus(args)
	case "undo":
		return d.cmdUndo()
	case "quit":
		return "= bye"
	default:
		return fmt.Sprintf("? unknown command %q", cmd)
	}
}

func (d *Dispatcher) cmdBoardSize(args []string) string {
	if len(args) != 1 {
		return "? usage: boardsize N"
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return "? invalid board size"
	}
	d.reset(n)
	return "= ok"
}

func (d *Dispatcher) parseColor(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return board.Black, nil
	case "white", "w":
		return board.White, nil
	default:
		return board.Empty, fmt.Errorf("unrecognized color %q", s)
	}
}

func (d *Dispatcher) cmdPlay(args []string) string {
	if len(args) != 2 {
		return "? usage: play COLOR CELL"
	}
	color, err := d.parseColor(args[0])
	if err != nil {
		return "? " + err.Error()
	}
	cell, err := d.board.CellFromName(args[1])
	if err != nil {
		return "? " + err.Error()
	}
	if d.board.IsEdge(cell) {
		return "? cannot play on an edge sentinel"
	}
	if d.pos.Color(cell) != board.Empty {
		return "? cell already occupied"
	}
	d.applyMove(cell, color)
	return "= ok"
}

// applyMove plays cell for color and incrementally rebuilds both colors'
// VCSets against the new position.
func (d *Dispatcher) applyMove(cell int, color board.Color) {
	d.pos.Play(cell, color)
	d.history = append(d.history, historyEntry{cell: cell, color: color})
	d.rebuildIncremental(cell, color)
}

func (d *Dispatcher) rebuildIncremental(cell int, color board.Color) {
	oldGroups := d.groups
	newBlackGroups := board.Build(d.pos, board.Black)
	newWhiteGroups := board.Build(d.pos, board.White)

	for _, c := range []board.Color{board.Black, board.White} {
		var newGroups *board.Groups
		if c == board.Black {
			newGroups = newBlackGroups
		} else {
			newGroups = newWhiteGroups
		}
		var addedOwn, addedOther bitset.Bitset
		if c == color {
			addedOwn = bitset.Of(cell)
		} else {
			addedOther = bitset.Of(cell)
		}
		log := vc.NewChangeLog()
		d.builders[c].BuildIncremental(d.sets[c], oldGroups[c], newGroups, d.pos, addedOwn, addedOther, log)
	}
	d.groups[board.Black] = newBlackGroups
	d.groups[board.White] = newWhiteGroups
}

func (d *Dispatcher) cmdUndo() string {
	if len(d.history) == 0 {
		return "? nothing to undo"
	}
	last := d.history[len(d.history)-1]
	d.history = d.history[:len(d.history)-1]
	d.pos.Remove(last.cell)

	// Undoing is rare enough, and backward VC removal is not a case the
	// incremental update was designed for, so this rebuilds from scratch.
	d.groups[board.Black] = board.Build(d.pos, board.Black)
	d.groups[board.White] = board.Build(d.pos, board.White)
	for _, c := range []board.Color{board.Black, board.White} {
		d.sets[c] = vc.NewVCSet(c)
		d.builders[c].BuildStatic(d.sets[c], d.groups[c], d.pos)
	}
	return "= ok"
}

func (d *Dispatcher) cmdShowBoard() string {
	var sb strings.Builder
	for row := 0; row < d.board.Size; row++ {
		sb.WriteString(strings.Repeat(" ", row))
		for col := 0; col < d.board.Size; col++ {
			cell := row*d.board.Size + col
			switch d.pos.Color(cell) {
			case board.Black:
				sb.WriteByte('B')
			case board.White:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	if dead := pattern.DeadCells(d.pos); len(dead) > 0 {
		names := make([]string, 0, len(dead))
		for _, c := range dead {
			names = append(names, d.board.CellName(c))
		}
		sb.WriteString("dead " + strings.Join(names, " ") + "\n")
	}
	sb.WriteString("position " + d.pos.Hash() + "\n")
	return "= \n" + sb.String()
}

func (d *Dispatcher) cmdVCList(args []string) string {
	if len(args) != 2 {
		return "? usage: vc-list COLOR full|semi"
	}
	color, err := d.parseColor(args[0])
	if err != nil {
		return "? " + err.Error()
	}
	kind := vc.Full
	switch strings.ToLower(args[1]) {
	case "full":
		kind = vc.Full
	case "semi":
		kind = vc.Semi
	default:
		return "? kind must be full or semi"
	}

	set := d.sets[color]
	var sb strings.Builder
	for _, p := range set.Pairs(kind) {
		list := set.List(kind, p[0], p[1])
		for _, e := range list.Entries() {
			sb.WriteString(fmt.Sprintf("%s-%s carrier=%d\n", d.board.CellName(p[0]), d.board.CellName(p[1]), e.Carrier.Count()))
		}
	}
	return "= \n" + sb.String()
}

func (d *Dispatcher) cmdVCStats(args []string) string {
	if len(args) != 1 {
		return "? usage: vc-stats COLOR"
	}
	color, err := d.parseColor(args[0])
	if err != nil {
		return "? " + err.Error()
	}
	s := d.builders[color].Stats()
	return fmt.Sprintf("= base=%d/%d pattern=%d/%d and_full=%d/%d and_semi=%d/%d or=%d/%d killed=%d/%d upgraded=%d",
		s.BaseSuccesses, s.BaseAttempts, s.PatternSuccesses, s.PatternAttempts,
		s.AndFullSuccesses, s.AndFullAttempts, s.AndSemiSuccesses, s.AndSemiAttempts,
		s.OrSuccesses, s.OrAttempts, s.Killed0, s.Killed1, s.Upgraded)
}

func (d *Dispatcher) cmdGenMove(args []string) string {
	if len(args) != 1 {
		return "? usage: genmove COLOR"
	}
	color, err := d.parseColor(args[0])
	if err != nil {
		return "? " + err.Error()
	}
	s := solver.New(d.board, d.library, d.params)
	res := s.AlphaBeta(d.pos, color, 2)
	if res.Cell == -1 {
		return "? no legal moves"
	}
	d.applyMove(res.Cell, color)
	return "= " + d.board.CellName(res.Cell)
}

func (d *Dispatcher) cmdSolve(args []string) string {
	if len(args) != 2 {
		return "? usage: solve COLOR MAXNODES"
	}
	color, err := d.parseColor(args[0])
	if err != nil {
		return "? " + err.Error()
	}
	maxNodes, err := strconv.Atoi(args[1])
	if err != nil || maxNodes < 1 {
		return "? invalid MAXNODES"
	}

	id := uuid.New().String()
	job := &Job{}
	d.jobsMu.Lock()
	d.jobs[id] = job
	d.jobsMu.Unlock()

	// Solve against a private snapshot so the background job never races
	// with further commands mutating the live session.
	snapshot := d.pos.Clone()
	b := d.board
	lib, params := d.library, d.params

	go func() {
		s := solver.New(b, lib, params)
		won, cell := s.DFPN(snapshot, color, maxNodes)
		d.jobsMu.Lock()
		defer d.jobsMu.Unlock()
		if won {
			job.Result = fmt.Sprintf("won cell=%s", b.CellName(cell))
		} else {
			job.Result = "unknown"
		}
		job.Done = true
	}()

	return "= job " + id
}

func (d *Dispatcher) cmdJobStatus(args []string) string {
	if len(args) != 1 {
		return "? usage: job ID"
	}
	d.jobsMu.Lock()
	job, ok := d.jobs[args[0]]
	d.jobsMu.Unlock()
	if !ok {
		return "? unknown job id"
	}
	if !job.Done {
		return "= pending"
	}
	if job.Err != nil {
		return "? " + job.Err.Error()
	}
	return "= done " + job.Result
}

// Stats returns color's builder statistics from the most recent build,
// for callers (e.g. internal/ws) that want to stream raw counters rather
// than the "vc-stats" command's formatted string.
func (d *Dispatcher) Stats(color board.Color) vc.Statistics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.builders[color].Stats()
}

// Evaluate returns the evaluator's current signed score (positive favors
// Black), for callers that want a quick heuristic reading without a full
// solve/genmove call.
func (d *Dispatcher) Evaluate() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return evaluator.Compare(d.board, d.groups[board.Black], d.groups[board.White], d.sets[board.Black], d.sets[board.White])
}
