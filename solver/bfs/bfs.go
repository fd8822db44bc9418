// Package bfs implements level-order exhaustive search. The first solved
// state dequeued has the minimum number of atomic moves: the parity-aware
// generator advances every frontier entry by a move count consistent with
// reaching the goal, so no shorter completing path can be skipped.
package bfs

import (
	"errors"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/parity"
	"github.com/wmazur/npuzzle/solver"
)

var errFrontierExhausted = errors.New("frontier emptied without reaching the solved state")

// compactAfter is how many dequeued slots may accumulate at the head of the
// queue before the live tail is copied down, so the backing array does not
// keep growing for the whole solve.
const compactAfter = 1024

type entry struct {
	board *board.Board
	path  []move.Move
}

// Solver is a breadth-first solver with visited-state pruning.
type Solver struct {
	visited *solver.VisitedPositions
	gen     *movegen.Generator
	queue   []entry
	head    int
	board   *board.Board
}

// New creates a BFS solver over the given board.
func New(b *board.Board, gen *movegen.Generator) *Solver {
	return &Solver{
		visited: solver.NewVisitedPositions(),
		gen:     gen,
		board:   b,
	}
}

// Solve runs the search. It consumes the solver.
func (s *Solver) Solve() ([]move.Move, error) {
	if !parity.Solvable(s.board) {
		return nil, solver.ErrUnsolvable
	}

	s.queue = append(s.queue, entry{board: s.board})
	for s.head < len(s.queue) {
		if path, found := s.visit(s.dequeue()); found {
			return path, nil
		}
	}

	// A solvable board's state graph is finite and connected to the goal,
	// so running out of frontier means an internal invariant broke.
	return nil, solver.NewAlgorithmError("bfs", errFrontierExhausted)
}

// dequeue takes the head entry, zeroing its slot so the boards and paths of
// processed entries are collectable, and periodically drops the dead prefix.
func (s *Solver) dequeue() entry {
	e := s.queue[s.head]
	s.queue[s.head] = entry{}
	s.head++
	if s.head >= compactAfter && s.head*2 >= len(s.queue) {
		n := copy(s.queue, s.queue[s.head:])
		clear(s.queue[n:])
		s.queue = s.queue[:n]
		s.head = 0
	}
	return e
}

func (s *Solver) visit(e entry) ([]move.Move, bool) {
	if e.board.IsSolved() {
		return e.path, true
	}
	if s.visited.IsVisited(e.board) {
		return nil, false
	}
	s.visited.MarkVisited(e.board)

	var prev *move.Move
	if len(e.path) > 0 {
		last := e.path[len(e.path)-1]
		prev = &last
	}
	for _, seq := range s.gen.Generate(e.board, prev) {
		child := e.board.Clone()
		path := make([]move.Move, len(e.path), len(e.path)+seq.Len())
		copy(path, e.path)
		path = seq.Apply(child, path)
		s.queue = append(s.queue, entry{board: child, path: path})
	}
	return nil, false
}
