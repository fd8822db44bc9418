// Package dfs implements plain and iterative-deepening depth-first search.
//
// The traversal walks an explicit frame stack instead of recursing, so the
// search depth is bounded by memory rather than by the native call stack
// and no stack-headroom check is needed.
package dfs

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/parity"
	"github.com/wmazur/npuzzle/solver"
)

// Backtracking signals, internal to the traversal. They drive control flow
// within a single solve and never escape except wrapped in AlgorithmError
// on unrecoverable exhaustion.
var (
	errStateAlreadyVisited = errors.New("state was already visited")
	errMaxDepthReached     = errors.New("max depth of the search tree reached")
	errStateExhausted      = errors.New("no move from this state leads to a solution")
)

// Solver is an unbounded depth-first solver with visited-state pruning.
// It returns the first solution found, not necessarily the shortest.
type Solver struct {
	board   *board.Board
	gen     *movegen.Generator
	visited *solver.VisitedPositions // nil disables revisit pruning
	path    []move.Move
}

// New creates a DFS solver over the given board.
func New(b *board.Board, gen *movegen.Generator) *Solver {
	return &Solver{
		board:   b,
		gen:     gen,
		visited: solver.NewVisitedPositions(),
	}
}

// Solve runs the search. It consumes the solver.
func (s *Solver) Solve() ([]move.Move, error) {
	if !parity.Solvable(s.board) {
		return nil, solver.ErrUnsolvable
	}
	if err := s.search(0); err != nil {
		return nil, solver.NewAlgorithmError("dfs", err)
	}
	return s.path, nil
}

// frame is one level of the traversal: the sequence that produced the
// current state and the candidate continuations not yet tried.
type frame struct {
	seq        movegen.MoveSequence
	isRoot     bool
	candidates []movegen.MoveSequence
	next       int
}

// enter inspects the current board state. It reports whether the state is
// solved and, if the state should be expanded, the candidate sequences to
// try from it.
func (s *Solver) enter(depth, maxDepth int, prev *move.Move) (bool, []movegen.MoveSequence, error) {
	if s.board.IsSolved() {
		return true, nil, nil
	}
	if s.visited != nil {
		if s.visited.IsVisited(s.board) {
			return false, nil, errStateAlreadyVisited
		}
		s.visited.MarkVisited(s.board)
	}
	if maxDepth > 0 && depth >= maxDepth {
		return false, nil, errMaxDepthReached
	}
	return false, s.gen.Generate(s.board, prev), nil
}

// search runs the depth-first traversal. maxDepth caps the number of move
// sequences on a path; 0 means unbounded. The board always ends up back in
// its starting position unless a solution was found, in which case s.path
// holds it.
func (s *Solver) search(maxDepth int) error {
	if s.visited != nil {
		s.visited.Clear()
	}

	solved, candidates, err := s.enter(0, maxDepth, nil)
	if solved {
		return nil
	}
	if err != nil {
		return err
	}

	stack := []frame{{isRoot: true, candidates: candidates}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.candidates) {
			// Every continuation from this state failed: undo the sequence
			// that led here and resume in the parent.
			if !top.isRoot {
				s.path = top.seq.Undo(s.board, s.path)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		seq := top.candidates[top.next]
		top.next++
		s.path = seq.Apply(s.board, s.path)
		last := seq.Last()
		solved, childCandidates, _ := s.enter(len(stack), maxDepth, &last)
		if solved {
			return nil
		}
		if childCandidates == nil {
			// Pruned (already visited or at the depth cap): back out.
			s.path = seq.Undo(s.board, s.path)
			continue
		}
		stack = append(stack, frame{seq: seq, candidates: childCandidates})
	}

	return errStateExhausted
}

// IncrementalSolver repeatedly runs a depth-capped DFS, raising the cap
// until a solution fits under it. Revisit pruning is disabled: a state seen
// at one depth may have to be revisited at a shallower one to reach the
// goal under a larger cap. The parity-aware generator makes the first
// solution found also the shortest in atomic moves.
type IncrementalSolver struct {
	inner Solver
}

// NewIncremental creates an iterative-deepening DFS solver.
func NewIncremental(b *board.Board, gen *movegen.Generator) *IncrementalSolver {
	return &IncrementalSolver{
		inner: Solver{board: b, gen: gen, visited: nil},
	}
}

// Solve runs the search. It consumes the solver.
func (s *IncrementalSolver) Solve() ([]move.Move, error) {
	if !parity.Solvable(s.inner.board) {
		return nil, solver.ErrUnsolvable
	}
	maxDepth := 1
	for s.inner.search(maxDepth) != nil {
		maxDepth++
		log.Trace().Msgf("increasing DFS depth cap to %d", maxDepth)
	}
	return s.inner.path, nil
}
