// Package idastar implements iterative-deepening A*: depth-first search
// bounded by a monotonically increasing f-cost threshold instead of a
// priority queue, trading recomputation for memory. The board and path are
// mutated in place and undone on backtrack; nothing is cloned.
package idastar

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/heuristic"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/parity"
	"github.com/wmazur/npuzzle/solver"
)

var errNoBoundExceeded = errors.New("bounded search found neither a solution nor a larger bound")

// Solver is an IDA* solver.
type Solver struct {
	board     *board.Board
	heuristic heuristic.Heuristic
	gen       *movegen.Generator
	path      []move.Move
}

// New creates an IDA* solver over the given board.
func New(b *board.Board, h heuristic.Heuristic, gen *movegen.Generator) *Solver {
	return &Solver{board: b, heuristic: h, gen: gen}
}

// searchResult is the outcome of one bounded descent: found, or the
// smallest f-cost that exceeded the bound (exceeded < 0 means no child
// exceeded, i.e. the subtree is exhausted).
type searchResult struct {
	found    bool
	exceeded int
}

// Solve runs the search. It consumes the solver.
func (s *Solver) Solve() ([]move.Move, error) {
	if !parity.Solvable(s.board) {
		return nil, solver.ErrUnsolvable
	}

	bound := s.heuristic.Evaluate(s.board)
	for {
		result := s.search(bound)
		if result.found {
			return s.path, nil
		}
		if result.exceeded < 0 {
			// A solvable board always leaves some branch above the bound.
			return nil, solver.NewAlgorithmError("idastar", errNoBoundExceeded)
		}
		bound = result.exceeded
		log.Trace().Msgf("increasing f-cost bound to %d", bound)
	}
}

func (s *Solver) search(bound int) searchResult {
	fCost := len(s.path) + s.heuristic.Evaluate(s.board)
	if fCost > bound {
		return searchResult{exceeded: fCost}
	}
	if s.board.IsSolved() {
		return searchResult{found: true}
	}

	var prev *move.Move
	if len(s.path) > 0 {
		last := s.path[len(s.path)-1]
		prev = &last
	}

	minExceeded := -1
	for _, seq := range s.gen.Generate(s.board, prev) {
		s.path = seq.Apply(s.board, s.path)
		result := s.search(bound)
		if result.found {
			return result
		}
		if result.exceeded >= 0 && (minExceeded < 0 || result.exceeded < minExceeded) {
			minExceeded = result.exceeded
		}
		s.path = seq.Undo(s.board, s.path)
	}
	return searchResult{exceeded: minExceeded}
}
