// Package runner constructs solvers by name, for the CLI and the shell.
package runner

import (
	"fmt"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/heuristic"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/solver"
	"github.com/wmazur/npuzzle/solver/astar"
	"github.com/wmazur/npuzzle/solver/bfs"
	"github.com/wmazur/npuzzle/solver/dfs"
	"github.com/wmazur/npuzzle/solver/idastar"
	"github.com/wmazur/npuzzle/solver/sma"
)

// Options selects a strategy and its collaborators. Zero values fall back
// to the defaults: Manhattan distance and the U,D,L,R search order.
type Options struct {
	// Algorithm is one of dfs, idfs, bfs, bf, astar, ida, sma.
	Algorithm string
	// HeuristicID picks the estimator for the informed strategies
	// (MD/LC/ID or their long forms).
	HeuristicID string
	// Order is the move generator's direction order.
	Order movegen.SearchOrder
	// SMALimit caps SMA*'s resident node count; 0 picks a default derived
	// from physical memory.
	SMALimit int
}

// Algorithms lists the recognized algorithm identifiers.
func Algorithms() []string {
	return []string{"dfs", "idfs", "bfs", "bf", "astar", "ida", "sma"}
}

// NewSolver builds a single-use solver over b. The board is used as-is:
// strategies that mutate in place will consume it.
func NewSolver(b *board.Board, opts Options) (solver.Solver, error) {
	order := opts.Order
	if order == (movegen.SearchOrder{}) {
		order = movegen.DefaultOrder()
	}
	gen := movegen.NewGenerator(order)

	switch opts.Algorithm {
	case "dfs":
		return dfs.New(b, gen), nil
	case "idfs":
		return dfs.NewIncremental(b, gen), nil
	case "bfs":
		return bfs.New(b, gen), nil
	}

	h, err := pickHeuristic(opts.HeuristicID)
	if err != nil {
		return nil, err
	}
	switch opts.Algorithm {
	case "bf":
		return astar.NewGreedy(b, h, gen), nil
	case "astar":
		return astar.New(b, h, gen), nil
	case "ida":
		return idastar.New(b, h, gen), nil
	case "sma":
		if opts.SMALimit > 0 {
			return sma.WithMemoryLimit(b, h, gen, opts.SMALimit), nil
		}
		return sma.New(b, h, gen), nil
	}
	return nil, fmt.Errorf("unknown algorithm %q; possible values are: %v",
		opts.Algorithm, Algorithms())
}

func pickHeuristic(id string) (heuristic.Heuristic, error) {
	if id == "" {
		return heuristic.ManhattanDistance{}, nil
	}
	return heuristic.FromID(id)
}
