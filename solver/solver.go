// Package solver defines the capability shared by every search strategy and
// the error taxonomy they report through, plus the visited-position tracker
// used by the exhaustive strategies.
package solver

import (
	"errors"
	"fmt"

	"github.com/wmazur/npuzzle/move"
)

// Solver finds a move sequence that brings its board to the solved state.
// A solver is constructed over one board and is single use: Solve consumes
// it and it must not be reused afterwards.
type Solver interface {
	Solve() ([]move.Move, error)
}

// ErrUnsolvable is returned when the solvability oracle rejects the board
// before any search is performed. It is always recoverable by the caller.
var ErrUnsolvable = errors.New("board is not solvable")

// AlgorithmError wraps a strategy-internal failure, such as a search
// exhausting its reachable state space without finding a solution.
type AlgorithmError struct {
	Strategy string
	Err      error
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *AlgorithmError) Unwrap() error {
	return e.Err
}

// NewAlgorithmError wraps err as a failure of the named strategy.
func NewAlgorithmError(strategy string, err error) *AlgorithmError {
	return &AlgorithmError{Strategy: strategy, Err: err}
}
