// Package heuristic provides admissible estimators of the number of moves
// remaining to solve a board. Every implementation is a lower bound on the
// true remaining distance; A* and IDA* rely on that for optimality.
package heuristic

import (
	"fmt"

	"github.com/wmazur/npuzzle/board"
)

// Heuristic estimates a lower bound on the atomic moves still needed to
// solve the board. Implementations are immutable after construction and
// safe to share read-only across many live search nodes.
type Heuristic interface {
	Evaluate(b *board.Board) int
}

// FromID maps a heuristic identifier to its implementation. Recognized ids:
// MD/manhattan_distance, LC/linear_conflict, ID/inversion_distance.
func FromID(id string) (Heuristic, error) {
	switch id {
	case "MD", "manhattan_distance":
		return ManhattanDistance{}, nil
	case "LC", "linear_conflict":
		return LinearConflict{}, nil
	case "ID", "inversion_distance":
		return NewInversionDistance(), nil
	}
	return nil, fmt.Errorf("unknown heuristic id %q; possible values are: "+
		"MD, manhattan_distance, LC, linear_conflict, ID, inversion_distance", id)
}

// goalPos returns the solved-position coordinates of a non-blank tile.
func goalPos(tile uint8, cols uint8) (uint8, uint8) {
	idx := int(tile) - 1
	return uint8(idx / int(cols)), uint8(idx % int(cols))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
