package heuristic

import "github.com/wmazur/npuzzle/board"

// LinearConflict is Manhattan distance plus 2 for every pair of tiles that
// both belong to the line (row or column) they currently share and appear
// in reversed relative order along it. Each such conflict forces one of the
// two tiles off the line and back, a two-move detour the Manhattan distance
// cannot see.
type LinearConflict struct {
	md ManhattanDistance
}

func (h LinearConflict) Evaluate(b *board.Board) int {
	rows, cols := b.Dimensions()
	conflicts := 0

	for row := uint8(0); row < rows; row++ {
		for c1 := uint8(0); c1+1 < cols; c1++ {
			first := b.At(row, c1)
			if first == 0 {
				continue
			}
			firstGoalRow, firstGoalCol := goalPos(first, cols)
			if firstGoalRow != row {
				continue
			}
			for c2 := c1 + 1; c2 < cols; c2++ {
				second := b.At(row, c2)
				if second == 0 {
					continue
				}
				secondGoalRow, secondGoalCol := goalPos(second, cols)
				if secondGoalRow == row && firstGoalCol > secondGoalCol {
					conflicts++
				}
			}
		}
	}

	for col := uint8(0); col < cols; col++ {
		for r1 := uint8(0); r1+1 < rows; r1++ {
			first := b.At(r1, col)
			if first == 0 {
				continue
			}
			firstGoalRow, firstGoalCol := goalPos(first, cols)
			if firstGoalCol != col {
				continue
			}
			for r2 := r1 + 1; r2 < rows; r2++ {
				second := b.At(r2, col)
				if second == 0 {
					continue
				}
				secondGoalRow, secondGoalCol := goalPos(second, cols)
				if secondGoalCol == col && firstGoalRow > secondGoalRow {
					conflicts++
				}
			}
		}
	}

	return h.md.Evaluate(b) + 2*conflicts
}
