package heuristic

import "github.com/wmazur/npuzzle/board"

// ManhattanDistance sums, over every non-blank tile, the taxicab distance
// between the tile's current position and its solved position.
type ManhattanDistance struct{}

func (ManhattanDistance) Evaluate(b *board.Board) int {
	rows, cols := b.Dimensions()
	total := 0
	for row := uint8(0); row < rows; row++ {
		for col := uint8(0); col < cols; col++ {
			tile := b.At(row, col)
			if tile == 0 {
				continue
			}
			goalRow, goalCol := goalPos(tile, cols)
			total += absDiff(row, goalRow) + absDiff(col, goalCol)
		}
	}
	return total
}
