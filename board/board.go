// Package board implements the sliding-tile puzzle board: a rows×columns
// grid holding each tile value exactly once, with 0 marking the blank.
package board

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/wmazur/npuzzle/move"
)

// Board is a mutable puzzle position. The dimensions are fixed for the
// lifetime of an instance; the cell buffer always holds a permutation of
// [0, rows*cols). Exactly one cell is 0 (the blank).
//
// A Board is owned by whichever search frontier entry holds it. Strategies
// that branch clone it; strategies that walk a single path mutate it in
// place with strict apply/undo discipline.
type Board struct {
	rows  uint8
	cols  uint8
	cells []uint8
}

// New creates a board from the given cells, which must be a permutation of
// [0, rows*cols) in row-major order. The caller (normally Parse) is
// responsible for having validated that invariant.
func New(rows, cols uint8, cells []uint8) *Board {
	if len(cells) != int(rows)*int(cols) {
		panic(fmt.Sprintf("board: cell count %d does not match %dx%d",
			len(cells), rows, cols))
	}
	return &Board{rows: rows, cols: cols, cells: cells}
}

// NewSolved creates a board in the solved position: tiles in ascending
// row-major order with the blank in the bottom-right corner.
func NewSolved(rows, cols uint8) *Board {
	n := int(rows) * int(cols)
	cells := make([]uint8, n)
	for i := 0; i < n-1; i++ {
		cells[i] = uint8(i + 1)
	}
	return &Board{rows: rows, cols: cols, cells: cells}
}

// Dimensions returns the number of rows and columns.
func (b *Board) Dimensions() (uint8, uint8) {
	return b.rows, b.cols
}

// At returns the tile value at the given cell; 0 is the blank.
func (b *Board) At(row, col uint8) uint8 {
	return b.cells[b.flatten(row, col)]
}

// Cells returns the row-major cell buffer. Callers must not mutate it.
func (b *Board) Cells() []uint8 {
	return b.cells
}

func (b *Board) flatten(row, col uint8) int {
	return int(row)*int(b.cols) + int(col)
}

// EmptyCellPos returns the row and column of the blank. A board without a
// blank violates the permutation invariant and can only arise from caller
// error, so this panics rather than returning an error.
func (b *Board) EmptyCellPos() (uint8, uint8) {
	for i, c := range b.cells {
		if c == 0 {
			return uint8(i / int(b.cols)), uint8(i % int(b.cols))
		}
	}
	panic("board: no empty cell; permutation invariant violated")
}

// IsSolved reports whether the cells are in ascending row-major order with
// the blank last.
func (b *Board) IsSolved() bool {
	// The blank is almost never on the last cell during a search, so check
	// that first and skip scanning the rest.
	last := len(b.cells) - 1
	if b.cells[last] != 0 {
		return false
	}
	for i := 0; i < last; i++ {
		if b.cells[i] != uint8(i+1) {
			return false
		}
	}
	return true
}

// CanMove reports whether the blank can travel in the given direction, i.e.
// it is not at that edge of the grid.
func (b *Board) CanMove(m move.Move) bool {
	row, col := b.EmptyCellPos()
	switch m {
	case move.Up:
		return row > 0
	case move.Down:
		return row < b.rows-1
	case move.Left:
		return col > 0
	case move.Right:
		return col < b.cols-1
	}
	return false
}

// ExecMove swaps the blank with the adjacent tile in the given direction.
// It panics if the move is not legal; callers must check CanMove first.
func (b *Board) ExecMove(m move.Move) {
	if !b.CanMove(m) {
		panic(fmt.Sprintf("board: cannot execute move %s", m))
	}
	row, col := b.EmptyCellPos()
	var targetRow, targetCol uint8
	switch m {
	case move.Up:
		targetRow, targetCol = row-1, col
	case move.Down:
		targetRow, targetCol = row+1, col
	case move.Left:
		targetRow, targetCol = row, col-1
	case move.Right:
		targetRow, targetCol = row, col+1
	}
	zero := b.flatten(row, col)
	target := b.flatten(targetRow, targetCol)
	b.cells[zero], b.cells[target] = b.cells[target], b.cells[zero]
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]uint8, len(b.cells))
	copy(cells, b.cells)
	return &Board{rows: b.rows, cols: b.cols, cells: cells}
}

// Equal reports whether two boards have identical dimensions and cells.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit digest of the cell buffer, used to key visited-state
// sets. Boards compared within one solve always share dimensions, so the
// cells alone identify the position.
func (b *Board) Hash() uint64 {
	return xxhash.Sum64(b.cells)
}

func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d\n", b.rows, b.cols)
	for r := uint8(0); r < b.rows; r++ {
		for c := uint8(0); c < b.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", b.At(r, c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
