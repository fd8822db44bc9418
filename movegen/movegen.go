// Package movegen generates the legal next move sequences from a board
// position. The generator is parity-aware: it emits single moves when the
// blank is an odd number of moves from its solved corner and paired moves
// when it is an even number away, which halves the branching factor without
// ever skipping a completing path.
package movegen

import (
	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/parity"
)

// Generator produces move sequences in a configured direction order and
// applies the pruning rules: never run the blank off the board, never
// immediately reverse the previous move, and never pair a move with its
// own reversal.
//
// The generator performs no deduplication against globally visited states;
// cycle elimination is the caller's job when termination requires it.
type Generator struct {
	order SearchOrder
}

// NewGenerator creates a generator with the given search order.
func NewGenerator(order SearchOrder) *Generator {
	return &Generator{order: order}
}

// Default returns a generator with the default Up, Down, Left, Right order.
func Default() *Generator {
	return NewGenerator(DefaultOrder())
}

// Generate returns the legal next move sequences for b. prev is the last
// atomic move applied on the current path, or nil at the root.
func (g *Generator) Generate(b *board.Board, prev *move.Move) []MoveSequence {
	if parity.RequiredMoves(b) == parity.Odd {
		return g.singles(b, prev)
	}
	return g.pairs(b, prev)
}

func (g *Generator) singles(b *board.Board, prev *move.Move) []MoveSequence {
	var sequences []MoveSequence
	for _, m := range g.order.Moves() {
		if !b.CanMove(m) {
			continue
		}
		if prev != nil && m == prev.Opposite() {
			continue
		}
		sequences = append(sequences, Single(m))
	}
	return sequences
}

func (g *Generator) pairs(b *board.Board, prev *move.Move) []MoveSequence {
	var sequences []MoveSequence
	order := g.order.Moves()
	for _, first := range order {
		if !b.CanMove(first) {
			continue
		}
		if prev != nil && first == prev.Opposite() {
			continue
		}
		// The second move's legality depends on where the first one puts
		// the blank.
		moved := b.Clone()
		moved.ExecMove(first)
		for _, second := range order {
			if second == first.Opposite() {
				continue
			}
			if !moved.CanMove(second) {
				continue
			}
			sequences = append(sequences, Pair(first, second))
		}
	}
	return sequences
}
