package movegen

import (
	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/move"
)

// MoveSequence is one generator output: a single move or an ordered pair,
// chosen by the required-move parity of the position it was generated from.
type MoveSequence struct {
	first  move.Move
	second move.Move
	paired bool
}

// Single wraps one move.
func Single(m move.Move) MoveSequence {
	return MoveSequence{first: m}
}

// Pair wraps an ordered pair of moves.
func Pair(first, second move.Move) MoveSequence {
	return MoveSequence{first: first, second: second, paired: true}
}

// Moves returns the atomic moves of the sequence in order.
func (s MoveSequence) Moves() []move.Move {
	if s.paired {
		return []move.Move{s.first, s.second}
	}
	return []move.Move{s.first}
}

// Len is the number of atomic moves in the sequence.
func (s MoveSequence) Len() int {
	if s.paired {
		return 2
	}
	return 1
}

// Last returns the final atomic move of the sequence.
func (s MoveSequence) Last() move.Move {
	if s.paired {
		return s.second
	}
	return s.first
}

// Apply executes the sequence on b and appends its moves to path, returning
// the extended path.
func (s MoveSequence) Apply(b *board.Board, path []move.Move) []move.Move {
	for _, m := range s.Moves() {
		b.ExecMove(m)
		path = append(path, m)
	}
	return path
}

// Undo reverses the sequence on b and truncates path accordingly.
func (s MoveSequence) Undo(b *board.Board, path []move.Move) []move.Move {
	moves := s.Moves()
	for i := len(moves) - 1; i >= 0; i-- {
		b.ExecMove(moves[i].Opposite())
	}
	return path[:len(path)-len(moves)]
}
