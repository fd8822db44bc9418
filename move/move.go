// Package move defines the atomic blank moves of a sliding-tile puzzle
// and helpers for rendering solution paths.
package move

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Move is the direction the blank travels in a single tile slide.
type Move uint8

const (
	Up Move = iota
	Down
	Left
	Right
)

// Opposite returns the move that undoes m. It is an involution.
func (m Move) Opposite() Move {
	switch m {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic(fmt.Sprintf("move: unknown move %d", m))
}

func (m Move) String() string {
	switch m {
	case Up:
		return "U"
	case Down:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "?"
}

// Parse converts a single direction character (case-insensitive) to a Move.
func Parse(c rune) (Move, error) {
	switch c {
	case 'U', 'u':
		return Up, nil
	case 'D', 'd':
		return Down, nil
	case 'L', 'l':
		return Left, nil
	case 'R', 'r':
		return Right, nil
	}
	return 0, fmt.Errorf("invalid move character %q", c)
}

// PathString renders a solution as the concatenation of its move characters,
// e.g. "DDRU".
func PathString(path []Move) string {
	return strings.Join(lo.Map(path, func(m Move, _ int) string {
		return m.String()
	}), "")
}
