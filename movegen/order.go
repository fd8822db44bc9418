package movegen

import (
	"fmt"

	"lukechampine.com/frand"

	"github.com/wmazur/npuzzle/move"
)

// SearchOrder is the order in which the generator tries the four directions.
// It is explicit configuration passed into the generator, never ambient
// global state.
type SearchOrder struct {
	moves  [4]move.Move
	random bool
}

// DefaultOrder is Up, Down, Left, Right.
func DefaultOrder() SearchOrder {
	return SearchOrder{moves: [4]move.Move{move.Up, move.Down, move.Left, move.Right}}
}

// NewOrder builds a fixed order from a permutation of the four directions.
func NewOrder(moves [4]move.Move) (SearchOrder, error) {
	var seen [4]bool
	for _, m := range moves {
		if seen[m] {
			return SearchOrder{}, fmt.Errorf("duplicate move %s in search order", m)
		}
		seen[m] = true
	}
	return SearchOrder{moves: moves}, nil
}

// RandomOrder reshuffles the four directions on every call to Moves.
func RandomOrder() SearchOrder {
	order := DefaultOrder()
	order.random = true
	return order
}

// ParseOrder reads either "R" (random) or a permutation of the characters
// U, D, L, R.
func ParseOrder(s string) (SearchOrder, error) {
	if s == "R" || s == "r" {
		return RandomOrder(), nil
	}
	runes := []rune(s)
	if len(runes) != 4 {
		return SearchOrder{}, fmt.Errorf("search order must be 4 characters, got %q", s)
	}
	var moves [4]move.Move
	for i, c := range runes {
		m, err := move.Parse(c)
		if err != nil {
			return SearchOrder{}, err
		}
		moves[i] = m
	}
	return NewOrder(moves)
}

// Moves returns the directions to try, in order.
func (o SearchOrder) Moves() [4]move.Move {
	if o.random {
		shuffled := o.moves
		frand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		return shuffled
	}
	return o.moves
}

func (o SearchOrder) String() string {
	if o.random {
		return "random"
	}
	return o.moves[0].String() + o.moves[1].String() +
		o.moves[2].String() + o.moves[3].String()
}
