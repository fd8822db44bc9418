// Package parity implements the permutation-parity solvability oracle for
// sliding-tile puzzles. A board is solvable iff the parity of its cell
// permutation plus the parity of the blank's taxicab distance to its solved
// position matches the intrinsic parity of the solved permutation.
package parity

import "github.com/wmazur/npuzzle/board"

// Parity is the even/odd classification of a permutation or a move count.
// It forms an additive group with Even as identity and Odd+Odd = Even.
type Parity uint8

const (
	Even Parity = iota
	Odd
)

func (p Parity) String() string {
	if p == Even {
		return "even"
	}
	return "odd"
}

// Of returns the parity of a count.
func Of(n int) Parity {
	if n%2 == 0 {
		return Even
	}
	return Odd
}

// Opposite flips the parity.
func (p Parity) Opposite() Parity {
	return p ^ 1
}

// Add combines two parities.
func (p Parity) Add(other Parity) Parity {
	return p ^ other
}

// OfPermutation computes the parity of a permutation of [0, len) by cycle
// decomposition: follow each unvisited cycle, marking indices in a bitset;
// a cycle of length k contributes the parity of k−1, so the aggregate is odd
// iff the number of even-length cycles is odd.
func OfPermutation(perm []uint8) Parity {
	visited := newBitset(len(perm))
	result := Even

	for _, element := range perm {
		e := int(element)
		cycleLen := 0
		for !visited.contains(e) {
			visited.insert(e)
			e = int(perm[e])
			cycleLen++
		}
		if cycleLen > 1 {
			result = result.Add(Of(cycleLen - 1))
		}
	}
	return result
}

// RequiredMoves returns the parity of the number of moves needed to bring
// the blank to its solved position (the bottom-right corner). Every path
// the blank can take there has this parity.
func RequiredMoves(b *board.Board) Parity {
	rows, cols := b.Dimensions()
	row, col := b.EmptyCellPos()
	distance := int(rows-1-row) + int(cols-1-col)
	return Of(distance)
}

// OfSolved returns the parity of the solved permutation itself. The solved
// board is one cycle over all cells, so its parity is the opposite of the
// parity of the cell count.
func OfSolved(b *board.Board) Parity {
	rows, cols := b.Dimensions()
	return Of(int(rows) * int(cols)).Opposite()
}

// Solvable decides in O(n) whether any move sequence can solve the board.
// It is consulted once, before any search is started.
func Solvable(b *board.Board) bool {
	permutation := OfPermutation(b.Cells())
	return permutation.Add(RequiredMoves(b)) == OfSolved(b)
}

// bitset marks visited permutation indices during cycle decomposition.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (s bitset) contains(i int) bool {
	return s[i/64]&(1<<(i%64)) != 0
}

func (s bitset) insert(i int) {
	s[i/64] |= 1 << (i % 64)
}
