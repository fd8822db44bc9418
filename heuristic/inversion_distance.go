package heuristic

import (
	"sync"

	"github.com/wmazur/npuzzle/board"
)

// InversionDistance implements Ken'ichiro Takahashi's inversion-distance
// bound: linearize the board row-major and column-major, count inversions
// against the corresponding goal linearization (ignoring the blank), and
// convert each inversion count to a minimum vertical/horizontal move count
// by repeated division by decreasing odd divisors.
//
// See https://computerpuzzle.net/puzzle/15puzzle/index.html
type InversionDistance struct {
	mu    sync.Mutex
	cache *inversionCache
}

// inversionCache memoizes the two goal linearizations for one board shape.
// goalIndex maps a tile value to its position in the goal order.
type inversionCache struct {
	rows, cols       uint8
	rowGoalIndex     []int
	columnGoalIndex  []int
	rowLinearization []uint8 // scratch buffers, reused between evaluations
	colLinearization []uint8
}

// NewInversionDistance creates an evaluator. The goal linearizations are
// built lazily on first use and rebuilt if the board shape changes.
func NewInversionDistance() *InversionDistance {
	return &InversionDistance{}
}

func newInversionCache(rows, cols uint8) *inversionCache {
	n := int(rows) * int(cols)

	// Goal read row-major: 1, 2, ..., n-1, 0.
	rowGoal := make([]uint8, n)
	for i := 0; i < n-1; i++ {
		rowGoal[i] = uint8(i + 1)
	}

	// Goal read column-major.
	colGoal := make([]uint8, 0, n)
	for c := uint8(0); c < cols; c++ {
		for r := uint8(0); r < rows; r++ {
			colGoal = append(colGoal, uint8(int(r)*int(cols)+int(c)+1))
		}
	}
	colGoal[n-1] = 0

	cache := &inversionCache{
		rows:             rows,
		cols:             cols,
		rowGoalIndex:     make([]int, n),
		columnGoalIndex:  make([]int, n),
		rowLinearization: make([]uint8, 0, n),
		colLinearization: make([]uint8, 0, n),
	}
	for i, v := range rowGoal {
		cache.rowGoalIndex[v] = i
	}
	for i, v := range colGoal {
		cache.columnGoalIndex[v] = i
	}
	return cache
}

func (h *InversionDistance) Evaluate(b *board.Board) int {
	rows, cols := b.Dimensions()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cache == nil || h.cache.rows != rows || h.cache.cols != cols {
		h.cache = newInversionCache(rows, cols)
	}
	cache := h.cache

	cache.rowLinearization = cache.rowLinearization[:0]
	cache.colLinearization = cache.colLinearization[:0]
	for r := uint8(0); r < rows; r++ {
		for c := uint8(0); c < cols; c++ {
			cache.rowLinearization = append(cache.rowLinearization, b.At(r, c))
		}
	}
	for c := uint8(0); c < cols; c++ {
		for r := uint8(0); r < rows; r++ {
			cache.colLinearization = append(cache.colLinearization, b.At(r, c))
		}
	}

	rowInversions := countInversions(cache.rowLinearization, cache.rowGoalIndex)
	colInversions := countInversions(cache.colLinearization, cache.columnGoalIndex)

	// A vertical move changes the row-major inversion count by at most
	// cols-1, but once fewer than that many inversions remain the next
	// move can fix at most cols-3 of them, and so on.
	vertical := shiftsRequired(rowInversions, int(cols))
	horizontal := shiftsRequired(colInversions, int(rows))
	return vertical + horizontal
}

func countInversions(order []uint8, goalIndex []int) int {
	inversions := 0
	for i := 0; i < len(order)-1; i++ {
		if order[i] == 0 {
			continue
		}
		for j := i + 1; j < len(order); j++ {
			if order[j] == 0 {
				continue
			}
			if goalIndex[order[i]] > goalIndex[order[j]] {
				inversions++
			}
		}
	}
	return inversions
}

func shiftsRequired(inversions, span int) int {
	shifts := 0
	for divisor := span - 1; divisor > 0; divisor -= 2 {
		shifts += inversions / divisor
		inversions %= divisor
	}
	return shifts
}
