package solver

import (
	"sync"

	"github.com/wmazur/npuzzle/board"
)

// VisitedPositions is a set of previously seen board positions, keyed by a
// digest of the full cell contents. It is shared by reference across the
// iterations of a single solve. The lock exists so the set could be shared
// across workers if parallel search is ever added; today every solve is
// single-threaded and the lock is uncontended.
type VisitedPositions struct {
	mu     sync.RWMutex
	states map[uint64]struct{}
}

// NewVisitedPositions creates an empty tracker.
func NewVisitedPositions() *VisitedPositions {
	return &VisitedPositions{states: make(map[uint64]struct{})}
}

// IsVisited reports whether the board position has been seen before.
func (v *VisitedPositions) IsVisited(b *board.Board) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.states[b.Hash()]
	return ok
}

// MarkVisited records the board position.
func (v *VisitedPositions) MarkVisited(b *board.Board) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states[b.Hash()] = struct{}{}
}

// Clear empties the set, e.g. between outer iterations of an iterative-
// deepening search.
func (v *VisitedPositions) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = make(map[uint64]struct{})
}

// Len returns the number of recorded positions.
func (v *VisitedPositions) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.states)
}
