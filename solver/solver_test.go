package solver

import (
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/move"
)

func TestVisitedPositions(t *testing.T) {
	is := is.New(t)
	v := NewVisitedPositions()

	b := board.NewSolved(4, 4)
	is.True(!v.IsVisited(b))

	v.MarkVisited(b)
	is.True(v.IsVisited(b))
	is.Equal(v.Len(), 1)

	// Same cells, distinct allocation.
	is.True(v.IsVisited(b.Clone()))

	moved := b.Clone()
	moved.ExecMove(move.Up)
	is.True(!v.IsVisited(moved))

	v.Clear()
	is.True(!v.IsVisited(b))
	is.Equal(v.Len(), 0)
}

func TestVisitedPositionsConcurrentAccess(t *testing.T) {
	is := is.New(t)
	v := NewVisitedPositions()
	b := board.NewSolved(3, 3)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v.MarkVisited(b)
				v.IsVisited(b)
			}
		}()
	}
	wg.Wait()
	is.Equal(v.Len(), 1)
}

func TestAlgorithmErrorUnwrap(t *testing.T) {
	is := is.New(t)
	inner := errors.New("boom")
	err := NewAlgorithmError("astar", inner)

	is.True(errors.Is(err, inner))
	is.Equal(err.Error(), "astar: boom")

	var ae *AlgorithmError
	is.True(errors.As(error(err), &ae))
	is.Equal(ae.Strategy, "astar")
}
