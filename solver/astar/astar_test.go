package astar

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/heuristic"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/solver"
)

func mustParse(t *testing.T, input string) *board.Board {
	t.Helper()
	b, err := board.Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func replay(b *board.Board, solution []move.Move) bool {
	b = b.Clone()
	for _, m := range solution {
		if !b.CanMove(m) {
			return false
		}
		b.ExecMove(m)
	}
	return b.IsSolved()
}

var scenarios = []struct {
	name   string
	input  string
	length int
}{
	{"one move", "3 3\n1 2 3\n4 5 6\n7 0 8\n", 1},
	{"two moves", "3 3\n1 2 3\n4 0 5\n7 8 6\n", 2},
	{"three moves", "3 3\n1 2 3\n0 4 6\n7 5 8\n", 3},
	{"five moves", "3 3\n4 1 3\n0 2 5\n7 8 6\n", 5},
	{"seven moves", "3 3\n4 1 3\n7 2 5\n8 0 6\n", 7},
	{"rectangular", "3 4\n1 2 3 4\n5 6 7 8\n9 10 0 11\n", 1},
}

func TestSolveFindsShortestSolution(t *testing.T) {
	heuristics := map[string]heuristic.Heuristic{
		"MD": heuristic.ManhattanDistance{},
		"LC": heuristic.LinearConflict{},
		"ID": heuristic.NewInversionDistance(),
	}
	for hname, h := range heuristics {
		for _, tc := range scenarios {
			t.Run(hname+"/"+tc.name, func(t *testing.T) {
				is := is.New(t)
				b := mustParse(t, tc.input)

				solution, err := New(b.Clone(), h, movegen.Default()).Solve()
				is.NoErr(err)
				is.Equal(len(solution), tc.length)
				is.True(replay(b, solution))
			})
		}
	}
}

func TestSolveAlreadySolved(t *testing.T) {
	is := is.New(t)
	b := board.NewSolved(4, 4)
	solution, err := New(b, heuristic.ManhattanDistance{}, movegen.Default()).Solve()
	is.NoErr(err)
	is.Equal(len(solution), 0)
}

func TestSolveUnsolvable(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "4 4\n1 2 3 4\n5 6 7 8\n9 10 11 12\n13 15 14 0\n")
	_, err := New(b, heuristic.ManhattanDistance{}, movegen.Default()).Solve()
	is.True(errors.Is(err, solver.ErrUnsolvable))
}

type countingHeuristic struct {
	evals int
}

func (h *countingHeuristic) Evaluate(b *board.Board) int {
	h.evals++
	return heuristic.ManhattanDistance{}.Evaluate(b)
}

// The estimate is computed once when a node is built; cost accessors and
// heap comparisons must never re-run the heuristic.
func TestNodeCostCachedAtConstruction(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "3 3\n4 1 3\n0 2 5\n7 8 6\n")
	h := &countingHeuristic{}
	s := New(b, h, movegen.Default())

	root := &searchNode{board: b, h: s.heuristic.Evaluate(b)}
	is.Equal(h.evals, 1)

	for i := 0; i < 10; i++ {
		is.Equal(root.hCost(), 5)
		is.Equal(root.fCost(), 5)
	}
	is.Equal(h.evals, 1)

	// Expansion evaluates each child exactly once.
	s.expand(root)
	is.Equal(h.evals, 1+s.queue.Len())
	for _, n := range s.queue.nodes {
		_ = n.fCost()
	}
	is.Equal(h.evals, 1+s.queue.Len())
}

// The greedy variant promises a valid solution, not a shortest one.
func TestGreedyFindsValidSolution(t *testing.T) {
	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			b := mustParse(t, tc.input)

			solution, err := NewGreedy(b.Clone(), heuristic.LinearConflict{}, movegen.Default()).Solve()
			is.NoErr(err)
			is.True(replay(b, solution))
		})
	}
}

func TestGreedyUnsolvable(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "3 3\n2 1 3\n4 5 6\n7 8 0\n")
	_, err := NewGreedy(b, heuristic.ManhattanDistance{}, movegen.Default()).Solve()
	is.True(errors.Is(err, solver.ErrUnsolvable))
}
