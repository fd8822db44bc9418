package sma

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

func TestSolveWithoutEvictionFindsShortestSolution(t *testing.T) {
	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			b := mustParse(t, tc.input)

			s := WithMemoryLimit(b.Clone(), heuristic.ManhattanDistance{}, movegen.Default(), 0)
			solution, err := s.Solve()
			is.NoErr(err)
			is.Equal(len(solution), tc.length)
			is.True(replay(b, solution))
		})
	}
}

// A modest node budget that fits every scenario must not change the result.
func TestSolveUnderModestMemoryLimit(t *testing.T) {
	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			b := mustParse(t, tc.input)

			s := WithMemoryLimit(b.Clone(), heuristic.ManhattanDistance{}, movegen.Default(), 20)
			solution, err := s.Solve()
			is.NoErr(err)
			is.Equal(len(solution), tc.length)
			is.True(replay(b, solution))
		})
	}
}

// A limit small enough to force forgetting and regeneration along the way
// must still end at a shortest solution.
func TestEvictionStillYieldsShortestSolution(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "3 3\n4 1 3\n7 2 5\n8 0 6\n")

	s := WithMemoryLimit(b.Clone(), heuristic.ManhattanDistance{}, movegen.Default(), 8)
	solution, err := s.Solve()
	is.NoErr(err)
	is.Equal(len(solution), 7)
	is.True(replay(b, solution))
	is.True(s.evictions > 0)
}

// When no solution's resident chain can fit under the limit, the search must
// fail explicitly rather than churn forever.
func TestSolveFailsExplicitlyWhenMemoryTooSmall(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "3 3\n4 1 3\n0 2 5\n7 8 6\n")

	s := WithMemoryLimit(b, heuristic.ManhattanDistance{}, movegen.Default(), 2)
	_, err := s.Solve()
	is.True(errors.Is(err, errMemoryLimit))
}

func TestSolveAlreadySolved(t *testing.T) {
	is := is.New(t)
	s := WithMemoryLimit(board.NewSolved(3, 3), heuristic.ManhattanDistance{}, movegen.Default(), 0)
	solution, err := s.Solve()
	is.NoErr(err)
	is.Equal(len(solution), 0)
}

func TestSolveUnsolvable(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "4 4\n1 2 3 4\n5 6 7 8\n9 10 11 12\n13 15 14 0\n")
	s := WithMemoryLimit(b, heuristic.ManhattanDistance{}, movegen.Default(), 0)
	_, err := s.Solve()
	is.True(errors.Is(err, solver.ErrUnsolvable))
}

func TestFrontierOrder(t *testing.T) {
	is := is.New(t)
	s := &Solver{}

	a := &node{cost: 3}
	b := &node{cost: 1}
	c := &node{cost: 1, path: []move.Move{move.Up, move.Left}}
	s.insert(a)
	s.insert(b)
	s.insert(c)

	// Equal costs pop deeper nodes first.
	is.Equal(s.popBest(), c)
	is.Equal(s.popBest(), b)
	is.Equal(s.popBest(), a)
}

func TestEvictWorstSkipsProtectedAndInteriorNodes(t *testing.T) {
	is := is.New(t)
	s := &Solver{}

	parent := &node{cost: 1, children: make([]*node, 1), childCosts: []int{-1}}
	leaf := &node{cost: 5, parent: parent, childIdx: 0}
	parent.children[0] = leaf
	s.insert(parent)
	s.insert(leaf)

	// The only non-protected candidate is the leaf; the interior parent
	// must survive.
	is.True(s.evictWorst(nil, nil))
	is.Equal(len(s.frontier), 1)
	is.Equal(s.frontier[0], parent)
	is.True(parent.children[0] == nil)
	is.Equal(parent.childCosts[0], 5)
}

func TestSpawnRegeneratesAtRememberedCost(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "3 3\n1 2 3\n4 5 6\n7 0 8\n")
	s := WithMemoryLimit(b, heuristic.ManhattanDistance{}, movegen.Default(), 0)

	parent := &node{board: b, cost: 1}
	s.generateCandidates(parent)
	// A forgotten subtree in this slot was already proven to cost 42; the
	// regenerated child must not be re-priced below that.
	parent.childCosts[0] = 42

	child := s.spawn(parent, 0)
	is.Equal(child.cost, 42)
	is.Equal(parent.childCosts[0], 42)
}
