package bfs

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/wmazur/npuzzle/board"
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

func TestSolveFindsShortestSolution(t *testing.T) {
	scenarios := []struct {
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
	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			b := mustParse(t, tc.input)

			solution, err := New(b.Clone(), movegen.Default()).Solve()
			is.NoErr(err)
			is.Equal(len(solution), tc.length)
			is.True(replay(b, solution))
		})
	}
}

func TestSolveAlreadySolved(t *testing.T) {
	is := is.New(t)
	solution, err := New(board.NewSolved(4, 4), movegen.Default()).Solve()
	is.NoErr(err)
	is.Equal(len(solution), 0)
}

func TestSolveUnsolvable(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "4 4\n1 2 3 4\n5 6 7 8\n9 10 11 12\n13 15 14 0\n")
	_, err := New(b, movegen.Default()).Solve()
	is.True(errors.Is(err, solver.ErrUnsolvable))
}

func TestDequeueReleasesProcessedEntries(t *testing.T) {
	is := is.New(t)
	s := New(board.NewSolved(3, 3), movegen.Default())
	for i := 0; i < 3; i++ {
		s.queue = append(s.queue, entry{board: board.NewSolved(3, 3)})
	}

	e := s.dequeue()
	is.True(e.board != nil)
	is.True(s.queue[0].board == nil) // processed slot no longer pins its board
	is.Equal(s.head, 1)
}

func TestDequeueCompactsTheBacklog(t *testing.T) {
	is := is.New(t)
	s := New(board.NewSolved(2, 2), movegen.Default())
	for i := 0; i < compactAfter+4; i++ {
		s.queue = append(s.queue, entry{board: board.NewSolved(2, 2)})
	}

	for i := 0; i < compactAfter; i++ {
		s.dequeue()
	}
	is.Equal(s.head, 0)
	is.Equal(len(s.queue), 4)
	for _, e := range s.queue {
		is.True(e.board != nil) // only live entries survive compaction
	}
}

// A custom search order changes which equal-length solution is preferred,
// never the length itself.
func TestSolveLengthIndependentOfOrder(t *testing.T) {
	is := is.New(t)
	input := "3 3\n4 1 3\n0 2 5\n7 8 6\n"

	order, err := movegen.ParseOrder("RDLU")
	is.NoErr(err)

	solution, err := New(mustParse(t, input), movegen.NewGenerator(order)).Solve()
	is.NoErr(err)
	is.Equal(len(solution), 5)
	is.True(replay(mustParse(t, input), solution))
}
