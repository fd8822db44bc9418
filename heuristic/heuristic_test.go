package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/heuristic"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/solver/dfs"
)

func parseBoard(t *testing.T, input string) *board.Board {
	t.Helper()
	b, err := board.Parse(input)
	require.NoError(t, err)
	return b
}

func TestManhattanDistanceOnSolvedBoard(t *testing.T) {
	h := heuristic.ManhattanDistance{}
	assert.Equal(t, 0, h.Evaluate(board.NewSolved(4, 4)))
}

func TestManhattanDistanceCountsTileDisplacement(t *testing.T) {
	h := heuristic.ManhattanDistance{}

	// One move away: only one tile displaced by one.
	b := parseBoard(t, "3 3\n1 2 3\n4 5 6\n7 0 8\n")
	assert.Equal(t, 1, h.Evaluate(b))

	b = parseBoard(t, "3 3\n4 1 3\n0 2 5\n7 8 6\n")
	assert.Equal(t, 5, h.Evaluate(b))
}

func TestLinearConflictMatchesManhattanWithoutConflicts(t *testing.T) {
	md := heuristic.ManhattanDistance{}
	lc := heuristic.LinearConflict{}

	b := parseBoard(t, "3 3\n4 1 3\n0 2 5\n7 8 6\n")
	assert.Equal(t, md.Evaluate(b), lc.Evaluate(b))
}

func TestLinearConflictAddsTwoPerReversedPair(t *testing.T) {
	md := heuristic.ManhattanDistance{}
	lc := heuristic.LinearConflict{}

	// Tiles 2 and 1 both belong to row 0 and appear in reversed order.
	b := parseBoard(t, "3 3\n2 1 3\n4 5 6\n7 8 0\n")
	assert.Equal(t, md.Evaluate(b)+2, lc.Evaluate(b))
}

func TestInversionDistanceValues(t *testing.T) {
	h := heuristic.NewInversionDistance()

	assert.Equal(t, 0, h.Evaluate(board.NewSolved(3, 3)))
	assert.Equal(t, 1, h.Evaluate(parseBoard(t, "3 3\n1 2 3\n4 5 6\n7 0 8\n")))
	assert.Equal(t, 2, h.Evaluate(parseBoard(t, "3 3\n1 2 3\n4 5 6\n0 7 8\n")))
}

func TestInversionDistanceCacheSurvivesDimensionChange(t *testing.T) {
	h := heuristic.NewInversionDistance()

	assert.Equal(t, 0, h.Evaluate(board.NewSolved(3, 3)))
	assert.Equal(t, 0, h.Evaluate(board.NewSolved(4, 4)))
	assert.Equal(t, 1, h.Evaluate(parseBoard(t, "3 3\n1 2 3\n4 5 6\n7 0 8\n")))
}

func TestFromID(t *testing.T) {
	for _, id := range []string{
		"MD", "manhattan_distance",
		"LC", "linear_conflict",
		"ID", "inversion_distance",
	} {
		h, err := heuristic.FromID(id)
		require.NoError(t, err, id)
		assert.NotNil(t, h)
	}

	_, err := heuristic.FromID("nope")
	assert.Error(t, err)
}

// Admissibility: along a shortest solution of length L, the estimate at
// step i may never exceed L−i.
func TestHeuristicsAreAdmissible(t *testing.T) {
	heuristics := map[string]heuristic.Heuristic{
		"manhattan distance": heuristic.ManhattanDistance{},
		"linear conflict":    heuristic.LinearConflict{},
		"inversion distance": heuristic.NewInversionDistance(),
	}

	for name, h := range heuristics {
		t.Run(name, func(t *testing.T) {
			b := parseBoard(t, "3 3\n4 1 3\n7 2 5\n8 0 6\n")

			solution, err := dfs.NewIncremental(b.Clone(), movegen.Default()).Solve()
			require.NoError(t, err)

			replay := b.Clone()
			for i, m := range solution {
				remaining := len(solution) - i
				assert.LessOrEqual(t, h.Evaluate(replay), remaining)
				replay.ExecMove(m)
			}
			assert.True(t, replay.IsSolved())
			assert.Equal(t, 0, h.Evaluate(replay))
		})
	}
}
