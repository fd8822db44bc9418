// Package astar implements best-first search over a binary-heap frontier:
// A* ordered by f-cost (path length plus heuristic) and a greedy variant
// ordered by heuristic alone.
//
// Both explore a tree, not a graph: there is no visited-state pruning and
// duplicate positions may be re-expanded. For A* that means optimality
// needs only an admissible heuristic, not a consistent one.
package astar

import (
	"container/heap"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/heuristic"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/parity"
	"github.com/wmazur/npuzzle/solver"
)

var errFrontierExhausted = errors.New("frontier emptied without reaching the solved state")

// searchNode owns a board and the path that produced it. The heuristic
// estimate is computed once at construction; heap sifts compare nodes many
// times and the board never changes after a node is built.
type searchNode struct {
	board *board.Board
	path  []move.Move
	h     int
}

func (n *searchNode) hCost() int {
	return n.h
}

func (n *searchNode) fCost() int {
	return n.h + len(n.path)
}

// frontier is a min-heap of search nodes under a pluggable cost function.
type frontier struct {
	nodes []*searchNode
	cost  func(*searchNode) int
}

func (f *frontier) Len() int { return len(f.nodes) }
func (f *frontier) Less(i, j int) bool { return f.cost(f.nodes[i]) < f.cost(f.nodes[j]) }
func (f *frontier) Swap(i, j int) { f.nodes[i], f.nodes[j] = f.nodes[j], f.nodes[i] }
func (f *frontier) Push(x any) { f.nodes = append(f.nodes, x.(*searchNode)) }
func (f *frontier) Pop() any {
	old := f.nodes
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	f.nodes = old[:n-1]
	return node
}

// Solver pops the minimum-cost node, returns its path if solved, and
// otherwise expands it through the move generator, cloning board and path
// per child.
type Solver struct {
	name      string
	queue     *frontier
	gen       *movegen.Generator
	heuristic heuristic.Heuristic
	board     *board.Board
}

// New creates an A* solver: cost is f = g + h.
func New(b *board.Board, h heuristic.Heuristic, gen *movegen.Generator) *Solver {
	return &Solver{
		name:      "astar",
		queue:     &frontier{cost: (*searchNode).fCost},
		gen:       gen,
		heuristic: h,
		board:     b,
	}
}

// NewGreedy creates a greedy best-first solver: cost is h alone. It finds
// solutions fast but without any length guarantee.
func NewGreedy(b *board.Board, h heuristic.Heuristic, gen *movegen.Generator) *Solver {
	return &Solver{
		name:      "bestfs",
		queue:     &frontier{cost: (*searchNode).hCost},
		gen:       gen,
		heuristic: h,
		board:     b,
	}
}

// Solve runs the search. It consumes the solver.
func (s *Solver) Solve() ([]move.Move, error) {
	if !parity.Solvable(s.board) {
		return nil, solver.ErrUnsolvable
	}

	heap.Push(s.queue, &searchNode{board: s.board, h: s.heuristic.Evaluate(s.board)})

	maxCost := -1
	for s.queue.Len() > 0 {
		node := heap.Pop(s.queue).(*searchNode)
		if c := s.queue.cost(node); c > maxCost {
			maxCost = c
			log.Debug().Int("cost", c).Msgf("%s frontier cost increased", s.name)
		}
		if node.board.IsSolved() {
			return node.path, nil
		}
		s.expand(node)
	}

	return nil, solver.NewAlgorithmError(s.name, errFrontierExhausted)
}

func (s *Solver) expand(node *searchNode) {
	var prev *move.Move
	if len(node.path) > 0 {
		last := node.path[len(node.path)-1]
		prev = &last
	}
	for _, seq := range s.gen.Generate(node.board, prev) {
		child := node.board.Clone()
		path := make([]move.Move, len(node.path), len(node.path)+seq.Len())
		copy(path, node.path)
		path = seq.Apply(child, path)
		heap.Push(s.queue, &searchNode{
			board: child,
			path:  path,
			h:     s.heuristic.Evaluate(child),
		})
	}
}
