// Package sma implements simplified memory-bounded A*. The frontier is a
// totally ordered collection capped at a node count; when it fills up, the
// least promising resident node is forgotten and its cost backed up into its
// parent's per-slot cost table, so the parent keeps an admissible estimate
// of the subtree it no longer remembers and can regenerate it at that
// remembered price if it becomes promising again.
package sma

import (
	"errors"
	"math"
	"sort"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/heuristic"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/parity"
	"github.com/wmazur/npuzzle/solver"
)

var (
	errFrontierExhausted = errors.New("frontier emptied without reaching the solved state")
	errMemoryLimit       = errors.New("memory limit too small to continue the search")
)

// estimatedNodeBytes is a rough per-node footprint (board, path, bookkeeping)
// used to derive a default node budget from physical memory.
const estimatedNodeBytes = 512

// costInfinity marks a node no solution can be found through within the
// memory limit. Halved to keep cost comparisons free of overflow.
const costInfinity = math.MaxInt / 2

// node is one resident search state. children is indexed in step with the
// lazily generated candidate list; a nil slot is a child that either was
// never generated or has been forgotten and may be regenerated. childCosts
// remembers, per slot, the highest cost the child was last known to have
// (-1 before first generation), so a regenerated child is never re-priced
// below what its forgotten subtree already proved.
type node struct {
	board  *board.Board
	path   []move.Move
	cost   int
	parent *node
	// childIdx is this node's slot in parent.children.
	childIdx int
	// seqDepth counts the move sequences from the root, i.e. the length of
	// the ancestor chain that must stay resident to regenerate this node.
	seqDepth   int
	candidates []movegen.MoveSequence
	children   []*node
	childCosts []int
}

func (n *node) depth() int {
	return len(n.path)
}

func (n *node) residentChildren() int {
	count := 0
	for _, c := range n.children {
		if c != nil {
			count++
		}
	}
	return count
}

// nextVacant returns the first candidate slot with no resident child, or -1.
func (n *node) nextVacant() int {
	for i, c := range n.children {
		if c == nil {
			return i
		}
	}
	return -1
}

// Solver is an SMA* solver.
type Solver struct {
	board     *board.Board
	heuristic heuristic.Heuristic
	gen       *movegen.Generator
	frontier  []*node // sorted: cost ascending, deeper first on ties
	memLimit  int     // max resident nodes; 0 means unbounded
	evictions int
}

// New creates an SMA* solver whose node budget is derived from physical
// memory: a quarter of RAM at an estimated per-node footprint.
func New(b *board.Board, h heuristic.Heuristic, gen *movegen.Generator) *Solver {
	budget := int(memory.TotalMemory() / 4 / estimatedNodeBytes)
	return WithMemoryLimit(b, h, gen, budget)
}

// WithMemoryLimit creates an SMA* solver bounded to the given resident node
// count. A limit of 0 disables eviction entirely.
func WithMemoryLimit(b *board.Board, h heuristic.Heuristic, gen *movegen.Generator, limit int) *Solver {
	return &Solver{board: b, heuristic: h, gen: gen, memLimit: limit}
}

// Solve runs the search. It consumes the solver.
func (s *Solver) Solve() ([]move.Move, error) {
	if !parity.Solvable(s.board) {
		return nil, solver.ErrUnsolvable
	}

	root := &node{
		board: s.board,
		cost:  s.heuristic.Evaluate(s.board),
	}
	s.insert(root)

	for len(s.frontier) > 0 {
		current := s.popBest()
		if current.board.IsSolved() {
			log.Debug().Int("evictions", s.evictions).
				Int("resident", len(s.frontier)+1).
				Msg("sma search finished")
			return current.path, nil
		}
		if current.cost >= costInfinity {
			// Every remaining reachable solution needs a deeper resident
			// chain than the limit allows.
			return nil, solver.NewAlgorithmError("sma", errMemoryLimit)
		}

		if current.candidates == nil {
			s.generateCandidates(current)
		}

		if idx := current.nextVacant(); idx >= 0 {
			child := s.spawn(current, idx)
			current.children[idx] = child
			if err := s.enqueue(child, current); err != nil {
				return nil, solver.NewAlgorithmError("sma", err)
			}
			// The parent may still have further children to generate.
			s.reprice(current)
			s.insert(current)
		} else {
			s.bubbleUp(current)
		}
	}

	return nil, solver.NewAlgorithmError("sma", errFrontierExhausted)
}

func (s *Solver) generateCandidates(n *node) {
	var prev *move.Move
	if len(n.path) > 0 {
		last := n.path[len(n.path)-1]
		prev = &last
	}
	n.candidates = s.gen.Generate(n.board, prev)
	n.children = make([]*node, len(n.candidates))
	n.childCosts = make([]int, len(n.candidates))
	for i := range n.childCosts {
		n.childCosts[i] = -1
	}
}

// spawn clones the parent state, applies the candidate sequence, and prices
// the child at f = path length + heuristic, floored by both the parent's
// current cost and whatever a forgotten incarnation of this child already
// proved, so costs stay monotone along regenerated paths.
func (s *Solver) spawn(parent *node, idx int) *node {
	seq := parent.candidates[idx]
	b := parent.board.Clone()
	path := make([]move.Move, len(parent.path), len(parent.path)+seq.Len())
	copy(path, parent.path)
	path = seq.Apply(b, path)

	depth := parent.seqDepth + 1
	cost := len(path) + s.heuristic.Evaluate(b)
	if known := parent.childCosts[idx]; known > cost {
		cost = known
	}
	if parent.cost > cost {
		cost = parent.cost
	}
	// Expanding this child needs its whole ancestor chain plus one more
	// node resident at once; if that cannot fit, no solution is reachable
	// through it.
	if s.memLimit > 0 && depth+2 > s.memLimit && !b.IsSolved() {
		cost = costInfinity
	}
	parent.childCosts[idx] = cost

	return &node{
		board:    b,
		path:     path,
		cost:     cost,
		parent:   parent,
		childIdx: idx,
		seqDepth: depth,
	}
}

// reprice raises a node's cost to the cheapest bound among its child slots,
// counting resident children at their live cost and forgotten ones at their
// remembered cost. A slot that was never generated may still be as cheap as
// the node itself, so repricing waits until every slot has been seen once.
func (s *Solver) reprice(n *node) {
	minBound := -1
	for i, c := range n.children {
		bound := n.childCosts[i]
		if c != nil {
			bound = c.cost
		}
		if bound < 0 {
			return
		}
		if minBound < 0 || bound < minBound {
			minBound = bound
		}
	}
	if minBound > n.cost {
		n.cost = minBound
	}
}

// bubbleUp re-prices a fully resident node to the minimum cost among its
// children, then puts it back on the frontier. A node with no children left
// is a dead end and is dropped.
func (s *Solver) bubbleUp(n *node) {
	minCost := -1
	for _, c := range n.children {
		if c != nil && (minCost < 0 || c.cost < minCost) {
			minCost = c.cost
		}
	}
	if minCost < 0 {
		s.detach(n)
		return
	}
	if minCost > n.cost {
		n.cost = minCost
	}
	s.insert(n)
}

// detach removes a dead-end node from its parent. The slot is not reopened:
// regenerating a childless state could never make progress.
func (s *Solver) detach(n *node) {
	if n.parent == nil {
		return
	}
	// Removing the slot outright means the dead end can never be
	// regenerated.
	n.parent.candidates = append(n.parent.candidates[:n.childIdx], n.parent.candidates[n.childIdx+1:]...)
	n.parent.children = append(n.parent.children[:n.childIdx], n.parent.children[n.childIdx+1:]...)
	n.parent.childCosts = append(n.parent.childCosts[:n.childIdx], n.parent.childCosts[n.childIdx+1:]...)
	for _, sibling := range n.parent.children {
		if sibling != nil && sibling.childIdx > n.childIdx {
			sibling.childIdx--
		}
	}
}

// enqueue inserts a freshly generated child, evicting the worst resident
// node first if memory is full. The child itself and its parent are never
// eviction candidates.
func (s *Solver) enqueue(child, parent *node) error {
	if s.memLimit > 0 {
		for len(s.frontier)+1 >= s.memLimit {
			if !s.evictWorst(child, parent) {
				return errMemoryLimit
			}
		}
	}
	s.insert(child)
	return nil
}

// evictWorst forgets the highest-cost, then shallowest, resident leaf and
// backs its cost up into its parent's slot table.
func (s *Solver) evictWorst(protect1, protect2 *node) bool {
	for i := len(s.frontier) - 1; i > 0; i-- {
		victim := s.frontier[i]
		if victim == protect1 || victim == protect2 {
			continue
		}
		if victim.residentChildren() > 0 {
			// Forgetting an interior node would orphan its subtree.
			continue
		}
		s.frontier = append(s.frontier[:i], s.frontier[i+1:]...)
		if victim.parent != nil {
			victim.parent.children[victim.childIdx] = nil
			if victim.cost > victim.parent.childCosts[victim.childIdx] {
				victim.parent.childCosts[victim.childIdx] = victim.cost
			}
		}
		s.evictions++
		return true
	}
	return false
}

// insert places a node into the frontier, keeping it sorted by cost
// ascending with ties broken toward deeper paths.
func (s *Solver) insert(n *node) {
	i := sort.Search(len(s.frontier), func(i int) bool {
		other := s.frontier[i]
		if other.cost != n.cost {
			return other.cost > n.cost
		}
		return other.depth() < n.depth()
	})
	s.frontier = append(s.frontier, nil)
	copy(s.frontier[i+1:], s.frontier[i:])
	s.frontier[i] = n
}

func (s *Solver) popBest() *node {
	best := s.frontier[0]
	s.frontier = s.frontier[1:]
	return best
}
