package finder

import (
	"github.com/katalvlaran/pathgrid/grid"
)

// QueueFinder is the unweighted search shared by BFS (FIFO frontier) and
// DFS (LIFO frontier). A neighbour is opened, linked to its parent and pushed
// exactly once per run.
type QueueFinder struct {
	base
	lifo     bool
	frontier []*grid.Cell
}

// NewBFS returns a breadth-first Finder; its paths are shortest in steps.
func NewBFS(g *grid.Grid, src, dst *grid.Cell, opts ...Option) (*QueueFinder, error) {
	b, err := newBase(g, src, dst, opts)
	if err != nil {
		return nil, err
	}
	return &QueueFinder{base: b}, nil
}

// NewDFS returns a depth-first Finder. Its path is valid but not
// necessarily shortest.
func NewDFS(g *grid.Grid, src, dst *grid.Cell, opts ...Option) (*QueueFinder, error) {
	b, err := newBase(g, src, dst, opts)
	if err != nil {
		return nil, err
	}
	return &QueueFinder{base: b, lifo: true}, nil
}

// Init opens the source and seeds the frontier with it.
func (f *QueueFinder) Init() {
	f.frontier = append(f.frontier[:0], f.src)
	f.seed()
}

// Progress steps unless the token is cancelled or the search has ended.
func (f *QueueFinder) Progress() {
	f.progress(f.Step)
}

// Step pops one cell, closes it, checks for the destination and pushes the
// walkable, unseen neighbours. A Ready finder is initialised first.
func (f *QueueFinder) Step() {
	if f.state == Ready {
		f.Init()
	}
	if f.state.Terminal() {
		return
	}
	if len(f.frontier) == 0 {
		f.exhaust()
		return
	}

	cur := f.pop()
	f.close(cur)

	if f.isGoal(cur) {
		f.reconstruct()
		return
	}

	if cur.Walkable {
		for _, nbr := range f.grid.Neighbors(cur, false) {
			if nbr.Visited() {
				continue
			}
			f.open(nbr, cur)
			f.frontier = append(f.frontier, nbr)
		}
	}

	if len(f.frontier) == 0 {
		f.exhaust()
	}
}

// pop removes the next cell according to the frontier discipline.
func (f *QueueFinder) pop() *grid.Cell {
	if f.lifo {
		last := len(f.frontier) - 1
		c := f.frontier[last]
		f.frontier[last] = nil
		f.frontier = f.frontier[:last]
		return c
	}
	c := f.frontier[0]
	f.frontier[0] = nil
	f.frontier = f.frontier[1:]
	return c
}

// Frontier returns the number of opened cells awaiting expansion.
func (f *QueueFinder) Frontier() int {
	return len(f.frontier)
}
