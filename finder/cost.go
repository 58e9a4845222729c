package finder

import (
	"container/heap"

	"github.com/katalvlaran/pathgrid/grid"
)

// stepCost is the cost of one orthogonal move.
const stepCost = 1

// CostFinder is the cost-guided search shared by Dijkstra (no heuristic)
// and A* (Manhattan heuristic). Costs are run-scoped and stored in slices
// indexed by row-major cell index; Init reallocates them.
type CostFinder struct {
	base
	heuristic func(a, b *grid.Cell) int // nil for Dijkstra

	gCost    []int
	hCost    []int
	items    []*costItem // frontier entry per cell, nil when not in the frontier
	frontier costPQ
	seq      int
}

// NewDijkstra returns a uniform-cost Finder; its paths are shortest.
func NewDijkstra(g *grid.Grid, src, dst *grid.Cell, opts ...Option) (*CostFinder, error) {
	b, err := newBase(g, src, dst, opts)
	if err != nil {
		return nil, err
	}
	return &CostFinder{base: b}, nil
}

// NewAStar returns an A* Finder guided by Manhattan distance; its paths are
// shortest because the heuristic is consistent on unit-cost 4-connected grids.
func NewAStar(g *grid.Grid, src, dst *grid.Cell, opts ...Option) (*CostFinder, error) {
	b, err := newBase(g, src, dst, opts)
	if err != nil {
		return nil, err
	}
	return &CostFinder{base: b, heuristic: Manhattan}, nil
}

// Init allocates the cost slices, opens the source with g=0 and h set to
// its estimate, and seeds the heap.
func (f *CostFinder) Init() {
	n := f.grid.Len()
	f.gCost = make([]int, n)
	f.hCost = make([]int, n)
	f.items = make([]*costItem, n)
	f.frontier = make(costPQ, 0, n/4+1)
	f.seq = 0
	heap.Init(&f.frontier)

	si := f.grid.Index(f.src)
	f.hCost[si] = f.estimate(f.src)
	f.push(si)
	f.seed()
}

// Progress steps unless the token is cancelled or the search has ended.
func (f *CostFinder) Progress() {
	f.progress(f.Step)
}

// Step selects the frontier cell with the least key, closes it, checks for
// the destination and relaxes its walkable, non-closed neighbours.
// A Ready finder is initialised first.
func (f *CostFinder) Step() {
	if f.state == Ready {
		f.Init()
	}
	if f.state.Terminal() {
		return
	}
	if f.frontier.Len() == 0 {
		f.exhaust()
		return
	}

	item := heap.Pop(&f.frontier).(*costItem)
	f.items[item.idx] = nil
	cur := f.grid.At(item.idx)
	f.close(cur)

	if f.isGoal(cur) {
		f.reconstruct()
		return
	}

	if cur.Walkable {
		f.relax(cur)
	}

	if f.frontier.Len() == 0 {
		f.exhaust()
	}
}

// relax applies the shared Dijkstra/A* update rule to cur's neighbours.
func (f *CostFinder) relax(cur *grid.Cell) {
	curG := f.gCost[f.grid.Index(cur)]
	for _, nbr := range f.grid.Neighbors(cur, false) {
		if nbr.Closed {
			continue
		}
		ni := f.grid.Index(nbr)
		candidate := curG + stepCost
		if nbr.Opened && candidate >= f.gCost[ni] {
			continue
		}

		f.gCost[ni] = candidate
		f.hCost[ni] = f.estimate(nbr)
		if nbr.Opened {
			it := f.items[ni]
			it.f, it.h = f.fCost(ni), f.hCost[ni]
			heap.Fix(&f.frontier, it.index)
			f.grid.SetParent(nbr, cur)
			continue
		}
		f.push(ni)
		f.open(nbr, cur)
	}
}

// push inserts cell index i into the heap with its current key.
func (f *CostFinder) push(i int) {
	it := &costItem{idx: i, f: f.fCost(i), h: f.hCost[i], seq: f.seq}
	f.seq++
	f.items[i] = it
	heap.Push(&f.frontier, it)
}

func (f *CostFinder) estimate(c *grid.Cell) int {
	if f.heuristic == nil {
		return 0
	}
	return f.heuristic(c, f.dst)
}

func (f *CostFinder) fCost(i int) int {
	return f.gCost[i] + f.hCost[i]
}

// GCost returns the accumulated cost of c in the current run.
// Cells never opened report 0.
func (f *CostFinder) GCost(c *grid.Cell) int {
	if f.gCost == nil {
		return 0
	}
	return f.gCost[f.grid.Index(c)]
}

// HCost returns the heuristic estimate recorded for c; always 0 for Dijkstra.
func (f *CostFinder) HCost(c *grid.Cell) int {
	if f.hCost == nil {
		return 0
	}
	return f.hCost[f.grid.Index(c)]
}

// Frontier returns the number of opened cells awaiting expansion.
func (f *CostFinder) Frontier() int {
	return f.frontier.Len()
}
