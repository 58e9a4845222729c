package finder

import (
	"fmt"

	"github.com/katalvlaran/pathgrid/grid"
)

// New builds the Finder for strategy over g, searching from src to dst.
// Returns ErrNilGrid, ErrNilCell or ErrUnknownStrategy for invalid input.
func New(strategy Strategy, g *grid.Grid, src, dst *grid.Cell, opts ...Option) (Finder, error) {
	b, err := newBase(g, src, dst, opts)
	if err != nil {
		return nil, err
	}
	switch strategy {
	case BreadthFirst:
		return &QueueFinder{base: b}, nil
	case DepthFirst:
		return &QueueFinder{base: b, lifo: true}, nil
	case Dijkstra:
		return &CostFinder{base: b}, nil
	case AStar:
		return &CostFinder{base: b, heuristic: Manhattan}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
}

// Run drives f until it ends or its token is cancelled. A Ready finder is
// initialised first. Returns the token's error when cancelled, nil otherwise;
// an exhausted search is not an error.
func Run(f Finder) error {
	if f.State() == Ready {
		f.Init()
	}
	for !f.Ended() {
		if err := f.Err(); err != nil {
			return err
		}
		f.Progress()
	}
	return nil
}

// Manhattan returns |dx| + |dy| between a and b. It is admissible and
// consistent for unit-cost 4-directional movement.
func Manhattan(a, b *grid.Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// base holds the state shared by every strategy.
type base struct {
	grid  *grid.Grid
	src   *grid.Cell
	dst   *grid.Cell
	opts  Options
	state State
	path  []*grid.Cell
	steps int
}

// newBase validates inputs and applies options.
func newBase(g *grid.Grid, src, dst *grid.Cell, opts []Option) (base, error) {
	if g == nil {
		return base{}, ErrNilGrid
	}
	if src == nil || dst == nil {
		return base{}, ErrNilCell
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return base{grid: g, src: src, dst: dst, opts: o, state: Ready}, nil
}

func (b *base) State() State       { return b.state }
func (b *base) Found() bool        { return b.state == Found }
func (b *base) Ended() bool        { return b.state.Terminal() }
func (b *base) Path() []*grid.Cell { return b.path }
func (b *base) Steps() int         { return b.steps }
func (b *base) Source() *grid.Cell { return b.src }
func (b *base) Dest() *grid.Cell   { return b.dst }
func (b *base) Err() error         { return b.opts.Ctx.Err() }

// progress runs step unless the finder is terminal or cancelled.
func (b *base) progress(step func()) {
	if b.state.Terminal() || b.opts.Ctx.Err() != nil {
		return
	}
	step()
}

// seed marks the source as the opened root of the search tree.
func (b *base) seed() {
	b.src.Opened = true
	b.grid.SetParent(b.src, nil)
	b.opts.OnOpen(b.src)
	b.state = Running
}

// close marks c expanded and counts the step.
func (b *base) close(c *grid.Cell) {
	c.Closed = true
	b.steps++
	b.opts.OnClose(c)
}

// open records c as discovered from parent.
func (b *base) open(c, parent *grid.Cell) {
	c.Opened = true
	b.grid.SetParent(c, parent)
	b.opts.OnOpen(c)
}

// isGoal reports whether closing c finishes the search.
func (b *base) isGoal(c *grid.Cell) bool {
	return c == b.dst && c.Walkable
}

// exhaust ends the search without a path.
func (b *base) exhaust() {
	b.state = Exhausted
	b.path = nil
}

// reconstruct walks parent links back from the destination, excluding the
// source, reverses them and ends the search as Found.
func (b *base) reconstruct() {
	var path []*grid.Cell
	for cur := b.dst; cur != nil && cur != b.src; cur = b.grid.Parent(cur) {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	b.path = path
	b.state = Found
}
