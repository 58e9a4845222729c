package grid

import (
	"fmt"
	"math"
)

// neighborOffsets lists 4-connected offsets in the fixed order down, up,
// right, left. The order decides tie-breaks in BFS and DFS.
var neighborOffsets = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// New constructs a width×height grid with every cell walkable.
// The world layout is the identity: one world unit per cell, no padding.
// Returns ErrEmptyGrid if width or height is below one.
// Complexity: O(W×H) time and memory.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyGrid, width, height)
	}
	g := &Grid{
		width:    width,
		height:   height,
		size:     Point{X: float64(width), Y: float64(height)},
		tileSize: 1,
	}
	g.allocate()

	return g, nil
}

// NewFromWorld derives the grid dimensions from a world extent:
//
//	numTiles = floor((size + padding) / (tileSize + padding))
//
// per axis. The tile size is then stretched so the last column ends flush
// with the right edge of the world.
// Returns ErrOptionViolation for bad options and ErrEmptyGrid when the world
// is too small to hold a single tile.
func NewFromWorld(origin, size Point, opts ...Option) (*Grid, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	outer := o.TileSize + o.Padding
	w := int(math.Floor((size.X + o.Padding) / outer))
	h := int(math.Floor((size.Y + o.Padding) / outer))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: world %vx%v holds %dx%d tiles", ErrEmptyGrid, size.X, size.Y, w, h)
	}

	g := &Grid{
		width:    w,
		height:   h,
		origin:   origin,
		size:     size,
		tileSize: (size.X+o.Padding)/float64(w) - o.Padding,
		padding:  o.Padding,
	}
	g.allocate()

	return g, nil
}

// allocate builds the row-major cell storage once.
func (g *Grid) allocate() {
	g.cells = make([]Cell, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.cells[g.index(x, y)] = Cell{X: x, Y: y, Walkable: true, parent: noParent}
		}
	}
}

// Dimensions returns the grid size in cells.
func (g *Grid) Dimensions() (width, height int) {
	return g.width, g.height
}

// Len returns width*height.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cells exposes the row-major storage for read access by renderers.
// Callers must not append to or reslice the returned slice.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// InBounds reports whether (x,y) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// index maps (x,y) to a row-major index: y*width + x.
func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// Index returns the row-major index of c.
func (g *Grid) Index(c *Cell) int {
	return g.index(c.X, c.Y)
}

// Coordinate converts a row-major index back to (x,y).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.width, idx / g.width
}

// At returns the cell stored at row-major index idx.
func (g *Grid) At(idx int) *Cell {
	return &g.cells[idx]
}

// CellAt returns the cell at (x,y), or ErrOutOfBounds.
func (g *Grid) CellAt(x, y int) (*Cell, error) {
	if !g.InBounds(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return &g.cells[g.index(x, y)], nil
}

// MustCellAt is CellAt for callers that treat bad coordinates as a bug.
// It panics with an error wrapping ErrOutOfBounds.
func (g *Grid) MustCellAt(x, y int) *Cell {
	c, err := g.CellAt(x, y)
	if err != nil {
		panic(err)
	}
	return c
}

// Neighbors returns the in-bounds orthogonal neighbours of c in the order
// down, up, right, left. Non-walkable neighbours are skipped unless
// includeUnwalkable is set.
func (g *Grid) Neighbors(c *Cell, includeUnwalkable bool) []*Cell {
	out := make([]*Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		nx, ny := c.X+d[0], c.Y+d[1]
		if !g.InBounds(nx, ny) {
			continue
		}
		n := &g.cells[g.index(nx, ny)]
		if includeUnwalkable || n.Walkable {
			out = append(out, n)
		}
	}
	return out
}

// Parent returns the predecessor of c, or nil.
func (g *Grid) Parent(c *Cell) *Cell {
	if c.parent == noParent {
		return nil
	}
	return &g.cells[c.parent]
}

// SetParent links c to p; a nil p clears the link.
func (g *Grid) SetParent(c, p *Cell) {
	if p == nil {
		c.parent = noParent
		return
	}
	c.parent = g.index(p.X, p.Y)
}

// ResetSearchState clears Opened, Closed and PathNode on every cell, and the
// parent links unless keepParents is set. Calling it twice is the same as
// calling it once.
// Complexity: O(W×H).
func (g *Grid) ResetSearchState(keepParents bool) {
	for i := range g.cells {
		g.cells[i].reset(keepParents)
	}
}

// Fill sets Walkable on every cell.
func (g *Grid) Fill(walkable bool) {
	for i := range g.cells {
		g.cells[i].Walkable = walkable
	}
}

// WorldToCell maps a world coordinate to the cell under it. Coordinates
// outside the world are clamped to the border cells, so it never fails.
func (g *Grid) WorldToCell(wx, wy float64) *Cell {
	px := (wx - g.origin.X) / g.size.X
	py := (wy - g.origin.Y) / g.size.Y

	x := clamp(int(math.Floor(float64(g.width)*px)), 0, g.width-1)
	y := clamp(int(math.Floor(float64(g.height)*py)), 0, g.height-1)

	return &g.cells[g.index(x, y)]
}

// CellOrigin returns the world top-left corner of c.
func (g *Grid) CellOrigin(c *Cell) Point {
	outer := g.tileSize + g.padding
	return Point{
		X: g.origin.X + outer*float64(c.X),
		Y: g.origin.Y + outer*float64(c.Y),
	}
}

// TileSize returns the adjusted world size of one cell.
func (g *Grid) TileSize() float64 {
	return g.tileSize
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
