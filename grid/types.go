package grid

import "fmt"

// noParent marks a cell without a predecessor.
const noParent = -1

const (
	// DefaultTileSize is the world size of one cell when none is supplied.
	DefaultTileSize = 26.0
	// DefaultPadding is the world gap between two adjacent cells.
	DefaultPadding = 1.0
)

// Point is a position or extent in continuous world coordinates.
type Point struct {
	X, Y float64
}

// Cell is the mutable search and maze state of a single grid position.
//
// X and Y never change after construction. Walkable survives searches;
// Opened, Closed, PathNode and the parent link are run-scoped and cleared by
// Grid.ResetSearchState.
type Cell struct {
	X, Y int // Coordinates within the grid

	Walkable bool // false marks a wall
	Opened   bool // discovered, not yet expanded
	Closed   bool // expanded, never re-opened within a run
	PathNode bool // marked by the trace phase of a run

	parent int // row-major index of the predecessor, noParent if unset
}

// Visited reports whether the cell has been seen by the current search.
func (c *Cell) Visited() bool {
	return c.Opened || c.Closed
}

// HasParent reports whether the cell carries a predecessor link.
func (c *Cell) HasParent() bool {
	return c.parent != noParent
}

// String formats the cell as "(x,y)".
func (c *Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// reset clears the run-scoped flags of c.
func (c *Cell) reset(keepParent bool) {
	c.Opened = false
	c.Closed = false
	c.PathNode = false
	if !keepParent {
		c.parent = noParent
	}
}

// Options holds the world-layout parameters used by NewFromWorld.
type Options struct {
	// TileSize is the requested world size of one cell, before the
	// flush-fit adjustment.
	TileSize float64
	// Padding is the gap between neighbouring cells.
	Padding float64

	err error
}

// Option configures NewFromWorld. Invalid values are recorded and surfaced
// as ErrOptionViolation when the grid is built.
type Option func(*Options)

// DefaultOptions returns Options{TileSize: DefaultTileSize, Padding: DefaultPadding}.
func DefaultOptions() Options {
	return Options{
		TileSize: DefaultTileSize,
		Padding:  DefaultPadding,
	}
}

// WithTileSize sets the requested cell size; it must be positive.
func WithTileSize(size float64) Option {
	return func(o *Options) {
		if size <= 0 {
			o.err = fmt.Errorf("%w: tile size must be positive (%v)", ErrOptionViolation, size)
			return
		}
		o.TileSize = size
	}
}

// WithPadding sets the gap between cells; it must not be negative.
func WithPadding(pad float64) Option {
	return func(o *Options) {
		if pad < 0 {
			o.err = fmt.Errorf("%w: padding cannot be negative (%v)", ErrOptionViolation, pad)
			return
		}
		o.Padding = pad
	}
}

// Grid is a rectangular board of Cells stored row-major.
// The length of cells is always width*height and the slice is never
// reallocated, so *Cell values handed out remain valid for the grid's lifetime.
type Grid struct {
	width, height int
	cells         []Cell

	origin   Point   // world top-left
	size     Point   // world extent
	tileSize float64 // adjusted world size of one cell
	padding  float64
}
