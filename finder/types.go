package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/pathgrid/grid"
)

// Sentinel errors for finder construction.
var (
	// ErrNilGrid is returned when a nil *grid.Grid is passed to a constructor.
	ErrNilGrid = errors.New("finder: grid is nil")

	// ErrNilCell is returned when the source or destination is nil.
	ErrNilCell = errors.New("finder: source and destination must be non-nil")

	// ErrUnknownStrategy is returned for an unsupported Strategy value or name.
	ErrUnknownStrategy = errors.New("finder: unknown strategy")
)

// State is the lifecycle position of a Finder.
type State int

const (
	// Ready: constructed, Init not yet called.
	Ready State = iota
	// Running: frontier seeded, steps in progress.
	Running
	// Found: destination closed, path reconstructed. Terminal.
	Found
	// Exhausted: frontier emptied without reaching the destination. Terminal.
	Exhausted
)

// Terminal reports whether s is Found or Exhausted.
func (s State) Terminal() bool {
	return s == Found || s == Exhausted
}

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Strategy names one of the search orderings.
type Strategy int

const (
	// BreadthFirst expands cells in FIFO order.
	BreadthFirst Strategy = iota
	// DepthFirst expands cells in LIFO order; paths are not guaranteed shortest.
	DepthFirst
	// Dijkstra expands the cell with the least accumulated cost.
	Dijkstra
	// AStar expands the cell with the least cost plus Manhattan estimate.
	AStar
)

// Strategies lists every supported Strategy in declaration order.
var Strategies = []Strategy{BreadthFirst, DepthFirst, Dijkstra, AStar}

func (s Strategy) String() string {
	switch s {
	case BreadthFirst:
		return "bfs"
	case DepthFirst:
		return "dfs"
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a case-insensitive name ("bfs", "dfs", "dijkstra",
// "astar" or "a*") to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth-first":
		return DepthFirst, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*":
		return AStar, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Finder is the common contract of every search strategy.
//
// Init seeds the frontier and must be called once on a freshly reset grid;
// calling it twice without grid.ResetSearchState in between is undefined.
// Step advances exactly one unit of work and is a no-op after a terminal
// state. Progress is Step guarded by the cancellation token.
type Finder interface {
	Init()
	Step()
	Progress()

	State() State
	Found() bool
	Ended() bool
	// Path runs from the cell after Source through Dest inclusive.
	// It is empty unless Found.
	Path() []*grid.Cell
	// Err reports the cancellation token's error, nil while live.
	Err() error
	// Steps counts the Step calls that popped a frontier cell.
	Steps() int

	Source() *grid.Cell
	Dest() *grid.Cell
}

// Option configures optional Finder behaviour via functional arguments.
type Option func(*Options)

// Options holds the cancellation token and observation hooks.
type Options struct {
	// Ctx is the cancellation token checked by Progress.
	Ctx context.Context

	// OnOpen is called when a cell joins the frontier (including the source).
	OnOpen func(c *grid.Cell)

	// OnClose is called when a cell is popped and closed.
	OnClose func(c *grid.Cell)
}

// DefaultOptions returns Options with a background context and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnOpen:  func(*grid.Cell) {},
		OnClose: func(*grid.Cell) {},
	}
}

// WithContext sets the cancellation token. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnOpen registers a callback run whenever a cell is opened.
func WithOnOpen(fn func(c *grid.Cell)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnOpen = fn
		}
	}
}

// WithOnClose registers a callback run whenever a cell is closed.
func WithOnClose(fn func(c *grid.Cell)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnClose = fn
		}
	}
}
