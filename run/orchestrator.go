package run

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/pathgrid/finder"
	"github.com/katalvlaran/pathgrid/grid"
	"github.com/katalvlaran/pathgrid/mazegen"
)

// Orchestrator serializes searches, maze generation and host edits over a
// single grid.
type Orchestrator struct {
	opts Options
	log  *zap.Logger

	// runMu orders run lifecycle calls: StartRun, CancelRun, GenerateMaze, Close.
	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// mu guards the grid, the endpoints, rng and closed.
	mu       sync.Mutex
	grid     *grid.Grid
	src, dst *grid.Cell
	rng      *rand.Rand
	closed   bool

	running atomic.Int32
}

// New binds an Orchestrator to g and places the source and destination on
// two distinct random walkable cells.
func New(g *grid.Grid, opts ...Option) (*Orchestrator, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	orc := &Orchestrator{
		opts: o,
		log:  o.Logger,
		grid: g,
		rng:  rand.New(rand.NewSource(seed)),
	}
	orc.placeEndpoints(true)
	return orc, nil
}

// StartRun cancels any active run, waits for it to stop, resets the search
// flags and starts strategy from the current source to the current
// destination. The returned channel yields exactly one Result and is then
// closed.
func (o *Orchestrator) StartRun(strategy finder.Strategy) (<-chan Result, error) {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	o.stop()

	ctx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		cancel()
		return nil, ErrClosed
	}
	o.grid.ResetSearchState(false)
	f, err := finder.New(strategy, o.grid, o.src, o.dst, finder.WithContext(ctx))
	if err == nil {
		f.Init()
	}
	o.mu.Unlock()
	if err != nil {
		cancel()
		return nil, err
	}
	o.notify()

	id := uuid.New()
	results := make(chan Result, 1)
	o.cancel, o.done = cancel, make(chan struct{})
	o.running.Add(1)
	go o.execute(ctx, id, strategy, f, results, o.done)
	return results, nil
}

// execute paces the search and, when a path is found, its trace.
func (o *Orchestrator) execute(ctx context.Context, id uuid.UUID, strategy finder.Strategy,
	f finder.Finder, results chan<- Result, done chan<- struct{}) {
	defer close(done)
	defer o.running.Add(-1)

	log := o.log.With(zap.Stringer("run_id", id), zap.Stringer("strategy", strategy))
	log.Info("run started")
	start := time.Now()

	err := o.opts.Pacer.Pace(ctx, o.opts.SearchInterval, func() bool {
		o.mu.Lock()
		f.Progress()
		ended := f.Ended()
		o.mu.Unlock()
		o.notify()
		return ended
	})

	res := Result{RunID: id, Strategy: strategy, Steps: f.Steps()}
	switch {
	case err != nil:
		res.Outcome = Cancelled
	case !f.Found():
		res.Outcome = NotFound
	default:
		path := f.Path()
		if err = o.trace(ctx, path); err != nil {
			res.Outcome = Cancelled
		} else {
			res.Outcome = Found
			res.Path = path
		}
	}
	res.Elapsed = time.Since(start)

	log.Info("run finished",
		zap.Stringer("outcome", res.Outcome),
		zap.Int("steps", res.Steps),
		zap.Int("path_len", len(res.Path)),
		zap.Duration("elapsed", res.Elapsed),
	)
	results <- res
	close(results)
}

// trace marks path cells as PathNode one per tick, in path order.
func (o *Orchestrator) trace(ctx context.Context, path []*grid.Cell) error {
	if len(path) == 0 {
		return ctx.Err()
	}
	next := 0
	return o.opts.Pacer.Pace(ctx, o.opts.TraceInterval, func() bool {
		o.mu.Lock()
		path[next].PathNode = true
		o.mu.Unlock()
		next++
		o.notify()
		return next >= len(path)
	})
}

// stop cancels the active run and waits for its goroutine. Callers hold runMu.
func (o *Orchestrator) stop() {
	if o.cancel == nil {
		return
	}
	o.cancel()
	<-o.done
	o.cancel, o.done = nil, nil
}

// CancelRun stops the active run, if any, and waits for it to exit.
// Its Result reports Cancelled unless it had already finished.
func (o *Orchestrator) CancelRun() {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	o.stop()
}

// IsRunning reports whether a run goroutine is active.
func (o *Orchestrator) IsRunning() bool {
	return o.running.Load() > 0
}

// Close cancels the active run and rejects further runs.
func (o *Orchestrator) Close() {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	o.stop()
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
}

// GenerateMaze rewrites the walls with strategy. It is refused with
// ErrRunActive while a run is active. The orchestrator's random source is
// injected first, so opts may override it. Endpoints left on walls are moved
// to random walkable cells.
func (o *Orchestrator) GenerateMaze(strategy mazegen.Strategy, opts ...mazegen.Option) (mazegen.Stats, error) {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	if o.IsRunning() {
		return mazegen.Stats{}, ErrRunActive
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return mazegen.Stats{}, ErrClosed
	}
	seeded := append([]mazegen.Option{mazegen.WithRand(rand.New(rand.NewSource(o.rng.Int63())))}, opts...)
	gen, err := mazegen.New(strategy, seeded...)
	if err != nil {
		o.mu.Unlock()
		return mazegen.Stats{}, err
	}
	st, err := gen.Generate(o.grid)
	if err == nil {
		o.placeEndpoints(false)
	}
	o.mu.Unlock()
	if err != nil {
		return mazegen.Stats{}, err
	}

	o.log.Info("maze generated",
		zap.Stringer("strategy", strategy),
		zap.Int("rooms", st.Rooms),
		zap.Int("passages", st.Passages),
	)
	o.notify()
	return st, nil
}

// SetWall makes the cell at (x,y) a wall or clears it. Walls are refused on
// the source and destination; toggling elsewhere is allowed during a run.
func (o *Orchestrator) SetWall(x, y int, wall bool) error {
	_, err := o.editWall(x, y, func(bool) bool { return wall })
	return err
}

// ToggleWall flips the cell at (x,y) between wall and floor, subject to the
// same rule as SetWall. It returns the new wall state.
func (o *Orchestrator) ToggleWall(x, y int) (wall bool, err error) {
	return o.editWall(x, y, func(isWall bool) bool { return !isWall })
}

// editWall reads and writes the cell's wall state in one critical section.
// next maps the current wall state to the wanted one.
func (o *Orchestrator) editWall(x, y int, next func(wall bool) bool) (bool, error) {
	o.mu.Lock()
	c, err := o.grid.CellAt(x, y)
	var wall bool
	if err == nil {
		wall = next(!c.Walkable)
		if wall && (c == o.src || c == o.dst) {
			err = fmt.Errorf("%w: %v", ErrProtectedCell, c)
		}
	}
	if err == nil {
		c.Walkable = !wall
	}
	o.mu.Unlock()
	if err != nil {
		return false, err
	}
	o.notify()
	return wall, nil
}

// SetSource moves the source to the walkable cell at (x,y). The change
// applies to the next run.
func (o *Orchestrator) SetSource(x, y int) error {
	return o.setEndpoint(x, y, &o.src)
}

// SetDest moves the destination to the walkable cell at (x,y).
func (o *Orchestrator) SetDest(x, y int) error {
	return o.setEndpoint(x, y, &o.dst)
}

func (o *Orchestrator) setEndpoint(x, y int, slot **grid.Cell) error {
	o.mu.Lock()
	c, err := o.grid.CellAt(x, y)
	if err == nil && !c.Walkable {
		err = fmt.Errorf("%w: %v", ErrNotWalkable, c)
	}
	if err == nil {
		*slot = c
	}
	o.mu.Unlock()
	if err != nil {
		return err
	}
	o.notify()
	return nil
}

// ClearSearch cancels the active run and clears every search flag.
func (o *Orchestrator) ClearSearch() {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	o.stop()
	o.mu.Lock()
	o.grid.ResetSearchState(false)
	o.mu.Unlock()
	o.notify()
}

// ClearWalls cancels the active run, clears search flags and removes every wall.
func (o *Orchestrator) ClearWalls() {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	o.stop()
	o.mu.Lock()
	o.grid.ResetSearchState(false)
	o.grid.Fill(true)
	o.mu.Unlock()
	o.notify()
}

// View calls fn with the grid and endpoints under the orchestrator lock.
// fn must not retain the pointers or call back into the Orchestrator.
func (o *Orchestrator) View(fn func(g *grid.Grid, src, dst *grid.Cell)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.grid, o.src, o.dst)
}

// Endpoints returns copies of the current source and destination cells.
func (o *Orchestrator) Endpoints() (src, dst grid.Cell) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return *o.src, *o.dst
}

func (o *Orchestrator) notify() {
	o.opts.OnChange()
}

// placeEndpoints picks random walkable cells for the source and destination,
// keeping current ones that are still walkable unless force is set. With
// fewer than two walkable cells it falls back to the first and last cells.
// Callers hold mu.
func (o *Orchestrator) placeEndpoints(force bool) {
	keepSrc := !force && o.src != nil && o.src.Walkable
	keepDst := !force && o.dst != nil && o.dst.Walkable
	if keepSrc && keepDst {
		return
	}

	var free []*grid.Cell
	for i := 0; i < o.grid.Len(); i++ {
		c := o.grid.At(i)
		if c.Walkable && !(keepSrc && c == o.src) && !(keepDst && c == o.dst) {
			free = append(free, c)
		}
	}
	o.rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	take := func(fallback *grid.Cell) *grid.Cell {
		if len(free) == 0 {
			return fallback
		}
		c := free[0]
		free = free[1:]
		return c
	}
	if !keepSrc {
		o.src = take(o.grid.At(0))
	}
	if !keepDst {
		o.dst = take(o.grid.At(o.grid.Len() - 1))
	}
}
