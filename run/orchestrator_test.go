package run_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/pathgrid/finder"
	"github.com/katalvlaran/pathgrid/grid"
	"github.com/katalvlaran/pathgrid/mazegen"
	"github.com/katalvlaran/pathgrid/run"
)

// newOrchestrator builds an open w×h grid with immediate pacing and the
// endpoints pinned to opposite corners.
func newOrchestrator(t *testing.T, w, h int, opts ...run.Option) *run.Orchestrator {
	t.Helper()
	g, err := grid.New(w, h)
	require.NoError(t, err)
	opts = append([]run.Option{run.WithPacer(run.ImmediatePacer{}), run.WithSeed(1)}, opts...)
	o, err := run.New(g, opts...)
	require.NoError(t, err)
	require.NoError(t, o.SetSource(0, 0))
	require.NoError(t, o.SetDest(w-1, h-1))
	t.Cleanup(o.Close)
	return o
}

// await receives the single Result of a run.
func await(t *testing.T, ch <-chan run.Result) run.Result {
	t.Helper()
	select {
	case res, ok := <-ch:
		require.True(t, ok, "result channel closed without a result")
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish")
		return run.Result{}
	}
}

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew_Errors(t *testing.T) {
	_, err := run.New(nil)
	assert.ErrorIs(t, err, run.ErrNilGrid)

	g, err := grid.New(3, 3)
	require.NoError(t, err)
	_, err = run.New(g, run.WithSearchInterval(-time.Second))
	assert.ErrorIs(t, err, run.ErrOptionViolation)
	_, err = run.New(g, run.WithTraceInterval(-time.Second))
	assert.ErrorIs(t, err, run.ErrOptionViolation)
}

// TestNew_Endpoints places distinct walkable endpoints, falling back to the
// only cell on a 1×1 grid.
func TestNew_Endpoints(t *testing.T) {
	g, err := grid.New(6, 4)
	require.NoError(t, err)
	o, err := run.New(g, run.WithSeed(5))
	require.NoError(t, err)
	src, dst := o.Endpoints()
	assert.True(t, src.Walkable)
	assert.True(t, dst.Walkable)
	assert.NotEqual(t, [2]int{src.X, src.Y}, [2]int{dst.X, dst.Y})

	one, err := grid.New(1, 1)
	require.NoError(t, err)
	o, err = run.New(one)
	require.NoError(t, err)
	src, dst = o.Endpoints()
	assert.Equal(t, [2]int{0, 0}, [2]int{src.X, src.Y})
	assert.Equal(t, [2]int{0, 0}, [2]int{dst.X, dst.Y})
}

//----------------------------------------------------------------------------//
// Runs
//----------------------------------------------------------------------------//

// TestStartRun_Found searches, traces and reports the path.
func TestStartRun_Found(t *testing.T) {
	for _, s := range finder.Strategies {
		t.Run(s.String(), func(t *testing.T) {
			o := newOrchestrator(t, 5, 5)
			ch, err := o.StartRun(s)
			require.NoError(t, err)
			res := await(t, ch)

			assert.Equal(t, run.Found, res.Outcome)
			assert.Equal(t, s, res.Strategy)
			assert.NotEqual(t, uuid.Nil, res.RunID)
			assert.Positive(t, res.Steps)
			require.NotEmpty(t, res.Path)
			if s != finder.DepthFirst {
				assert.Len(t, res.Path, 8)
			}

			o.View(func(g *grid.Grid, src, dst *grid.Cell) {
				assert.Same(t, dst, res.Path[len(res.Path)-1])
				for _, c := range res.Path {
					assert.True(t, c.PathNode, "%v traced", c)
				}
				assert.False(t, src.PathNode)
			})

			_, open := <-ch
			assert.False(t, open, "channel closes after the result")
			assert.Eventually(t, func() bool { return !o.IsRunning() }, time.Second, time.Millisecond)
		})
	}
}

// TestStartRun_NotFound walls off the destination.
func TestStartRun_NotFound(t *testing.T) {
	o := newOrchestrator(t, 5, 5)
	require.NoError(t, o.SetWall(3, 4, true))
	require.NoError(t, o.SetWall(4, 3, true))

	ch, err := o.StartRun(finder.AStar)
	require.NoError(t, err)
	res := await(t, ch)
	assert.Equal(t, run.NotFound, res.Outcome)
	assert.Empty(t, res.Path)
	assert.Equal(t, 22, res.Steps, "every reachable cell is expanded")
}

// TestStartRun_SourceIsDest finds immediately with nothing to trace.
func TestStartRun_SourceIsDest(t *testing.T) {
	o := newOrchestrator(t, 3, 3)
	require.NoError(t, o.SetDest(0, 0))
	ch, err := o.StartRun(finder.BreadthFirst)
	require.NoError(t, err)
	res := await(t, ch)
	assert.Equal(t, run.Found, res.Outcome)
	assert.Empty(t, res.Path)
}

// TestStartRun_Supersedes cancels the active run before starting the next.
func TestStartRun_Supersedes(t *testing.T) {
	o := newOrchestrator(t, 8, 8,
		run.WithPacer(run.TickerPacer{}),
		run.WithSearchInterval(time.Hour),
	)

	first, err := o.StartRun(finder.BreadthFirst)
	require.NoError(t, err)
	assert.True(t, o.IsRunning())

	second, err := o.StartRun(finder.Dijkstra)
	require.NoError(t, err)

	// the first goroutine has exited by the time StartRun returns
	select {
	case res := <-first:
		assert.Equal(t, run.Cancelled, res.Outcome)
		assert.Equal(t, finder.BreadthFirst, res.Strategy)
		assert.Empty(t, res.Path)
	default:
		t.Fatal("superseded run did not report")
	}
	assert.True(t, o.IsRunning())

	_, err = o.GenerateMaze(mazegen.Backtracker)
	assert.ErrorIs(t, err, run.ErrRunActive)

	o.CancelRun()
	assert.False(t, o.IsRunning())
	res := await(t, second)
	assert.Equal(t, run.Cancelled, res.Outcome)
	assert.Zero(t, res.Steps)

	o.View(func(g *grid.Grid, src, _ *grid.Cell) {
		assert.True(t, src.Opened, "partial state is kept after cancellation")
	})
}

// TestStartRun_SupersedingRunCompletes lets the newer run reach its own
// outcome once the older one is cancelled.
func TestStartRun_SupersedingRunCompletes(t *testing.T) {
	o := newOrchestrator(t, 12, 12,
		run.WithPacer(run.TickerPacer{}),
		run.WithSearchInterval(time.Millisecond),
		run.WithTraceInterval(time.Millisecond),
	)

	first := mustStart(t, o, finder.BreadthFirst)
	second := mustStart(t, o, finder.AStar)

	res := await(t, first)
	assert.Equal(t, run.Cancelled, res.Outcome)
	assert.Equal(t, finder.BreadthFirst, res.Strategy)

	res = await(t, second)
	assert.Equal(t, run.Found, res.Outcome)
	assert.Equal(t, finder.AStar, res.Strategy)
	require.Len(t, res.Path, 22)
	assert.Equal(t, [2]int{11, 11}, [2]int{res.Path[21].X, res.Path[21].Y})
	assert.Eventually(t, func() bool { return !o.IsRunning() }, time.Second, time.Millisecond)
}

// TestStartRun_UnknownStrategy surfaces the finder error.
func TestStartRun_UnknownStrategy(t *testing.T) {
	o := newOrchestrator(t, 3, 3)
	_, err := o.StartRun(finder.Strategy(99))
	assert.ErrorIs(t, err, finder.ErrUnknownStrategy)
	assert.False(t, o.IsRunning())
}

// TestStartRun_ResetsPreviousFlags starts from a clean slate every time.
func TestStartRun_ResetsPreviousFlags(t *testing.T) {
	o := newOrchestrator(t, 6, 6)
	res := await(t, mustStart(t, o, finder.BreadthFirst))
	require.Equal(t, run.Found, res.Outcome)

	require.NoError(t, o.SetDest(1, 0))
	res = await(t, mustStart(t, o, finder.BreadthFirst))
	require.Equal(t, run.Found, res.Outcome)
	o.View(func(g *grid.Grid, _, _ *grid.Cell) {
		assert.False(t, g.MustCellAt(5, 5).Closed)
		assert.False(t, g.MustCellAt(5, 5).PathNode)
	})
}

func mustStart(t *testing.T, o *run.Orchestrator, s finder.Strategy) <-chan run.Result {
	t.Helper()
	ch, err := o.StartRun(s)
	require.NoError(t, err)
	return ch
}

//----------------------------------------------------------------------------//
// Host mutators
//----------------------------------------------------------------------------//

func TestSetWall(t *testing.T) {
	o := newOrchestrator(t, 4, 4)

	assert.ErrorIs(t, o.SetWall(0, 0, true), run.ErrProtectedCell)
	assert.ErrorIs(t, o.SetWall(3, 3, true), run.ErrProtectedCell)
	assert.NoError(t, o.SetWall(0, 0, false), "clearing an endpoint is harmless")
	assert.ErrorIs(t, o.SetWall(9, 0, true), grid.ErrOutOfBounds)

	wall, err := o.ToggleWall(1, 1)
	require.NoError(t, err)
	assert.True(t, wall)
	wall, err = o.ToggleWall(1, 1)
	require.NoError(t, err)
	assert.False(t, wall)

	_, err = o.ToggleWall(0, 0)
	assert.ErrorIs(t, err, run.ErrProtectedCell)
}

// TestToggleWall_Concurrent applies every toggle exactly once.
func TestToggleWall_Concurrent(t *testing.T) {
	o := newOrchestrator(t, 4, 4)
	const toggles = 200

	var walls atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wall, err := o.ToggleWall(2, 1)
			assert.NoError(t, err)
			if wall {
				walls.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, toggles/2, walls.Load(), "toggles alternate between wall and floor")
	o.View(func(g *grid.Grid, _, _ *grid.Cell) {
		assert.True(t, g.MustCellAt(2, 1).Walkable, "an even number of toggles restores the floor")
	})
}

func TestSetEndpoints(t *testing.T) {
	o := newOrchestrator(t, 4, 4)
	require.NoError(t, o.SetWall(2, 2, true))

	assert.ErrorIs(t, o.SetSource(2, 2), run.ErrNotWalkable)
	assert.ErrorIs(t, o.SetDest(2, 2), run.ErrNotWalkable)
	assert.ErrorIs(t, o.SetSource(-1, 0), grid.ErrOutOfBounds)

	require.NoError(t, o.SetSource(1, 2))
	require.NoError(t, o.SetDest(3, 0))
	src, dst := o.Endpoints()
	assert.Equal(t, [4]int{1, 2, 3, 0}, [4]int{src.X, src.Y, dst.X, dst.Y})
}

// TestGenerateMaze relocates endpoints stranded on new walls.
func TestGenerateMaze(t *testing.T) {
	o := newOrchestrator(t, 21, 21)
	// (1,1) is never a room, so every maze walls it
	require.NoError(t, o.SetSource(1, 1))

	st, err := o.GenerateMaze(mazegen.Backtracker)
	require.NoError(t, err)
	assert.Equal(t, 121, st.Rooms)
	assert.Equal(t, 120, st.Passages)

	src, dst := o.Endpoints()
	assert.True(t, src.Walkable)
	assert.True(t, dst.Walkable)
	assert.Equal(t, [2]int{20, 20}, [2]int{dst.X, dst.Y}, "walkable destination stays")
	assert.NotEqual(t, [2]int{src.X, src.Y}, [2]int{dst.X, dst.Y})

	res := await(t, mustStart(t, o, finder.AStar))
	assert.Equal(t, run.Found, res.Outcome, "perfect mazes connect every room")

	_, err = o.GenerateMaze(mazegen.UnionFind, mazegen.WithJoinChance(2))
	assert.ErrorIs(t, err, mazegen.ErrOptionViolation)
}

func TestClear(t *testing.T) {
	o := newOrchestrator(t, 5, 5)
	require.NoError(t, o.SetWall(2, 2, true))
	res := await(t, mustStart(t, o, finder.BreadthFirst))
	require.Equal(t, run.Found, res.Outcome)

	o.ClearSearch()
	o.View(func(g *grid.Grid, _, _ *grid.Cell) {
		for _, c := range g.Cells() {
			assert.False(t, c.Visited() || c.PathNode, "%v", &c)
		}
		assert.False(t, g.MustCellAt(2, 2).Walkable)
	})

	o.ClearWalls()
	o.View(func(g *grid.Grid, _, _ *grid.Cell) {
		assert.Equal(t, g.Len(), g.CountWalkable())
	})
}

func TestClose(t *testing.T) {
	o := newOrchestrator(t, 3, 3)
	o.Close()
	_, err := o.StartRun(finder.BreadthFirst)
	assert.ErrorIs(t, err, run.ErrClosed)
	_, err = o.GenerateMaze(mazegen.Empty)
	assert.ErrorIs(t, err, run.ErrClosed)
}

//----------------------------------------------------------------------------//
// Notifications and logging
//----------------------------------------------------------------------------//

func TestOnChangeAndLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var changes atomic.Int32
	o := newOrchestrator(t, 4, 4,
		run.WithLogger(zap.New(core)),
		run.WithOnChange(func() { changes.Add(1) }),
	)
	before := changes.Load()
	res := await(t, mustStart(t, o, finder.BreadthFirst))
	require.Equal(t, run.Found, res.Outcome)

	// start, one per search step, one per traced cell
	assert.GreaterOrEqual(t, int(changes.Load()-before), 1+res.Steps+len(res.Path))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("run finished").Len() == 1
	}, time.Second, time.Millisecond)
	entry := logs.FilterMessage("run finished").All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "found", fields["outcome"])
	assert.Equal(t, res.RunID.String(), fields["run_id"])
	assert.Equal(t, "bfs", fields["strategy"])
	assert.EqualValues(t, len(res.Path), fields["path_len"])
}

//----------------------------------------------------------------------------//
// Pacers
//----------------------------------------------------------------------------//

func TestPacers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ticks := 0
	err := run.ImmediatePacer{}.Pace(ctx, 0, func() bool { ticks++; return false })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, ticks)

	for _, interval := range []time.Duration{0, time.Millisecond} {
		ticks = 0
		err = run.TickerPacer{}.Pace(context.Background(), interval, func() bool {
			ticks++
			return ticks == 3
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, ticks)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err = run.TickerPacer{}.Pace(ctx, time.Hour, func() bool { return true })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "found", run.Found.String())
	assert.Equal(t, "not_found", run.NotFound.String())
	assert.Equal(t, "cancelled", run.Cancelled.String())
	assert.Equal(t, "Outcome(7)", run.Outcome(7).String())
}
