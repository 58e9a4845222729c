package httphost

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/katalvlaran/pathgrid/finder"
	"github.com/katalvlaran/pathgrid/grid"
	"github.com/katalvlaran/pathgrid/mazegen"
	"github.com/katalvlaran/pathgrid/render"
	"github.com/katalvlaran/pathgrid/run"
)

// Controller handles HTTP requests against one orchestrator.
type Controller struct {
	orc      *run.Orchestrator
	log      *zap.Logger
	strategy finder.Strategy
	mazeOpts []mazegen.Option

	mu   sync.Mutex
	last *run.Result
	seq  uint64 // generation of the most recently started run
	wg   sync.WaitGroup
}

// NewController creates a Controller. strategy is used when a run request
// names none; mazeOpts are applied before per-request maze settings.
func NewController(orc *run.Orchestrator, log *zap.Logger, strategy finder.Strategy, mazeOpts ...mazegen.Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{orc: orc, log: log, strategy: strategy, mazeOpts: mazeOpts}
}

// RegisterPublic registers every route on route.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/grid", c.snapshot)
	route.GET("/cell", c.hitTest)
	route.POST("/cells/toggle", c.toggleWall)
	route.POST("/source", c.setSource)
	route.POST("/dest", c.setDest)
	route.POST("/maze", c.generateMaze)
	route.POST("/clear", c.clear)

	runs := route.Group("/runs")
	{
		runs.POST("", c.startRun)
		runs.DELETE("", c.cancelRun)
		runs.GET("/status", c.status)
	}
}

// Wait blocks until every started run has reported its result.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// snapshot renders the whole grid.
func (c *Controller) snapshot(ctx *gin.Context) {
	var resp GridResponse
	c.orc.View(func(g *grid.Grid, src, dst *grid.Cell) {
		resp.Width, resp.Height = g.Dimensions()
		resp.Source, resp.Dest = position(src), position(dst)
		var tally render.Tally
		resp.Rows, tally = render.Frame(g, src, dst, nil)
		resp.Summary = tally.String()
	})
	resp.Running = c.orc.IsRunning()
	ctx.JSON(http.StatusOK, resp)
}

// hitTest maps world coordinates to the cell under them.
func (c *Controller) hitTest(ctx *gin.Context) {
	var q HitQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var resp CellResponse
	c.orc.View(func(g *grid.Grid, src, dst *grid.Cell) {
		cell := g.WorldToCell(*q.X, *q.Y)
		resp = describe(cell, src, dst)
	})
	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) toggleWall(ctx *gin.Context) {
	var req CellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := c.orc.ToggleWall(*req.X, *req.Y); err != nil {
		c.fail(ctx, err)
		return
	}
	c.cell(ctx, *req.X, *req.Y)
}

func (c *Controller) setSource(ctx *gin.Context) {
	c.moveEndpoint(ctx, c.orc.SetSource)
}

func (c *Controller) setDest(ctx *gin.Context) {
	c.moveEndpoint(ctx, c.orc.SetDest)
}

func (c *Controller) moveEndpoint(ctx *gin.Context, set func(x, y int) error) {
	var req CellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := set(*req.X, *req.Y); err != nil {
		c.fail(ctx, err)
		return
	}
	c.cell(ctx, *req.X, *req.Y)
}

// startRun launches a run and records its result in the background.
func (c *Controller) startRun(ctx *gin.Context) {
	var req RunRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	strategy := c.strategy
	if req.Strategy != "" {
		s, err := finder.ParseStrategy(req.Strategy)
		if err != nil {
			c.fail(ctx, err)
			return
		}
		strategy = s
	}

	// mu is held across StartRun so generations follow start order. The
	// result channel is buffered, so a finishing run never waits on mu.
	c.mu.Lock()
	results, err := c.orc.StartRun(strategy)
	if err != nil {
		c.mu.Unlock()
		c.fail(ctx, err)
		return
	}
	c.seq++
	gen := c.seq
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.record(gen, <-results)
	}()
	ctx.JSON(http.StatusAccepted, gin.H{"strategy": strategy.String(), "running": true})
}

// record keeps res as the last result unless a later run has started since.
func (c *Controller) record(gen uint64, res run.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.seq {
		return
	}
	c.last = &res
}

func (c *Controller) cancelRun(ctx *gin.Context) {
	c.orc.CancelRun()
	ctx.JSON(http.StatusOK, gin.H{"running": c.orc.IsRunning()})
}

func (c *Controller) status(ctx *gin.Context) {
	resp := StatusResponse{Running: c.orc.IsRunning()}
	c.mu.Lock()
	if c.last != nil {
		resp.Last = resultResponse(c.last)
	}
	c.mu.Unlock()
	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) generateMaze(ctx *gin.Context) {
	var req MazeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	strategy, err := mazegen.ParseStrategy(req.Strategy)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	opts := append([]mazegen.Option{}, c.mazeOpts...)
	if req.Seed != 0 {
		opts = append(opts, mazegen.WithSeed(req.Seed))
	}
	if req.JoinChance != nil {
		opts = append(opts, mazegen.WithJoinChance(*req.JoinChance))
	}
	if req.ExtraPassageChance != nil {
		opts = append(opts, mazegen.WithExtraPassageChance(*req.ExtraPassageChance))
	}

	st, err := c.orc.GenerateMaze(strategy, opts...)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	src, dst := c.orc.Endpoints()
	ctx.JSON(http.StatusOK, MazeResponse{
		Strategy: strategy.String(),
		Rooms:    st.Rooms,
		Passages: st.Passages,
		Source:   Position{src.X, src.Y},
		Dest:     Position{dst.X, dst.Y},
	})
}

func (c *Controller) clear(ctx *gin.Context) {
	var req ClearRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Walls {
		c.orc.ClearWalls()
	} else {
		c.orc.ClearSearch()
	}
	ctx.JSON(http.StatusOK, gin.H{"walls": req.Walls})
}

// cell responds with the current state of (x,y).
func (c *Controller) cell(ctx *gin.Context, x, y int) {
	var resp CellResponse
	c.orc.View(func(g *grid.Grid, src, dst *grid.Cell) {
		resp = describe(g.MustCellAt(x, y), src, dst)
	})
	ctx.JSON(http.StatusOK, resp)
}

// fail maps domain errors to status codes.
func (c *Controller) fail(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		c.log.Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, finder.ErrUnknownStrategy),
		errors.Is(err, mazegen.ErrUnknownStrategy),
		errors.Is(err, mazegen.ErrOptionViolation):
		return http.StatusBadRequest
	case errors.Is(err, run.ErrProtectedCell), errors.Is(err, run.ErrNotWalkable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, run.ErrRunActive):
		return http.StatusConflict
	case errors.Is(err, run.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func position(c *grid.Cell) Position {
	return Position{X: c.X, Y: c.Y}
}

func describe(c, src, dst *grid.Cell) CellResponse {
	k := render.Classify(c, src, dst, nil)
	return CellResponse{Position: position(c), Kind: k.String(), Color: k.Hex(), Walkable: c.Walkable}
}

func resultResponse(res *run.Result) *ResultResponse {
	out := &ResultResponse{
		RunID:    res.RunID,
		Strategy: res.Strategy.String(),
		Outcome:  res.Outcome.String(),
		Steps:    res.Steps,
		Path:     make([]Position, len(res.Path)),
		Elapsed:  res.Elapsed,
	}
	for i, c := range res.Path {
		out.Path[i] = position(c)
	}
	return out
}
