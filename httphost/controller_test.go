package httphost_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/pathgrid/finder"
	"github.com/katalvlaran/pathgrid/grid"
	"github.com/katalvlaran/pathgrid/httphost"
	"github.com/katalvlaran/pathgrid/run"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type host struct {
	t      *testing.T
	orc    *run.Orchestrator
	ctrl   *httphost.Controller
	router *gin.Engine
}

// newHost serves a 5×5 open grid with the endpoints in opposite corners.
func newHost(t *testing.T, opts ...run.Option) *host {
	t.Helper()
	g, err := grid.New(5, 5)
	require.NoError(t, err)
	opts = append([]run.Option{run.WithPacer(run.ImmediatePacer{}), run.WithSeed(3)}, opts...)
	orc, err := run.New(g, opts...)
	require.NoError(t, err)
	require.NoError(t, orc.SetSource(0, 0))
	require.NoError(t, orc.SetDest(4, 4))
	t.Cleanup(orc.Close)

	ctrl := httphost.NewController(orc, zap.NewNop(), finder.BreadthFirst)
	return &host{t: t, orc: orc, ctrl: ctrl, router: httphost.NewRouter(ctrl, "/api")}
}

// do sends a request with an optional JSON body and decodes the response
// into out when it is non-nil.
func (h *host) do(method, path string, body any, out any) int {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestSnapshot(t *testing.T) {
	h := newHost(t)
	var resp httphost.GridResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/grid", nil, &resp))

	assert.Equal(t, 5, resp.Width)
	assert.Equal(t, 5, resp.Height)
	assert.Equal(t, httphost.Position{X: 0, Y: 0}, resp.Source)
	assert.Equal(t, httphost.Position{X: 4, Y: 4}, resp.Dest)
	assert.False(t, resp.Running)
	require.Len(t, resp.Rows, 5)
	assert.Equal(t, "S    ", resp.Rows[0])
	assert.Equal(t, "    D", resp.Rows[4])
	assert.Contains(t, resp.Summary, "walls 0")
}

func TestToggleWall(t *testing.T) {
	h := newHost(t)
	var cell httphost.CellResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/cells/toggle", gin.H{"x": 2, "y": 1}, &cell))
	assert.Equal(t, "wall", cell.Kind)
	assert.False(t, cell.Walkable)
	assert.Equal(t, "#47370c", cell.Color)

	var errResp map[string]string
	assert.Equal(t, http.StatusUnprocessableEntity, h.do(http.MethodPost, "/cells/toggle", gin.H{"x": 0, "y": 0}, &errResp))
	assert.Contains(t, errResp["error"], "source or destination")

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/cells/toggle", gin.H{"x": 9, "y": 0}, nil))
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/cells/toggle", gin.H{"x": 1}, nil))
}

func TestEndpoints(t *testing.T) {
	h := newHost(t)
	require.NoError(t, h.orc.SetWall(2, 2, true))

	var cell httphost.CellResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/source", gin.H{"x": 1, "y": 3}, &cell))
	assert.Equal(t, "source", cell.Kind)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/dest", gin.H{"x": 0, "y": 0}, &cell))
	assert.Equal(t, "dest", cell.Kind)

	assert.Equal(t, http.StatusUnprocessableEntity, h.do(http.MethodPost, "/dest", gin.H{"x": 2, "y": 2}, nil))

	src, dst := h.orc.Endpoints()
	assert.Equal(t, [4]int{1, 3, 0, 0}, [4]int{src.X, src.Y, dst.X, dst.Y})
}

func TestHitTest(t *testing.T) {
	h := newHost(t)
	var cell httphost.CellResponse
	// identity world: one unit per cell
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/cell?x=4.5&y=4.2", nil, &cell))
	assert.Equal(t, httphost.Position{X: 4, Y: 4}, cell.Position)
	assert.Equal(t, "dest", cell.Kind)

	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/cell?x=-30&y=2", nil, &cell))
	assert.Equal(t, httphost.Position{X: 0, Y: 2}, cell.Position, "clamped")

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/cell?x=1", nil, nil))
}

func TestRunLifecycle(t *testing.T) {
	h := newHost(t)
	var started map[string]any
	require.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/runs", gin.H{"strategy": "astar"}, &started))
	assert.Equal(t, "astar", started["strategy"])
	h.ctrl.Wait()

	var status httphost.StatusResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/runs/status", nil, &status))
	require.NotNil(t, status.Last)
	assert.Equal(t, "found", status.Last.Outcome)
	assert.Equal(t, "astar", status.Last.Strategy)
	assert.Len(t, status.Last.Path, 8)
	assert.Equal(t, httphost.Position{X: 4, Y: 4}, status.Last.Path[7])

	// default strategy when the body is empty
	require.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/runs", nil, &started))
	assert.Equal(t, "bfs", started["strategy"])
	h.ctrl.Wait()

	var snap httphost.GridResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/grid", nil, &snap))
	assert.Contains(t, snap.Summary, "path 7", "the destination keeps its own glyph")

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/runs", gin.H{"strategy": "greedy"}, nil))
}

// TestMazeDuringRun answers 409 while a run is active.
func TestMazeDuringRun(t *testing.T) {
	h := newHost(t, run.WithPacer(run.TickerPacer{}), run.WithSearchInterval(time.Hour))
	require.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/runs", nil, nil))

	var status httphost.StatusResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/runs/status", nil, &status))
	assert.True(t, status.Running)

	var errResp map[string]string
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/maze", gin.H{"strategy": "backtracker"}, &errResp))
	assert.Contains(t, errResp["error"], "in progress")

	var cancelled map[string]bool
	require.Equal(t, http.StatusOK, h.do(http.MethodDelete, "/runs", nil, &cancelled))
	assert.False(t, cancelled["running"])
	h.ctrl.Wait()

	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/runs/status", nil, &status))
	require.NotNil(t, status.Last)
	assert.Equal(t, "cancelled", status.Last.Outcome)
	assert.Empty(t, status.Last.Path)
}

// TestStatus_IgnoresSupersededRun reports only the newest run's result.
func TestStatus_IgnoresSupersededRun(t *testing.T) {
	h := newHost(t, run.WithPacer(run.TickerPacer{}), run.WithSearchInterval(time.Hour))
	require.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/runs", gin.H{"strategy": "bfs"}, nil))
	require.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/runs", gin.H{"strategy": "dfs"}, nil))

	var running httphost.StatusResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/runs/status", nil, &running))
	assert.True(t, running.Running)
	assert.Nil(t, running.Last, "the superseded bfs run is not reported")

	require.Equal(t, http.StatusOK, h.do(http.MethodDelete, "/runs", nil, nil))
	h.ctrl.Wait()

	var done httphost.StatusResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/runs/status", nil, &done))
	require.NotNil(t, done.Last)
	assert.Equal(t, "dfs", done.Last.Strategy)
	assert.Equal(t, "cancelled", done.Last.Outcome)
}

func TestGenerateMaze(t *testing.T) {
	h := newHost(t)
	var maze httphost.MazeResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/maze", gin.H{"strategy": "binary-tree", "seed": 9}, &maze))
	assert.Equal(t, "binarytree", maze.Strategy)
	assert.Equal(t, 9, maze.Rooms)
	assert.Equal(t, 8, maze.Passages)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/maze", gin.H{"strategy": "prim"}, nil))
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/maze", gin.H{}, nil))
	assert.Equal(t, http.StatusBadRequest,
		h.do(http.MethodPost, "/maze", gin.H{"strategy": "unionfind", "join_chance": 4}, nil))
}

func TestClear(t *testing.T) {
	h := newHost(t)
	require.NoError(t, h.orc.SetWall(2, 2, true))
	require.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/runs", nil, nil))
	h.ctrl.Wait()

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/clear", nil, nil))
	var snap httphost.GridResponse
	h.do(http.MethodGet, "/grid", nil, &snap)
	assert.Equal(t, "walls 1 (4%) | opened 0 | closed 0 | path 0", snap.Summary)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/clear", gin.H{"walls": true}, nil))
	h.do(http.MethodGet, "/grid", nil, &snap)
	assert.Contains(t, snap.Summary, "walls 0 (0%)")
}

func TestClosedOrchestrator(t *testing.T) {
	h := newHost(t)
	h.orc.Close()
	assert.Equal(t, http.StatusServiceUnavailable, h.do(http.MethodPost, "/runs", nil, nil))
}
