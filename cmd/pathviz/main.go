// Command pathviz animates grid path searches.
//
// Usage:
//
//	pathviz [-config pathviz.yaml] [-env .env] [-serve] [-strategy astar] [-maze backtracker]
//
// With -serve it exposes the orchestrator over HTTP (see package httphost).
// Otherwise it runs one search in the terminal, redrawing an ASCII frame on
// every change, and prints the outcome.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/pathgrid/config"
	"github.com/katalvlaran/pathgrid/grid"
	"github.com/katalvlaran/pathgrid/httphost"
	"github.com/katalvlaran/pathgrid/mazegen"
	"github.com/katalvlaran/pathgrid/render"
	"github.com/katalvlaran/pathgrid/run"
)

const (
	shutdownTimeout = 5 * time.Second
	redrawInterval  = 50 * time.Millisecond
)

func main() {
	if err := realMain(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "pathviz:", err)
		os.Exit(1)
	}
}

func realMain(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pathviz", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML configuration file")
	envFile := fs.String("env", ".env", "dotenv file with PATHVIZ_* overrides")
	serve := fs.Bool("serve", false, "serve the HTTP API instead of running in the terminal")
	strategyName := fs.String("strategy", "", "search strategy override: bfs, dfs, dijkstra, astar")
	mazeName := fs.String("maze", "", "maze strategy override: backtracker, subdivision, binarytree, unionfind, empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath, *envFile)
	if err != nil {
		return err
	}
	if *strategyName != "" {
		cfg.Search.Strategy = *strategyName
	}
	if *mazeName != "" {
		cfg.Maze.Strategy = *mazeName
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		return serveHTTP(ctx, cfg, logger)
	}
	return runTerminal(ctx, cfg, logger, out)
}

// newLogger builds a production or development zap logger at the
// configured level.
func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// newOrchestrator lays out the grid, binds the orchestrator and carves the
// startup maze when one is configured.
func newOrchestrator(cfg config.Config, logger *zap.Logger, extra ...run.Option) (*run.Orchestrator, error) {
	g, err := cfg.NewGrid()
	if err != nil {
		return nil, err
	}
	w, h := g.Dimensions()
	logger.Info("grid ready", zap.Int("width", w), zap.Int("height", h), zap.Float64("tile", g.TileSize()))

	var maze mazegen.Strategy
	if cfg.Maze.Strategy != "" {
		if maze, err = mazegen.ParseStrategy(cfg.Maze.Strategy); err != nil {
			return nil, err
		}
	}

	opts := append(cfg.RunOptions(), run.WithLogger(logger))
	orc, err := run.New(g, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}

	if cfg.Maze.Strategy != "" {
		if _, err := orc.GenerateMaze(maze, cfg.MazeOptions()...); err != nil {
			orc.Close()
			return nil, err
		}
	}
	return orc, nil
}

func serveHTTP(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	strategy, err := cfg.SearchStrategy()
	if err != nil {
		return err
	}
	orc, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}
	defer orc.Close()

	gin.SetMode(cfg.HTTP.GinMode)
	ctrl := httphost.NewController(orc, logger, strategy, cfg.MazeOptions()...)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httphost.NewRouter(ctrl, ""),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	orc.CancelRun()
	ctrl.Wait()
	return nil
}

// runTerminal runs one search and redraws the frame whenever the
// orchestrator reports a change.
func runTerminal(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer) error {
	strategy, err := cfg.SearchStrategy()
	if err != nil {
		return err
	}
	var dirty atomic.Bool
	orc, err := newOrchestrator(cfg, logger, run.WithOnChange(func() { dirty.Store(true) }))
	if err != nil {
		return err
	}
	defer orc.Close()

	results, err := orc.StartRun(strategy)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			orc.CancelRun()
			return summarize(out, <-results)
		case <-ticker.C:
			if dirty.Swap(false) {
				if err := draw(out, orc); err != nil {
					return err
				}
			}
		case res := <-results:
			if err := draw(out, orc); err != nil {
				return err
			}
			return summarize(out, res)
		}
	}
}

// draw clears the terminal and writes one frame.
func draw(out io.Writer, orc *run.Orchestrator) error {
	if _, err := io.WriteString(out, "\x1b[H\x1b[2J"); err != nil {
		return err
	}
	var err error
	orc.View(func(g *grid.Grid, src, dst *grid.Cell) {
		err = render.ASCII(out, g, src, dst)
	})
	return err
}

// summarize prints the outcome line; a cancelled run is reported as an error.
func summarize(out io.Writer, res run.Result) error {
	_, err := fmt.Fprintf(out, "%s %s: %s steps, path %s, %s\n",
		res.Strategy, res.Outcome,
		humanize.Comma(int64(res.Steps)),
		humanize.Comma(int64(len(res.Path))),
		res.Elapsed.Round(time.Millisecond),
	)
	if err != nil {
		return err
	}
	if res.Outcome == run.Cancelled {
		return context.Canceled
	}
	return nil
}
