package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pathgrid/finder"
	"github.com/katalvlaran/pathgrid/grid"
	"github.com/katalvlaran/pathgrid/mazegen"
	"github.com/katalvlaran/pathgrid/run"
)

// ErrInvalidConfig wraps every loading and validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete runtime configuration.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Search SearchConfig `yaml:"search"`
	Maze   MazeConfig   `yaml:"maze"`
	HTTP   HTTPConfig   `yaml:"http"`
	Log    LogConfig    `yaml:"log"`
}

// GridConfig describes the world rectangle the grid is laid out over.
type GridConfig struct {
	WorldWidth  float64 `yaml:"world_width"`
	WorldHeight float64 `yaml:"world_height"`
	TileSize    float64 `yaml:"tile_size"`
	Padding     float64 `yaml:"padding"`
}

// SearchConfig selects the default strategy and animation pacing.
type SearchConfig struct {
	Strategy      string        `yaml:"strategy"`
	Interval      time.Duration `yaml:"interval"`
	TraceInterval time.Duration `yaml:"trace_interval"`
	Seed          int64         `yaml:"seed"`
}

// MazeConfig selects the maze generated at startup; an empty Strategy
// leaves the grid open.
type MazeConfig struct {
	Strategy           string  `yaml:"strategy"`
	JoinChance         float64 `yaml:"join_chance"`
	ExtraPassageChance float64 `yaml:"extra_passage_chance"`
}

// HTTPConfig configures the optional HTTP host.
type HTTPConfig struct {
	Addr    string `yaml:"addr"`
	GinMode string `yaml:"gin_mode"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a 900×600 world with the standard tile layout, A* at the
// standard pacing and no startup maze.
func Default() Config {
	return Config{
		Grid: GridConfig{
			WorldWidth:  900,
			WorldHeight: 600,
			TileSize:    grid.DefaultTileSize,
			Padding:     grid.DefaultPadding,
		},
		Search: SearchConfig{
			Strategy:      finder.AStar.String(),
			Interval:      run.DefaultSearchInterval,
			TraceInterval: run.DefaultTraceInterval,
		},
		Maze: MazeConfig{
			JoinChance: mazegen.DefaultOptions().JoinChance,
		},
		HTTP: HTTPConfig{
			Addr:    ":8080",
			GinMode: "release",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load layers the YAML file at path (skipped when empty), the dotenv files
// and the process environment over Default, then validates the result.
// Missing dotenv files are ignored.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeFile reads YAML from path into cfg. An empty file leaves cfg as is.
func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Grid.WorldWidth > 0 && c.Grid.WorldHeight > 0,
		"world size %vx%v must be positive", c.Grid.WorldWidth, c.Grid.WorldHeight)
	check(c.Grid.TileSize > 0, "tile size %v must be positive", c.Grid.TileSize)
	check(c.Grid.Padding >= 0, "padding %v must not be negative", c.Grid.Padding)

	if _, err := finder.ParseStrategy(c.Search.Strategy); err != nil {
		errs = append(errs, err)
	}
	check(c.Search.Interval >= 0, "search interval %v must not be negative", c.Search.Interval)
	check(c.Search.TraceInterval >= 0, "trace interval %v must not be negative", c.Search.TraceInterval)

	if c.Maze.Strategy != "" {
		if _, err := mazegen.ParseStrategy(c.Maze.Strategy); err != nil {
			errs = append(errs, err)
		}
	}
	check(c.Maze.JoinChance >= 0 && c.Maze.JoinChance <= 1,
		"join chance %v not in [0,1]", c.Maze.JoinChance)
	check(c.Maze.ExtraPassageChance >= 0 && c.Maze.ExtraPassageChance <= 1,
		"extra passage chance %v not in [0,1]", c.Maze.ExtraPassageChance)

	switch c.HTTP.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("gin mode %q is not debug, release or test", c.HTTP.GinMode))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// SearchStrategy returns the parsed default search strategy.
func (c Config) SearchStrategy() (finder.Strategy, error) {
	return finder.ParseStrategy(c.Search.Strategy)
}

// NewGrid lays out a grid over the configured world.
func (c Config) NewGrid() (*grid.Grid, error) {
	return grid.NewFromWorld(
		grid.Point{},
		grid.Point{X: c.Grid.WorldWidth, Y: c.Grid.WorldHeight},
		grid.WithTileSize(c.Grid.TileSize),
		grid.WithPadding(c.Grid.Padding),
	)
}

// RunOptions maps the pacing and seed settings to orchestrator options.
func (c Config) RunOptions() []run.Option {
	return []run.Option{
		run.WithSearchInterval(c.Search.Interval),
		run.WithTraceInterval(c.Search.TraceInterval),
		run.WithSeed(c.Search.Seed),
	}
}

// MazeOptions maps the union-find tuning to generator options.
func (c Config) MazeOptions() []mazegen.Option {
	return []mazegen.Option{
		mazegen.WithJoinChance(c.Maze.JoinChance),
		mazegen.WithExtraPassageChance(c.Maze.ExtraPassageChance),
	}
}
