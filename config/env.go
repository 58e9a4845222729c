package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvWorldWidth         = "PATHVIZ_WORLD_WIDTH"
	EnvWorldHeight        = "PATHVIZ_WORLD_HEIGHT"
	EnvTileSize           = "PATHVIZ_TILE_SIZE"
	EnvPadding            = "PATHVIZ_PADDING"
	EnvStrategy           = "PATHVIZ_STRATEGY"
	EnvSearchInterval     = "PATHVIZ_SEARCH_INTERVAL"
	EnvTraceInterval      = "PATHVIZ_TRACE_INTERVAL"
	EnvSeed               = "PATHVIZ_SEED"
	EnvMaze               = "PATHVIZ_MAZE"
	EnvJoinChance         = "PATHVIZ_JOIN_CHANCE"
	EnvExtraPassageChance = "PATHVIZ_EXTRA_PASSAGE_CHANCE"
	EnvHTTPAddr           = "PATHVIZ_HTTP_ADDR"
	EnvGinMode            = "PATHVIZ_GIN_MODE"
	EnvLogLevel           = "PATHVIZ_LOG_LEVEL"
	EnvLogDevelopment     = "PATHVIZ_LOG_DEVELOPMENT"
)

// readEnvFiles merges dotenv files, earlier files winning like
// godotenv.Load. Files that do not exist are skipped.
func readEnvFiles(paths []string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, p := range paths {
		vals, err := godotenv.Read(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, p, err)
		}
		for k, v := range vals {
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
	}
	return merged, nil
}

// applyEnv overrides cfg fields from lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s must be a number: %w", key, err))
				return
			}
			*dst = f
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s must be a duration: %w", key, err))
				return
			}
			*dst = d
		}
	}

	float(EnvWorldWidth, &cfg.Grid.WorldWidth)
	float(EnvWorldHeight, &cfg.Grid.WorldHeight)
	float(EnvTileSize, &cfg.Grid.TileSize)
	float(EnvPadding, &cfg.Grid.Padding)
	str(EnvStrategy, &cfg.Search.Strategy)
	duration(EnvSearchInterval, &cfg.Search.Interval)
	duration(EnvTraceInterval, &cfg.Search.TraceInterval)
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be an integer: %w", EnvSeed, err))
		} else {
			cfg.Search.Seed = seed
		}
	}
	str(EnvMaze, &cfg.Maze.Strategy)
	float(EnvJoinChance, &cfg.Maze.JoinChance)
	float(EnvExtraPassageChance, &cfg.Maze.ExtraPassageChance)
	str(EnvHTTPAddr, &cfg.HTTP.Addr)
	str(EnvGinMode, &cfg.HTTP.GinMode)
	str(EnvLogLevel, &cfg.Log.Level)
	if v, ok := lookup(EnvLogDevelopment); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be a boolean: %w", EnvLogDevelopment, err))
		} else {
			cfg.Log.Development = b
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
