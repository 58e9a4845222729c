// Package config loads pathviz settings.
//
// Values are layered, later layers winning:
//
//  1. Default()
//  2. an optional YAML file
//  3. optional dotenv files (KEY=VALUE lines)
//  4. the process environment
//
// Only PATHVIZ_* keys are consulted in layers 3 and 4. Load validates the
// result; every problem wraps ErrInvalidConfig.
package config
