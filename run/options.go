package run

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultSearchInterval separates two search steps.
	DefaultSearchInterval = 30 * time.Millisecond
	// DefaultTraceInterval separates two marked path cells.
	DefaultTraceInterval = 10 * time.Millisecond
)

// Option configures an Orchestrator.
type Option func(*Options)

// Options holds pacing, logging and notification settings.
type Options struct {
	Pacer          Pacer
	Logger         *zap.Logger
	SearchInterval time.Duration
	TraceInterval  time.Duration
	// OnChange runs after every tick and mutation, outside the lock. It may
	// call View but must not start, cancel or close runs.
	OnChange func()
	// Seed drives endpoint placement and maze randomness; 0 means time-based.
	Seed int64

	err error
}

// DefaultOptions returns ticker pacing at the default intervals, a no-op
// logger and a time-based seed.
func DefaultOptions() Options {
	return Options{
		Pacer:          TickerPacer{},
		Logger:         zap.NewNop(),
		SearchInterval: DefaultSearchInterval,
		TraceInterval:  DefaultTraceInterval,
		OnChange:       func() {},
	}
}

// WithPacer replaces the pacing primitive. A nil p is ignored.
func WithPacer(p Pacer) Option {
	return func(o *Options) {
		if p != nil {
			o.Pacer = p
		}
	}
}

// WithLogger sets the structured logger. A nil l is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSearchInterval sets the delay between search steps.
func WithSearchInterval(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: search interval %v is negative", ErrOptionViolation, d)
			return
		}
		o.SearchInterval = d
	}
}

// WithTraceInterval sets the delay between traced path cells.
func WithTraceInterval(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: trace interval %v is negative", ErrOptionViolation, d)
			return
		}
		o.TraceInterval = d
	}
}

// WithOnChange registers the repaint notification.
func WithOnChange(fn func()) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnChange = fn
		}
	}
}

// WithSeed fixes the random seed for reproducible endpoints and mazes.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}
