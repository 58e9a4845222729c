package mazegen

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/katalvlaran/pathgrid/grid"
)

// Sentinel errors.
var (
	// ErrNilGrid indicates Generate was called without a grid.
	ErrNilGrid = errors.New("mazegen: grid is nil")

	// ErrUnknownStrategy indicates an unsupported Strategy value or name.
	ErrUnknownStrategy = errors.New("mazegen: unknown strategy")

	// ErrOptionViolation indicates an invalid functional option.
	ErrOptionViolation = errors.New("mazegen: invalid option")
)

// Strategy selects a maze generation algorithm.
type Strategy int

const (
	// Backtracker is the randomized depth-first carve.
	Backtracker Strategy = iota
	// Subdivision is recursive division with one door per wall.
	Subdivision
	// BinaryTree links each room up or left.
	BinaryTree
	// UnionFind is the disjoint-set carve (Eller/Kruskal style).
	UnionFind
	// Empty clears all walls.
	Empty
)

// Strategies lists every supported Strategy in declaration order.
var Strategies = []Strategy{Backtracker, Subdivision, BinaryTree, UnionFind, Empty}

func (s Strategy) String() string {
	switch s {
	case Backtracker:
		return "backtracker"
	case Subdivision:
		return "subdivision"
	case BinaryTree:
		return "binarytree"
	case UnionFind:
		return "unionfind"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a case-insensitive name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "backtracker", "recursive-backtracker":
		return Backtracker, nil
	case "subdivision", "division":
		return Subdivision, nil
	case "binarytree", "binary-tree":
		return BinaryTree, nil
	case "unionfind", "union-find", "kruskal", "eller", "ellen":
		return UnionFind, nil
	case "empty", "clear":
		return Empty, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Stats summarizes one Generate call.
type Stats struct {
	// Rooms is the number of lattice rooms; for Empty, every cell.
	Rooms int
	// Passages is the number of connector cells opened between rooms.
	// A tree over the rooms has exactly Rooms-1.
	Passages int
}

// Generator rewrites the walkable flags of a grid. Search flags and parent
// links are cleared before carving.
type Generator interface {
	Generate(g *grid.Grid) (Stats, error)
}

// Option configures a Generator.
type Option func(*Options)

// Options holds the random source and strategy tuning.
type Options struct {
	// Rand, when set, takes precedence over Seed.
	Rand *rand.Rand
	// Seed initializes a private source when Rand is nil; 0 means default.
	Seed int64

	// ExtraPassageChance is the probability that UnionFind opens a passage
	// between rooms that are already connected, creating a cycle.
	ExtraPassageChance float64
	// JoinChance is the probability that UnionFind joins two separate
	// components during its first pass.
	JoinChance float64

	err error
}

// DefaultOptions returns the default seed, no cycles and an even join chance.
func DefaultOptions() Options {
	return Options{JoinChance: 0.5}
}

// WithRand injects the random source. A nil r is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithSeed sets a deterministic seed for a private random source.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithExtraPassageChance sets the UnionFind cycle probability in [0,1].
func WithExtraPassageChance(p float64) Option {
	return func(o *Options) {
		if p < 0 || p > 1 {
			o.err = fmt.Errorf("%w: extra passage chance %v not in [0,1]", ErrOptionViolation, p)
			return
		}
		o.ExtraPassageChance = p
	}
}

// WithJoinChance sets the UnionFind first-pass join probability in [0,1].
func WithJoinChance(p float64) Option {
	return func(o *Options) {
		if p < 0 || p > 1 {
			o.err = fmt.Errorf("%w: join chance %v not in [0,1]", ErrOptionViolation, p)
			return
		}
		o.JoinChance = p
	}
}

// New returns the Generator for strategy.
func New(strategy Strategy, opts ...Option) (Generator, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	rng := o.Rand
	if rng == nil {
		rng = rngFromSeed(o.Seed)
	}

	switch strategy {
	case Backtracker:
		return &backtracker{rng: rng}, nil
	case Subdivision:
		return &subdivision{rng: rng}, nil
	case BinaryTree:
		return &binaryTree{rng: rng}, nil
	case UnionFind:
		return &unionFind{rng: rng, join: o.JoinChance, extra: o.ExtraPassageChance}, nil
	case Empty:
		return empty{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
}
