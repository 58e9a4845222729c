package run

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/pathgrid/finder"
	"github.com/katalvlaran/pathgrid/grid"
)

// Sentinel errors.
var (
	ErrNilGrid         = errors.New("run: grid is nil")
	ErrOptionViolation = errors.New("run: invalid option")
	ErrRunActive       = errors.New("run: a search is in progress")
	ErrProtectedCell   = errors.New("run: cell is the source or destination")
	ErrNotWalkable     = errors.New("run: cell is not walkable")
	ErrClosed          = errors.New("run: orchestrator is closed")
)

// Outcome is how a run ended.
type Outcome int

const (
	// Found: the destination was reached and the path traced.
	Found Outcome = iota
	// NotFound: the frontier was exhausted. This is a normal result.
	NotFound
	// Cancelled: the run was superseded or cancelled before finishing.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is delivered once per run on the channel returned by StartRun.
type Result struct {
	RunID    uuid.UUID
	Strategy finder.Strategy
	Outcome  Outcome
	// Path excludes the source and ends at the destination. Empty unless
	// Outcome is Found. The cells belong to the orchestrator's grid; read
	// their flags through View.
	Path    []*grid.Cell
	Steps   int
	Elapsed time.Duration
}
