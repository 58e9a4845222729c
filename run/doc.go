// Package run drives animated searches over a shared grid.
//
// An Orchestrator owns one grid.Grid together with the current source and
// destination. StartRun builds a finder.Finder, advances it one step per
// search tick and then marks the found path one cell per trace tick, so a
// host can repaint between ticks. Pacing is delegated to a Pacer:
// TickerPacer for real time, ImmediatePacer for tests and headless use.
//
// Concurrency:
//
//   - At most one run is active. Starting a run cancels the previous one and
//     waits for its goroutine to exit before the grid is reset.
//   - Every tick and every host mutation holds the orchestrator lock, so the
//     grid has a single writer at a time. Hosts read it through View.
//   - Cancellation is a context checked at every tick; a cancelled run keeps
//     its partial flags and reports Outcome Cancelled, never NotFound.
//
// Errors:
//
//   - ErrNilGrid:         New called without a grid.
//   - ErrOptionViolation: negative interval.
//   - ErrRunActive:       maze generation requested during a run.
//   - ErrProtectedCell:   wall placed on the source or destination.
//   - ErrNotWalkable:     source or destination moved onto a wall.
//   - ErrClosed:          orchestrator already closed.
package run
