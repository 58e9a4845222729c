// Package grid models a rectangular board of cells as an implicit,
// 4-connected graph that search strategies and maze generators mutate in place.
//
// What:
//
//   - Grid owns a dense, row-major []Cell (index = y*width + x).
//   - Cell carries traversability (Walkable) and per-run search flags
//     (Opened, Closed, PathNode) plus a parent index for path reconstruction.
//   - World mapping converts continuous pointer coordinates into clamped cells.
//
// Why:
//
//   - Visual pathfinding: every flag is observable between search steps.
//   - Reuse: cells are allocated once per session and reset between runs.
//
// Complexity:
//
//   - CellAt, Neighbors, WorldToCell: O(1).
//   - ResetSearchState, Fill:          O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid:       width or height below one.
//   - ErrOutOfBounds:     coordinates outside [0,W)×[0,H).
//   - ErrOptionViolation: invalid world-construction option.
package grid
