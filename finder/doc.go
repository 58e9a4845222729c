// Package finder implements incremental shortest-path search over a
// grid.Grid: breadth-first, depth-first, Dijkstra (uniform cost) and A*
// (Manhattan heuristic).
//
// Every strategy is a small state machine driven one unit of work at a time:
//
//	Ready ──Init──▶ Running ──Step…──▶ Found | Exhausted
//
// Each Step pops exactly one frontier cell, closes it, checks it against the
// destination and relaxes its walkable neighbours. Search state is written
// straight onto the grid's cells (Opened, Closed, parent link) so a renderer
// can paint progress between steps.
//
// Cancellation:
//
//	WithContext installs the run's cancellation token. Progress checks it
//	before every step and silently does nothing once it is done; the finder
//	stays non-terminal so the caller can tell "cancelled" from "no path".
//
// Policies:
//
//   - Neighbours are filtered on their own walkability.
//   - BFS and DFS push only cells that are neither opened nor closed.
//   - Dijkstra and A* skip closed cells and relax opened ones.
//   - A non-walkable current cell is closed but never expanded, and a
//     non-walkable destination is never reported as found.
//   - Dijkstra breaks cost ties by insertion order; A* breaks f-cost ties by
//     the smaller h-cost, then by insertion order.
//
// Complexity:
//
//   - BFS, DFS: O(1) amortised per Step, O(W×H) total.
//   - Dijkstra, A*: O(log W×H) per Step via container/heap.
//   - Memory: O(W×H) for frontier and index-keyed cost slices.
//
// Errors:
//
//   - ErrNilGrid:         nil grid passed to a constructor.
//   - ErrNilCell:         nil source or destination.
//   - ErrUnknownStrategy: New or ParseStrategy with an unsupported name.
package finder
