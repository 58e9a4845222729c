// Package pathgrid is a playground for watching grid searches and maze
// generators work, one step at a time.
//
// What is pathgrid?
//
//	A small library plus a command that brings together:
//		• Grid model: row-major cells with walls and per-run search flags
//		• Steppable search: BFS, DFS, Dijkstra and A* behind one Finder contract
//		• Maze carving: backtracker, subdivision, binary tree, union-find
//		• Run orchestration: pacing, cancellation and path tracing
//		• Hosts: an ASCII terminal renderer and a gin HTTP API
//
// Why pathgrid?
//
//   - Observable: every Step leaves Opened/Closed flags a host can paint
//   - Cancellable: a run stops at the next tick without corrupting the grid
//   - Deterministic: mazes come from an injected random source or seed
//
// Layout:
//
//	grid/         Grid, Cell, neighbours, world mapping, flood fill
//	finder/       Finder contract and the four search strategies
//	mazegen/      maze generators on the even-coordinate room lattice
//	run/          Orchestrator: one paced, cancellable run at a time
//	render/       cell classification, colours and ASCII frames
//	config/       YAML, dotenv and PATHVIZ_* environment settings
//	httphost/     gin routes over an Orchestrator
//	cmd/pathviz/  the command wiring it all together
//
// Quick ASCII example (S source, D destination, # wall, * path):
//
//	S*#..
//	.*#..
//	.***.
//	...*D
//
//	go install github.com/katalvlaran/pathgrid/cmd/pathviz@latest
package pathgrid
