// Package mazegen carves mazes into a grid.Grid by rewriting cell
// traversability. Every strategy works on a room lattice: the cells whose
// coordinates are both even are rooms, and the odd cell between two
// neighbouring rooms is the passage that joins them.
//
// What:
//
//   - Backtracker:  randomized depth-first carve; a perfect maze (tree).
//   - Subdivision:  recursive binary split of open space, one door per wall;
//     also a tree over the rooms.
//   - BinaryTree:   each room opens towards its upper or left neighbour.
//   - UnionFind:    row-major union-find carve with random acceptance and a
//     forced joining pass; may add cycles via WithExtraPassageChance.
//   - Empty:        removes every wall.
//
// On an even width (height) the last column (row) lies outside the lattice
// and stays wall.
//
// Determinism:
//
//	Randomness comes from an injected *rand.Rand (WithRand) or a seed
//	(WithSeed, where 0 selects a fixed default). Equal seeds produce equal
//	mazes on equal grids. A Generator is not safe for concurrent use.
//
// Complexity:
//
//   - All strategies: O(W×H) time, O(W×H) extra memory.
//
// Errors:
//
//   - ErrNilGrid:         Generate called with a nil grid.
//   - ErrUnknownStrategy: unsupported Strategy value or name.
//   - ErrOptionViolation: probability outside [0,1] or similar misuse.
package mazegen
