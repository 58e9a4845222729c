package mazegen

import (
	"math/rand"

	"github.com/katalvlaran/pathgrid/grid"
)

// binaryTree links every room except the top-left one to its upper or left
// neighbour, chosen at random among those that exist. The first row can
// only go left and the first column only up, which yields the familiar
// open corridors along both edges.
type binaryTree struct {
	rng *rand.Rand
}

func (b *binaryTree) Generate(g *grid.Grid) (Stats, error) {
	if g == nil {
		return Stats{}, ErrNilGrid
	}
	prepare(g, false)
	l := newLattice(g)
	st := Stats{Rooms: l.len()}

	choices := make([]int, 0, 2)
	for id := 0; id < l.len(); id++ {
		l.openRoom(id)
		rx, ry := l.coord(id)
		choices = choices[:0]
		if ry > 0 {
			choices = append(choices, l.id(rx, ry-1))
		}
		if rx > 0 {
			choices = append(choices, l.id(rx-1, ry))
		}
		if len(choices) == 0 {
			continue
		}
		l.openPassage(id, pick(b.rng, choices))
		st.Passages++
	}
	return st, nil
}
