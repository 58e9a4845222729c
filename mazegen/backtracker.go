package mazegen

import (
	"math/rand"

	"github.com/katalvlaran/pathgrid/grid"
)

// backtracker carves a perfect maze by randomized depth-first search over
// the rooms, backtracking through an explicit stack.
type backtracker struct {
	rng *rand.Rand
}

func (b *backtracker) Generate(g *grid.Grid) (Stats, error) {
	if g == nil {
		return Stats{}, ErrNilGrid
	}
	prepare(g, false)
	l := newLattice(g)
	st := Stats{Rooms: l.len()}

	visited := make([]bool, l.len())
	start := b.rng.Intn(l.len())
	visited[start] = true
	l.openRoom(start)
	stack := []int{start}

	var nbrs, fresh []int
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		nbrs = l.neighbors(cur, nbrs[:0])
		fresh = fresh[:0]
		for _, n := range nbrs {
			if !visited[n] {
				fresh = append(fresh, n)
			}
		}
		if len(fresh) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := pick(b.rng, fresh)
		visited[next] = true
		l.openPassage(cur, next)
		l.openRoom(next)
		st.Passages++
		stack = append(stack, next)
	}
	return st, nil
}
