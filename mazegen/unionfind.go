package mazegen

import (
	"math/rand"

	"github.com/katalvlaran/pathgrid/grid"
)

// unionFind walks the candidate room links row by row (horizontal links of
// a row, then the vertical links below it). A link between two components
// opens with probability join; a link inside one component opens with
// probability extra and closes a cycle. A final pass over the remaining
// links, vertical first, merges whatever is still apart, so the result is
// always connected.
type unionFind struct {
	rng   *rand.Rand
	join  float64
	extra float64
}

// link is a candidate passage between two adjacent rooms.
type link struct{ a, b int }

func (u *unionFind) Generate(g *grid.Grid) (Stats, error) {
	if g == nil {
		return Stats{}, ErrNilGrid
	}
	prepare(g, false)
	l := newLattice(g)
	st := Stats{Rooms: l.len()}
	for id := 0; id < l.len(); id++ {
		l.openRoom(id)
	}

	sets := newDSU(l.len())
	var order, horizontal, vertical []link
	for ry := 0; ry < l.rows; ry++ {
		for rx := 0; rx+1 < l.cols; rx++ {
			lk := link{l.id(rx, ry), l.id(rx+1, ry)}
			horizontal = append(horizontal, lk)
			order = append(order, lk)
		}
		for rx := 0; ry+1 < l.rows && rx < l.cols; rx++ {
			lk := link{l.id(rx, ry), l.id(rx, ry+1)}
			vertical = append(vertical, lk)
			order = append(order, lk)
		}
	}

	opened := make(map[link]bool)
	try := func(lk link) {
		if sets.find(lk.a) != sets.find(lk.b) {
			if u.rng.Float64() < u.join {
				sets.union(lk.a, lk.b)
				l.openPassage(lk.a, lk.b)
				opened[lk] = true
				st.Passages++
			}
			return
		}
		if u.extra > 0 && !opened[lk] && u.rng.Float64() < u.extra {
			l.openPassage(lk.a, lk.b)
			opened[lk] = true
			st.Passages++
		}
	}

	for _, lk := range order {
		try(lk)
	}

	for _, pass := range [][]link{vertical, horizontal} {
		for _, lk := range pass {
			if sets.union(lk.a, lk.b) {
				l.openPassage(lk.a, lk.b)
				st.Passages++
			}
		}
	}
	return st, nil
}
