package mazegen

import (
	"math/rand"

	"github.com/katalvlaran/pathgrid/grid"
)

// subdivision starts from open space and recursively splits each area with
// a wall along a random connector line, leaving a single door. Every split
// joins two connected halves through exactly one passage, so the final
// rooms form a tree.
type subdivision struct {
	rng *rand.Rand
}

// area is an inclusive rectangle of rooms.
type area struct {
	x0, y0, x1, y1 int
}

func (s *subdivision) Generate(g *grid.Grid) (Stats, error) {
	if g == nil {
		return Stats{}, ErrNilGrid
	}
	prepare(g, false)
	l := newLattice(g)
	st := Stats{Rooms: l.len()}

	// open the lattice bounding box; cells past it stay wall
	for y := 0; y <= 2*(l.rows-1); y++ {
		for x := 0; x <= 2*(l.cols-1); x++ {
			g.MustCellAt(x, y).Walkable = true
		}
	}

	stack := []area{{0, 0, l.cols - 1, l.rows - 1}}
	for len(stack) > 0 {
		a := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		w, h := a.x1-a.x0+1, a.y1-a.y0+1
		if w < 2 && h < 2 {
			continue
		}
		vertical := w > h || (w == h && s.rng.Intn(2) == 0)

		if vertical {
			// wall between room columns k and k+1, door on room row r
			k := a.x0 + s.rng.Intn(w-1)
			r := a.y0 + s.rng.Intn(h)
			for y := 2 * a.y0; y <= 2*a.y1; y++ {
				g.MustCellAt(2*k+1, y).Walkable = y == 2*r
			}
			stack = append(stack, area{a.x0, a.y0, k, a.y1}, area{k + 1, a.y0, a.x1, a.y1})
		} else {
			k := a.y0 + s.rng.Intn(h-1)
			r := a.x0 + s.rng.Intn(w)
			for x := 2 * a.x0; x <= 2*a.x1; x++ {
				g.MustCellAt(x, 2*k+1).Walkable = x == 2*r
			}
			stack = append(stack, area{a.x0, a.y0, a.x1, k}, area{a.x0, k + 1, a.x1, a.y1})
		}
		st.Passages++
	}
	return st, nil
}
