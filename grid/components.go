package grid

// Reachable flood-fills walkable cells from start over 4-connectivity and
// returns a row-major mask of the cells reached. A non-walkable start
// reaches nothing.
//
// Time:   O(W·H).
// Memory: O(W·H) for the mask and queue.
func (g *Grid) Reachable(start *Cell) []bool {
	seen := make([]bool, len(g.cells))
	if !start.Walkable {
		return seen
	}
	i0 := g.Index(start)
	seen[i0] = true
	queue := []int{i0}

	for qi := 0; qi < len(queue); qi++ {
		u := g.At(queue[qi])
		for _, v := range g.Neighbors(u, false) {
			vi := g.Index(v)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}
	return seen
}

// WalkableComponents finds all 4-connected regions of walkable cells.
// Each component is a slice of row-major indices in discovery order;
// components are ordered by their first cell in row-major order.
//
// Time:   O(W·H).
// Memory: O(W·H).
func (g *Grid) WalkableComponents() [][]int {
	seen := make([]bool, len(g.cells))
	var comps [][]int

	for i0 := range g.cells {
		if !g.cells[i0].Walkable || seen[i0] {
			continue
		}
		seen[i0] = true
		comp := []int{i0}
		for qi := 0; qi < len(comp); qi++ {
			for _, v := range g.Neighbors(g.At(comp[qi]), false) {
				vi := g.Index(v)
				if !seen[vi] {
					seen[vi] = true
					comp = append(comp, vi)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// CountWalkable returns the number of walkable cells.
func (g *Grid) CountWalkable() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Walkable {
			n++
		}
	}
	return n
}
