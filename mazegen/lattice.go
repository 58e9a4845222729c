package mazegen

import "github.com/katalvlaran/pathgrid/grid"

// lattice addresses the rooms of a grid: room (rx,ry) sits on cell
// (2rx,2ry), and rooms are numbered row-major as ry*cols + rx.
type lattice struct {
	g          *grid.Grid
	cols, rows int
}

func newLattice(g *grid.Grid) lattice {
	w, h := g.Dimensions()
	return lattice{g: g, cols: (w + 1) / 2, rows: (h + 1) / 2}
}

func (l lattice) len() int { return l.cols * l.rows }

func (l lattice) id(rx, ry int) int { return ry*l.cols + rx }

func (l lattice) coord(id int) (rx, ry int) { return id % l.cols, id / l.cols }

// openRoom marks the cell of room id walkable.
func (l lattice) openRoom(id int) {
	rx, ry := l.coord(id)
	l.g.MustCellAt(2*rx, 2*ry).Walkable = true
}

// openPassage marks the connector between adjacent rooms a and b walkable.
func (l lattice) openPassage(a, b int) {
	ax, ay := l.coord(a)
	bx, by := l.coord(b)
	l.g.MustCellAt(ax+bx, ay+by).Walkable = true
}

// neighbors appends the ids of rooms orthogonally adjacent to id to buf,
// in the grid's down, up, right, left order.
func (l lattice) neighbors(id int, buf []int) []int {
	rx, ry := l.coord(id)
	if ry+1 < l.rows {
		buf = append(buf, l.id(rx, ry+1))
	}
	if ry > 0 {
		buf = append(buf, l.id(rx, ry-1))
	}
	if rx+1 < l.cols {
		buf = append(buf, l.id(rx+1, ry))
	}
	if rx > 0 {
		buf = append(buf, l.id(rx-1, ry))
	}
	return buf
}

// prepare clears search state and sets every cell to walkable.
func prepare(g *grid.Grid, walkable bool) {
	g.ResetSearchState(false)
	g.Fill(walkable)
}
