package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/pathgrid/grid"
)

// Tally counts the cells of each Kind in a frame.
type Tally map[Kind]int

// Count classifies every cell of g without building rows.
func Count(g *grid.Grid, src, dst *grid.Cell) Tally {
	t := make(Tally, len(Kinds))
	for i := 0; i < g.Len(); i++ {
		t[Classify(g.At(i), src, dst, nil)]++
	}
	return t
}

// String summarizes the tally with thousands separators, for example
// "walls 1,204 (12%) | opened 87 | closed 3,310 | path 41".
func (t Tally) String() string {
	total := 0
	for _, n := range t {
		total += n
	}
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(t[Wall]) / float64(total)
	}
	return fmt.Sprintf("walls %s (%s%%) | opened %s | closed %s | path %s",
		humanize.Comma(int64(t[Wall])),
		humanize.FtoaWithDigits(pct, 1),
		humanize.Comma(int64(t[Opened])),
		humanize.Comma(int64(t[Closed])),
		humanize.Comma(int64(t[Path])),
	)
}

// Frame classifies every cell of g and returns one glyph string per row
// together with the tally of kinds. hover may be nil.
func Frame(g *grid.Grid, src, dst, hover *grid.Cell) ([]string, Tally) {
	width, height := g.Dimensions()
	t := make(Tally, len(Kinds))
	rows := make([]string, height)
	row := make([]byte, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			k := Classify(g.MustCellAt(x, y), src, dst, hover)
			t[k]++
			row[x] = k.Glyph()
		}
		rows[y] = string(row)
	}
	return rows, t
}

// ASCII writes g as one text line per row followed by the Tally line.
func ASCII(w io.Writer, g *grid.Grid, src, dst *grid.Cell) error {
	bw := bufio.NewWriter(w)
	rows, t := Frame(g, src, dst, nil)
	for _, row := range rows {
		if _, err := fmt.Fprintln(bw, row); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, t); err != nil {
		return err
	}
	return bw.Flush()
}
