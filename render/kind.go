package render

import (
	"fmt"

	"github.com/katalvlaran/pathgrid/grid"
)

// Kind is the visual class of a cell.
type Kind int

const (
	Unvisited Kind = iota
	Wall
	Source
	Dest
	Path
	Closed
	Opened
	Hover
)

// Kinds lists every Kind in priority order, highest first.
var Kinds = []Kind{Wall, Source, Dest, Path, Closed, Opened, Hover, Unvisited}

var kindInfo = map[Kind]struct {
	name  string
	glyph byte
	rgb   uint32
}{
	Unvisited: {"unvisited", ' ', 0xffffff},
	Wall:      {"wall", '#', 0x47370c},
	Source:    {"source", 'S', 0xace817},
	Dest:      {"dest", 'D', 0xff885b},
	Path:      {"path", '*', 0xfffe6a},
	Closed:    {"closed", '.', 0x815fb3},
	Opened:    {"opened", 'o', 0xfcaed9},
	Hover:     {"hover", '?', 0xadd5ff},
}

func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Glyph is the single-byte ASCII form of k.
func (k Kind) Glyph() byte {
	if info, ok := kindInfo[k]; ok {
		return info.glyph
	}
	return '!'
}

// RGB is the 0xRRGGBB display colour of k.
func (k Kind) RGB() uint32 {
	return kindInfo[k].rgb
}

// Hex formats RGB as "#rrggbb".
func (k Kind) Hex() string {
	return fmt.Sprintf("#%06x", k.RGB())
}

// Classify returns the Kind of c. Any of src, dst or hover may be nil.
func Classify(c, src, dst, hover *grid.Cell) Kind {
	switch {
	case !c.Walkable:
		return Wall
	case c == src:
		return Source
	case c == dst:
		return Dest
	case c.PathNode:
		return Path
	case c.Closed:
		return Closed
	case c.Opened:
		return Opened
	case c == hover:
		return Hover
	default:
		return Unvisited
	}
}
