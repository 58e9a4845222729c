package finder_test

import (
	"testing"

	"github.com/katalvlaran/pathgrid/finder"
)

// benchmarkStrategy solves corner to corner on an open 100×100 grid.
func benchmarkStrategy(b *testing.B, s finder.Strategy) {
	g := newGrid(b, 100, 100)
	src, dst := g.MustCellAt(0, 0), g.MustCellAt(99, 99)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.ResetSearchState(false)
		f, _ := finder.New(s, g, src, dst)
		_ = finder.Run(f)
	}
}

func BenchmarkBFS(b *testing.B)      { benchmarkStrategy(b, finder.BreadthFirst) }
func BenchmarkDFS(b *testing.B)      { benchmarkStrategy(b, finder.DepthFirst) }
func BenchmarkDijkstra(b *testing.B) { benchmarkStrategy(b, finder.Dijkstra) }
func BenchmarkAStar(b *testing.B)    { benchmarkStrategy(b, finder.AStar) }
