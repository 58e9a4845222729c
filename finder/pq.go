package finder

// costItem is a frontier entry of a CostFinder.
type costItem struct {
	idx   int // row-major cell index
	f, h  int // selection key: f = g + h, then h
	seq   int // insertion order, final tie-break
	index int // position inside the heap, maintained by Swap
}

// costPQ is a min-heap over (f, h, seq). Because seq is unique the ordering
// is total, so selection is deterministic.
type costPQ []*costItem

func (pq costPQ) Len() int { return len(pq) }

func (pq costPQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (pq costPQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *costPQ) Push(x any) {
	item := x.(*costItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *costPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
