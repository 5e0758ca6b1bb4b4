package astar

import (
	"container/heap"

	"github.com/katalvlaran/terrapath/territory"
)

// frontier is the open set. f values live in the Scratch; the frontier only
// decides which open cell comes out next.
type frontier interface {
	// push adds a newly discovered cell.
	push(c territory.Coord, f float64)
	// update signals that an open cell's f was lowered.
	update(c territory.Coord, f float64)
	// popMin removes and returns the open cell with the smallest f.
	popMin() territory.Coord
	len() int
}

func newFrontier(sel Selection, s *Scratch) frontier {
	if sel == SelectPriorityQueue {
		return &heapFrontier{latest: make(map[territory.Coord]uint64)}
	}

	return &linearFrontier{scratch: s}
}

// linearFrontier keeps open cells in insertion order and scans for the
// first minimum. Removal preserves the order of the remaining cells.
type linearFrontier struct {
	scratch *Scratch
	cells   []territory.Coord
}

func (l *linearFrontier) push(c territory.Coord, _ float64) {
	l.cells = append(l.cells, c)
}

// update is a no-op: the scan always reads the current f from the scratch.
func (l *linearFrontier) update(territory.Coord, float64) {}

func (l *linearFrontier) popMin() territory.Coord {
	best := 0
	minF := l.scratch.EstimatedTotal(l.cells[0])
	for i := 1; i < len(l.cells); i++ {
		if f := l.scratch.EstimatedTotal(l.cells[i]); f < minF {
			minF = f
			best = i
		}
	}
	c := l.cells[best]
	l.cells = append(l.cells[:best], l.cells[best+1:]...)

	return c
}

func (l *linearFrontier) len() int { return len(l.cells) }

// heapFrontier is a min-heap with lazy decrease-key: an update pushes a new
// entry and older entries for the same cell are skipped when popped.
type heapFrontier struct {
	pq     itemPQ
	seq    uint64
	latest map[territory.Coord]uint64 // seq of the live entry per open cell
}

func (h *heapFrontier) push(c territory.Coord, f float64) {
	h.seq++
	h.latest[c] = h.seq
	heap.Push(&h.pq, &item{c: c, f: f, seq: h.seq})
}

func (h *heapFrontier) update(c territory.Coord, f float64) {
	h.push(c, f)
}

func (h *heapFrontier) popMin() territory.Coord {
	for {
		it := heap.Pop(&h.pq).(*item)
		if h.latest[it.c] != it.seq {
			continue // stale entry
		}
		delete(h.latest, it.c)

		return it.c
	}
}

func (h *heapFrontier) len() int { return len(h.latest) }

// item is one heap entry.
type item struct {
	c   territory.Coord
	f   float64
	seq uint64 // push order, breaks f ties
}

// itemPQ orders items by f, then by push order.
type itemPQ []*item

func (pq itemPQ) Len() int { return len(pq) }

func (pq itemPQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].seq < pq[j].seq
}

func (pq itemPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *itemPQ) Push(x interface{}) { *pq = append(*pq, x.(*item)) }

func (pq *itemPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]

	return it
}
