package nav

import "container/heap"

// DefaultMaxIterations caps the number of expanded nodes per search.
const DefaultMaxIterations = 7000

// Move costs. Diagonal moves approximate 10·√2.
const (
	weightStraight = 10
	weightDiagonal = 14
)

// FindPath runs A* from start to goal and returns the goal node of the
// resulting chain, or nil when no path exists or maxIterations is exceeded.
// Follow Parent from the result to walk back to start.
func (m *Mesh) FindPath(start, goal Cell, maxIterations int) *Waypoint {
	if !m.IsWalkable(start.Column, start.Row) || !m.IsWalkable(goal.Column, goal.Row) {
		return nil
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	first := &Waypoint{Column: start.Column, Row: start.Row}
	first.HCost = m.heuristic(start, goal)
	first.FCost = first.HCost

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, first)

	closed := make(map[Cell]struct{}, 256)
	best := map[Cell]int{start: 0}

	for range maxIterations {
		if openList.Len() == 0 {
			return nil
		}

		current := heap.Pop(openList).(*Waypoint)
		if current.Column == goal.Column && current.Row == goal.Row {
			return current
		}

		key := current.Cell()
		if _, exists := closed[key]; exists {
			continue
		}
		closed[key] = struct{}{}

		m.expandNeighbors(current, goal, openList, closed, best)
	}

	return nil // max iterations exceeded
}

// expandNeighbors pushes walkable, unvisited neighbours of current.
func (m *Mesh) expandNeighbors(
	current *Waypoint,
	goal Cell,
	openList *nodeHeap,
	closed map[Cell]struct{},
	best map[Cell]int,
) {
	type dir struct {
		dc, dr   int
		diagonal bool
	}

	dirs := [8]dir{
		{0, -1, false}, {1, 0, false}, {0, 1, false}, {-1, 0, false},
		{1, -1, true}, {1, 1, true}, {-1, 1, true}, {-1, -1, true},
	}

	for _, d := range dirs {
		if d.diagonal {
			if !m.diagonal {
				continue
			}
			// no corner cutting: both adjacent cardinals must be open
			if !m.IsWalkable(current.Column+d.dc, current.Row) ||
				!m.IsWalkable(current.Column, current.Row+d.dr) {
				continue
			}
		}

		nc, nr := current.Column+d.dc, current.Row+d.dr
		if !m.IsWalkable(nc, nr) {
			continue
		}

		key := Cell{Column: nc, Row: nr}
		if _, exists := closed[key]; exists {
			continue
		}

		weight := weightStraight
		if d.diagonal {
			weight = weightDiagonal
		}
		gCost := current.GCost + weight
		if prev, ok := best[key]; ok && prev <= gCost {
			continue
		}
		best[key] = gCost

		node := &Waypoint{
			Column: nc,
			Row:    nr,
			Parent: current,
			GCost:  gCost,
			HCost:  m.heuristic(key, goal),
		}
		node.FCost = node.GCost + node.HCost
		heap.Push(openList, node)
	}
}

// heuristic is Manhattan distance for 4-neighbour meshes and octile distance
// when diagonals are enabled.
func (m *Mesh) heuristic(a, b Cell) int {
	dc := abs(a.Column - b.Column)
	dr := abs(a.Row - b.Row)
	if !m.diagonal {
		return weightStraight * (dc + dr)
	}
	lo, hi := min(dc, dr), max(dc, dr)
	return weightDiagonal*lo + weightStraight*(hi-lo)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// nodeHeap implements container/heap for the A* open list (min-heap by FCost).
type nodeHeap []*Waypoint

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].FCost == h[j].FCost {
		return h[i].HCost < h[j].HCost
	}
	return h[i].FCost < h[j].FCost
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)   { n := x.(*Waypoint); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
