package nav

// Waypoint is one node of a search result. The cost fields are bookkeeping for
// the search only; Parent links back toward the start cell.
type Waypoint struct {
	Column int
	Row    int

	GCost int // cost from start
	HCost int // heuristic cost to goal
	FCost int // GCost + HCost

	Parent *Waypoint

	index int // heap index
}

// Cell returns the grid cell of the waypoint.
func (w *Waypoint) Cell() Cell {
	return Cell{Column: w.Column, Row: w.Row}
}

// ToOrderedSequence walks the back-pointer chain once and returns the cells in
// start-to-goal order. A nil head yields nil.
func ToOrderedSequence(head *Waypoint) []Cell {
	if head == nil {
		return nil
	}

	n := 0
	for w := head; w != nil; w = w.Parent {
		n++
	}

	cells := make([]Cell, n)
	i := n - 1
	for w := head; w != nil; w = w.Parent {
		cells[i] = w.Cell()
		i--
	}
	return cells
}
