package testutil

import (
	"sync"

	"github.com/udisondev/summoning/internal/nav"
)

// PathRequest is a request captured by FakePathfinder.
type PathRequest struct {
	Start, Goal nav.Cell
	OnComplete  func(*nav.Waypoint)
}

// FakePathfinder records path requests and completes them only when the test
// says so. CellToWorld maps a cell to (col*CellSize, row*CellSize).
type FakePathfinder struct {
	CellSize float64

	mu       sync.Mutex
	requests []PathRequest
}

// NewFakePathfinder creates a fake with the given cell size.
func NewFakePathfinder(cellSize float64) *FakePathfinder {
	return &FakePathfinder{CellSize: cellSize}
}

// RequestPath records the request without resolving it.
func (f *FakePathfinder) RequestPath(startCol, startRow, goalCol, goalRow int, onComplete func(*nav.Waypoint)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, PathRequest{
		Start:      nav.Cell{Column: startCol, Row: startRow},
		Goal:       nav.Cell{Column: goalCol, Row: goalRow},
		OnComplete: onComplete,
	})
}

// ToOrderedSequence delegates to nav.ToOrderedSequence.
func (f *FakePathfinder) ToOrderedSequence(head *nav.Waypoint) []nav.Cell {
	return nav.ToOrderedSequence(head)
}

// CellToWorld maps cells onto a plain grid without centering.
func (f *FakePathfinder) CellToWorld(col, row int) nav.Vec2 {
	return nav.Vec2{X: float64(col) * f.CellSize, Y: float64(row) * f.CellSize}
}

// Requests returns a copy of the captured requests.
func (f *FakePathfinder) Requests() []PathRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]PathRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Complete fires request i with a chain built from cells (nil cells = no path).
func (f *FakePathfinder) Complete(i int, cells ...nav.Cell) {
	f.mu.Lock()
	req := f.requests[i]
	f.mu.Unlock()
	req.OnComplete(Chain(cells...))
}

// CompleteStraight fires request i with the straight Manhattan route from its
// start to its goal (columns first, then rows).
func (f *FakePathfinder) CompleteStraight(i int) {
	f.mu.Lock()
	req := f.requests[i]
	f.mu.Unlock()
	req.OnComplete(Chain(StraightRoute(req.Start, req.Goal)...))
}

// CompleteAll fires every captured request with its straight route.
func (f *FakePathfinder) CompleteAll() {
	for i := range f.Requests() {
		f.CompleteStraight(i)
	}
}

// Chain builds a back-pointer chain whose head is the last cell.
func Chain(cells ...nav.Cell) *nav.Waypoint {
	var head *nav.Waypoint
	for _, c := range cells {
		head = &nav.Waypoint{Column: c.Column, Row: c.Row, Parent: head}
	}
	return head
}

// StraightRoute returns the cells from a to b moving along columns first.
func StraightRoute(a, b nav.Cell) []nav.Cell {
	cells := []nav.Cell{a}
	cur := a
	for cur.Column != b.Column {
		if cur.Column < b.Column {
			cur.Column++
		} else {
			cur.Column--
		}
		cells = append(cells, cur)
	}
	for cur.Row != b.Row {
		if cur.Row < b.Row {
			cur.Row++
		} else {
			cur.Row--
		}
		cells = append(cells, cur)
	}
	return cells
}
