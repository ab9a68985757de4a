package nav

import "sync/atomic"

// PathResult is the immutable outcome of one path request.
// Empty Cells means no path exists.
type PathResult struct {
	Cells []Cell
}

// Found reports whether the request produced a usable path.
func (r *PathResult) Found() bool {
	return len(r.Cells) > 0
}

// Ticket is a single-producer/single-consumer slot for one path request.
// The completion handler publishes into it atomically; the simulation polls it
// on its own tick. A canceled ticket drops late results.
type Ticket struct {
	result   atomic.Pointer[PathResult]
	canceled atomic.Bool
}

// Request issues an asynchronous path request on pf and returns its ticket.
// The chain is converted to an ordered sequence once, on the completion side.
func Request(pf Pathfinder, from, to Cell) *Ticket {
	t := &Ticket{}
	pf.RequestPath(from.Column, from.Row, to.Column, to.Row, func(head *Waypoint) {
		if t.Canceled() {
			return
		}
		t.Deliver(pf.ToOrderedSequence(head))
	})
	return t
}

// Deliver publishes cells unless the ticket was canceled or already filled.
// Returns true if the result was stored.
func (t *Ticket) Deliver(cells []Cell) bool {
	if t.canceled.Load() {
		return false
	}
	return t.result.CompareAndSwap(nil, &PathResult{Cells: cells})
}

// Poll returns the delivered result or nil while the request is in flight.
func (t *Ticket) Poll() *PathResult {
	if t.canceled.Load() {
		return nil
	}
	return t.result.Load()
}

// Cancel marks the requester as gone. Later deliveries are discarded.
func (t *Ticket) Cancel() {
	t.canceled.Store(true)
}

// Canceled reports whether Cancel was called.
func (t *Ticket) Canceled() bool {
	return t.canceled.Load()
}
