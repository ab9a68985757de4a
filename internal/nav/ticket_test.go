package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type capturePathfinder struct {
	callbacks []func(*Waypoint)
}

func (c *capturePathfinder) RequestPath(_, _, _, _ int, onComplete func(*Waypoint)) {
	c.callbacks = append(c.callbacks, onComplete)
}

func (c *capturePathfinder) ToOrderedSequence(head *Waypoint) []Cell {
	return ToOrderedSequence(head)
}

func (c *capturePathfinder) CellToWorld(col, row int) Vec2 {
	return Vec2{X: float64(col), Y: float64(row)}
}

func TestTicket_PollBeforeDelivery(t *testing.T) {
	pf := &capturePathfinder{}
	tk := Request(pf, Cell{0, 0}, Cell{1, 0})

	assert.Nil(t, tk.Poll())
	assert.Len(t, pf.callbacks, 1)
}

func TestTicket_DeliverOnce(t *testing.T) {
	pf := &capturePathfinder{}
	tk := Request(pf, Cell{0, 0}, Cell{1, 0})

	head := &Waypoint{Column: 1, Parent: &Waypoint{Column: 0}}
	pf.callbacks[0](head)

	res := tk.Poll()
	if assert.NotNil(t, res) {
		assert.Equal(t, []Cell{{0, 0}, {1, 0}}, res.Cells)
	}

	assert.False(t, tk.Deliver([]Cell{{9, 9}}), "second delivery must not overwrite")
	assert.Equal(t, res, tk.Poll())
}

func TestTicket_CanceledDiscardsLateResult(t *testing.T) {
	pf := &capturePathfinder{}
	tk := Request(pf, Cell{0, 0}, Cell{1, 0})

	tk.Cancel()
	pf.callbacks[0](&Waypoint{Column: 1})

	assert.True(t, tk.Canceled())
	assert.Nil(t, tk.Poll())
	assert.Nil(t, tk.result.Load())
}

func TestTicket_NilChainIsNotFound(t *testing.T) {
	pf := &capturePathfinder{}
	tk := Request(pf, Cell{0, 0}, Cell{1, 0})

	pf.callbacks[0](nil)

	res := tk.Poll()
	if assert.NotNil(t, res) {
		assert.False(t, res.Found())
	}
}
