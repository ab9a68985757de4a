package world

import "sync/atomic"

// ObjectIDGenerator generates unique minion object IDs.
// IDs start at 0x20000000; 0 stays invalid.
type ObjectIDGenerator struct {
	nextMinionID atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextMinionID.Store(0x20000000)
	return gen
}

// NextMinionID generates next unique minion object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextMinionID() uint32 {
	return g.nextMinionID.Add(1)
}
