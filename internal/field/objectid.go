package field

import "sync/atomic"

// Object id seeds. Values below are reserved for client-side/static ids.
//
//	10_000_000+: global scope (players, anything referenced across fields)
//	50_000_000+: local scope (NPCs, items, breakables, portals, spawn groups)
const (
	GlobalIDSeed int32 = 10_000_000
	LocalIDSeed  int32 = 50_000_000
)

// IDAllocator hands out monotonically increasing object ids.
// Ids are never recycled. Thread-safe via atomic increment.
type IDAllocator struct {
	next atomic.Int32
}

// NewIDAllocator creates an allocator whose first id is seed+1.
func NewIDAllocator(seed int32) *IDAllocator {
	a := &IDAllocator{}
	a.next.Store(seed)
	return a
}

// Next returns the next id.
func (a *IDAllocator) Next() int32 {
	return a.next.Add(1)
}

// Process-wide allocator shared by every field that isn't given its own.
var globalIDs = NewIDAllocator(GlobalIDSeed)

// GlobalIDs returns the process-wide allocator.
func GlobalIDs() *IDAllocator {
	return globalIDs
}

// NextGlobalID generates an object id unique across all fields of the process.
func NextGlobalID() int32 {
	return globalIDs.Next()
}
