package field

import (
	"sync"
	"sync/atomic"
)

// Registry is a concurrent objectID → entity map for one entity kind.
//
// Insert, remove and lookup are safe from any goroutine, including the tick
// loop while it ranges. Range is weakly consistent (sync.Map semantics):
// entries stored or deleted during a Range may or may not be visited.
type Registry[E any] struct {
	entries sync.Map     // map[int32]E
	count   atomic.Int32 // cached count (O(1) access)
}

// Add stores e under id. Returns false if id is already taken; the
// existing entry is kept.
//
// The count is raised before the entry becomes visible, so a concurrent
// Remove of the same id can never take it below zero.
func (r *Registry[E]) Add(id int32, e E) bool {
	r.count.Add(1)
	if _, loaded := r.entries.LoadOrStore(id, e); loaded {
		r.count.Add(-1)
		return false
	}
	return true
}

// Remove deletes and returns the entry for id.
func (r *Registry[E]) Remove(id int32) (E, bool) {
	value, ok := r.entries.LoadAndDelete(id)
	if !ok {
		var zero E
		return zero, false
	}
	r.count.Add(-1)
	return value.(E), true
}

// Get returns the entry for id.
func (r *Registry[E]) Get(id int32) (E, bool) {
	value, ok := r.entries.Load(id)
	if !ok {
		var zero E
		return zero, false
	}
	return value.(E), true
}

// Range calls fn for every entry until fn returns false.
func (r *Registry[E]) Range(fn func(id int32, e E) bool) {
	r.entries.Range(func(key, value any) bool {
		return fn(key.(int32), value.(E))
	})
}

// Find returns the first entry matching pred (linear scan).
func (r *Registry[E]) Find(pred func(E) bool) (E, bool) {
	var found E
	ok := false
	r.entries.Range(func(_, value any) bool {
		e := value.(E)
		if pred(e) {
			found, ok = e, true
			return false
		}
		return true
	})
	return found, ok
}

// Len returns the number of entries (O(1) cached count). During a
// concurrent Add it may briefly include the entry being added.
func (r *Registry[E]) Len() int {
	return max(int(r.count.Load()), 0)
}

// Values returns a snapshot of all entries.
func (r *Registry[E]) Values() []E {
	out := make([]E, 0, r.Len())
	r.Range(func(_ int32, e E) bool {
		out = append(out, e)
		return true
	})
	return out
}
