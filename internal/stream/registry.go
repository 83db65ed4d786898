package stream

import (
	"github.com/kamstrup/intmap"
)

// Registry is the authoritative map of currently resident chunks, keyed by
// packed grid coordinate. It also keeps a flat resident slice so per-frame
// passes iterate without touching map internals.
type Registry struct {
	byKey    *intmap.Map[uint64, *Record]
	resident []*Record
}

// NewRegistry creates a registry sized for the expected resident count.
func NewRegistry(capacity int) *Registry {
	if capacity < 16 {
		capacity = 16
	}
	return &Registry{
		byKey:    intmap.New[uint64, *Record](capacity),
		resident: make([]*Record, 0, capacity),
	}
}

// Get looks up the resident record for a packed coordinate.
func (r *Registry) Get(key uint64) (*Record, bool) {
	return r.byKey.Get(key)
}

// Put inserts a record under its own key. The record must not already be
// resident under another key.
func (r *Registry) Put(rec *Record) {
	r.byKey.Put(rec.Key, rec)
	rec.registryIdx = len(r.resident)
	r.resident = append(r.resident, rec)
}

// Del removes the record for a packed coordinate, if resident.
func (r *Registry) Del(key uint64) {
	rec, ok := r.byKey.Get(key)
	if !ok {
		return
	}
	r.byKey.Del(key)

	// swap-delete from the resident slice
	idx := rec.registryIdx
	last := len(r.resident) - 1
	if idx != last {
		moved := r.resident[last]
		r.resident[idx] = moved
		moved.registryIdx = idx
	}
	r.resident[last] = nil
	r.resident = r.resident[:last]
}

// Len returns the number of resident chunks.
func (r *Registry) Len() int {
	return len(r.resident)
}

// Resident returns the live resident slice. Callers must not add or remove
// records while iterating it.
func (r *Registry) Resident() []*Record {
	return r.resident
}
