package stream

// Pool is the bounded LIFO free list of retired chunk records. Reusing the
// most recently retired record keeps its attribute buffers warm.
type Pool struct {
	free []*Record
	max  int
}

// NewPool creates a pool holding at most max retired records.
func NewPool(max int) *Pool {
	capHint := max
	if capHint > 16 {
		capHint = 16
	}
	return &Pool{free: make([]*Record, 0, capHint), max: max}
}

// Get pops the most recently retired record, or returns nil when empty.
// The record keeps its pooled mark until the caller accepts ownership via
// clearing it, so double-ownership faults stay detectable.
func (p *Pool) Get() *Record {
	n := len(p.free)
	if n == 0 {
		return nil
	}
	rec := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return rec
}

// Put retires a record into the pool. Returns false when the pool is at
// capacity; the caller must dispose the record instead.
func (p *Pool) Put(rec *Record) bool {
	if len(p.free) >= p.max {
		return false
	}
	rec.pooled = true
	p.free = append(p.free, rec)
	return true
}

// Len returns the number of pooled records.
func (p *Pool) Len() int {
	return len(p.free)
}
