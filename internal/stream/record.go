package stream

import (
	"grassfield/internal/geometry"
	"grassfield/internal/grass"
	"grassfield/internal/grid"
)

// Record is one resident or pooled chunk: its generated instance data, its
// assigned LOD geometry, and its lifecycle flags. A record is owned by
// exactly one of the registry or the pool, never both.
type Record struct {
	Coord  grid.Coord
	Key    uint64
	WorldX float64
	WorldZ float64

	Attributes grass.AttributeSet
	Geometry   geometry.Assignment

	// Evictable is false while the chunk is inside the safe zone; such a
	// chunk is kept even when the distance test no longer requires it.
	Evictable bool
	Visible   bool

	pooled      bool
	registryIdx int
}

// place rebinds the record to a coordinate, deriving its world origin.
func (r *Record) place(c grid.Coord, cellSize float64) {
	r.Coord = c
	r.Key = c.Pack()
	r.WorldX, r.WorldZ = c.Origin(cellSize)
}

// Dispose permanently releases the record's buffers. Called only when the
// pool is at capacity.
func (r *Record) Dispose() {
	r.Attributes.Release()
	r.Geometry.Clear()
	r.Visible = false
}
