package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coord identifies one chunk cell on the XZ plane.
type Coord struct {
	X, Z int
}

// CellOf maps a continuous world position to the cell containing it.
// Uses floor division so negative positions land in the correct cell.
func CellOf(x, z, cellSize float64) Coord {
	return Coord{
		X: int(math.Floor(x / cellSize)),
		Z: int(math.Floor(z / cellSize)),
	}
}

// Origin returns the world-space minimum corner of the cell.
func (c Coord) Origin(cellSize float64) (float64, float64) {
	return float64(c.X) * cellSize, float64(c.Z) * cellSize
}

// Center returns the world-space center of the cell's footprint.
func (c Coord) Center(cellSize float64) (float64, float64) {
	half := cellSize / 2
	return float64(c.X)*cellSize + half, float64(c.Z)*cellSize + half
}

// Key returns the external string identity of the coordinate.
func (c Coord) Key() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Z)
}

// ParseKey converts a Key back to its Coord. Round-trips losslessly with Key.
func ParseKey(key string) (Coord, error) {
	sep := strings.IndexByte(key, ',')
	if sep < 0 {
		return Coord{}, fmt.Errorf("grid: malformed key %q", key)
	}
	x, err := strconv.Atoi(key[:sep])
	if err != nil {
		return Coord{}, fmt.Errorf("grid: malformed key %q: %v", key, err)
	}
	z, err := strconv.Atoi(key[sep+1:])
	if err != nil {
		return Coord{}, fmt.Errorf("grid: malformed key %q: %v", key, err)
	}
	return Coord{X: x, Z: z}, nil
}

// Pack folds the coordinate into a single uint64 for integer-keyed maps.
// Each axis is stored as 32 bits, so keys are collision-free for
// coordinates in [-2^31, 2^31); beyond that the axes wrap. At any sane
// cell size that range exceeds representable world positions by orders
// of magnitude.
func (c Coord) Pack() uint64 {
	return uint64(uint32(int32(c.X)))<<32 | uint64(uint32(int32(c.Z)))
}

// Unpack is the inverse of Pack.
func Unpack(key uint64) Coord {
	return Coord{
		X: int(int32(uint32(key >> 32))),
		Z: int(int32(uint32(key))),
	}
}

// ChebyshevDist returns the grid (chessboard) distance between two cells.
func ChebyshevDist(a, b Coord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// FootprintDist returns the distance from a world point to the closest
// point of the cell's footprint. Zero when the point is inside the cell.
func (c Coord) FootprintDist(x, z, cellSize float64) float64 {
	x0, z0 := c.Origin(cellSize)
	cx := math.Min(math.Max(x, x0), x0+cellSize)
	cz := math.Min(math.Max(z, z0), z0+cellSize)
	dx := x - cx
	dz := z - cz
	return math.Hypot(dx, dz)
}

// CenterDist returns the distance from a world point to the cell's
// footprint center.
func (c Coord) CenterDist(x, z, cellSize float64) float64 {
	cx, cz := c.Center(cellSize)
	return math.Hypot(x-cx, z-cz)
}
