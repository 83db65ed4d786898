package grass

import (
	"math"

	"grassfield/internal/grid"
)

// HeightFunc queries external terrain height at a world XZ position.
// It must be pure; non-finite results are clamped to 0 and counted.
type HeightFunc func(x, z float64) float64

// Generator produces deterministic per-chunk instance attributes. All
// pseudo-randomness derives from (chunk coordinate, instance index, seed),
// so a chunk regenerated after eviction is byte-identical to the original.
type Generator struct {
	cellSize          float64
	instancesPerChunk int
	clusterSize       int
	seed              int64
	heightAt          HeightFunc

	nonFiniteHeights uint64
}

// NewGenerator creates a generator. clusterSize below 1 is treated as 1.
func NewGenerator(cellSize float64, instancesPerChunk, clusterSize int, seed int64, heightAt HeightFunc) *Generator {
	if clusterSize < 1 {
		clusterSize = 1
	}
	return &Generator{
		cellSize:          cellSize,
		instancesPerChunk: instancesPerChunk,
		clusterSize:       clusterSize,
		seed:              seed,
		heightAt:          heightAt,
	}
}

// Generate allocates and fills a fresh attribute set for the chunk.
func (g *Generator) Generate(c grid.Coord) *AttributeSet {
	set := &AttributeSet{}
	g.GenerateInto(c, set)
	return set
}

// GenerateInto fills dst for the chunk, reusing dst's buffers where their
// capacity allows. instancesPerChunk of 0 yields an empty set.
func (g *Generator) GenerateInto(c grid.Coord, dst *AttributeSet) {
	dst.resize(g.instancesPerChunk)
	if g.instancesPerChunk == 0 {
		return
	}

	originX, originZ := c.Origin(g.cellSize)
	cx, cz := int64(c.X), int64(c.Z)
	clusterStep := 2 * math.Pi / float64(g.clusterSize)

	for i := 0; i < g.instancesPerChunk; i++ {
		cluster := i / g.clusterSize
		member := i % g.clusterSize

		// Cluster-family values: every member of a blade cluster shares
		// the anchor point, jitter and wind weight of its cluster seed.
		anchorX := unit(g.clusterHash(cx, cz, cluster, laneAnchorX)) * g.cellSize
		anchorZ := unit(g.clusterHash(cx, cz, cluster, laneAnchorZ)) * g.cellSize
		phase := unit(g.clusterHash(cx, cz, cluster, lanePhase)) * 2 * math.Pi
		jitter := unit(g.clusterHash(cx, cz, cluster, laneJitter))
		wind := 0.4 + 0.6*unit(g.clusterHash(cx, cz, cluster, laneWind))

		// Members fan out at evenly spaced angles around the anchor.
		angle := phase + clusterStep*float64(member)
		spread := clusterSpread * g.cellSize
		localX := clampToCell(anchorX+math.Cos(angle)*spread, g.cellSize)
		localZ := clampToCell(anchorZ+math.Sin(angle)*spread, g.cellSize)

		// Per-instance values vary within the cluster.
		hi := g.instanceHash(cx, cz, i, laneScale)
		scale := 0.6 + 0.8*unit(hi)
		rot := angle + (unit(g.instanceHash(cx, cz, i, laneRot))-0.5)*0.9

		y := g.heightAt(originX+localX, originZ+localZ)
		if !isFinite(y) {
			y = 0
			g.nonFiniteHeights++
		}

		dst.Offsets[3*i] = float32(localX)
		dst.Offsets[3*i+1] = float32(y)
		dst.Offsets[3*i+2] = float32(localZ)
		dst.Scales[i] = float32(scale)
		dst.Rotations[i] = float32(rot)
		dst.WindWeights[i] = float32(wind)
		dst.ColorJitters[i] = float32(jitter)
		dst.DetailBands[i] = uint8(g.instanceHash(cx, cz, i, laneBand) % 3)
	}
}

// NonFiniteHeights reports how many height samples were clamped to 0.
func (g *Generator) NonFiniteHeights() uint64 {
	return g.nonFiniteHeights
}

// clusterSpread is the radial cluster offset as a fraction of cell size.
const clusterSpread = 0.012

// Lane salts keep the derived value streams independent of each other.
const (
	laneAnchorX = iota
	laneAnchorZ
	lanePhase
	laneJitter
	laneWind
	laneScale
	laneRot
	laneBand
	laneCount
)

// clusterHash seeds the value streams shared by a whole blade cluster.
// Cluster lanes live in the upper half of the index space so they can
// never collide with per-instance lanes.
func (g *Generator) clusterHash(cx, cz int64, cluster, lane int) uint64 {
	return hash2i(cx, cz, 1<<40+uint64(cluster)*laneCount+uint64(lane), g.seed)
}

func (g *Generator) instanceHash(cx, cz int64, index, lane int) uint64 {
	return hash2i(cx, cz, uint64(index)*laneCount+uint64(lane), g.seed)
}

// clampToCell keeps a local coordinate inside the cell's half-open
// footprint [0, cellSize). The upper bound is the largest float32 below
// cellSize so the value survives the float32 conversion of the attribute
// buffers without rounding onto the neighboring cell.
func clampToCell(v, cellSize float64) float64 {
	if v < 0 {
		return 0
	}
	if max := float64(math.Nextafter32(float32(cellSize), 0)); v > max {
		return max
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
