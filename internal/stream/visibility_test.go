package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grassfield/internal/config"
	"grassfield/internal/geometry"
	"grassfield/internal/grid"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.CellSize = 20
	cfg.ChunkRadius = 6
	cfg.HighDetailDistance = 30
	cfg.MediumDetailDistance = 70
	cfg.MaxDistance = 100
	cfg.InstancesPerChunk = 8
	cfg.ClusterSize = 2
	return cfg
}

func TestRequiredSetAtOrigin(t *testing.T) {
	cfg := testConfig()
	policy := NewPolicy(cfg)
	var req RequiredSet
	policy.Required(0, 0, &req)

	require.Equal(t, grid.Coord{X: 0, Z: 0}, req.Base)
	safeRadius := cfg.SafeZoneRadius()

	byCoord := map[grid.Coord]RequiredCell{}
	for _, cell := range req.Cells {
		byCoord[cell.Coord] = cell

		// every required cell lies inside the scan square
		assert.LessOrEqual(t, grid.ChebyshevDist(cell.Coord, req.Base), cfg.ChunkRadius)

		// safe-zone classification matches grid distance
		wantSafe := grid.ChebyshevDist(cell.Coord, req.Base) <= safeRadius
		assert.Equal(t, wantSafe, cell.SafeZone, "cell %v", cell.Coord)

		// peripheral cells pass the footprint distance test with margin
		if !cell.SafeZone {
			d := cell.Coord.FootprintDist(0, 0, cfg.CellSize)
			assert.LessOrEqual(t, d, cfg.MaxDistance+cfg.CellSize, "cell %v", cell.Coord)
		}
	}

	// the whole safe zone is present even if the distance test would miss it
	for dz := -safeRadius; dz <= safeRadius; dz++ {
		for dx := -safeRadius; dx <= safeRadius; dx++ {
			c := grid.Coord{X: dx, Z: dz}
			cell, ok := byCoord[c]
			require.True(t, ok, "safe-zone cell %v missing", c)
			assert.True(t, cell.SafeZone)
		}
	}

	// axis-edge cells whose footprint touches the cutoff are included
	edge := grid.Coord{X: cfg.ChunkRadius, Z: 0}
	_, ok := byCoord[edge]
	assert.True(t, ok, "edge cell %v should pass with the one-cell margin", edge)

	// far corners of the square fail the footprint test
	corner := grid.Coord{X: cfg.ChunkRadius, Z: cfg.ChunkRadius}
	_, ok = byCoord[corner]
	assert.False(t, ok, "corner cell %v should be outside the distance cutoff", corner)

	// membership lookups agree with the cell list
	for _, cell := range req.Cells {
		assert.True(t, req.Contains(cell.Key))
	}
	assert.False(t, req.Contains(grid.Coord{X: 100, Z: 100}.Pack()))
}

// TestRequiredTiersMonotonic verifies nearer cells never get a coarser
// tier than farther ones.
func TestRequiredTiersMonotonic(t *testing.T) {
	cfg := testConfig()
	policy := NewPolicy(cfg)
	var req RequiredSet
	policy.Required(13, -7, &req)

	type distTier struct {
		dist float64
		tier geometry.LodTier
	}
	cells := make([]distTier, 0, len(req.Cells))
	for _, cell := range req.Cells {
		cells = append(cells, distTier{cell.Coord.CenterDist(13, -7, cfg.CellSize), cell.Tier})
	}
	for i := range cells {
		for j := range cells {
			if cells[i].dist < cells[j].dist && cells[i].tier > cells[j].tier {
				t.Fatalf("nearer cell (d=%v tier=%v) coarser than farther (d=%v tier=%v)",
					cells[i].dist, cells[i].tier, cells[j].dist, cells[j].tier)
			}
		}
	}
}

// TestRequiredSetStable verifies the same observer position yields the
// same required set on repeated computation.
func TestRequiredSetStable(t *testing.T) {
	policy := NewPolicy(testConfig())
	var a, b RequiredSet
	policy.Required(42.5, -13.7, &a)
	policy.Required(42.5, -13.7, &b)
	require.Equal(t, a.Base, b.Base)
	require.Equal(t, a.Cells, b.Cells)
}

func TestRequiredSetReuseAsScratch(t *testing.T) {
	policy := NewPolicy(testConfig())
	var req RequiredSet
	policy.Required(0, 0, &req)
	first := len(req.Cells)

	// a second fill must fully replace the first frame's contents
	policy.Required(500, 500, &req)
	assert.Equal(t, first, len(req.Cells))
	assert.Equal(t, grid.Coord{X: 25, Z: 25}, req.Base)
	for _, cell := range req.Cells {
		assert.LessOrEqual(t, grid.ChebyshevDist(cell.Coord, req.Base), testConfig().ChunkRadius)
	}
}
