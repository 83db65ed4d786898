package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	mutations := map[string]func(*Config){
		"zero cell size":        func(c *Config) { c.CellSize = 0 },
		"negative cell size":    func(c *Config) { c.CellSize = -5 },
		"negative instances":    func(c *Config) { c.InstancesPerChunk = -1 },
		"zero cluster size":     func(c *Config) { c.ClusterSize = 0 },
		"zero chunk radius":     func(c *Config) { c.ChunkRadius = 0 },
		"inverted detail dists": func(c *Config) { c.MediumDetailDistance = c.HighDetailDistance - 1 },
		"max below medium":      func(c *Config) { c.MaxDistance = c.MediumDetailDistance - 1 },
		"negative pool":         func(c *Config) { c.MaxPoolSize = -1 },
		"radius below safe zone": func(c *Config) { c.ChunkRadius = 1 }, // SafeZoneRadius is floored at 2
		"no pool with churn":    func(c *Config) { c.MaxPoolSize = 0 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestChunkRadiusMustCoverSafeZone pins the boundary: a scan radius equal
// to the safe-zone radius is the smallest the engine will start with.
func TestChunkRadiusMustCoverSafeZone(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 2, cfg.SafeZoneRadius())

	cfg.ChunkRadius = cfg.SafeZoneRadius()
	assert.NoError(t, cfg.Validate())

	cfg.ChunkRadius = cfg.SafeZoneRadius() - 1
	assert.Error(t, cfg.Validate())

	// a larger safe zone raises the floor on the scan radius with it
	cfg.MaxDistance = 200 // SafeZoneRadius 3
	cfg.ChunkRadius = 2
	assert.Error(t, cfg.Validate())
	cfg.ChunkRadius = 3
	assert.NoError(t, cfg.Validate())
}

func TestZeroPoolAllowedWithoutInstances(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPoolSize = 0
	cfg.InstancesPerChunk = 0
	assert.NoError(t, cfg.Validate())
}

func TestSafeZoneRadiusClamped(t *testing.T) {
	cfg := DefaultConfig()

	// 0.3 * 100 / 20 = 1.5, ceil 2, clamped low end
	cfg.MaxDistance = 100
	cfg.CellSize = 20
	assert.Equal(t, 2, cfg.SafeZoneRadius())

	// 0.3 * 200 / 20 = 3
	cfg.MaxDistance = 200
	assert.Equal(t, 3, cfg.SafeZoneRadius())

	// 0.3 * 1000 / 20 = 15, clamped high end
	cfg.MaxDistance = 1000
	assert.Equal(t, 4, cfg.SafeZoneRadius())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grassfield.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cellSize: 10\nchunkRadius: 4\nseed: 99\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.CellSize)
	assert.Equal(t, 4, cfg.ChunkRadius)
	assert.Equal(t, int64(99), cfg.Seed)
	// untouched fields keep defaults
	assert.Equal(t, DefaultConfig().MaxPoolSize, cfg.MaxPoolSize)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cellSize: -3\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
