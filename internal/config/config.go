// Package config holds the streaming engine configuration.
package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full set of recognized engine options. Validate rejects a
// bad configuration before the engine starts; nothing is discovered
// mid-stream.
type Config struct {
	// CellSize is the world-space edge length of one chunk cell.
	CellSize float64 `yaml:"cellSize"`
	// InstancesPerChunk is the number of grass instances generated per chunk.
	InstancesPerChunk int `yaml:"instancesPerChunk"`
	// ClusterSize is how many co-located blades share one cluster anchor.
	ClusterSize int `yaml:"clusterSize"`
	// ChunkRadius is the Chebyshev scan radius around the observer's cell.
	ChunkRadius int `yaml:"chunkRadius"`

	HighDetailDistance   float64 `yaml:"highDetailDistance"`
	MediumDetailDistance float64 `yaml:"mediumDetailDistance"`
	MaxDistance          float64 `yaml:"maxDistance"`

	// MaxPoolSize bounds the retired-chunk free list; records evicted while
	// the pool is full are disposed permanently.
	MaxPoolSize int `yaml:"maxPoolSize"`

	// Seed drives all procedural placement.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the tuning the demo ships with.
func DefaultConfig() Config {
	return Config{
		CellSize:             20,
		InstancesPerChunk:    512,
		ClusterSize:          3,
		ChunkRadius:          6,
		HighDetailDistance:   30,
		MediumDetailDistance: 70,
		MaxDistance:          100,
		MaxPoolSize:          64,
		Seed:                 1337,
	}
}

// Load reads a YAML config file, applying defaults for absent fields.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate rejects configurations that would produce undefined chunk
// addressing or unbounded churn.
func (c Config) Validate() error {
	if !(c.CellSize > 0) || math.IsInf(c.CellSize, 0) {
		return errors.Errorf("cellSize must be a positive finite number, got %v", c.CellSize)
	}
	if c.InstancesPerChunk < 0 {
		return errors.Errorf("instancesPerChunk must be >= 0, got %d", c.InstancesPerChunk)
	}
	if c.ClusterSize < 1 {
		return errors.Errorf("clusterSize must be >= 1, got %d", c.ClusterSize)
	}
	if c.ChunkRadius < 1 {
		return errors.Errorf("chunkRadius must be >= 1, got %d", c.ChunkRadius)
	}
	if c.HighDetailDistance <= 0 || c.MediumDetailDistance <= c.HighDetailDistance {
		return errors.Errorf("detail distances must satisfy 0 < high < medium, got high=%v medium=%v",
			c.HighDetailDistance, c.MediumDetailDistance)
	}
	if c.MaxDistance < c.MediumDetailDistance {
		return errors.Errorf("maxDistance %v must be >= mediumDetailDistance %v",
			c.MaxDistance, c.MediumDetailDistance)
	}
	if r := c.SafeZoneRadius(); c.ChunkRadius < r {
		// A scan radius below the safe zone would leave protected cells
		// uncreated, putting holes under the observer's feet.
		return errors.Errorf("chunkRadius %d must cover the safe-zone radius %d", c.ChunkRadius, r)
	}
	if c.MaxPoolSize < 0 {
		return errors.Errorf("maxPoolSize must be >= 0, got %d", c.MaxPoolSize)
	}
	if c.MaxPoolSize == 0 && c.InstancesPerChunk > 0 {
		// With instanced chunks every boundary crossing would reallocate.
		return errors.New("maxPoolSize 0 with a non-zero instancesPerChunk would thrash allocation")
	}
	return nil
}

// SafeZoneRadius is the grid radius around the observer's cell whose
// chunks must never be evicted: at least 2, at most 4 cells, scaling with
// the streaming radius.
func (c Config) SafeZoneRadius() int {
	r := int(math.Ceil(0.3 * c.MaxDistance / c.CellSize))
	if r < 2 {
		r = 2
	}
	if r > 4 {
		r = 4
	}
	return r
}
