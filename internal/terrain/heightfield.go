package terrain

// HeightField is a gently rolling noise-based ground surface.
type HeightField struct {
	seed        int64
	scale       float64
	baseHeight  float64
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewHeightField creates a height field for the given seed.
func NewHeightField(seed int64) *HeightField {
	return &HeightField{
		seed:        seed,
		scale:       1.0 / 96.0,
		baseHeight:  0,
		amp:         6,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

// HeightAt computes the ground height at a world XZ position. Pure and
// O(1); usable directly as the engine's height source.
func (h *HeightField) HeightAt(x, z float64) float64 {
	n := octaveNoise2D(x*h.scale, z*h.scale, h.seed, h.octaves, h.persistence, h.lacunarity)
	return h.baseHeight + n*h.amp
}
