package terrain

import (
	"math"
	"math/rand"
	"testing"
)

// TestHash2Deterministic verifies hash2 produces identical results for same inputs
func TestHash2Deterministic(t *testing.T) {
	first := hash2(10, -20, 42)
	for i := 0; i < 100; i++ {
		if hash2(10, -20, 42) != first {
			t.Fatal("hash2 not deterministic")
		}
	}
}

// TestHash2DifferentInputs verifies hash2 produces different values for different inputs
func TestHash2DifferentInputs(t *testing.T) {
	seed := int64(42)
	if hash2(1, 0, seed) == hash2(2, 0, seed) {
		t.Error("hash2 should differ for different X")
	}
	if hash2(0, 1, seed) == hash2(0, 2, seed) {
		t.Error("hash2 should differ for different Z")
	}
	if hash2(1, 2, seed) == hash2(2, 1, seed) {
		t.Error("hash2 should differ for axis swap")
	}
	if hash2(1, 1, 100) == hash2(1, 1, 200) {
		t.Error("hash2 should differ for different seed")
	}
}

// TestValueNoise2DRange verifies valueNoise2D outputs are in [0,1]
func TestValueNoise2DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v := valueNoise2D(x, z, 42)
		if v < 0.0 || v > 1.0 {
			t.Errorf("valueNoise2D(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}

// TestValueNoise2DContinuity verifies smooth interpolation (no random jumps)
func TestValueNoise2DContinuity(t *testing.T) {
	v1 := valueNoise2D(1.0, 1.0, 42)
	v2 := valueNoise2D(1.01, 1.0, 42)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("valueNoise2D not continuous: diff=%f >= 0.1", diff)
	}
}

// TestOctaveNoise2DRange verifies octaveNoise2D outputs are in [0,1]
func TestOctaveNoise2DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v := octaveNoise2D(x, z, 42, 4, 0.5, 2.0)
		if v < 0.0 || v > 1.0 {
			t.Errorf("octaveNoise2D(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}

// TestHeightFieldDeterministic verifies the same seed yields the same surface
func TestHeightFieldDeterministic(t *testing.T) {
	a := NewHeightField(7)
	b := NewHeightField(7)
	for i := 0; i < 100; i++ {
		x := float64(i) * 13.7
		z := float64(i) * -5.3
		if a.HeightAt(x, z) != b.HeightAt(x, z) {
			t.Fatalf("HeightAt(%v, %v) differs between identical seeds", x, z)
		}
	}
}

func TestHeightFieldFinite(t *testing.T) {
	h := NewHeightField(99)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*4000 - 2000
		z := rng.Float64()*4000 - 2000
		v := h.HeightAt(x, z)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("HeightAt(%v, %v) = %v, not finite", x, z, v)
		}
	}
}

func BenchmarkHeightAt(b *testing.B) {
	h := NewHeightField(42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.HeightAt(float64(i%1024), float64((i*31)%1024))
	}
}
