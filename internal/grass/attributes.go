package grass

// AttributeSet holds the per-instance data for one chunk, laid out as flat
// arrays ready for interleaving into an instance vertex buffer. All arrays
// are sized to Count; Offsets holds xyz triplets.
type AttributeSet struct {
	Count        int
	Offsets      []float32 // local xyz within the chunk footprint, y is ground height
	Scales       []float32
	Rotations    []float32 // yaw in radians
	WindWeights  []float32
	ColorJitters []float32 // shared within a blade cluster
	DetailBands  []uint8   // coarse per-instance detail band 0..2
}

// resize grows or shrinks the arrays to hold n instances, reusing the
// backing storage of a pooled set where capacity allows.
func (a *AttributeSet) resize(n int) {
	a.Count = n
	a.Offsets = resizeF32(a.Offsets, 3*n)
	a.Scales = resizeF32(a.Scales, n)
	a.Rotations = resizeF32(a.Rotations, n)
	a.WindWeights = resizeF32(a.WindWeights, n)
	a.ColorJitters = resizeF32(a.ColorJitters, n)
	if cap(a.DetailBands) >= n {
		a.DetailBands = a.DetailBands[:n]
	} else {
		a.DetailBands = make([]uint8, n)
	}
}

// Release drops the backing arrays so a disposed chunk does not pin them.
func (a *AttributeSet) Release() {
	a.Count = 0
	a.Offsets = nil
	a.Scales = nil
	a.Rotations = nil
	a.WindWeights = nil
	a.ColorJitters = nil
	a.DetailBands = nil
}

func resizeF32(s []float32, n int) []float32 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]float32, n)
}
