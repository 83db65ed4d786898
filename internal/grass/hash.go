package grass

// SplitMix64-style integer hash over (cell coordinate, stream index, seed).
// Stable across runs and well distributed, so procedural placement shows no
// periodic artifacts regardless of cell coordinate magnitude.
func hash2i(cx, cz int64, index uint64, seed int64) uint64 {
	v := uint64(cx)*0x9E3779B97F4A7C15 + uint64(cz)*0x517CC1B727220A95 + index*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// unit maps a hash to [0,1].
func unit(h uint64) float64 {
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
