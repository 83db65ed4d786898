package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"grassfield/internal/geometry"
)

// Blade segment counts per tier. More segments bend more smoothly under
// wind; far tiers get a single tapered triangle.
var tierSegments = map[geometry.LodTier]int{
	geometry.TierHigh:   5,
	geometry.TierMedium: 3,
	geometry.TierLow:    1,
}

const bladeHalfWidth = 0.05

// Mesh is one cached blade template. Shared read-only across chunks; the
// streaming engine only holds it as an opaque handle.
type Mesh struct {
	Tier        geometry.LodTier
	VBO         uint32
	VertexCount int32
}

// MeshProvider builds and caches one blade mesh per LOD tier. Must be used
// with a current GL context; not safe for concurrent use.
type MeshProvider struct {
	meshes map[geometry.LodTier]*Mesh
}

// NewMeshProvider creates an empty provider; meshes build lazily.
func NewMeshProvider() *MeshProvider {
	return &MeshProvider{meshes: make(map[geometry.LodTier]*Mesh, 3)}
}

// TemplateFor returns the cached mesh for a tier, building it on first use.
func (p *MeshProvider) TemplateFor(tier geometry.LodTier) (geometry.Handle, error) {
	if mesh, ok := p.meshes[tier]; ok {
		return mesh, nil
	}
	mesh := buildBladeMesh(tier)
	p.meshes[tier] = mesh
	return mesh, nil
}

// Dispose releases all cached meshes.
func (p *MeshProvider) Dispose() {
	for tier, mesh := range p.meshes {
		if mesh.VBO != 0 {
			gl.DeleteBuffers(1, &mesh.VBO)
		}
		delete(p.meshes, tier)
	}
}

// buildBladeMesh creates a tapered blade ribbon as a triangle list of
// (x, heightFrac) pairs.
func buildBladeMesh(tier geometry.LodTier) *Mesh {
	segments := tierSegments[tier]
	if segments < 1 {
		segments = 1
	}

	verts := make([]float32, 0, segments*12)
	push := func(x, y float32) {
		verts = append(verts, x, y)
	}
	for s := 0; s < segments; s++ {
		y0 := float32(s) / float32(segments)
		y1 := float32(s+1) / float32(segments)
		w0 := bladeHalfWidth * (1 - y0)
		w1 := bladeHalfWidth * (1 - y1)

		if s == segments-1 {
			// tip triangle
			push(-w0, y0)
			push(w0, y0)
			push(0, 1)
			continue
		}
		push(-w0, y0)
		push(w0, y0)
		push(w1, y1)

		push(-w0, y0)
		push(w1, y1)
		push(-w1, y1)
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return &Mesh{Tier: tier, VBO: vbo, VertexCount: int32(len(verts) / 2)}
}
