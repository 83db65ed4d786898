// Package render is the rendering collaborator of the streaming engine: a
// GL mesh provider for the LOD tiers and an instanced grass renderable
// consuming the engine's draw descriptors.
package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"grassfield/internal/profiling"
	"grassfield/internal/stream"
)

const instanceStride = 8 // floats: offset xyz, scale, rotation, wind, jitter, band

// chunkBuffer is the GPU mirror of one resident chunk.
type chunkBuffer struct {
	vao   uint32
	vbo   uint32
	mesh  *Mesh
	count int32
}

// Grass draws every visible chunk with instanced blades.
type Grass struct {
	shader *Shader
	chunks map[uint64]*chunkBuffer

	descs      []stream.DrawDescriptor
	interleave []float32
	seen       map[uint64]bool
}

// NewGrass creates the renderable; call Init with a current GL context.
func NewGrass() *Grass {
	return &Grass{
		chunks: make(map[uint64]*chunkBuffer, 256),
		seen:   make(map[uint64]bool, 256),
	}
}

// Init compiles the grass shader.
func (g *Grass) Init() error {
	shader, err := NewShader(grassVertShader, grassFragShader)
	if err != nil {
		return errors.Wrap(err, "grass shader")
	}
	g.shader = shader
	return nil
}

// Render draws one frame. The engine must have been updated for this frame
// already; descriptors and LOD parameters are read fresh.
func (g *Grass) Render(view, proj mgl32.Mat4, engine *stream.Engine, timeSec float64) {
	defer profiling.Track("render.Grass")()

	g.descs = engine.AppendDrawDescriptors(g.descs[:0])
	params := engine.LODParams()

	g.shader.Use()
	g.shader.SetMatrix4("uView", view)
	g.shader.SetMatrix4("uProj", proj)
	g.shader.SetVector2("uObserver", float32(params.ObserverX), float32(params.ObserverZ))
	g.shader.SetFloat("uHighDist", float32(params.HighDetailDistance))
	g.shader.SetFloat("uMediumDist", float32(params.MediumDetailDistance))
	g.shader.SetFloat("uTime", float32(timeSec))

	clear(g.seen)
	for i := range g.descs {
		desc := &g.descs[i]
		if desc.InstanceCount == 0 {
			continue
		}
		mesh, ok := desc.Geometry.(*Mesh)
		if !ok {
			continue
		}
		key := desc.Coord.Pack()
		g.seen[key] = true

		cb := g.ensureChunk(key, mesh, desc)
		g.shader.SetVector3("uChunkOrigin", desc.WorldPosition.X(), desc.WorldPosition.Y(), desc.WorldPosition.Z())
		gl.BindVertexArray(cb.vao)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, mesh.VertexCount, cb.count)
	}
	gl.BindVertexArray(0)

	// drop GPU mirrors of chunks that left the visible set
	for key, cb := range g.chunks {
		if !g.seen[key] {
			g.deleteChunk(cb)
			delete(g.chunks, key)
		}
	}
}

// ensureChunk uploads a chunk's instance data on first appearance, or
// rebuilds it when its tier template changed since it was last resident.
func (g *Grass) ensureChunk(key uint64, mesh *Mesh, desc *stream.DrawDescriptor) *chunkBuffer {
	if cb, ok := g.chunks[key]; ok && cb.mesh == mesh {
		return cb
	}
	if cb, ok := g.chunks[key]; ok {
		g.deleteChunk(cb)
		delete(g.chunks, key)
	}

	attrs := desc.Attributes
	n := desc.InstanceCount
	if cap(g.interleave) < n*instanceStride {
		g.interleave = make([]float32, n*instanceStride)
	}
	data := g.interleave[:n*instanceStride]
	for i := 0; i < n; i++ {
		base := i * instanceStride
		data[base+0] = attrs.Offsets[3*i]
		data[base+1] = attrs.Offsets[3*i+1]
		data[base+2] = attrs.Offsets[3*i+2]
		data[base+3] = attrs.Scales[i]
		data[base+4] = attrs.Rotations[i]
		data[base+5] = attrs.WindWeights[i]
		data[base+6] = attrs.ColorJitters[i]
		data[base+7] = float32(attrs.DetailBands[i])
	}

	cb := &chunkBuffer{mesh: mesh, count: int32(n)}
	gl.GenVertexArrays(1, &cb.vao)
	gl.GenBuffers(1, &cb.vbo)

	gl.BindVertexArray(cb.vao)

	// blade vertices
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))

	// per-instance attributes
	gl.BindBuffer(gl.ARRAY_BUFFER, cb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	stride := int32(instanceStride * 4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.VertexAttribDivisor(1, 1)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.VertexAttribDivisor(2, 1)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, gl.PtrOffset(7*4))
	gl.VertexAttribDivisor(3, 1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	g.chunks[key] = cb
	return cb
}

func (g *Grass) deleteChunk(cb *chunkBuffer) {
	if cb.vao != 0 {
		gl.DeleteVertexArrays(1, &cb.vao)
	}
	if cb.vbo != 0 {
		gl.DeleteBuffers(1, &cb.vbo)
	}
}

// Dispose releases all GPU resources.
func (g *Grass) Dispose() {
	for key, cb := range g.chunks {
		g.deleteChunk(cb)
		delete(g.chunks, key)
	}
	if g.shader != nil {
		g.shader.Delete()
		g.shader = nil
	}
}
