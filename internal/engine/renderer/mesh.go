package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/townview/internal/engine/scene"
)

// gpuMesh is the uploaded form of a scene geometry.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// interleave packs positions and normals as x, y, z, nx, ny, nz per vertex.
// Normals are generated when the geometry has none.
func interleave(g *scene.Geometry) []float32 {
	g.EnsureNormals()
	out := make([]float32, 0, len(g.Positions)*6)
	for i, p := range g.Positions {
		n := g.Normals[i]
		out = append(out, p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z())
	}
	return out
}

// elements returns the index list to draw, numbering vertices in order when
// the geometry is not indexed. Out-of-range indices drop their triangle.
func elements(g *scene.Geometry) []uint32 {
	out := make([]uint32, 0, g.TriangleCount()*3)
	for i := 0; i < g.TriangleCount(); i++ {
		if _, _, _, ok := g.Triangle(i); !ok {
			continue
		}
		if g.Indices != nil {
			out = append(out, g.Indices[3*i:3*i+3]...)
		} else {
			base := uint32(3 * i)
			out = append(out, base, base+1, base+2)
		}
	}
	return out
}

// meshFor returns the cached upload of g, creating it on first use. It
// returns nil for geometry without triangles.
func (r *Renderer) meshFor(g *scene.Geometry) *gpuMesh {
	if m, ok := r.meshes[g]; ok {
		return m
	}
	idx := elements(g)
	if len(idx) == 0 {
		return nil
	}

	m := &gpuMesh{count: int32(len(idx))}
	m.vao, m.vbo = upload(interleave(g), 3, 3)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*4, unsafe.Pointer(&idx[0]), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	r.meshes[g] = m
	return m
}

// releaseDisposed frees the buffers of geometry the scene has let go of.
func (r *Renderer) releaseDisposed() {
	for g, m := range r.meshes {
		if g.Disposed() {
			m.release()
			delete(r.meshes, g)
		}
	}
}

func (m *gpuMesh) release() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}
