// Package debug provides box geometry used to visualise mesh bounds.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/engine/picking"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// BoxVertexCount is the number of vertices of a solid box (6 faces × 2 triangles × 3).
const BoxVertexCount = 36

// DefaultBBoxPadding is the default padding for selection outlines.
const DefaultBBoxPadding = 0.02

// BBoxWireframe creates line vertices for a wireframe box grown by padding
// on all sides. Format: [x, y, z] per vertex.
func BBoxWireframe(box picking.AABB, padding float32) []float32 {
	pad := mgl32.Vec3{padding, padding, padding}
	lo, hi := box.Min.Sub(pad), box.Max.Add(pad)
	minX, minY, minZ := lo.Elem()
	maxX, maxY, maxZ := hi.Elem()

	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// UnitCube returns a solid cube spanning [0,1]³ with per-face normals.
// Format: [x, y, z, nx, ny, nz] per vertex, counter-clockwise winding.
func UnitCube() []float32 {
	type face struct {
		n       mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	}

	out := make([]float32, 0, BoxVertexCount*6)
	for _, f := range faces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			c := f.corners[i]
			out = append(out, c.X(), c.Y(), c.Z(), f.n.X(), f.n.Y(), f.n.Z())
		}
	}
	return out
}

// BoxModel returns the matrix that maps UnitCube onto box.
func BoxModel(box picking.AABB) mgl32.Mat4 {
	size := box.Max.Sub(box.Min)
	return mgl32.Translate3D(box.Min.Elem()).Mul4(mgl32.Scale3D(size.Elem()))
}
