package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/engine/picking"
)

// Geometry is the vertex data of a mesh in local space. Indices address
// Positions three at a time; without indices consecutive triples form the
// triangles. Normals, when present, parallel Positions.
type Geometry struct {
	Bounds      picking.AABB
	VertexCount int
	Positions   []mgl32.Vec3
	Normals     []mgl32.Vec3
	Indices     []uint32
	disposed    bool
}

// NewGeometry builds a geometry from triangle data and derives its bounds.
func NewGeometry(positions []mgl32.Vec3, indices []uint32) *Geometry {
	g := &Geometry{Bounds: picking.EmptyAABB(), VertexCount: len(positions), Positions: positions, Indices: indices}
	for _, p := range positions {
		g.Bounds = g.Bounds.Extend(p)
	}
	return g
}

// TriangleCount returns the number of whole triangles.
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the corners of triangle i. ok is false when i is out of
// range or an index points past the positions.
func (g *Geometry) Triangle(i int) (a, b, c mgl32.Vec3, ok bool) {
	if i < 0 || i >= g.TriangleCount() {
		return a, b, c, false
	}
	i0, i1, i2 := 3*i, 3*i+1, 3*i+2
	if g.Indices != nil {
		i0, i1, i2 = int(g.Indices[i0]), int(g.Indices[i1]), int(g.Indices[i2])
	}
	n := len(g.Positions)
	if i0 >= n || i1 >= n || i2 >= n {
		return a, b, c, false
	}
	return g.Positions[i0], g.Positions[i1], g.Positions[i2], true
}

// EnsureNormals fills Normals with area-weighted vertex normals when the
// source data carried none.
func (g *Geometry) EnsureNormals() {
	if len(g.Normals) == len(g.Positions) {
		return
	}
	normals := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c, ok := g.Triangle(i)
		if !ok {
			continue
		}
		face := b.Sub(a).Cross(c.Sub(a))
		i0, i1, i2 := 3*i, 3*i+1, 3*i+2
		if g.Indices != nil {
			i0, i1, i2 = int(g.Indices[i0]), int(g.Indices[i1]), int(g.Indices[i2])
		}
		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}
	for i, n := range normals {
		if n.Len() > 1e-12 {
			normals[i] = n.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	g.Normals = normals
}

// Dispose releases the geometry. Disposing twice is a no-op.
func (g *Geometry) Dispose() {
	g.disposed = true
}

// Disposed reports whether Dispose was called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

// Material holds the surface parameters the renderer needs.
type Material struct {
	Name      string
	BaseColor mgl32.Vec4
	Emissive  mgl32.Vec3
	disposed  bool
}

// NewMaterial returns an opaque white material.
func NewMaterial(name string) *Material {
	return &Material{Name: name, BaseColor: mgl32.Vec4{1, 1, 1, 1}}
}

// SetEmissiveHex sets the emissive colour from a 0xRRGGBB value.
func (m *Material) SetEmissiveHex(hex uint32) {
	m.Emissive = mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// EmissiveHex returns the emissive colour as 0xRRGGBB.
func (m *Material) EmissiveHex() uint32 {
	return toByte(m.Emissive.X())<<16 | toByte(m.Emissive.Y())<<8 | toByte(m.Emissive.Z())
}

func toByte(v float32) uint32 {
	v = mgl32.Clamp(v, 0, 1)
	return uint32(v*255 + 0.5)
}

// Dispose releases the material. Disposing twice is a no-op.
func (m *Material) Dispose() {
	m.disposed = true
}

// Disposed reports whether Dispose was called.
func (m *Material) Disposed() bool {
	return m.disposed
}

// Node is an element of the scene graph: a group, or a mesh when it carries
// geometry. Transforms are relative to the parent.
type Node struct {
	name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Geometry *Geometry
	Material *Material

	parent   *Node
	children []*Node
}

// NewGroup creates an empty transform node.
func NewGroup(name string) *Node {
	return &Node{
		name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// NewMesh creates a renderable node.
func NewMesh(name string, geom *Geometry, mat *Material) *Node {
	n := NewGroup(name)
	n.Geometry = geom
	n.Material = mat
	return n
}

// Name returns the node's authored name.
func (n *Node) Name() string {
	return n.name
}

// IsMesh reports whether the node carries geometry.
func (n *Node) IsMesh() bool {
	return n.Geometry != nil
}

// Parent returns the parent node, or nil for a detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

// Contains reports whether other is n or lies in n's subtree.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Remove detaches child from n. Returns false if child is not a direct child.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Traverse calls fn for n and every descendant, depth first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Find returns the first node in the subtree with the given name.
func (n *Node) Find(name string) *Node {
	if n.name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the node transform composed with all ancestors.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldBounds returns the world-space box of the node's own geometry.
// ok is false for nodes without geometry.
func (n *Node) WorldBounds() (box picking.AABB, ok bool) {
	if n.Geometry == nil || n.Geometry.Bounds.Empty() {
		return picking.AABB{}, false
	}
	return n.Geometry.Bounds.Transform(n.WorldMatrix()), true
}

// SetEmissive sets the emissive colour of the node's material.
func (n *Node) SetEmissive(hex uint32) {
	if n.Material != nil {
		n.Material.SetEmissiveHex(hex)
	}
}

// DisposeMaterial releases the node's material.
func (n *Node) DisposeMaterial() {
	if n.Material != nil {
		n.Material.Dispose()
	}
}

// DisposeGeometry releases the node's geometry.
func (n *Node) DisposeGeometry() {
	if n.Geometry != nil {
		n.Geometry.Dispose()
	}
}
