// Package scene provides the in-memory scene graph the viewer renders:
// nodes with transforms, mesh bounds and materials.
package scene

// Scene is the root of everything drawn each frame.
type Scene struct {
	root *Node
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{root: NewGroup("scene")}
}

// Root returns the root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add attaches a node to the scene root.
func (s *Scene) Add(n *Node) {
	s.root.Add(n)
}

// Remove detaches a top-level node. Returns false if n is not attached to the root.
func (s *Scene) Remove(n *Node) bool {
	return s.root.Remove(n)
}

// Meshes returns every mesh node currently attached to the scene.
func (s *Scene) Meshes() []*Node {
	var out []*Node
	s.root.Traverse(func(n *Node) {
		if n.IsMesh() {
			out = append(out, n)
		}
	})
	return out
}

// Len returns the number of top-level nodes.
func (s *Scene) Len() int {
	return len(s.root.children)
}
