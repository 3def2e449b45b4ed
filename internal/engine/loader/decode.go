package loader

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/townview/internal/engine/anim"
	"github.com/Faultbox/townview/internal/engine/scene"
)

// ErrEmpty is returned for zero-length model data.
var ErrEmpty = errors.New("empty model data")

// ErrHierarchy is returned when the node graph is not a forest.
var ErrHierarchy = errors.New("malformed node hierarchy")

// Decode parses a glTF or GLB document into a scene subtree, its animation
// clips and the identifiers of its images. name labels the root node.
func Decode(name string, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("parse gltf: %w", err)
	}

	d := &decoder{doc: doc, name: name}
	return d.decode()
}

type decoder struct {
	doc   *gltf.Document
	name  string
	nodes []*scene.Node
}

func (d *decoder) decode() (*Result, error) {
	d.nodes = make([]*scene.Node, len(d.doc.Nodes))
	for i, n := range d.doc.Nodes {
		node, err := d.node(i, n)
		if err != nil {
			return nil, err
		}
		d.nodes[i] = node
	}

	if err := d.link(); err != nil {
		return nil, err
	}

	root := scene.NewGroup(strings.TrimSuffix(path.Base(d.name), path.Ext(d.name)))
	if roots, ok := d.sceneRoots(); ok {
		for _, idx := range roots {
			if idx < 0 || idx >= len(d.nodes) {
				return nil, fmt.Errorf("scene root index %d out of range", idx)
			}
			if d.nodes[idx].Parent() != nil {
				return nil, fmt.Errorf("%w: scene root %d is a child node", ErrHierarchy, idx)
			}
			root.Add(d.nodes[idx])
		}
	} else {
		for _, n := range d.nodes {
			if n.Parent() == nil {
				root.Add(n)
			}
		}
	}

	clips, err := d.animations()
	if err != nil {
		return nil, err
	}

	return &Result{Scene: root, Animations: clips, Images: d.images()}, nil
}

// link attaches children, rejecting nodes with two parents and cycles.
func (d *decoder) link() error {
	for i, n := range d.doc.Nodes {
		parent := d.nodes[i]
		for _, c := range n.Children {
			if c < 0 || c >= len(d.nodes) {
				return fmt.Errorf("node %d: child index %d out of range", i, c)
			}
			child := d.nodes[c]
			if child.Parent() != nil {
				return fmt.Errorf("%w: node %d has more than one parent", ErrHierarchy, c)
			}
			if child.Contains(parent) {
				return fmt.Errorf("%w: node %d is its own ancestor", ErrHierarchy, c)
			}
			parent.Add(child)
		}
	}
	return nil
}

func (d *decoder) sceneRoots() ([]int, bool) {
	if len(d.doc.Scenes) == 0 {
		return nil, false
	}
	idx := 0
	if d.doc.Scene != nil && *d.doc.Scene >= 0 && *d.doc.Scene < len(d.doc.Scenes) {
		idx = *d.doc.Scene
	}
	return d.doc.Scenes[idx].Nodes, true
}

func (d *decoder) node(i int, n *gltf.Node) (*scene.Node, error) {
	name := n.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", i)
	}

	var out *scene.Node
	if n.Mesh != nil {
		mi := *n.Mesh
		if mi < 0 || mi >= len(d.doc.Meshes) {
			return nil, fmt.Errorf("node %q: mesh index %d out of range", name, mi)
		}
		geom, mat, err := d.mesh(d.doc.Meshes[mi])
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		out = scene.NewMesh(name, geom, mat)
	} else {
		out = scene.NewGroup(name)
	}

	applyTRS(out, n)
	return out, nil
}

func applyTRS(out *scene.Node, n *gltf.Node) {
	if mat := n.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		var m mgl32.Mat4
		for i, v := range mat {
			m[i] = float32(v)
		}
		out.Position = m.Col(3).Vec3()
		sx, sy, sz := m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()
		out.Scale = mgl32.Vec3{sx, sy, sz}
		if sx != 0 && sy != 0 && sz != 0 {
			rot := mgl32.Mat4FromCols(m.Col(0).Mul(1/sx), m.Col(1).Mul(1/sy), m.Col(2).Mul(1/sz), mgl32.Vec4{0, 0, 0, 1})
			out.Rotation = mgl32.Mat4ToQuat(rot)
		}
		return
	}

	t, r, s := n.TranslationOrDefault(), n.RotationOrDefault(), n.ScaleOrDefault()
	out.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	out.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	out.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

// mesh merges the triangle primitives of m into one geometry. The first
// primitive material found is used for the whole mesh.
func (d *decoder) mesh(m *gltf.Mesh) (*scene.Geometry, *scene.Material, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		indices   []uint32
		mat       *scene.Material
	)
	withNormals := true

	for pi, p := range m.Primitives {
		posIdx, ok := p.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		acr, err := d.accessor(posIdx)
		if err != nil {
			return nil, nil, fmt.Errorf("primitive %d: position: %w", pi, err)
		}
		pos, err := modeler.ReadPosition(d.doc, acr, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("primitive %d: read positions: %w", pi, err)
		}

		base := uint32(len(positions))
		for _, v := range pos {
			positions = append(positions, mgl32.Vec3(v))
		}

		if nIdx, ok := p.Attributes[gltf.NORMAL]; ok && withNormals {
			nacr, err := d.accessor(nIdx)
			if err != nil {
				return nil, nil, fmt.Errorf("primitive %d: normal: %w", pi, err)
			}
			nrm, err := modeler.ReadNormal(d.doc, nacr, nil)
			if err != nil {
				return nil, nil, fmt.Errorf("primitive %d: read normals: %w", pi, err)
			}
			for _, v := range nrm {
				normals = append(normals, mgl32.Vec3(v))
			}
		} else {
			withNormals = false
		}

		if p.Mode == gltf.PrimitiveTriangles {
			if p.Indices != nil {
				iacr, err := d.accessor(*p.Indices)
				if err != nil {
					return nil, nil, fmt.Errorf("primitive %d: indices: %w", pi, err)
				}
				idx, err := modeler.ReadIndices(d.doc, iacr, nil)
				if err != nil {
					return nil, nil, fmt.Errorf("primitive %d: read indices: %w", pi, err)
				}
				for _, i := range idx {
					indices = append(indices, base+i)
				}
			} else {
				for i := range pos {
					indices = append(indices, base+uint32(i))
				}
			}
		}

		if mat == nil && p.Material != nil {
			if mi := *p.Material; mi >= 0 && mi < len(d.doc.Materials) {
				mat = material(d.doc.Materials[mi])
			}
		}
	}

	geom := scene.NewGeometry(positions, indices)
	if withNormals && len(normals) == len(positions) {
		geom.Normals = normals
	}
	if mat == nil {
		mat = scene.NewMaterial(m.Name)
	}
	return geom, mat, nil
}

func (d *decoder) accessor(i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(d.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", i)
	}
	return d.doc.Accessors[i], nil
}

func material(m *gltf.Material) *scene.Material {
	out := scene.NewMaterial(m.Name)
	if pbr := m.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		c := pbr.BaseColorFactor
		out.BaseColor = mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
	}
	e := m.EmissiveFactor
	out.Emissive = mgl32.Vec3{float32(e[0]), float32(e[1]), float32(e[2])}
	return out
}

func (d *decoder) animations() ([]*anim.Clip, error) {
	var clips []*anim.Clip
	for ai, a := range d.doc.Animations {
		var channels []anim.Channel
		for ci, ch := range a.Channels {
			channel, ok, err := d.channel(a, ch)
			if err != nil {
				return nil, fmt.Errorf("animation %d channel %d: %w", ai, ci, err)
			}
			if ok {
				channels = append(channels, channel)
			}
		}
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("animation_%d", ai)
		}
		clips = append(clips, anim.NewClip(name, channels))
	}
	return clips, nil
}

// channel converts one glTF channel. The target is bound to the decoded
// node itself, never looked up by name.
func (d *decoder) channel(a *gltf.Animation, ch *gltf.AnimationChannel) (anim.Channel, bool, error) {
	var out anim.Channel

	switch ch.Target.Path {
	case gltf.TRSTranslation:
		out.Path = anim.PathTranslation
	case gltf.TRSRotation:
		out.Path = anim.PathRotation
	case gltf.TRSScale:
		out.Path = anim.PathScale
	default:
		// Morph target weights are not animated.
		return out, false, nil
	}

	if ch.Target.Node == nil {
		return out, false, nil
	}
	ni := *ch.Target.Node
	if ni < 0 || ni >= len(d.nodes) {
		return out, false, fmt.Errorf("target node %d out of range", ni)
	}
	out.Target = d.nodes[ni]
	out.Node = out.Target.Name()

	if ch.Sampler < 0 || ch.Sampler >= len(a.Samplers) {
		return out, false, fmt.Errorf("sampler %d out of range", ch.Sampler)
	}
	sampler := a.Samplers[ch.Sampler]

	in, err := d.accessor(sampler.Input)
	if err != nil {
		return out, false, fmt.Errorf("input: %w", err)
	}
	times, err := modeler.ReadAccessor(d.doc, in, nil)
	if err != nil {
		return out, false, fmt.Errorf("read times: %w", err)
	}
	t, ok := times.([]float32)
	if !ok {
		return out, false, fmt.Errorf("times have unexpected type %T", times)
	}
	out.Times = t

	outAcr, err := d.accessor(sampler.Output)
	if err != nil {
		return out, false, fmt.Errorf("output: %w", err)
	}
	values, err := modeler.ReadAccessor(d.doc, outAcr, nil)
	if err != nil {
		return out, false, fmt.Errorf("read values: %w", err)
	}

	switch v := values.(type) {
	case [][3]float32:
		for _, e := range v {
			out.Values = append(out.Values, mgl32.Vec4{e[0], e[1], e[2], 0})
		}
	case [][4]float32:
		for _, e := range v {
			out.Values = append(out.Values, mgl32.Vec4{e[0], e[1], e[2], e[3]})
		}
	default:
		return out, false, fmt.Errorf("values have unexpected type %T", values)
	}

	// Cubic spline output stores in-tangent, value, out-tangent per key.
	if sampler.Interpolation == gltf.InterpolationCubicSpline && len(out.Values) == 3*len(out.Times) {
		vals := make([]mgl32.Vec4, len(out.Times))
		for i := range vals {
			vals[i] = out.Values[3*i+1]
		}
		out.Values = vals
	}
	if len(out.Values) != len(out.Times) {
		return out, false, fmt.Errorf("%d keys but %d values", len(out.Times), len(out.Values))
	}
	return out, true, nil
}

func (d *decoder) images() []string {
	var out []string
	for i, img := range d.doc.Images {
		id := img.Name
		if id == "" {
			id = img.URI
		}
		if id == "" || strings.HasPrefix(id, "data:") {
			id = fmt.Sprintf("image_%d", i)
		}
		out = append(out, d.name+"#"+id)
	}
	return out
}
