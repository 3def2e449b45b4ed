package picking

import "github.com/go-gl/mathgl/mgl32"

const triangleEpsilon = 1e-7

// IntersectTriangle tests the ray against triangle abc from either side and
// returns the distance along the ray to the hit.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (t float32, hit bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectMesh returns the nearest hit against a triangle list placed in the
// world by model. A nil indices slice reads positions as consecutive triples;
// out-of-range indices are skipped.
func (r Ray) IntersectMesh(positions []mgl32.Vec3, indices []uint32, model mgl32.Mat4) (t float32, hit bool) {
	vertex := func(i int) (mgl32.Vec3, bool) {
		if indices != nil {
			if i >= len(indices) || int(indices[i]) >= len(positions) {
				return mgl32.Vec3{}, false
			}
			i = int(indices[i])
		}
		if i >= len(positions) {
			return mgl32.Vec3{}, false
		}
		return mgl32.TransformCoordinate(positions[i], model), true
	}

	n := len(positions)
	if indices != nil {
		n = len(indices)
	}
	for i := 0; i+2 < n; i += 3 {
		a, okA := vertex(i)
		b, okB := vertex(i + 1)
		c, okC := vertex(i + 2)
		if !okA || !okB || !okC {
			continue
		}
		if d, ok := r.IntersectTriangle(a, b, c); ok && (!hit || d < t) {
			t, hit = d, true
		}
	}
	return t, hit
}
