// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// ScreenToNDC converts pixel coordinates to normalized device coordinates,
// x right and y up, both in [-1, 1].
func ScreenToNDC(screenX, screenY, viewportW, viewportH float32) mgl32.Vec2 {
	if viewportW <= 0 || viewportH <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		screenX/viewportW*2 - 1,
		-(screenY/viewportH)*2 + 1,
	}
}

// NDCToRay unprojects a normalized device coordinate into a world-space ray.
// invViewProj is the inverse of the camera's view-projection matrix.
func NDCToRay(ndc mgl32.Vec2, invViewProj mgl32.Mat4) Ray {
	near := unproject(invViewProj, mgl32.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := unproject(invViewProj, mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})

	dir := far.Sub(near)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv mgl32.Mat4, p mgl32.Vec4) mgl32.Vec3 {
	w := inv.Mul4x1(p)
	if w.W() != 0 {
		return w.Vec3().Mul(1 / w.W())
	}
	return w.Vec3()
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y())) < 0.001 {
		return 0, 0, false // parallel
	}

	t := (planeY - r.Origin.Y()) / r.Direction.Y()
	if t < 0 {
		return 0, 0, false // behind origin
	}

	return r.Origin.X() + t*r.Direction.X(), r.Origin.Z() + t*r.Direction.Z(), true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	if box.Empty() {
		return 0, false
	}

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Hit is one ray intersection against a pickable object.
type Hit[T any] struct {
	Object   T
	Distance float32
}

// IntersectObjects tests the ray against every object and returns the hits
// sorted nearest first. bounds reports the object's world-space box; objects
// for which it returns false are skipped. Equal distances keep input order.
func IntersectObjects[T any](r Ray, objects []T, bounds func(T) (AABB, bool)) []Hit[T] {
	var hits []Hit[T]
	for _, obj := range objects {
		box, ok := bounds(obj)
		if !ok {
			continue
		}
		if t, hit := r.IntersectAABB(box); hit {
			hits = append(hits, Hit[T]{Object: obj, Distance: t})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
