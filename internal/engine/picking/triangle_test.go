package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestIntersectTriangle(t *testing.T) {
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{4, 0, 0}
	c := mgl32.Vec3{0, 0, 4}

	tests := []struct {
		name   string
		ray    Ray
		hit    bool
		distTo float32
	}{
		{"from above", Ray{Origin: mgl32.Vec3{1, 5, 1}, Direction: mgl32.Vec3{0, -1, 0}}, true, 5},
		{"from below", Ray{Origin: mgl32.Vec3{1, -2, 1}, Direction: mgl32.Vec3{0, 1, 0}}, true, 2},
		{"outside hypotenuse", Ray{Origin: mgl32.Vec3{3, 5, 3}, Direction: mgl32.Vec3{0, -1, 0}}, false, 0},
		{"behind origin", Ray{Origin: mgl32.Vec3{1, 5, 1}, Direction: mgl32.Vec3{0, 1, 0}}, false, 0},
		{"parallel", Ray{Origin: mgl32.Vec3{-1, 0, 1}, Direction: mgl32.Vec3{1, 0, 0}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hit := tt.ray.IntersectTriangle(a, b, c)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.distTo, d, 1e-5)
			}
		})
	}
}

func TestIntersectMeshMissesInsideBoundsGap(t *testing.T) {
	// A single triangle covers half of its bounding square.
	pos := []mgl32.Vec3{{0, 0, 0}, {4, 0, 0}, {0, 0, 4}}
	down := mgl32.Vec3{0, -1, 0}

	box := NewAABB(pos[1], pos[2])
	gap := Ray{Origin: mgl32.Vec3{3.5, 5, 3.5}, Direction: down}
	_, boxHit := gap.IntersectAABB(box)
	assert.True(t, boxHit)

	_, hit := gap.IntersectMesh(pos, nil, mgl32.Ident4())
	assert.False(t, hit)
}

func TestIntersectMeshNearestAndTransformed(t *testing.T) {
	pos := []mgl32.Vec3{
		{-1, 0, -1}, {1, 0, -1}, {0, 0, 1},
		{-1, 2, -1}, {1, 2, -1}, {0, 2, 1},
	}
	idx := []uint32{0, 1, 2, 3, 4, 5, 0, 1, 99}
	model := mgl32.Translate3D(10, 0, 0)

	r := Ray{Origin: mgl32.Vec3{10, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}}
	d, hit := r.IntersectMesh(pos, idx, model)
	assert.True(t, hit)
	assert.InDelta(t, 8, d, 1e-5)

	_, hit = r.IntersectMesh(pos, idx, mgl32.Ident4())
	assert.False(t, hit)
}
