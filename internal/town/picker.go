package town

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/engine/camera"
	"github.com/Faultbox/townview/internal/engine/picking"
	"github.com/Faultbox/townview/internal/engine/scene"
	"github.com/Faultbox/townview/internal/town/interaction"
	"github.com/Faultbox/townview/internal/town/tiles"
)

// tilePicker casts camera rays at tile nodes. World bounds reject misses
// cheaply; tiles that keep their triangles are then hit-tested per triangle.
type tilePicker struct {
	camera *camera.OrbitCamera
}

func (p tilePicker) Intersect(ndc mgl32.Vec2, candidates []tiles.Tile) []interaction.Intersection {
	ray := picking.NDCToRay(ndc, p.camera.ViewProjection().Inv())
	hits := picking.IntersectObjects(ray, candidates, tileBounds)

	out := make([]interaction.Intersection, 0, len(hits))
	for _, h := range hits {
		dist, ok := surfaceHit(ray, h.Object, h.Distance)
		if !ok {
			continue
		}
		out = append(out, interaction.Intersection{Tile: h.Object, Distance: dist})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

// surfaceHit refines a bounds hit against the tile's triangles. Tiles
// without vertex data keep the box distance.
func surfaceHit(ray picking.Ray, t tiles.Tile, boxDist float32) (float32, bool) {
	n, ok := t.(*scene.Node)
	if !ok || n.Geometry == nil || len(n.Geometry.Positions) == 0 {
		return boxDist, true
	}
	return ray.IntersectMesh(n.Geometry.Positions, n.Geometry.Indices, n.WorldMatrix())
}

func tileBounds(t tiles.Tile) (picking.AABB, bool) {
	n, ok := t.(*scene.Node)
	if !ok {
		return picking.AABB{}, false
	}
	return n.WorldBounds()
}
