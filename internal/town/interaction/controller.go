// Package interaction turns pointer input into tile highlights and
// building spawns.
package interaction

import (
	"sort"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/engine/picking"
	"github.com/Faultbox/townview/internal/town/spawner"
	"github.com/Faultbox/townview/internal/town/tiles"
)

// DefaultHighlight is the emissive colour of the hovered tile.
const DefaultHighlight uint32 = 0x555555

// Intersection is one ray hit.
type Intersection struct {
	Tile     tiles.Tile
	Distance float32
}

// Raycaster casts a ray through a point in normalised device coordinates
// and returns the hit tiles sorted nearest first.
type Raycaster interface {
	Intersect(ndc mgl32.Vec2, candidates []tiles.Tile) []Intersection
}

// Sound is the click feedback.
type Sound interface {
	Play() error
}

// Spawner starts building spawns.
type Spawner interface {
	Spawn(name string) *spawner.Task
}

// Options configures a Controller.
type Options struct {
	HoverInterval time.Duration
	Highlight     uint32
	Names         map[string]string // lower-case tile name -> catalog key
	Now           func() time.Time
}

// ClickResult describes what a click did.
type ClickResult struct {
	Hit   bool
	Tile  tiles.Tile
	Model string        // empty when the tile has no table entry
	Task  *spawner.Task // nil when nothing was spawned
}

// Controller handles clicks and hover. Frame thread only.
type Controller struct {
	registry  *tiles.Registry
	raycaster Raycaster
	sound     Sound
	spawner   Spawner
	log       *zap.Logger

	names     map[string]string
	highlight uint32
	throttle  *Throttle
	hovered   tiles.Tile
}

// New creates a controller.
func New(reg *tiles.Registry, rc Raycaster, sound Sound, sp Spawner, opts Options, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	names := make(map[string]string, len(opts.Names))
	for k, v := range opts.Names {
		names[strings.ToLower(k)] = v
	}
	return &Controller{
		registry:  reg,
		raycaster: rc,
		sound:     sound,
		spawner:   sp,
		log:       log,
		names:     names,
		highlight: opts.Highlight,
		throttle:  NewThrottle(opts.HoverInterval, opts.Now),
	}
}

// Click handles a pointer click at window pixel (x, y) in a viewport of
// width by height. The nearest tile under the pointer, if any, starts its
// building spawn and is retired whether or not the spawn succeeds.
func (c *Controller) Click(x, y, width, height float32) ClickResult {
	hits := c.cast(x, y, width, height)
	if len(hits) == 0 {
		return ClickResult{}
	}

	tile := hits[0].Tile
	res := ClickResult{Hit: true, Tile: tile}

	if c.sound != nil {
		if err := c.sound.Play(); err != nil {
			c.log.Debug("click sound failed", zap.Error(err))
		}
	}

	if model, ok := c.ModelFor(tile.Name()); ok {
		res.Model = model
		res.Task = c.spawner.Spawn(model)
	} else {
		c.log.Warn("tile has no model mapping", zap.String("tile", tile.Name()))
	}

	if c.hovered == tile {
		c.hovered = nil
	}
	c.registry.Remove(tile)
	tile.DisposeMaterial()
	tile.DisposeGeometry()
	tile.RemoveFromParent()

	c.log.Debug("tile consumed", zap.String("tile", tile.Name()), zap.String("model", res.Model))
	return res
}

// Move handles pointer motion. Hover is recomputed at most once per hover
// interval; it returns whether this call recomputed it.
func (c *Controller) Move(x, y, width, height float32) bool {
	if !c.throttle.Allow() {
		return false
	}

	if c.hovered != nil {
		c.hovered.SetEmissive(0)
		c.hovered = nil
	}

	hits := c.cast(x, y, width, height)
	if len(hits) > 0 {
		c.hovered = hits[0].Tile
		c.hovered.SetEmissive(c.highlight)
	}
	return true
}

// Hovered returns the highlighted tile, nil if none.
func (c *Controller) Hovered() tiles.Tile {
	return c.hovered
}

// ModelFor maps a tile name to its catalog key.
func (c *Controller) ModelFor(tileName string) (string, bool) {
	m, ok := c.names[strings.ToLower(tileName)]
	return m, ok
}

// Unresolved returns the tile names whose catalog key cannot be resolved,
// sorted, and logs a warning for each.
func (c *Controller) Unresolved(r spawner.Resolver) []string {
	var out []string
	for tile, model := range c.names {
		if _, err := r.Resolve(model); err != nil {
			out = append(out, tile)
		}
	}
	sort.Strings(out)
	for _, tile := range out {
		c.log.Warn("tile maps to unknown model",
			zap.String("tile", tile),
			zap.String("model", c.names[tile]))
	}
	return out
}

func (c *Controller) cast(x, y, width, height float32) []Intersection {
	if width <= 0 || height <= 0 || c.registry.Len() == 0 {
		return nil
	}
	ndc := picking.ScreenToNDC(x, y, width, height)
	return c.raycaster.Intersect(ndc, c.registry.All())
}
