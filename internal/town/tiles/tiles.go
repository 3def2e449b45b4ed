// Package tiles keeps the set of ground tiles that can still be clicked.
package tiles

import (
	"strings"

	"go.uber.org/zap"
)

// Prefix marks interactive meshes in authored content.
const Prefix = "tile"

// Tile is a clickable ground surface owned by the rendering engine.
type Tile interface {
	Name() string
	SetEmissive(hex uint32)
	DisposeMaterial()
	DisposeGeometry()
	RemoveFromParent()
}

// IsTileName reports whether a mesh name marks an interactive tile.
func IsTileName(name string) bool {
	return strings.HasPrefix(name, Prefix)
}

// Registry is the set of live tiles. Frame thread only.
type Registry struct {
	tiles []Tile
	log   *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{log: log}
}

// Add registers a tile. Adding a tile twice keeps a single entry.
func (r *Registry) Add(t Tile) {
	if r.index(t) >= 0 {
		r.log.Warn("tile already registered", zap.String("tile", t.Name()))
		return
	}
	r.tiles = append(r.tiles, t)
}

// Remove unregisters a tile. It returns false and logs a warning when the
// tile is not registered.
func (r *Registry) Remove(t Tile) bool {
	i := r.index(t)
	if i < 0 {
		name := ""
		if t != nil {
			name = t.Name()
		}
		r.log.Warn("tile not found in registry", zap.String("tile", name))
		return false
	}
	r.tiles = append(r.tiles[:i], r.tiles[i+1:]...)
	return true
}

// All returns a snapshot of the registered tiles.
func (r *Registry) All() []Tile {
	out := make([]Tile, len(r.tiles))
	copy(out, r.tiles)
	return out
}

// Len returns the number of registered tiles.
func (r *Registry) Len() int {
	return len(r.tiles)
}

// Find returns the first registered tile with the given name.
func (r *Registry) Find(name string) (Tile, bool) {
	for _, t := range r.tiles {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Contains reports whether t is registered.
func (r *Registry) Contains(t Tile) bool {
	return r.index(t) >= 0
}

func (r *Registry) index(t Tile) int {
	for i, x := range r.tiles {
		if x == t {
			return i
		}
	}
	return -1
}
