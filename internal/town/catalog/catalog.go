// Package catalog maps spawnable model names to their asset path and
// world placement.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("model not found")

// NotFoundError reports a name with no catalog entry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: no model named %q", e.Name)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Entry is one spawnable model.
type Entry struct {
	Name      string
	Path      string
	Placement mgl32.Vec3
}

// Catalog is an immutable name to entry table.
type Catalog struct {
	entries map[string]Entry
}

// New builds a catalog. Names are case-sensitive and must be unique and
// non-empty; every entry needs a path.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: empty name", i)
		}
		if e.Path == "" {
			return nil, fmt.Errorf("catalog entry %q: empty path", e.Name)
		}
		if _, dup := c.entries[e.Name]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate name", e.Name)
		}
		c.entries[e.Name] = e
	}
	return c, nil
}

// DefaultEntries returns the stock town buildings.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "Tavern", Path: "assets/Tavern.glb", Placement: mgl32.Vec3{4, 0, -7}},
		{Name: "Dock", Path: "assets/Dock.glb", Placement: mgl32.Vec3{-8, 0, -7}},
		{Name: "Windmill", Path: "assets/Windmill.glb", Placement: mgl32.Vec3{14, 0, -5}},
		{Name: "Castle", Path: "assets/Castle.glb", Placement: mgl32.Vec3{0, 0, -1}},
		{Name: "Fountain", Path: "assets/Fountain.glb", Placement: mgl32.Vec3{0, 0, -9}},
		{Name: "Houses", Path: "assets/Houses.glb", Placement: mgl32.Vec3{11, 0, -9}},
		{Name: "BigHouse", Path: "assets/BigHouse.glb", Placement: mgl32.Vec3{-8, 0, -1}},
		{Name: "SmallHouses", Path: "assets/SmallHouses.glb", Placement: mgl32.Vec3{11, 0, -9}},
	}
}

// Default returns the catalog of stock buildings.
func Default() *Catalog {
	c, err := New(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve looks up name. Unknown names return a *NotFoundError.
func (c *Catalog) Resolve(name string) (Entry, error) {
	e, ok := c.entries[name]
	if !ok {
		return Entry{}, &NotFoundError{Name: name}
	}
	return e, nil
}

// Names returns every catalog key, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
