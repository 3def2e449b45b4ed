// Package assets resolves asset paths against a list of root directories
// and caches file contents.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotExist is returned when no root holds the requested path.
var ErrNotExist = errors.New("asset not found")

// Source reads asset files from one or more root directories.
// Roots are searched in reverse order (last added = highest priority).
// Read is safe for concurrent use; loaders call it from worker goroutines.
type Source struct {
	roots []fs.FS
	names []string
	cache *Cache
	mu    sync.RWMutex
}

// NewSource creates a source over the given root directories.
func NewSource(roots ...string) *Source {
	s := &Source{cache: NewCache()}
	for _, root := range roots {
		s.AddRoot(root)
	}
	return s
}

// AddRoot adds a directory root.
func (s *Source) AddRoot(dir string) {
	s.AddFS(dir, os.DirFS(dir))
}

// AddFS adds an arbitrary filesystem as a root. name is used in diagnostics.
func (s *Source) AddFS(name string, fsys fs.FS) {
	s.mu.Lock()
	s.roots = append(s.roots, fsys)
	s.names = append(s.names, name)
	s.mu.Unlock()
}

// Read returns the contents of path from the highest-priority root that has it.
func (s *Source) Read(path string) ([]byte, error) {
	key := clean(path)
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(s.roots[i], key)
		if err == nil {
			s.cache.Set(key, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", path, s.names[i], err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
}

// Roots returns the root names in search order (highest priority first).
func (s *Source) Roots() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.names))
	for i := len(s.names) - 1; i >= 0; i-- {
		out = append(out, s.names[i])
	}
	return out
}

// Cache returns the content cache.
func (s *Source) Cache() *Cache {
	return s.cache
}

// clean converts an authored path ("./assets/Dock.glb") to an fs.FS key.
func clean(path string) string {
	p := filepath.ToSlash(filepath.Clean(path))
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	return p
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
