// Package assets resolves asset names against a list of search paths and
// caches both raw file data and decoded textures.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/softras/internal/engine/raster"
	"github.com/Faultbox/softras/internal/engine/texture"
)

// ErrNotFound is returned when no search path holds the requested asset.
var ErrNotFound = errors.New("asset not found")

// Manager handles asset lookup and caching.
type Manager struct {
	paths    []string
	files    *Cache[[]byte]
	textures *Cache[*raster.Surface]
	log      *zap.Logger
	mu       sync.RWMutex
}

// NewManager creates a manager searching the given directories.
func NewManager(log *zap.Logger, paths ...string) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		files:    NewCache[[]byte](),
		textures: NewCache[*raster.Surface](),
		log:      log,
	}
	for _, p := range paths {
		m.AddPath(p)
	}
	return m
}

// AddPath adds a search directory.
// Paths are searched in reverse order (last added = highest priority).
func (m *Manager) AddPath(dir string) {
	m.mu.Lock()
	m.paths = append(m.paths, dir)
	m.mu.Unlock()
}

// Resolve returns the file path for name. Absolute names and names that
// exist relative to the working directory are used as is.
func (m *Manager) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return name, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.paths) - 1; i >= 0; i-- {
		p := filepath.Join(m.paths[i], name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load reads a file through the search paths.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.files.Get(name); ok {
		return data, nil
	}

	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m.files.Set(name, data)
	return data, nil
}

// Texture loads and decodes a texture. An empty name means "no texture"
// and yields a nil surface.
func (m *Manager) Texture(name string) (*raster.Surface, error) {
	if name == "" {
		return nil, nil
	}
	if s, ok := m.textures.Get(name); ok {
		return s, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	s, err := texture.Decode(name, data)
	if err != nil {
		return nil, err
	}
	m.textures.Set(name, s)
	m.log.Debug("texture loaded",
		zap.String("name", name),
		zap.Int("width", s.Width()),
		zap.Int("height", s.Height()),
	)
	return s, nil
}

// Material loads the six maps of a material. Empty names leave the map
// unbound.
func (m *Manager) Material(diffuse, normal, roughness, metallic, ao, emissive string) (raster.Material, error) {
	var mat raster.Material
	slots := []struct {
		name string
		dst  **raster.Surface
	}{
		{diffuse, &mat.Diffuse},
		{normal, &mat.Normal},
		{roughness, &mat.Roughness},
		{metallic, &mat.Metallic},
		{ao, &mat.AmbientOcclusion},
		{emissive, &mat.Emissive},
	}
	for _, slot := range slots {
		s, err := m.Texture(slot.name)
		if err != nil {
			return raster.Material{}, fmt.Errorf("loading material: %w", err)
		}
		*slot.dst = s
	}
	return mat, nil
}

// CubeMap loads six faces in raster.CubeFace order. It returns nil when
// every name is empty.
func (m *Manager) CubeMap(names [6]string) (*raster.CubeMap, error) {
	var faces [6]*raster.Surface
	bound := false
	for i, name := range names {
		s, err := m.Texture(name)
		if err != nil {
			return nil, fmt.Errorf("cube face %s: %w", raster.CubeFace(i), err)
		}
		faces[i] = s
		bound = bound || s != nil
	}
	if !bound {
		return nil, nil
	}
	return raster.NewCubeMap(faces), nil
}

// Close drops every cached entry.
func (m *Manager) Close() {
	m.files.Clear()
	m.textures.Clear()
}

// Stats returns hit and miss counts of the decoded-texture cache.
func (m *Manager) Stats() (hits, misses int) {
	return m.textures.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache[V any] struct {
	data map[string]V
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{
		data: make(map[string]V),
	}
}

// Get retrieves an item from cache.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Set stores an item in cache.
func (c *Cache[V]) Set(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
}

// Len returns the number of cached items.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]V)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache[V]) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
