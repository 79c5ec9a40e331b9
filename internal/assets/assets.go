// Package assets resolves model and texture files against a list of search
// roots and caches their contents.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// Asset errors.
var (
	ErrNotFound = errors.New("asset not found")
	ErrNotDir   = errors.New("search root is not a directory")
)

// Manager loads files from a set of directory roots.
// Roots are searched in reverse order (last added = highest priority).
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager with no roots.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddRoot adds a directory to the search path.
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding root %s: %w", dir, ErrNotDir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()

	return nil
}

// Roots returns the search roots in priority order, highest first.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.roots))
	for i := len(m.roots) - 1; i >= 0; i-- {
		out = append(out, m.roots[i])
	}
	return out
}

// Load returns the contents of name, a slash-separated path relative to a
// root. A path that does not match exactly is retried case-insensitively,
// so "Models/tram.obj" also finds "models/Tram.obj". Contents are cached
// by resolved path, so names that differ only in case share an entry only
// when they resolve to the same file.
func (m *Manager) Load(name string) ([]byte, error) {
	full, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	if data, ok := m.cache.Get(full); ok {
		return data, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", full, err)
	}

	m.cache.Set(full, data)
	return data, nil
}

// Resolve returns the filesystem path of name in the highest-priority root
// that contains it.
func (m *Manager) Resolve(name string) (string, error) {
	rel := path.Clean(filepath.ToSlash(name))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		full := filepath.Join(m.roots[i], filepath.FromSlash(rel))
		if isFile(full) {
			return full, nil
		}
		if found, ok := findFold(m.roots[i], rel); ok {
			return found, nil
		}
	}

	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Exists reports whether name resolves in any root.
func (m *Manager) Exists(name string) bool {
	_, err := m.Resolve(name)
	return err == nil
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

// Cache returns the manager's cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// findFold walks rel one element at a time under root, matching each
// element case-insensitively.
func findFold(root, rel string) (string, bool) {
	dir := root
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", false
		}
		var next fs.DirEntry
		for _, e := range entries {
			if strings.EqualFold(e.Name(), part) {
				next = e
				break
			}
		}
		if next == nil {
			return "", false
		}
		dir = filepath.Join(dir, next.Name())
		last := i == len(parts)-1
		if next.IsDir() == last {
			return "", false
		}
	}
	return dir, true
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
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

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
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
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
