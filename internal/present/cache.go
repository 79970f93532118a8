// Package present holds the presentation side of a brief: local caches for
// drafts and checklists, Markdown export and the HTML share view.
package present

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/spf13/afero"
)

// Cache is a scoped key-value store for local state. Values are opaque bytes;
// GetJSON and SetJSON add JSON serialization on top.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

var keyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// GetJSON decodes the value under key into v. It reports false when the key
// is absent.
func GetJSON(c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrCacheDecode, key, err)
	}
	return true, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(c Cache, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.Set(key, data)
}

// MemoryCache is a Cache held in memory.
type MemoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string][]byte)}
}

// Get implements Cache.
func (m *MemoryCache) Get(key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return bytes.Clone(v), ok, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = bytes.Clone(value)
	return nil
}

// Remove implements Cache. Removing an absent key is not an error.
func (m *MemoryCache) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileCache stores each key as <dir>/<key>.json on an afero filesystem.
// Writes go through a temp file and rename, so the last save wins.
type FileCache struct {
	fs  afero.Fs
	dir string
}

// NewFileCache returns a FileCache rooted at dir on fsys.
func NewFileCache(fsys afero.Fs, dir string) *FileCache {
	return &FileCache{fs: fsys, dir: dir}
}

func (f *FileCache) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Cache.
func (f *FileCache) Get(key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements Cache.
func (f *FileCache) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := f.fs.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	tmp := f.path(key) + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, value, 0o600); err != nil {
		return fmt.Errorf("failed to write cache %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("failed to write cache %s: %w", key, err)
	}
	return nil
}

// Remove implements Cache. Removing an absent key is not an error.
func (f *FileCache) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := f.fs.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache %s: %w", key, err)
	}
	return nil
}
