// Package cache stores per-file findings keyed by a digest of the file
// content, so unchanged files are not parsed again.
package cache

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/phobologic/namecheck/internal/model"
)

// Current schema version - increment when the payload format changes
const schemaVersion uint16 = 1

// Digest is the SHA-256 of a file's content.
type Digest [sha256.Size]byte

type entry struct {
	Digest   Digest
	Findings []model.Finding
}

type payload struct {
	Schema uint16
	Files  map[string]entry
}

// Cache is a findings cache backed by a single msgpack file.
// Thread-safe for concurrent access.
type Cache struct {
	mu    sync.RWMutex
	path  string
	files map[string]entry
	dirty bool
}

// Open reads the cache file at path. A missing, unreadable or outdated file
// yields an empty cache; only an unusable path is an error.
func Open(path string) (*Cache, error) {
	c := &Cache{path: path, files: make(map[string]entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil || p.Schema != schemaVersion {
		c.dirty = true
		return c, nil
	}
	if p.Files != nil {
		c.files = p.Files
	}
	return c, nil
}

// Get returns the cached findings for rel if source is unchanged.
func (c *Cache) Get(rel string, source []byte) ([]model.Finding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.files[rel]
	if !ok || e.Digest != sha256.Sum256(source) {
		return nil, false
	}
	return e.Findings, true
}

// Put records the findings for rel at the given content.
func (c *Cache) Put(rel string, source []byte, findings []model.Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files[rel] = entry{Digest: sha256.Sum256(source), Findings: findings}
	c.dirty = true
}

// Prune drops entries for files not listed in keep.
func (c *Cache) Prune(keep []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	wanted := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		wanted[k] = struct{}{}
	}
	for rel := range c.files {
		if _, ok := wanted[rel]; !ok {
			delete(c.files, rel)
			c.dirty = true
		}
	}
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// Save writes the cache back to disk if it changed.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}
	data, err := msgpack.Marshal(payload{Schema: schemaVersion, Files: c.files})
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing cache: %w", err)
	}
	c.dirty = false
	return nil
}
