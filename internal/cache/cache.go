// Package cache implements an on-disk expansion cache. It stores the
// expanded output of source files keyed by a content hash, so repeated
// expand and dev-server runs skip files that have not changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Cache stores expanded artifacts keyed by source path, validated against
// a hash of the source content.
type Cache struct {
	mu      sync.RWMutex
	dir     string
	index   *Index
	maxSize int64
	maxAge  time.Duration
	stats   Stats
}

// Index tracks all cached entries.
type Index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Entry is one cached expansion result.
type Entry struct {
	Key        string    `json:"key"`
	SourceHash string    `json:"source_hash"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Created    time.Time `json:"created"`
	LastAccess time.Time `json:"last_access"`
}

// Stats tracks cache performance.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	TotalSize int64 `json:"total_size"`
}

// Config holds cache configuration.
type Config struct {
	Dir     string        // cache directory (default: $HOME/.cache/scalpel)
	MaxSize int64         // maximum total size in bytes (default: 256 MB)
	MaxAge  time.Duration // maximum entry age (default: 7 days)
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Dir:     filepath.Join(homeDir, ".cache", "scalpel"),
		MaxSize: 256 << 20,
		MaxAge:  7 * 24 * time.Hour,
	}
}

// New opens a cache at config.Dir, creating it if needed.
func New(config Config) (*Cache, error) {
	if config.Dir == "" {
		config = DefaultConfig()
	}
	if err := os.MkdirAll(filepath.Join(config.Dir, "expanded"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:     config.Dir,
		maxSize: config.MaxSize,
		maxAge:  config.MaxAge,
		index: &Index{
			Version: "1",
			Entries: make(map[string]*Entry),
			Updated: time.Now(),
		},
	}
	if err := c.loadIndex(); err != nil {
		// Corrupted or missing index: start fresh.
		c.index = &Index{
			Version: "1",
			Entries: make(map[string]*Entry),
			Updated: time.Now(),
		}
	}
	c.evictExpired()
	return c, nil
}

// HashSource returns the content hash used to validate entries.
func HashSource(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached expansion for key if its source hash still
// matches, recording a hit or miss.
func (c *Cache) Get(key, sourceHash string) ([]byte, bool) {
	c.mu.Lock()
	entry, ok := c.index.Entries[key]
	if !ok || entry.SourceHash != sourceHash || c.expired(entry) {
		c.stats.Misses++
		c.mu.Unlock()
		return nil, false
	}
	entry.LastAccess = time.Now()
	path := entry.Path
	c.stats.Hits++
	c.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		c.Delete(key)
		return nil, false
	}
	return data, true
}

// Put stores the expansion of key produced from source with the given
// hash, replacing any previous entry.
func (c *Cache) Put(key, sourceHash string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.sxc", sanitizeKey(key), sourceHash[:8])
	path := filepath.Join(c.dir, "expanded", filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	c.mu.Lock()
	if old, ok := c.index.Entries[key]; ok {
		if old.Path != path {
			os.Remove(old.Path)
		}
		c.stats.TotalSize -= old.Size
	}
	entry := &Entry{
		Key:        key,
		SourceHash: sourceHash,
		Path:       path,
		Size:       int64(len(data)),
		Created:    time.Now(),
		LastAccess: time.Now(),
	}
	c.index.Entries[key] = entry
	c.index.Updated = time.Now()
	c.stats.TotalSize += entry.Size
	c.mu.Unlock()

	c.evictOverflow()
	return c.saveIndex()
}

// Delete removes an entry and its artifact file.
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.index.Entries[key]
	if !ok {
		return nil
	}
	os.Remove(entry.Path)
	c.stats.TotalSize -= entry.Size
	delete(c.index.Entries, key)
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.index.Entries {
		os.Remove(entry.Path)
		delete(c.index.Entries, key)
	}
	c.stats.TotalSize = 0
	return c.saveIndexLocked()
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.index.Entries)
}

func (c *Cache) expired(entry *Entry) bool {
	return c.maxAge > 0 && time.Since(entry.Created) > c.maxAge
}

func (c *Cache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.index.Entries {
		if c.expired(entry) {
			os.Remove(entry.Path)
			c.stats.TotalSize -= entry.Size
			c.stats.Evictions++
			delete(c.index.Entries, key)
		}
	}
}

// evictOverflow removes least recently used entries until the cache fits
// under maxSize.
func (c *Cache) evictOverflow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxSize <= 0 || c.stats.TotalSize <= c.maxSize {
		return
	}
	entries := make([]*Entry, 0, len(c.index.Entries))
	for _, e := range c.index.Entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastAccess.Before(entries[j].LastAccess)
	})
	for _, e := range entries {
		if c.stats.TotalSize <= c.maxSize {
			break
		}
		os.Remove(e.Path)
		c.stats.TotalSize -= e.Size
		c.stats.Evictions++
		delete(c.index.Entries, e.Key)
	}
}

func (c *Cache) indexPath() string {
	return filepath.Join(c.dir, "index.json")
}

func (c *Cache) loadIndex() error {
	data, err := os.ReadFile(c.indexPath())
	if err != nil {
		return err
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return err
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]*Entry)
	}
	c.index = &idx
	for _, e := range idx.Entries {
		c.stats.TotalSize += e.Size
	}
	return nil
}

func (c *Cache) saveIndex() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saveIndexLocked()
}

func (c *Cache) saveIndexLocked() error {
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.indexPath(), data, 0644)
}

// sanitizeKey turns a source path into a safe filename fragment.
func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_", ".", "_")
	s := r.Replace(key)
	if len(s) > 64 {
		s = s[len(s)-64:]
	}
	return s
}
