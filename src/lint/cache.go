package lint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultCacheDir = ".tailor/cache"
	engineVersion   = "0.1.0"
)

// Cache provides content-addressed caching of per-file violations.
// Entries store violations without a file path so a moved file still hits.
type Cache struct {
	Dir     string
	Enabled bool
}

// ResolveCacheDir returns the cache directory for a project root.
// A relative configured directory is resolved against the root.
func ResolveCacheDir(rootDir, configured string) string {
	if configured == "" {
		return filepath.Join(rootDir, defaultCacheDir)
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(rootDir, configured)
}

// cacheEntry stores cached violations for a file+ruleset combination.
type cacheEntry struct {
	Violations []Violation `json:"violations"`
}

// Key computes a cache key from file content and the rule set fingerprint.
func (c *Cache) Key(content []byte, fingerprint string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(fingerprint))
	h.Write([]byte(engineVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves cached violations. Returns nil, false on cache miss.
func (c *Cache) Get(key string) ([]Violation, bool) {
	if !c.Enabled {
		return nil, false
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	return entry.Violations, true
}

// Put stores violations in the cache.
func (c *Cache) Put(key string, violations []Violation) error {
	if !c.Enabled {
		return nil
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	stripped := make([]Violation, len(violations))
	for i, v := range violations {
		v.File = ""
		stripped[i] = v
	}

	data, err := json.Marshal(cacheEntry{Violations: stripped})
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Clear removes the entire cache directory.
func (c *Cache) Clear() error {
	return os.RemoveAll(c.Dir)
}

// path returns the filesystem path for a cache key.
// Uses 2-char prefix subdirectory to avoid huge flat directories.
func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key[:2], key+".json")
}
