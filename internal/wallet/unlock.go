package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// UnlockCache keeps decrypted keys in a 0600 file so that repeated commands
// in one shell session do not hit the keychain prompt every time.
//
//	Linux:   ~/.cache/vinutoken/unlock.json
//	macOS:   ~/Library/Caches/vinutoken/unlock.json
//	Windows: %LocalAppData%\vinutoken\unlock.json
type UnlockCache struct {
	path string
	mu   sync.Mutex
}

// NewUnlockCache returns a cache stored at path.
func NewUnlockCache(path string) *UnlockCache {
	return &UnlockCache{path: path}
}

// DefaultUnlockCache returns the cache in the per-user cache directory.
func DefaultUnlockCache() *UnlockCache {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return NewUnlockCache(filepath.Join(dir, "vinutoken", "unlock.json"))
}

// Get returns a cached key for ref, or ("", false) if not cached.
func (c *UnlockCache) Get(ref string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.load()[ref]
	return v, ok
}

// Put caches a key for ref.
func (c *UnlockCache) Put(ref, hexKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.load()
	m[ref] = normaliseHexKey(hexKey)
	return c.save(m)
}

// Remove evicts a single ref. Missing refs are ignored.
func (c *UnlockCache) Remove(ref string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.load()
	if _, ok := m[ref]; !ok {
		return
	}
	delete(m, ref)
	_ = c.save(m)
}

// Clear deletes the cache file.
func (c *UnlockCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := os.Remove(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Active reports whether any key is cached.
func (c *UnlockCache) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.load()) > 0
}

// load returns an empty map (never nil) on any error.
func (c *UnlockCache) load() map[string]string {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return make(map[string]string)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]string)
	}
	return m
}

func (c *UnlockCache) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return err
	}
	return os.Chmod(c.path, 0o600)
}
