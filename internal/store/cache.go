// Package store caches parsed session stats as one JSON record per session
// file, keyed by a hash of the absolute path and invalidated purely by
// mtime mismatch. The cache is a best-effort optimization: any failure
// degrades to a miss or a skipped write, never to an error the caller sees.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"agentstat/internal/model"
)

// record is the on-disk cache entry for one session file.
type record struct {
	Mtime int64               `json:"mtime"` // UnixNano at write time
	Stats *model.SessionStats `json:"stats"`
}

// Cache is a directory of per-file session records.
type Cache struct {
	dir string
}

// Open prepares the cache directory.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Get returns the cached stats for path, or nil on any miss: no record,
// unparseable record, or stored mtime differing from the given one.
func (c *Cache) Get(path string, mtime time.Time) *model.SessionStats {
	data, err := os.ReadFile(c.recordPath(path))
	if err != nil {
		return nil
	}

	var rec record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return nil
	}
	if rec.Stats == nil || rec.Mtime != mtime.UnixNano() {
		return nil
	}
	return rec.Stats
}

// Put stores stats for path at the given mtime. Failures are non-fatal;
// the caller keeps using the freshly computed value either way.
func (c *Cache) Put(path string, mtime time.Time, stats *model.SessionStats) error {
	data, err := sonic.Marshal(record{Mtime: mtime.UnixNano(), Stats: stats})
	if err != nil {
		return err
	}

	// Atomic-enough single-record overwrite: temp file + rename.
	dst := c.recordPath(path)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// recordPath names the record file by a stable one-way hash of the
// absolute session file path.
func (c *Cache) recordPath(path string) string {
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:8])+".json")
}

// DefaultDir returns the platform cache directory for agentstat.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentstat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "agentstat")
}
