// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot is one load-and-aggregate pass over the data directory.
type Snapshot struct {
	Index       *Index
	Names       []string
	Stats       Stats
	Fingerprint string
	LoadedAt    time.Time
}

// Cache memoizes snapshots keyed by a fingerprint of the data directory.
// A snapshot is rebuilt whenever the fingerprint changes or after
// Invalidate.
type Cache struct {
	loader *Loader
	root   string

	mu      sync.RWMutex
	current *Snapshot
	gen     uint64
	builtAt uint64

	group singleflight.Group
}

func NewCache(loader *Loader, root string) *Cache {
	return &Cache{loader: loader, root: root}
}

// Root is the watched data directory.
func (c *Cache) Root() string { return c.root }

// Snapshot returns the current snapshot, rebuilding it if the directory
// changed. Concurrent callers share one rebuild.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	fp := Fingerprint(c.root)

	c.mu.RLock()
	cur, gen := c.current, c.gen
	fresh := c.builtAt == gen
	c.mu.RUnlock()
	if cur != nil && fresh && cur.Fingerprint == fp {
		return cur, nil
	}

	// Callers after an Invalidate must not join a rebuild started before it.
	ch := c.group.DoChan(flightKey(fp, gen), func() (interface{}, error) {
		return c.rebuild(fp, gen), nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func flightKey(fp string, gen uint64) string {
	return fmt.Sprintf("%s/%d", fp, gen)
}

func (c *Cache) rebuild(fp string, gen uint64) *Snapshot {
	idx, names := c.loader.Load(c.root)
	snap := &Snapshot{
		Index:       idx,
		Names:       names,
		Stats:       Aggregate(idx),
		Fingerprint: fp,
		LoadedAt:    time.Now(),
	}

	c.mu.Lock()
	// A slower rebuild from an older generation never replaces a newer one.
	if c.current == nil || gen >= c.builtAt {
		c.current = snap
		c.builtAt = gen
	}
	c.mu.Unlock()

	slog.Debug("snapshot rebuilt", "fingerprint", fp[:12], "participants", idx.Len())
	return snap
}

// Invalidate forces the next Snapshot call to reload.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
}

// Fingerprint hashes the path, size and modification time of every
// record file under root. A missing root has a stable fingerprint.
func Fingerprint(root string) string {
	h := sha256.New()
	for _, path := range recordFiles(root) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(h, "%s\x00?\n", rel)
			continue
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", rel, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil))
}
