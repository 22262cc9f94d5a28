// Package cache keeps the cache directory from growing without bound.
package cache

import (
	"os"
	"time"

	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/log"
	"github.com/natty-misc/ymd3/where"
)

// TTL is how long a cache file may go unmodified before it is pruned.
const TTL = 7 * 24 * time.Hour

// Prune removes regular files under dir last modified more than ttl ago
// and reports how many were removed. A missing dir is not an error.
func Prune(dir string, ttl time.Duration) (int, error) {
	fs := filesystem.API()

	if exists, err := fs.DirExists(dir); err != nil || !exists {
		return 0, err
	}

	var removed int
	err := fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) <= ttl {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})

	return removed, err
}

// CollectGarbage prunes the cache directory in the background.
func CollectGarbage() {
	go func() {
		removed, err := Prune(where.Cache(), TTL)
		if err != nil {
			log.Warnf("cache pruning failed: %v", err)
			return
		}

		if removed > 0 {
			log.Infof("pruned %d expired cache files", removed)
		}
	}()
}
