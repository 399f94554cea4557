package cache

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChecksumCache = (*ManifestCache)(nil)

// manifest is the on-disk form of the merged cache and of every shard.
type manifest struct {
	Context string            `json:"context"`
	Sources map[string]string `json:"sources"`
}

// ManifestCache reads records from the merged manifest and writes new ones to
// a shard owned by this process. Shards are folded into the manifest by Merge.
type ManifestCache struct {
	shardPath string
	context   string
	hasher    *fs.Hasher

	mu    sync.RWMutex
	known map[string]string
	added map[string]string
}

// OpenManifest loads the manifest at path. A manifest written under another
// context is ignored. New records go to a fresh shard in shardDir.
func OpenManifest(path, shardDir, fingerprint string, hasher *fs.Hasher) (*ManifestCache, error) {
	m, err := readManifest(path)
	if err != nil {
		return nil, err
	}
	known := m.Sources
	if m.Context != fingerprint {
		known = make(map[string]string)
	}

	return &ManifestCache{
		shardPath: filepath.Join(shardDir, uuid.NewString()+".json"),
		context:   fingerprint,
		hasher:    hasher,
		known:     known,
		added:     make(map[string]string),
	}, nil
}

// Contains reports whether path is recorded with its current checksum.
func (c *ManifestCache) Contains(path string) (bool, error) {
	sum, err := c.hasher.ChecksumSource(path)
	if err != nil {
		return false, err
	}
	if sum == "" {
		return false, nil
	}

	key := recordKey(path)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.added[key] == sum {
		return true, nil
	}
	return c.known[key] == sum, nil
}

// CacheSource records path in the shard and persists it.
func (c *ManifestCache) CacheSource(path string) error {
	sum, err := c.hasher.ChecksumSource(path)
	if err != nil {
		return err
	}
	if sum == "" {
		return nil
	}

	c.mu.Lock()
	c.added[recordKey(path)] = sum
	c.mu.Unlock()

	return c.save()
}

// Close persists the shard.
func (c *ManifestCache) Close() error {
	c.mu.RLock()
	empty := len(c.added) == 0
	c.mu.RUnlock()
	if empty {
		return nil
	}
	return c.save()
}

func (c *ManifestCache) save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return writeManifest(c.shardPath, manifest{Context: c.context, Sources: c.added})
}

// MergeManifest folds every shard in shardDir into the manifest at path and
// removes the shards. A shard written under another context is fatal.
func MergeManifest(path, shardDir, fingerprint string) (int, error) {
	m, err := readManifest(path)
	if err != nil {
		return 0, err
	}
	if m.Context != fingerprint {
		m = manifest{Context: fingerprint, Sources: make(map[string]string)}
	}

	shards, err := filepath.Glob(filepath.Join(shardDir, "*.json"))
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	merged := 0
	for _, shardPath := range shards {
		shard, err := readManifest(shardPath)
		if err != nil {
			return 0, err
		}
		if shard.Context != fingerprint {
			return 0, zerr.With(zerr.Wrap(domain.ErrCacheContextMismatch, "cannot merge cache shard"), "shard", shardPath)
		}
		for key, sum := range shard.Sources {
			m.Sources[key] = sum
			merged++
		}
	}

	if err := writeManifest(path, m); err != nil {
		return 0, err
	}
	if err := os.RemoveAll(shardDir); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", shardDir)
	}
	return merged, nil
}

func readManifest(path string) (manifest, error) {
	m := manifest{Sources: make(map[string]string)}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return m, nil
		}
		return m, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}
	if len(data) == 0 {
		return m, nil
	}

	if err := json.Unmarshal(data, &m); err != nil {
		return m, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}
	if m.Sources == nil {
		m.Sources = make(map[string]string)
	}
	return m, nil
}

// writeManifest replaces the file at path atomically.
func writeManifest(path string, m manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", dir)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	return nil
}
