package cache

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheManager = (*Manager)(nil)

// Manager opens the configured cache strategy and coordinates it across workers.
type Manager struct {
	hasher  *fs.Hasher
	logger  ports.Logger
	version string
}

// NewManager creates a new Manager. version is part of the cache context.
func NewManager(hasher *fs.Hasher, logger ports.Logger, version string) *Manager {
	return &Manager{hasher: hasher, logger: logger, version: version}
}

func (m *Manager) fingerprint(cfg *domain.Config) (string, error) {
	if cfg.CacheContext != "" {
		return cfg.CacheContext, nil
	}
	return Fingerprint(cfg, m.hasher, m.version)
}

// Prepare pins the cache context on cfg, resets stale records and removes
// shards left over by an aborted run.
func (m *Manager) Prepare(ctx context.Context, cfg *domain.Config) error {
	fp, err := m.fingerprint(cfg)
	if err != nil {
		return err
	}
	cfg.CacheContext = fp

	switch cfg.Cache.Strategy {
	case domain.CacheNone:
		return nil
	case domain.CacheManifest:
		shards := domain.CacheShardsPath(cfg.OutputDir)
		if err := os.RemoveAll(shards); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", shards)
		}
		return nil
	default:
		path := cfg.ResolvedCachePath()
		c, err := OpenSQLite(ctx, path, fp, m.hasher)
		if err != nil {
			return err
		}
		return c.Close()
	}
}

// Open returns the cache for one pipeline.
func (m *Manager) Open(ctx context.Context, cfg *domain.Config) (ports.ChecksumCache, error) {
	fp, err := m.fingerprint(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Cache.Strategy {
	case domain.CacheNone:
		return NoneCache{}, nil
	case domain.CacheManifest:
		return OpenManifest(cfg.ResolvedCachePath(), domain.CacheShardsPath(cfg.OutputDir), fp, m.hasher)
	default:
		return OpenSQLite(ctx, cfg.ResolvedCachePath(), fp, m.hasher)
	}
}

// Merge folds manifest shards into the manifest. Other strategies persist
// records directly and have nothing to merge.
func (m *Manager) Merge(_ context.Context, cfg *domain.Config) error {
	if cfg.Cache.Strategy != domain.CacheManifest {
		return nil
	}

	fp, err := m.fingerprint(cfg)
	if err != nil {
		return err
	}

	merged, err := MergeManifest(cfg.ResolvedCachePath(), domain.CacheShardsPath(cfg.OutputDir), fp)
	if err != nil {
		return err
	}
	m.logger.Debug(fmt.Sprintf("merged %d cache records into %s", merged, cfg.ResolvedCachePath()))
	return nil
}
