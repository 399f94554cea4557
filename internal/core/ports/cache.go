package ports

import (
	"context"

	"go.trai.ch/remold/internal/core/domain"
)

// ChecksumCache records sources that were fully processed.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ChecksumCache interface {
	// Contains reports whether the source at path is recorded with its current checksum.
	Contains(path string) (bool, error)

	// CacheSource records the source at path. Recording it again is harmless.
	CacheSource(path string) error

	// Close persists pending records and releases resources.
	Close() error
}

// CacheManager opens caches and coordinates them across worker processes.
type CacheManager interface {
	// Prepare validates the cache context and clears transient state before workers start.
	Prepare(ctx context.Context, cfg *domain.Config) error

	// Open returns the cache used by one pipeline.
	Open(ctx context.Context, cfg *domain.Config) (ChecksumCache, error)

	// Merge folds records written by workers into the persisted cache.
	Merge(ctx context.Context, cfg *domain.Config) error
}
