package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/adapters/logger"
	"go.trai.ch/remold/internal/build"
	"go.trai.ch/remold/internal/core/ports"
)

// NodeID is the unique identifier for the cache manager Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[ports.CacheManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheManager, error) {
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(hasher, log, build.Version), nil
		},
	})
}
