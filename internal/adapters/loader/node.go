package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/core/ports"
)

// NodeID is the unique identifier for the source loader Graft node.
const NodeID graft.ID = "adapter.loader"

func init() {
	graft.Register(graft.Node[ports.SourceLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ResolverNodeID, fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.SourceLoader, error) {
			resolver, err := graft.Dep[*fs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return New(resolver, walker), nil
		},
	})
}
