package export

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remold/internal/adapters/logger"
	"go.trai.ch/remold/internal/core/ports"
)

// NodeID is the unique identifier for the exporter set Graft node.
const NodeID graft.ID = "adapter.export"

func init() {
	graft.Register(graft.Node[Set]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Set, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSet(log), nil
		},
	})
}
