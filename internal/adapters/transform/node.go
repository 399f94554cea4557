package transform

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remold/internal/adapters/shell"
	"go.trai.ch/remold/internal/core/ports"
)

// NodeID is the unique identifier for the transformer factory Graft node.
const NodeID graft.ID = "adapter.transform"

func init() {
	graft.Register(graft.Node[ports.TransformerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.RunnerNodeID},
		Run: func(ctx context.Context) (ports.TransformerFactory, error) {
			runner, err := graft.Dep[*shell.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(runner), nil
		},
	})
}
