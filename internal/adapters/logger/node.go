package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			l, err := FromEnv(os.Getenv)
			if err != nil {
				return nil, zerr.Wrap(err, "invalid logging environment")
			}
			return l, nil
		},
	})
}
