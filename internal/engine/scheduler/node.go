package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remold/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.LauncherNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			launcher, err := graft.Dep[ports.ProcessLauncher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(launcher, tracer, log), nil
		},
	})
}
