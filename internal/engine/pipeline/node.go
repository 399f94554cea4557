package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remold/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/adapters/export"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/adapters/loader"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/adapters/transform" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remold/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			loader.NodeID,
			cache.NodeID,
			transform.NodeID,
			export.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			sources, err := graft.Dep[ports.SourceLoader](ctx)
			if err != nil {
				return nil, err
			}

			caches, err := graft.Dep[ports.CacheManager](ctx)
			if err != nil {
				return nil, err
			}

			factory, err := graft.Dep[ports.TransformerFactory](ctx)
			if err != nil {
				return nil, err
			}

			exporters, err := graft.Dep[export.Set](ctx)
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

			return New(sources, caches, factory, exporters, loader.NewSigningStrategy, tracer, log), nil
		},
	})
}
