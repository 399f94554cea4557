package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remold/internal/core/ports"
)

const (
	// LauncherNodeID is the unique identifier for the worker launcher Graft node.
	LauncherNodeID graft.ID = "adapter.shell.launcher"
	// RunnerNodeID is the unique identifier for the command runner Graft node.
	RunnerNodeID graft.ID = "adapter.shell.runner"
)

func init() {
	graft.Register(graft.Node[ports.ProcessLauncher]{
		ID:        LauncherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProcessLauncher, error) {
			return NewLauncher(""), nil
		},
	})

	graft.Register(graft.Node[*Runner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Runner, error) {
			return NewRunner(), nil
		},
	})
}
