// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/remold/internal/adapters/cache"
	_ "go.trai.ch/remold/internal/adapters/config"
	_ "go.trai.ch/remold/internal/adapters/export"
	_ "go.trai.ch/remold/internal/adapters/fs"
	_ "go.trai.ch/remold/internal/adapters/loader"
	_ "go.trai.ch/remold/internal/adapters/logger"
	_ "go.trai.ch/remold/internal/adapters/shell"
	_ "go.trai.ch/remold/internal/adapters/telemetry"
	_ "go.trai.ch/remold/internal/adapters/transform"
	// Register app and engine nodes.
	_ "go.trai.ch/remold/internal/app"
	_ "go.trai.ch/remold/internal/engine/pipeline"
	_ "go.trai.ch/remold/internal/engine/scheduler"
)
