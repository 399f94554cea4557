package ports

import (
	"context"
	"io"
)

// ProcessLauncher starts worker processes.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessLauncher interface {
	// Start launches one worker reading its arguments from argFile.
	// Standard output is copied to stdout until the process exits.
	Start(ctx context.Context, name, argFile string, stdout, stderr io.Writer) (Process, error)
}

// Process is a running worker.
type Process interface {
	// Wait blocks until the process exited and its output was fully drained.
	Wait() error
}
