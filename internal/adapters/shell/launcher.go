package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

// WorkerCommand is the subcommand a worker process runs.
const WorkerCommand = "worker"

var _ ports.ProcessLauncher = (*Launcher)(nil)

// Launcher starts worker processes by re-executing the current binary.
type Launcher struct {
	executable string
}

// NewLauncher creates a Launcher for executable. An empty executable means the running binary.
func NewLauncher(executable string) *Launcher {
	return &Launcher{executable: executable}
}

type workerProcess struct {
	name    string
	cmd     *exec.Cmd
	drained <-chan struct{}
}

// Wait drains standard output, then reaps the process.
func (p *workerProcess) Wait() error {
	<-p.drained

	err := p.cmd.Wait()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrWorkerFailed.Error()), "worker", p.name), "exit_code", exitCode)
}

// Start launches `<executable> worker @argFile`. The process is not bound to
// ctx: once started it runs to completion.
func (l *Launcher) Start(
	ctx context.Context,
	name, argFile string,
	stdout, stderr io.Writer,
) (ports.Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	executable := l.executable
	if executable == "" {
		self, err := os.Executable()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrWorkerStartFailed.Error()), "worker", name)
		}
		executable = self
	}

	cmd := exec.Command(executable, WorkerCommand, "@"+argFile) //nolint:gosec,noctx // Workers are never cancelled
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	cmd.Stderr = stderr

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrWorkerStartFailed.Error()), "worker", name)
	}
	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrWorkerStartFailed.Error()), "worker", name)
	}

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		_, _ = io.Copy(stdout, pipe)
	}()

	return &workerProcess{name: name, cmd: cmd, drained: drained}, nil
}
