package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Result is the outcome of a command that ran to completion.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs commands in a hermetic environment.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes argv with stdin as standard input. A non-zero exit is not an
// error: it is reported through Result.ExitCode. The error is non-nil only when
// the command could not be run.
func (r *Runner) Run(ctx context.Context, argv []string, env map[string]string, stdin []byte) (*Result, error) {
	if len(argv) == 0 {
		return nil, zerr.New("empty command")
	}

	name := argv[0]
	cmdEnv := resolveEnvironment(os.Environ(), env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // Command comes from the configuration
	cmd.Args[0] = name
	cmd.Env = cmdEnv
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		return nil, zerr.With(zerr.Wrap(err, "failed to run command"), "command", name)
	}
}
