package transform

import (
	"bytes"
	"context"
	"maps"
	"strings"

	"go.trai.ch/remold/internal/adapters/shell"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

// EntryEnvVar names the entry being transformed in the command environment.
const EntryEnvVar = "REMOLD_ENTRY"

var _ ports.Transformer = (*Command)(nil)

// Command pipes entry content through an external command.
type Command struct {
	id                   string
	matcher              *Matcher
	argv                 []string
	env                  map[string]string
	unresolvableExitCode int
	runner               *shell.Runner
}

// NewCommand creates a Command transformer. An unresolvableExitCode of 0 disables
// the recoverable failure.
func NewCommand(spec domain.TransformerSpec, matcher *Matcher, runner *shell.Runner) *Command {
	return &Command{
		id:                   spec.ID,
		matcher:              matcher,
		argv:                 spec.Command,
		env:                  spec.Environment,
		unresolvableExitCode: spec.UnresolvableExitCode,
		runner:               runner,
	}
}

// ID returns the transformer identifier.
func (c *Command) ID() string { return c.id }

// Apply runs the command with content on stdin and returns its stdout.
// Unchanged output means the entry was not transformed.
func (c *Command) Apply(ctx context.Context, entryName string, content []byte) ([]byte, error) {
	if !c.matcher.Match(entryName) {
		return nil, nil
	}

	env := make(map[string]string, len(c.env)+1)
	maps.Copy(env, c.env)
	env[EntryEnvVar] = entryName

	res, err := c.runner.Run(ctx, c.argv, env, content)
	if err != nil {
		return nil, err
	}

	if res.ExitCode != 0 {
		stderr := strings.TrimSpace(string(res.Stderr))
		if c.unresolvableExitCode != 0 && res.ExitCode == c.unresolvableExitCode {
			if stderr == "" {
				stderr = "command reported an unresolvable dependency"
			}
			return nil, zerr.With(zerr.Wrap(domain.ErrUnresolvableDependency, stderr), "entry", entryName)
		}
		failure := zerr.With(zerr.New("command failed"), "exit_code", res.ExitCode)
		if stderr != "" {
			failure = zerr.With(failure, "stderr", stderr)
		}
		return nil, failure
	}

	if bytes.Equal(res.Stdout, content) {
		return nil, nil
	}
	return res.Stdout, nil
}
