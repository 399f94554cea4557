// Package scheduler fans partitions out to worker processes and joins them.
package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"go.trai.ch/remold/internal/adapters/config" //nolint:depguard // Argument files are the worker wire format
	"go.trai.ch/remold/internal/adapters/shell"  //nolint:depguard // Worker stderr is forwarded line by line
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var numCPU = runtime.NumCPU

// WorkerCount returns override when positive, otherwise the CPU count minus
// the reserved processors, and never less than one.
func WorkerCount(override int) int {
	if override > 0 {
		return override
	}
	return max(1, numCPU()-domain.ReservedProcessors)
}

// Scheduler runs one worker process per partition.
type Scheduler struct {
	launcher ports.ProcessLauncher
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(launcher ports.ProcessLauncher, tracer ports.Tracer, logger ports.Logger) *Scheduler {
	return &Scheduler{
		launcher: launcher,
		tracer:   tracer,
		logger:   logger,
	}
}

type worker struct {
	name   string
	proc   ports.Process
	stdout bytes.Buffer
	stderr *shell.LogWriter
	err    error
}

// RunPartitions starts a worker for every partition and waits for all of them.
// Started workers are never cancelled. When any worker fails, all output is
// discarded and the returned error wraps domain.ErrWorkersAborted.
// Otherwise the standard output of every worker is returned in partition order.
func (s *Scheduler) RunPartitions(ctx context.Context, outputDir string, partitions []*domain.Config) (outputs []string, err error) {
	ctx, span := s.tracer.Start(ctx, "scale out", ports.WithAttribute("workers", len(partitions)))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	argFiles, err := writeArgFiles(domain.WorkerArgsPath(outputDir), partitions)
	if err != nil {
		return nil, err
	}

	workers := make([]*worker, len(partitions))
	for i, argFile := range argFiles {
		w := &worker{name: fmt.Sprintf("worker %d", i)}
		w.stderr = shell.NewLogWriter(s.logger, "["+w.name+"] ")
		workers[i] = w

		s.logger.Debug(fmt.Sprintf("starting %s with %s", w.name, argFile))
		w.proc, w.err = s.launcher.Start(ctx, w.name, argFile, &w.stdout, w.stderr)
	}

	var g errgroup.Group
	for _, w := range workers {
		if w.proc == nil {
			continue
		}
		g.Go(func() error {
			w.err = w.proc.Wait()
			return w.stderr.Close()
		})
	}
	_ = g.Wait()

	var errs []error
	for _, w := range workers {
		if w.err != nil {
			s.logger.Error(w.err)
			errs = append(errs, w.err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{domain.ErrWorkersAborted}, errs...)...)
	}

	outputs = make([]string, len(workers))
	for i, w := range workers {
		outputs[i] = w.stdout.String()
	}
	return outputs, nil
}

// writeArgFiles clears dir and writes one argument file per partition.
func writeArgFiles(dir string, partitions []*domain.Config) ([]string, error) {
	if err := os.RemoveAll(dir); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArgFileWriteFailed.Error()), "path", dir)
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArgFileWriteFailed.Error()), "path", dir)
	}

	paths := make([]string, len(partitions))
	for i, p := range partitions {
		path := filepath.Join(dir, fmt.Sprintf("worker-%d-%s.args", i, uuid.NewString()))
		if err := config.WriteArgFile(path, config.ToArgs(p)); err != nil {
			return nil, err
		}
		paths[i] = path
	}
	return paths, nil
}
