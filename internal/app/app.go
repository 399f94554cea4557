// Package app implements the application layer for remold.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.trai.ch/remold/internal/adapters/config"
	"go.trai.ch/remold/internal/adapters/telemetry"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/remold/internal/engine/aggregate"
	"go.trai.ch/remold/internal/engine/partition"
	"go.trai.ch/remold/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// ConfigSource loads the configuration file and applies command line overrides.
type ConfigSource interface {
	ports.ConfigLoader
	Apply(cfg *domain.Config, o *config.Overrides) error
}

// PartitionRunner processes the sources of one partition in this process.
type PartitionRunner interface {
	Run(ctx context.Context, cfg *domain.Config) ([]domain.WorkOutcome, error)
}

// WorkerPool runs partitions in worker processes.
type WorkerPool interface {
	RunPartitions(ctx context.Context, outputDir string, partitions []*domain.Config) ([]string, error)
}

type logConfigurer interface {
	Configure(level, format string) error
}

// App represents the main application logic.
type App struct {
	configSource ConfigSource
	pipeline     PartitionRunner
	workers      WorkerPool
	caches       ports.CacheManager
	logger       ports.Logger
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	source ConfigSource,
	pipeline PartitionRunner,
	workers WorkerPool,
	caches ports.CacheManager,
	log ports.Logger,
) *App {
	return &App{
		configSource: source,
		pipeline:     pipeline,
		workers:      workers,
		caches:       caches,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithStdout redirects the summary output.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigPath string
	Overrides  *config.Overrides
	// InProcess processes every source in this process instead of scaling out.
	InProcess bool
}

// Run transforms every configured source and prints the aggregated summary.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, opts RunOptions) (err error) {
	// 1. Load and validate the configuration
	cfg, err := a.loadConfig(opts.ConfigPath, opts.Overrides, true)
	if err != nil {
		return err
	}

	// 2. Initialize Telemetry
	shutdown := telemetry.Setup(a.logger)
	defer func() {
		_ = shutdown(ctx)
	}()

	// 3. Guard the output directory
	unlock, err := lockOutputDir(cfg.OutputDir)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, unlock())
	}()

	// 4. Pin the cache context and drop state of aborted runs
	if err := a.caches.Prepare(ctx, cfg); err != nil {
		return err
	}

	// 5. Process, in this process or scaled out
	workers := scheduler.WorkerCount(cfg.Workers)
	partitions := partition.PartitionConfig(cfg, workers)
	a.logger.Debug(fmt.Sprintf("%d sources in %d partitions", cfg.SourceCount(), len(partitions)))

	var outputs []string
	if opts.InProcess || len(partitions) <= 1 {
		summary, err := a.runInProcess(ctx, cfg)
		if err != nil {
			return err
		}
		outputs = []string{aggregate.Format(summary)}
	} else {
		outputs, err = a.workers.RunPartitions(ctx, cfg.OutputDir, partitions)
		if err != nil {
			return err
		}
	}

	// 6. Fold cache shards into the persisted cache
	if err := a.caches.Merge(ctx, cfg); err != nil {
		return err
	}

	// 7. Report
	_, err = aggregate.PrintSummary(a.stdout, outputs)
	return err
}

// WorkOptions configuration for the Work method.
type WorkOptions struct {
	ConfigPath string
	Overrides  *config.Overrides
}

// Work processes one partition and prints its summary block on stdout.
func (a *App) Work(ctx context.Context, opts WorkOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath, opts.Overrides, false)
	if err != nil {
		return err
	}

	shutdown := telemetry.Setup(a.logger)
	defer func() {
		_ = shutdown(ctx)
	}()

	summary, err := a.runInProcess(ctx, cfg)
	if err != nil {
		return err
	}

	_, err = io.WriteString(a.stdout, aggregate.Format(summary))
	return err
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	Overrides  *config.Overrides
}

// Clean removes the cache and the transient state of the output directory.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.configSource.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if err := a.configSource.Apply(cfg, opts.Overrides); err != nil {
		return err
	}
	if cfg.OutputDir == "" {
		return zerr.Wrap(zerr.New("outputDir is required"), domain.ErrInvalidConfig.Error())
	}

	path := domain.StatePath(cfg.OutputDir)
	a.logger.Info(fmt.Sprintf("removing %s...", path))
	if err := os.RemoveAll(path); err != nil {
		return zerr.Wrap(err, "failed to remove state directory")
	}
	a.logger.Info(fmt.Sprintf("removed %s", path))
	return nil
}

func (a *App) loadConfig(path string, overrides *config.Overrides, requireSources bool) (*domain.Config, error) {
	cfg, err := a.configSource.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if err := a.configSource.Apply(cfg, overrides); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg, requireSources); err != nil {
		return nil, err
	}

	if l, ok := a.logger.(logConfigurer); ok {
		if err := l.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
			return nil, zerr.Wrap(err, domain.ErrInvalidConfig.Error())
		}
	}
	return cfg, nil
}

func (a *App) runInProcess(ctx context.Context, cfg *domain.Config) (domain.Summary, error) {
	outcomes, err := a.pipeline.Run(ctx, cfg)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.SummarizeOutcomes(outcomes), nil
}

func lockOutputDir(outputDir string) (func() error, error) {
	path := domain.LockPath(outputDir)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create state directory"), "path", path)
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRunLocked.Error()), "path", path)
	}
	if !locked {
		return nil, zerr.With(zerr.Wrap(domain.ErrRunLocked, "cannot start run"), "path", path)
	}
	return lock.Unlock, nil
}
