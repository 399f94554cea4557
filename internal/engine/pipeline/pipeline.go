// Package pipeline runs every source of one partition through the transformer chain.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/remold/internal/engine/orchestrator"
	"go.trai.ch/remold/internal/engine/registry"
	"go.trai.ch/zerr"
)

// StrategyFunc returns the signed-source strategy for the configured handling.
type StrategyFunc func(domain.SignedHandling) ports.SignedSourceHandlingStrategy

// Pipeline processes the sources of one partition sequentially.
type Pipeline struct {
	loader    ports.SourceLoader
	caches    ports.CacheManager
	factory   ports.TransformerFactory
	exporters map[domain.ExportKind]ports.Exporter
	strategy  StrategyFunc
	tracer    ports.Tracer
	logger    ports.Logger
}

// New creates a new Pipeline.
func New(
	loader ports.SourceLoader,
	caches ports.CacheManager,
	factory ports.TransformerFactory,
	exporters map[domain.ExportKind]ports.Exporter,
	strategy StrategyFunc,
	tracer ports.Tracer,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		loader:    loader,
		caches:    caches,
		factory:   factory,
		exporters: exporters,
		strategy:  strategy,
		tracer:    tracer,
		logger:    logger,
	}
}

type workItem struct {
	path  string
	label string
}

// items lists library sources in library name order followed by the base image.
func items(cfg *domain.Config) []workItem {
	out := make([]workItem, 0, cfg.SourceCount()+1)
	for _, name := range cfg.LibraryNames() {
		for _, path := range cfg.Libraries[name] {
			out = append(out, workItem{path: path, label: name})
		}
	}
	if cfg.BaseImage != "" {
		out = append(out, workItem{path: cfg.BaseImage, label: domain.BaseImageLabel})
	}
	return out
}

// Run processes every source of cfg and returns one outcome per source.
// The first fatal error stops the partition.
func (p *Pipeline) Run(ctx context.Context, cfg *domain.Config) (outcomes []domain.WorkOutcome, err error) {
	ctx, span := p.tracer.Start(ctx, "pipeline", ports.WithAttribute("sources", cfg.SourceCount()))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	chain, injector, err := p.factory.Build(cfg.Transformers)
	if err != nil {
		return nil, err
	}

	cache, err := p.caches.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := cache.Close(); closeErr != nil {
			err = errors.Join(err, zerr.Wrap(closeErr, domain.ErrCacheWriteFailed.Error()))
		}
	}()

	orch := orchestrator.New(registry.New(), p.exporters, cache, p.logger, orchestrator.Options{
		Transformers:         chain,
		Injector:             injector,
		TolerateUnresolvable: !cfg.FailOnUnresolvable,
	})
	strategy := p.strategy(cfg.SignedHandling)

	for _, item := range items(cfg) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome, err := p.processSource(ctx, orch, cache, strategy, cfg, item)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

func (p *Pipeline) processSource(
	ctx context.Context,
	orch *orchestrator.Orchestrator,
	cache ports.ChecksumCache,
	strategy ports.SignedSourceHandlingStrategy,
	cfg *domain.Config,
	item workItem,
) (outcome domain.WorkOutcome, err error) {
	ctx, span := p.tracer.Start(ctx, "source",
		ports.WithAttribute("source", item.path),
		ports.WithAttribute("label", item.label),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
		} else {
			span.SetAttribute("status", outcome.Status().String())
		}
		span.End()
	}()

	if cfg.CacheOrder != domain.SigningFirst {
		cached, err := p.cached(cache, item.path)
		if err != nil || cached {
			return domain.NewSkippedOutcome(item.path, domain.Unsigned, domain.SkippedCached), err
		}
	}

	src, err := p.loader.Load(ctx, item.path, cfg)
	if err != nil {
		return domain.WorkOutcome{}, err
	}

	if strategy.ShouldSkip(src.Signing) {
		p.logger.Info(fmt.Sprintf("skipping signed source %s", item.path))
		return domain.NewSkippedOutcome(item.path, src.Signing, domain.SkippedSigned), nil
	}

	if cfg.CacheOrder == domain.SigningFirst {
		cached, err := p.cached(cache, item.path)
		if err != nil || cached {
			return domain.NewSkippedOutcome(item.path, src.Signing, domain.SkippedCached), err
		}
	}

	return orch.Process(ctx, src, cfg, item.label)
}

func (p *Pipeline) cached(cache ports.ChecksumCache, path string) (bool, error) {
	ok, err := cache.Contains(path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "source", path)
	}
	if ok {
		p.logger.Debug(fmt.Sprintf("skipping cached source %s", path))
	}
	return ok, nil
}
