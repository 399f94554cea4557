// Package orchestrator drives the transformer chain over the entries of one source.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/remold/internal/engine/registry"
	"go.trai.ch/zerr"
)

// Options configures an Orchestrator.
type Options struct {
	// Transformers are applied to every entry in order.
	Transformers []ports.Transformer
	// Injector contributes unattributed artifacts after all entries were processed. May be nil.
	Injector ports.DependencyInjector
	// TolerateUnresolvable records unresolvable dependencies as warnings instead of aborting.
	TolerateUnresolvable bool
}

// Orchestrator applies transformers to sources one at a time.
// It owns the registry for the duration of each source pass.
type Orchestrator struct {
	registry  *registry.Registry
	exporters map[domain.ExportKind]ports.Exporter
	cache     ports.ChecksumCache
	logger    ports.Logger
	opts      Options
}

// New creates a new Orchestrator.
func New(
	reg *registry.Registry,
	exporters map[domain.ExportKind]ports.Exporter,
	cache ports.ChecksumCache,
	logger ports.Logger,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		registry:  reg,
		exporters: exporters,
		cache:     cache,
		logger:    logger,
		opts:      opts,
	}
}

// Process transforms every entry of src, exports the artifacts under label and
// records the source in the cache unless a warning occurred.
// The registry is empty again when Process returns.
func (o *Orchestrator) Process(
	ctx context.Context,
	src *domain.SourceUnit,
	cfg *domain.Config,
	label string,
) (domain.WorkOutcome, error) {
	if src == nil || cfg == nil {
		return domain.WorkOutcome{}, zerr.Wrap(errors.New("source and configuration are required"), domain.ErrInvalidConfig.Error())
	}

	exporter, ok := o.exporters[src.Export]
	if !ok {
		return domain.WorkOutcome{}, zerr.With(
			zerr.Wrap(domain.ErrExporterNotFound, "cannot process source"), "export", src.Export.String(),
		)
	}

	defer o.registry.Clear()

	o.logger.Debug(fmt.Sprintf("transforming %s (%d entries)", src.Path, len(src.Entries)))

	var warnings []string
	for _, name := range src.EntryNames() {
		if err := ctx.Err(); err != nil {
			return domain.WorkOutcome{}, err
		}

		recovered, err := o.transformEntry(ctx, src, name)
		if err != nil {
			return domain.WorkOutcome{}, err
		}
		if recovered {
			warnings = append(warnings, name)
		}
	}

	if o.opts.Injector != nil {
		for entry, content := range o.opts.Injector.Drain() {
			o.registry.PutUnattributed(entry, content)
		}
	}

	status := classify(o.registry.Len(), len(warnings))
	artifacts := o.registry.GetAll()

	o.logger.Debug(fmt.Sprintf("%d entries transformed in %s", len(artifacts), src.Path))
	if len(artifacts) > 0 {
		switch src.Signing {
		case domain.SignedValid:
			o.logger.Debug(fmt.Sprintf("signed source %s transformed", src.Path))
		case domain.SignedInvalid:
			o.logger.Warn(fmt.Sprintf("invalidly signed source %s transformed", src.Path))
		case domain.Unsigned:
		}
	}

	produced, err := exporter.Export(ctx, src, artifacts, cfg, label)
	if err != nil {
		return domain.WorkOutcome{}, zerr.With(err, "source", src.Path)
	}

	if status == domain.StatusWarningOccurred {
		o.logger.Warn(fmt.Sprintf("skipped caching %s: %d entries with unresolvable dependencies", src.Path, len(warnings)))
	} else if err := o.cache.CacheSource(src.Path); err != nil {
		return domain.WorkOutcome{}, zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "source", src.Path)
	}

	return domain.NewWorkOutcome(src.Path, status, warnings, produced, src.Signing), nil
}

// transformEntry runs the chain over one entry.
// It reports true when the entry was abandoned after a tolerated unresolvable dependency.
func (o *Orchestrator) transformEntry(ctx context.Context, src *domain.SourceUnit, name string) (bool, error) {
	normalized := domain.NormalizeEntryName(src.Kind, name)
	original := src.Entries[name]

	for _, t := range o.opts.Transformers {
		current := original
		if a, ok := o.registry.Lookup(normalized); ok {
			current = a.Content
		}

		out, err := t.Apply(ctx, normalized, current)
		if err != nil {
			if errors.Is(err, domain.ErrUnresolvableDependency) && o.opts.TolerateUnresolvable {
				o.logger.Warn(fmt.Sprintf("failed to resolve dependency when transforming %s in %s: %v", name, src.Path, err))
				return true, nil
			}
			err = zerr.Wrap(err, domain.ErrTransformFailed.Error())
			return false, zerr.With(zerr.With(err, "entry", name), "transformer", t.ID())
		}

		if out != nil {
			o.registry.Put(normalized, t.ID(), out)
		}
	}

	return false, nil
}

func classify(artifacts, warnings int) domain.OutcomeStatus {
	switch {
	case warnings > 0:
		return domain.StatusWarningOccurred
	case artifacts == 0:
		return domain.StatusNoOp
	default:
		return domain.StatusCompleted
	}
}
