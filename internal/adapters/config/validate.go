package config

import (
	"slices"

	"github.com/gobwas/glob"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
)

func invalid(msg string) error {
	return zerr.Wrap(zerr.New(msg), domain.ErrInvalidConfig.Error())
}

// Validate checks a resolved configuration before any work starts.
// requireSources is false for commands that only touch the state directory.
func Validate(cfg *domain.Config, requireSources bool) error {
	if cfg.OutputDir == "" {
		return invalid("outputDir is required")
	}

	if !slices.Contains([]domain.SignedHandling{domain.SignedSkip, domain.SignedTransform}, cfg.SignedHandling) {
		return zerr.With(invalid("unknown signed handling"), "signedHandling", string(cfg.SignedHandling))
	}
	if !slices.Contains([]domain.CacheOrder{domain.CacheFirst, domain.SigningFirst}, cfg.CacheOrder) {
		return zerr.With(invalid("unknown cache order"), "cacheOrder", string(cfg.CacheOrder))
	}
	if !slices.Contains([]domain.CacheStrategy{domain.CacheSQLite, domain.CacheManifest, domain.CacheNone}, cfg.Cache.Strategy) {
		return zerr.With(invalid("unknown cache strategy"), "strategy", string(cfg.Cache.Strategy))
	}
	if cfg.Workers < 0 {
		return zerr.With(invalid("workers must not be negative"), "workers", cfg.Workers)
	}

	if requireSources && cfg.SourceCount() == 0 && cfg.BaseImage == "" {
		return zerr.Wrap(domain.ErrNoSources, domain.ErrInvalidConfig.Error())
	}
	if cfg.BootstrapArchive != "" && cfg.BaseImage == "" {
		return invalid("bootstrap archive requires a base image")
	}

	for _, name := range cfg.LibraryNames() {
		if name == domain.BaseImageLabel && cfg.BaseImage != "" {
			return zerr.With(invalid("library name is reserved for the base image"), "library", name)
		}
	}

	return validateTransformers(cfg.Transformers)
}

func validateTransformers(specs []domain.TransformerSpec) error {
	ids := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if spec.ID == "" {
			return invalid("transformer id is required")
		}
		if ids[spec.ID] {
			return zerr.With(invalid("duplicate transformer id"), "transformer", spec.ID)
		}
		ids[spec.ID] = true

		switch spec.Kind {
		case domain.TransformerReplace:
			if spec.Old == "" {
				return zerr.With(invalid("replace transformer requires old"), "transformer", spec.ID)
			}
		case domain.TransformerCommand:
			if len(spec.Command) == 0 {
				return zerr.With(invalid("command transformer requires cmd"), "transformer", spec.ID)
			}
		default:
			return zerr.With(zerr.With(invalid("unknown transformer kind"), "transformer", spec.ID), "kind", string(spec.Kind))
		}

		for _, pattern := range spec.Match {
			if _, err := glob.Compile(pattern, '/'); err != nil {
				return zerr.With(zerr.With(invalid("invalid match pattern"), "transformer", spec.ID), "pattern", pattern)
			}
		}
		for _, inj := range spec.Inject {
			if inj.Entry == "" || inj.File == "" {
				return zerr.With(invalid("inject requires entry and file"), "transformer", spec.ID)
			}
		}
	}
	return nil
}
