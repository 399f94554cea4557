package export

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/remold/internal/adapters/archive"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

// PatchedBaseImage rewrites the base image with bootstrap dependencies and artifacts.
type PatchedBaseImage struct {
	logger ports.Logger
}

// NewPatchedBaseImage creates a new PatchedBaseImage exporter.
func NewPatchedBaseImage(logger ports.Logger) *PatchedBaseImage {
	return &PatchedBaseImage{logger: logger}
}

// Export writes the base image entries that were neither transformed nor
// shadowed by a bootstrap dependency, then the bootstrap dependencies, then
// the artifacts.
func (p *PatchedBaseImage) Export(
	ctx context.Context,
	src *domain.SourceUnit,
	artifacts map[string]domain.Artifact,
	cfg *domain.Config,
	_ string,
) (string, error) {
	if len(artifacts) == 0 {
		return "", nil
	}

	out, err := archiveOutputPath(src.Path, cfg, domain.BaseImageLabel)
	if err != nil {
		return "", zerr.With(err, "source", src.Path)
	}

	base, err := zip.OpenReader(src.Path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "source", src.Path)
	}
	defer base.Close() //nolint:errcheck // Read-only handle

	bootstrap := map[string]*zip.File{}
	if cfg.BootstrapArchive != "" {
		aux, err := zip.OpenReader(cfg.BootstrapArchive)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrBootstrapExtractFailed.Error()), "path", cfg.BootstrapArchive)
		}
		defer aux.Close() //nolint:errcheck // Read-only handle

		namespace := cfg.BootstrapNamespace
		if namespace == "" {
			namespace = domain.DefaultBootstrapNamespace
		}
		bootstrap = archive.ExtractBootstrapDependencies(&aux.Reader, namespace)
		p.logger.Debug(fmt.Sprintf("%d bootstrap dependencies found in %s", len(bootstrap), cfg.BootstrapArchive))
	}

	err = writeArchive(out, p.logger, func(w *archive.Writer) error {
		originals, err := copyUntouched(ctx, w, base.File, domain.KindBaseImage, artifacts, bootstrap)
		if err != nil {
			return err
		}
		for _, name := range archive.SortedKeys(bootstrap) {
			if err := w.Copy(bootstrap[name]); err != nil {
				return err
			}
		}
		return writeArtifacts(ctx, w, artifacts, originals, domain.BaseImageClassesPrefix)
	})
	if err != nil {
		return "", zerr.With(err, "source", src.Path)
	}

	return out, nil
}
