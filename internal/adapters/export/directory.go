package export

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
)

// Directory writes artifacts as plain files under <outputDir>/<label>.
type Directory struct{}

// NewDirectory creates a new Directory exporter.
func NewDirectory() *Directory {
	return &Directory{}
}

// Export writes each artifact to <outputDir>/<label>/<entry>.
func (d *Directory) Export(
	ctx context.Context,
	_ *domain.SourceUnit,
	artifacts map[string]domain.Artifact,
	cfg *domain.Config,
	label string,
) (string, error) {
	if len(artifacts) == 0 {
		return "", nil
	}

	root := filepath.Join(cfg.OutputDir, label)
	for _, name := range sortedNames(artifacts) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		rel := filepath.FromSlash(name)
		if !filepath.IsLocal(rel) {
			return "", zerr.With(zerr.Wrap(zerr.New("entry escapes output directory"), domain.ErrExportFailed.Error()), "entry", name)
		}

		target := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "entry", name)
		}
		if err := os.WriteFile(target, artifacts[name].Content, domain.FilePerm); err != nil { //nolint:gosec // Output files are world-readable
			return "", zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "entry", name)
		}
	}

	return root, nil
}
