package export

import (
	"context"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/remold/internal/adapters/archive"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

// Archive rewrites the source archive with transformed entries.
type Archive struct {
	logger ports.Logger
}

// NewArchive creates a new Archive exporter.
func NewArchive(logger ports.Logger) *Archive {
	return &Archive{logger: logger}
}

// Export copies every untouched entry of the source verbatim, keeping directory
// entries, then writes the artifacts.
func (a *Archive) Export(
	ctx context.Context,
	src *domain.SourceUnit,
	artifacts map[string]domain.Artifact,
	cfg *domain.Config,
	label string,
) (string, error) {
	if len(artifacts) == 0 {
		return "", nil
	}

	out, err := archiveOutputPath(src.Path, cfg, label)
	if err != nil {
		return "", zerr.With(err, "source", src.Path)
	}

	rc, err := zip.OpenReader(src.Path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "source", src.Path)
	}
	defer rc.Close() //nolint:errcheck // Read-only handle

	err = writeArchive(out, a.logger, func(w *archive.Writer) error {
		originals, err := copyUntouched(ctx, w, rc.File, src.Kind, artifacts, nil)
		if err != nil {
			return err
		}
		return writeArtifacts(ctx, w, artifacts, originals, "")
	})
	if err != nil {
		return "", zerr.With(err, "source", src.Path)
	}

	return out, nil
}

// copyUntouched copies every file whose normalized name has no artifact and
// that is not in skip. It returns the original name of each replaced entry.
func copyUntouched(
	ctx context.Context,
	w *archive.Writer,
	files []*zip.File,
	kind domain.SourceKind,
	artifacts map[string]domain.Artifact,
	skip map[string]*zip.File,
) (map[string]string, error) {
	originals := make(map[string]string)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := skip[f.Name]; ok {
			continue
		}
		if !f.FileInfo().IsDir() {
			normalized := domain.NormalizeEntryName(kind, f.Name)
			if _, ok := artifacts[normalized]; ok {
				if _, seen := originals[normalized]; !seen {
					originals[normalized] = f.Name
				}
				continue
			}
		}
		if err := w.Copy(f); err != nil {
			return nil, err
		}
	}
	return originals, nil
}

// writeArtifacts writes every artifact under its original name, or under
// prefix+name when the source had no such entry.
func writeArtifacts(
	ctx context.Context,
	w *archive.Writer,
	artifacts map[string]domain.Artifact,
	originals map[string]string,
	prefix string,
) error {
	for _, name := range sortedNames(artifacts) {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, ok := originals[name]
		if !ok {
			target = prefix + name
		}
		if err := w.WriteFile(target, artifacts[name].Content); err != nil {
			return err
		}
	}
	return nil
}
