// Package export packages transformed entries into deliverables.
package export

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/remold/internal/adapters/archive"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

// Set maps every export kind to its exporter.
type Set map[domain.ExportKind]ports.Exporter

// NewSet returns the exporters for every export kind.
func NewSet(logger ports.Logger) Set {
	return Set{
		domain.ExportDirectory:        NewDirectory(),
		domain.ExportArchive:          NewArchive(logger),
		domain.ExportPatchedBaseImage: NewPatchedBaseImage(logger),
	}
}

func sortedNames(artifacts map[string]domain.Artifact) []string {
	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// archiveOutputPath returns <outputDir>/<label>/<stem><suffix><ext> for src.
func archiveOutputPath(src string, cfg *domain.Config, label string) (string, error) {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	out := filepath.Join(cfg.OutputDir, label, strings.TrimSuffix(base, ext)+cfg.Suffix+ext)

	absOut, err := filepath.Abs(out)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrExportFailed.Error())
	}
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrExportFailed.Error())
	}
	if absOut == absSrc {
		return "", zerr.With(zerr.New("output would overwrite source"), "path", out)
	}
	return out, nil
}

// writeArchive builds an archive at path through a temp file in the same
// directory, renamed into place once fill succeeded.
func writeArchive(path string, logger ports.Logger, fill func(w *archive.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".remold-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Gone after a successful rename

	w := archive.NewWriter(tmp, logger)
	if err := fill(w); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := w.Close(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", tmpName)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", path)
	}
	return nil
}
