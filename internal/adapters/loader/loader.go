// Package loader turns source paths into SourceUnits.
package loader

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/remold/internal/adapters/archive"
	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceLoader = (*Loader)(nil)

// Loader dispatches on the kind of a path. The configured base image is
// always loaded as a base image.
type Loader struct {
	resolver *fs.Resolver
	walker   *fs.Walker
}

// New creates a new Loader.
func New(resolver *fs.Resolver, walker *fs.Walker) *Loader {
	return &Loader{resolver: resolver, walker: walker}
}

// Load reads every entry of the source at path.
func (l *Loader) Load(ctx context.Context, path string, cfg *domain.Config) (*domain.SourceUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg != nil && cfg.BaseImage != "" && samePath(path, cfg.BaseImage) {
		return l.loadBaseImage(path)
	}

	kind, err := l.resolver.Kind(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindArchive:
		return l.loadArchive(path)
	case domain.KindDirectory:
		return l.loadDirectory(ctx, path)
	default:
		return nil, zerr.With(domain.ErrLoaderNotFound, "path", path)
	}
}

func (l *Loader) loadArchive(path string) (*domain.SourceUnit, error) {
	contents, err := archive.Read(path)
	if err != nil {
		return nil, err
	}
	return &domain.SourceUnit{
		Path:    path,
		Kind:    domain.KindArchive,
		Entries: contents.Entries,
		Order:   contents.Order,
		Signing: contents.Signing,
		Export:  domain.ExportArchive,
	}, nil
}

func (l *Loader) loadBaseImage(path string) (*domain.SourceUnit, error) {
	contents, err := archive.Read(path)
	if err != nil {
		return nil, err
	}
	return &domain.SourceUnit{
		Path:    path,
		Kind:    domain.KindBaseImage,
		Entries: contents.Entries,
		Order:   contents.Order,
		Signing: domain.Unsigned,
		Export:  domain.ExportPatchedBaseImage,
	}, nil
}

func (l *Loader) loadDirectory(ctx context.Context, root string) (*domain.SourceUnit, error) {
	src := &domain.SourceUnit{
		Path:    root,
		Kind:    domain.KindDirectory,
		Entries: make(map[string][]byte),
		Signing: domain.Unsigned,
		Export:  domain.ExportDirectory,
	}

	for rel, err := range l.walker.WalkFiles(root) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceLoadFailed.Error()), "path", root)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel))) //nolint:gosec // Path comes from the walk
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceLoadFailed.Error()), "path", rel)
		}
		src.Entries[rel] = content
		src.Order = append(src.Order, rel)
	}

	return src, nil
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(ia, ib)
}
