package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver expands source patterns and classifies source paths.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveSources expands each pattern relative to root, keeping pattern order.
// Matches of one pattern are sorted. A pattern without matches is an error.
func (r *Resolver) ResolveSources(patterns []string, root string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob source"), "pattern", pattern)
		}
		if len(matches) == 0 {
			return nil, zerr.With(zerr.New("source not found"), "path", path)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			result = append(result, match)
		}
	}

	return result, nil
}

// Kind classifies path by following symlinks: a regular file is an archive,
// a directory is a directory source.
func (r *Resolver) Kind(path string) (domain.SourceKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrSourceLoadFailed.Error()), "path", path)
	}

	switch {
	case info.Mode().IsRegular():
		return domain.KindArchive, nil
	case info.IsDir():
		return domain.KindDirectory, nil
	default:
		return 0, zerr.With(zerr.Wrap(domain.ErrSourceLoadFailed, "unsupported file type"), "path", path)
	}
}
