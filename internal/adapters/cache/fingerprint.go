// Package cache implements the persisted checksum cache of fully processed sources.
//
// Every record belongs to a cache context: a fingerprint of everything besides
// the source content that influences the output. A changed context starts the
// cache over.
package cache

import (
	"path/filepath"
	"sort"
	"strconv"

	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Fingerprint computes the cache context of cfg.
func Fingerprint(cfg *domain.Config, hasher *fs.Hasher, version string) (string, error) {
	transformers, err := yaml.Marshal(cfg.Transformers)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrChecksumFailed.Error())
	}

	fields := map[string]string{
		"version":             version,
		"transformers":        string(transformers),
		"bootstrap-namespace": cfg.BootstrapNamespace,
		"output-dir":          recordKey(cfg.OutputDir),
		"suffix":              cfg.Suffix,
		"signed-handling":     string(cfg.SignedHandling),
		"fail-unresolvable":   strconv.FormatBool(cfg.FailOnUnresolvable),
		"cache-strategy":      string(cfg.Cache.Strategy),
	}

	files := map[string]string{
		"base-image":        cfg.BaseImage,
		"bootstrap-archive": cfg.BootstrapArchive,
	}
	for _, spec := range cfg.Transformers {
		for _, inj := range spec.Inject {
			files["inject/"+spec.ID+"/"+inj.Entry] = inj.File
		}
	}

	keys := make([]string, 0, len(files))
	for key := range files {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := files[key]
		if path == "" {
			continue
		}
		sum, err := hasher.ChecksumFile(path)
		if err != nil {
			return "", zerr.With(err, "field", key)
		}
		fields[key] = sum
	}

	return hasher.Fingerprint(fields), nil
}

func recordKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
