// Package config provides the configuration loader for remold.
package config

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	resolver *fs.Resolver
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger, resolver *fs.Resolver) *Loader {
	return &Loader{Logger: logger, resolver: resolver}
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() *domain.Config {
	return &domain.Config{
		Libraries:          make(map[string][]string),
		BootstrapNamespace: domain.DefaultBootstrapNamespace,
		SignedHandling:     domain.SignedSkip,
		CacheOrder:         domain.CacheFirst,
		Cache:              domain.CacheConfig{Strategy: domain.CacheSQLite},
	}
}

// Load reads the configuration file at path. Relative paths inside the file
// are resolved against the file's directory. An empty path loads remold.yaml
// from the working directory if it exists and the defaults otherwise.
func (l *Loader) Load(path string) (*domain.Config, error) {
	explicit := path != ""
	if !explicit {
		path = domain.ConfigFileName
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if _, err := os.Stat(absPath); err != nil {
		if !explicit && errors.Is(err, iofs.ErrNotExist) {
			l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
			return Defaults(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Remoldfile
	if err := readAndUnmarshalYAML(absPath, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg, err := l.fromFile(&file, filepath.Dir(absPath))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	cfg.ConfigFile = absPath
	return cfg, nil
}

func (l *Loader) fromFile(file *Remoldfile, root string) (*domain.Config, error) {
	cfg := Defaults()

	cfg.OutputDir = resolvePath(root, file.OutputDir)
	cfg.BaseImage = resolvePath(root, file.BaseImage)
	cfg.BootstrapArchive = resolvePath(root, file.Bootstrap.Archive)
	if file.Bootstrap.Namespace != "" {
		cfg.BootstrapNamespace = file.Bootstrap.Namespace
	}
	cfg.Suffix = file.Suffix
	if file.SignedHandling != "" {
		cfg.SignedHandling = domain.SignedHandling(file.SignedHandling)
	}
	if file.CacheOrder != "" {
		cfg.CacheOrder = domain.CacheOrder(file.CacheOrder)
	}
	if file.Cache.Strategy != "" {
		cfg.Cache.Strategy = domain.CacheStrategy(file.Cache.Strategy)
	}
	cfg.Cache.Path = resolvePath(root, file.Cache.Path)
	cfg.FailOnUnresolvable = file.FailOnUnresolvable
	cfg.Workers = file.Workers
	cfg.LogLevel = file.Log.Level
	cfg.LogFormat = file.Log.Format

	names := make([]string, 0, len(file.Libraries))
	for name := range file.Libraries {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		paths, err := l.resolver.ResolveSources(file.Libraries[name], root)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "library", name)
		}
		if len(paths) > 0 {
			cfg.Libraries[name] = paths
		}
	}

	for _, dto := range file.Transformers {
		cfg.Transformers = append(cfg.Transformers, buildTransformer(dto, root))
	}

	return cfg, nil
}

func buildTransformer(dto TransformerDTO, root string) domain.TransformerSpec {
	spec := domain.TransformerSpec{
		ID:                   dto.ID,
		Kind:                 domain.TransformerKind(dto.Kind),
		Match:                dto.Match,
		Old:                  dto.Old,
		New:                  dto.New,
		Command:              dto.Cmd,
		Environment:          dto.Environment,
		UnresolvableExitCode: dto.UnresolvableExitCode,
	}
	for _, inj := range dto.Inject {
		spec.Inject = append(spec.Inject, domain.Injection{
			Entry: inj.Entry,
			File:  resolvePath(root, inj.File),
		})
	}
	return spec
}

func resolvePath(root, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
