package config

import (
	"os"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
)

// Overrides holds configuration values set on the command line.
// Nil fields keep the value of the configuration file.
type Overrides struct {
	OutputDir          *string
	Sources            []string
	BaseImage          *string
	BootstrapArchive   *string
	BootstrapNamespace *string
	Suffix             *string
	SignedHandling     *string
	CacheOrder         *string
	CacheStrategy      *string
	CachePath          *string
	CacheContext       *string
	FailOnUnresolvable *bool
	Workers            *int
	LogLevel           *string
	LogFormat          *string
}

// Apply writes the overrides onto cfg. Any --source replaces every library of
// the file. Source patterns and paths resolve against the working directory.
func (l *Loader) Apply(cfg *domain.Config, o *Overrides) error {
	if o == nil {
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, domain.ErrInvalidConfig.Error())
	}

	if len(o.Sources) > 0 {
		libraries := make(map[string][]string, len(o.Sources))
		for _, value := range o.Sources {
			name, patterns, err := ParseSource(value)
			if err != nil {
				return err
			}
			paths, err := l.resolver.ResolveSources(patterns, cwd)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "library", name)
			}
			libraries[name] = append(libraries[name], paths...)
		}
		cfg.Libraries = libraries
	}

	setPath(&cfg.OutputDir, o.OutputDir, cwd)
	setPath(&cfg.BaseImage, o.BaseImage, cwd)
	setPath(&cfg.BootstrapArchive, o.BootstrapArchive, cwd)
	setPath(&cfg.Cache.Path, o.CachePath, cwd)
	set(&cfg.BootstrapNamespace, o.BootstrapNamespace)
	set(&cfg.Suffix, o.Suffix)
	set(&cfg.CacheContext, o.CacheContext)
	set(&cfg.LogLevel, o.LogLevel)
	set(&cfg.LogFormat, o.LogFormat)

	if o.SignedHandling != nil {
		cfg.SignedHandling = domain.SignedHandling(*o.SignedHandling)
	}
	if o.CacheOrder != nil {
		cfg.CacheOrder = domain.CacheOrder(*o.CacheOrder)
	}
	if o.CacheStrategy != nil {
		cfg.Cache.Strategy = domain.CacheStrategy(*o.CacheStrategy)
	}
	if o.FailOnUnresolvable != nil {
		cfg.FailOnUnresolvable = *o.FailOnUnresolvable
	}
	if o.Workers != nil {
		cfg.Workers = *o.Workers
	}

	return nil
}

func set(dst, value *string) {
	if value != nil {
		*dst = *value
	}
}

func setPath(dst, value *string, cwd string) {
	if value != nil {
		*dst = resolvePath(cwd, *value)
	}
}
