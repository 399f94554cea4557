package domain

import "sort"

// SignedHandling names the strategy applied to signed sources.
type SignedHandling string

const (
	// SignedSkip leaves validly signed sources untouched.
	SignedSkip SignedHandling = "skip"
	// SignedTransform transforms signed sources like any other.
	SignedTransform SignedHandling = "transform"
)

// CacheOrder decides whether the cache lookup runs before or after the signed-source check.
type CacheOrder string

const (
	// CacheFirst consults the cache before the source is loaded.
	CacheFirst CacheOrder = "cache-first"
	// SigningFirst loads the source and applies the signed-source strategy before the cache lookup.
	SigningFirst CacheOrder = "signing-first"
)

// CacheStrategy names a checksum cache backend.
type CacheStrategy string

const (
	// CacheSQLite stores records in a SQLite database shared by all workers.
	CacheSQLite CacheStrategy = "sqlite"
	// CacheManifest stores records in a manifest file, sharded per worker and merged afterwards.
	CacheManifest CacheStrategy = "manifest"
	// CacheNone disables caching.
	CacheNone CacheStrategy = "none"
)

// TransformerKind names a built-in transformer implementation.
type TransformerKind string

const (
	// TransformerReplace substitutes bytes.
	TransformerReplace TransformerKind = "replace"
	// TransformerCommand pipes entry content through an external command.
	TransformerCommand TransformerKind = "command"
)

// Injection is a local file contributed as an unattributed artifact.
type Injection struct {
	Entry string `yaml:"entry"`
	File  string `yaml:"file"`
}

// TransformerSpec declares one transformer in the chain.
type TransformerSpec struct {
	ID                   string            `yaml:"id"`
	Kind                 TransformerKind   `yaml:"kind"`
	Match                []string          `yaml:"match,omitempty"`
	Old                  string            `yaml:"old,omitempty"`
	New                  string            `yaml:"new,omitempty"`
	Command              []string          `yaml:"cmd,omitempty"`
	Environment          map[string]string `yaml:"environment,omitempty"`
	UnresolvableExitCode int               `yaml:"unresolvableExitCode,omitempty"`
	Inject               []Injection       `yaml:"inject,omitempty"`
}

// CacheConfig selects and locates the checksum cache.
type CacheConfig struct {
	Strategy CacheStrategy
	// Path is the database or manifest file. Empty means the default under the output directory.
	Path string
}

// Config is the resolved configuration of one run or one partition.
type Config struct {
	// ConfigFile is the file the configuration was loaded from, forwarded to workers.
	ConfigFile string
	OutputDir  string
	// Libraries maps an output label to the source paths that share it.
	Libraries map[string][]string
	// BaseImage is applied once: only one partition carries it.
	BaseImage          string
	BootstrapArchive   string
	BootstrapNamespace string
	Suffix             string
	SignedHandling     SignedHandling
	CacheOrder         CacheOrder
	Cache              CacheConfig
	// CacheContext pins the cache context fingerprint computed by the parent,
	// so every partition validates against the same value. Empty means compute it.
	CacheContext       string
	FailOnUnresolvable bool
	Workers            int
	LogLevel           string
	LogFormat          string
	Transformers       []TransformerSpec
}

// LibraryNames returns library names in sorted order.
func (c *Config) LibraryNames() []string {
	names := make([]string, 0, len(c.Libraries))
	for name := range c.Libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourceCount returns the number of source paths across all libraries.
func (c *Config) SourceCount() int {
	n := 0
	for _, paths := range c.Libraries {
		n += len(paths)
	}
	return n
}

// CloneScalars copies every field except Libraries, which is left empty.
func (c *Config) CloneScalars() *Config {
	out := *c
	out.Libraries = make(map[string][]string)
	out.Transformers = append([]TransformerSpec(nil), c.Transformers...)
	return &out
}

// ResolvedCachePath returns the configured cache path or the strategy default.
func (c *Config) ResolvedCachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	switch c.Cache.Strategy {
	case CacheManifest:
		return DefaultManifestPath(c.OutputDir)
	default:
		return DefaultDatabasePath(c.OutputDir)
	}
}
