package config

// Remoldfile represents the structure of the remold.yaml configuration file.
type Remoldfile struct {
	Version            string              `yaml:"version"`
	OutputDir          string              `yaml:"outputDir"`
	Libraries          map[string][]string `yaml:"libraries"`
	BaseImage          string              `yaml:"baseImage"`
	Bootstrap          BootstrapDTO        `yaml:"bootstrap"`
	Suffix             string              `yaml:"suffix"`
	SignedHandling     string              `yaml:"signedHandling"`
	CacheOrder         string              `yaml:"cacheOrder"`
	Cache              CacheDTO            `yaml:"cache"`
	FailOnUnresolvable bool                `yaml:"failOnUnresolvable"`
	Workers            int                 `yaml:"workers"`
	Log                LogDTO              `yaml:"log"`
	Transformers       []TransformerDTO    `yaml:"transformers"`
}

// BootstrapDTO locates the auxiliary archive copied into the patched base image.
type BootstrapDTO struct {
	Archive   string `yaml:"archive"`
	Namespace string `yaml:"namespace"`
}

// CacheDTO selects the checksum cache.
type CacheDTO struct {
	Strategy string `yaml:"strategy"`
	Path     string `yaml:"path"`
}

// LogDTO configures logging.
type LogDTO struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TransformerDTO represents a transformer definition in the configuration.
type TransformerDTO struct {
	ID                   string            `yaml:"id"`
	Kind                 string            `yaml:"kind"`
	Match                []string          `yaml:"match"`
	Old                  string            `yaml:"old"`
	New                  string            `yaml:"new"`
	Cmd                  []string          `yaml:"cmd"`
	Environment          map[string]string `yaml:"environment"`
	UnresolvableExitCode int               `yaml:"unresolvableExitCode"`
	Inject               []InjectDTO       `yaml:"inject"`
}

// InjectDTO is a local file contributed to every source a transformer modified.
type InjectDTO struct {
	Entry string `yaml:"entry"`
	File  string `yaml:"file"`
}
