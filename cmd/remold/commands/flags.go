package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/remold/internal/adapters/config"
)

func addConfigFlag(flags *pflag.FlagSet) {
	flags.StringP(config.FlagConfig, "c", "", "Configuration file (default remold.yaml in the working directory)")
}

// addOverrideFlags registers every flag that overrides a value of the configuration file.
func addOverrideFlags(flags *pflag.FlagSet) {
	flags.StringP(config.FlagOutputDir, "o", "", "Directory receiving the transformed packages")
	flags.StringArray(config.FlagSource, nil, "Library as name=path[:path...]; replaces the libraries of the file")
	flags.String(config.FlagBaseImage, "", "Base image archive, patched once under the base label")
	flags.String(config.FlagBootstrapArchive, "", "Archive holding the bootstrap dependencies of the base image")
	flags.String(config.FlagBootstrapNamespace, "", "Entry prefix of the bootstrap dependencies")
	flags.String(config.FlagSuffix, "", "Suffix appended to the stem of exported archives")
	flags.String(config.FlagSignedHandling, "", "Signed sources: skip or transform")
	flags.String(config.FlagCacheOrder, "", "Cache lookup order: cache-first or signing-first")
	flags.String(config.FlagCacheStrategy, "", "Checksum cache: sqlite, manifest or none")
	flags.String(config.FlagCachePath, "", "Checksum cache file")
	flags.String(config.FlagCacheContext, "", "Pinned cache context fingerprint")
	flags.Bool(config.FlagFailOnUnresolvable, false, "Abort on entries with unresolvable dependencies")
	flags.Int(config.FlagWorkers, 0, "Worker processes (default CPU count minus 2)")
	flags.String(config.FlagLogLevel, "", "Log level: debug, info, warn or error")
	flags.String(config.FlagLogFormat, "", "Log format: pretty or json")

	_ = flags.MarkHidden(config.FlagCacheContext)
}

// overridesFromFlags collects the flags the user set. Unset flags keep the file value.
func overridesFromFlags(cmd *cobra.Command) *config.Overrides {
	flags := cmd.Flags()
	o := &config.Overrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	o.OutputDir = str(config.FlagOutputDir)
	o.BaseImage = str(config.FlagBaseImage)
	o.BootstrapArchive = str(config.FlagBootstrapArchive)
	o.BootstrapNamespace = str(config.FlagBootstrapNamespace)
	o.Suffix = str(config.FlagSuffix)
	o.SignedHandling = str(config.FlagSignedHandling)
	o.CacheOrder = str(config.FlagCacheOrder)
	o.CacheStrategy = str(config.FlagCacheStrategy)
	o.CachePath = str(config.FlagCachePath)
	o.CacheContext = str(config.FlagCacheContext)
	o.LogLevel = str(config.FlagLogLevel)
	o.LogFormat = str(config.FlagLogFormat)

	if flags.Changed(config.FlagSource) {
		o.Sources, _ = flags.GetStringArray(config.FlagSource)
	}
	if flags.Changed(config.FlagFailOnUnresolvable) {
		v, _ := flags.GetBool(config.FlagFailOnUnresolvable)
		o.FailOnUnresolvable = &v
	}
	if flags.Changed(config.FlagWorkers) {
		v, _ := flags.GetInt(config.FlagWorkers)
		o.Workers = &v
	}

	return o
}
