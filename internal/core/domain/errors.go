package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a configuration value is missing or out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrNoSources is returned when a run is started without any source paths or base image.
	ErrNoSources = zerr.New("no sources configured")

	// ErrArgFileReadFailed is returned when an @argument file cannot be read.
	ErrArgFileReadFailed = zerr.New("failed to read argument file")

	// ErrArgFileWriteFailed is returned when a worker argument file cannot be written.
	ErrArgFileWriteFailed = zerr.New("failed to write argument file")

	// ErrLoaderNotFound is returned when no loader handles a source kind.
	ErrLoaderNotFound = zerr.New("no loader for source")

	// ErrSourceLoadFailed is returned when a source cannot be loaded.
	ErrSourceLoadFailed = zerr.New("failed to load source")

	// ErrUnresolvableDependency is the recoverable failure a transformer signals when
	// an entry references something that cannot be resolved.
	ErrUnresolvableDependency = zerr.New("unresolvable dependency")

	// ErrTransformFailed is returned when a transformer fails fatally.
	ErrTransformFailed = zerr.New("transformation failed")

	// ErrExporterNotFound is returned when no exporter serves a source's export kind.
	ErrExporterNotFound = zerr.New("no exporter for source")

	// ErrExportFailed is returned when a package cannot be written.
	ErrExportFailed = zerr.New("failed to export source")

	// ErrDuplicateEntry is returned when the same archive entry is written twice.
	ErrDuplicateEntry = zerr.New("duplicate archive entry")

	// ErrBootstrapExtractFailed is returned when bootstrap entries cannot be read from the auxiliary archive.
	ErrBootstrapExtractFailed = zerr.New("failed to extract bootstrap dependencies")

	// ErrChecksumFailed is returned when a source checksum cannot be computed.
	ErrChecksumFailed = zerr.New("failed to compute checksum")

	// ErrCacheOpenFailed is returned when the checksum cache cannot be opened.
	ErrCacheOpenFailed = zerr.New("failed to open checksum cache")

	// ErrCacheReadFailed is returned when the checksum cache cannot be queried.
	ErrCacheReadFailed = zerr.New("failed to read checksum cache")

	// ErrCacheWriteFailed is returned when the checksum cache cannot be updated.
	ErrCacheWriteFailed = zerr.New("failed to write checksum cache")

	// ErrCacheContextMismatch is returned when a cache shard was produced under a different context.
	ErrCacheContextMismatch = zerr.New("cache context mismatch, perform a clean run")

	// ErrWorkerStartFailed is returned when a worker process cannot be started.
	ErrWorkerStartFailed = zerr.New("failed to start worker")

	// ErrWorkerFailed is returned when a worker process exits abnormally.
	ErrWorkerFailed = zerr.New("worker failed")

	// ErrRunLocked is returned when another run holds the output directory.
	ErrRunLocked = zerr.New("output directory is locked by another run")

	// ErrWorkersAborted is returned when at least one worker failed and the run was aborted.
	ErrWorkersAborted = zerr.New("run aborted")
)
