package domain

import "path/filepath"

const (
	// StateDirName is the internal state directory created inside the output directory.
	StateDirName = ".remold"

	// TmpDirName holds transient files of one run.
	TmpDirName = "tmp"

	// WorkerArgsDirName holds per-partition argument files.
	WorkerArgsDirName = "worker-args"

	// CacheShardsDirName holds manifest cache shards written by workers.
	CacheShardsDirName = "cache-shards"

	// DatabaseFileName is the SQLite checksum cache.
	DatabaseFileName = "cache.db"

	// ManifestFileName is the merged manifest checksum cache.
	ManifestFileName = "cache-manifest.json"

	// LockFileName guards the output directory against concurrent runs.
	LockFileName = "run.lock"

	// ConfigFileName is the default configuration file.
	ConfigFileName = "remold.yaml"

	// BaseImageLabel is the output label of the patched base image.
	BaseImageLabel = "base"

	// BaseImageClassesPrefix is stripped from base image entry names.
	BaseImageClassesPrefix = "classes/"

	// MetadataNamespace is the archive namespace where duplicate entries are tolerated.
	MetadataNamespace = "META-INF/"

	// DefaultBootstrapNamespace is the auxiliary archive namespace copied into the patched base image.
	DefaultBootstrapNamespace = "remold/bootstrap"

	// ReservedProcessors is subtracted from the CPU count when sizing the worker pool.
	ReservedProcessors = 2

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// StatePath returns the state directory under outputDir.
func StatePath(outputDir string) string {
	return filepath.Join(outputDir, StateDirName)
}

// LockPath returns the run lock file under outputDir.
func LockPath(outputDir string) string {
	return filepath.Join(outputDir, StateDirName, LockFileName)
}

// WorkerArgsPath returns the directory holding worker argument files.
// It joins .remold, tmp and worker-args.
func WorkerArgsPath(outputDir string) string {
	return filepath.Join(outputDir, StateDirName, TmpDirName, WorkerArgsDirName)
}

// CacheShardsPath returns the directory holding manifest cache shards.
func CacheShardsPath(outputDir string) string {
	return filepath.Join(outputDir, StateDirName, TmpDirName, CacheShardsDirName)
}

// DefaultDatabasePath returns the default SQLite cache location.
func DefaultDatabasePath(outputDir string) string {
	return filepath.Join(outputDir, StateDirName, DatabaseFileName)
}

// DefaultManifestPath returns the default manifest cache location.
func DefaultManifestPath(outputDir string) string {
	return filepath.Join(outputDir, StateDirName, ManifestFileName)
}
