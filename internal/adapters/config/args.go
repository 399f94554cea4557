package config

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
)

// Flag names shared by the CLI and worker argument files.
const (
	FlagConfig             = "config"
	FlagOutputDir          = "output-dir"
	FlagSource             = "source"
	FlagBaseImage          = "base-image"
	FlagBootstrapArchive   = "bootstrap-archive"
	FlagBootstrapNamespace = "bootstrap-namespace"
	FlagSuffix             = "suffix"
	FlagSignedHandling     = "signed-handling"
	FlagCacheOrder         = "cache-order"
	FlagCacheStrategy      = "cache-strategy"
	FlagCachePath          = "cache-path"
	FlagCacheContext       = "cache-context"
	FlagFailOnUnresolvable = "fail-on-unresolvable"
	FlagWorkers            = "workers"
	FlagLogLevel           = "log-level"
	FlagLogFormat          = "log-format"
)

// ToArgs serializes cfg as the arguments of one worker.
// Every scalar is written, empty or not, so the worker never falls back to a
// value of the configuration file that the partition cleared.
func ToArgs(cfg *domain.Config) []string {
	var args []string
	flag := func(name, value string) {
		args = append(args, "--"+name+"="+value)
	}

	if cfg.ConfigFile != "" {
		flag(FlagConfig, cfg.ConfigFile)
	}
	flag(FlagOutputDir, cfg.OutputDir)
	for _, name := range cfg.LibraryNames() {
		flag(FlagSource, FormatSource(name, cfg.Libraries[name]))
	}
	flag(FlagBaseImage, cfg.BaseImage)
	flag(FlagBootstrapArchive, cfg.BootstrapArchive)
	flag(FlagBootstrapNamespace, cfg.BootstrapNamespace)
	flag(FlagSuffix, cfg.Suffix)
	flag(FlagSignedHandling, string(cfg.SignedHandling))
	flag(FlagCacheOrder, string(cfg.CacheOrder))
	flag(FlagCacheStrategy, string(cfg.Cache.Strategy))
	flag(FlagCachePath, cfg.Cache.Path)
	flag(FlagCacheContext, cfg.CacheContext)
	flag(FlagFailOnUnresolvable, strconv.FormatBool(cfg.FailOnUnresolvable))
	flag(FlagLogLevel, cfg.LogLevel)
	flag(FlagLogFormat, cfg.LogFormat)

	return args
}

// FormatSource renders one library as <name>=<p1><sep><p2>, sep being the OS path list separator.
func FormatSource(name string, paths []string) string {
	return name + "=" + strings.Join(paths, string(filepath.ListSeparator))
}

// ParseSource splits a value written by FormatSource.
func ParseSource(value string) (string, []string, error) {
	name, list, ok := strings.Cut(value, "=")
	if !ok || name == "" {
		return "", nil, zerr.With(zerr.Wrap(zerr.New("expected <library>=<paths>"), domain.ErrInvalidConfig.Error()), "source", value)
	}

	var paths []string
	for _, p := range filepath.SplitList(list) {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return "", nil, zerr.With(zerr.Wrap(zerr.New("library has no paths"), domain.ErrInvalidConfig.Error()), "source", value)
	}
	return name, paths, nil
}

// WriteArgFile writes args to path, one per line.
func WriteArgFile(path string, args []string) error {
	var buf bytes.Buffer
	for _, arg := range args {
		if strings.ContainsAny(arg, "\r\n") {
			return zerr.With(zerr.Wrap(zerr.New("argument contains a line break"), domain.ErrArgFileWriteFailed.Error()), "argument", arg)
		}
		buf.WriteString(arg)
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArgFileWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArgFileWriteFailed.Error()), "path", path)
	}
	return nil
}

// ExpandArgFiles replaces every @path argument by the lines of that file.
// Blank lines are ignored. Files are not expanded recursively.
func ExpandArgFiles(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		path, ok := strings.CutPrefix(arg, "@")
		if !ok || path == "" {
			out = append(out, arg)
			continue
		}

		lines, err := readArgFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

func readArgFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by the caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArgFileReadFailed.Error()), "path", path)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArgFileReadFailed.Error()), "path", path)
	}
	return lines, nil
}
