package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/remold/internal/adapters/archive"
	"go.trai.ch/remold/internal/adapters/export"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type entry struct {
	name    string
	content string
}

func buildZip(t *testing.T, path string, entries ...entry) {
	t.Helper()

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), domain.PrivateFilePerm))
}

func zipNames(t *testing.T, path string) []string {
	t.Helper()

	rc, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer rc.Close()

	names := make([]string, 0, len(rc.File))
	for _, f := range rc.File {
		names = append(names, f.Name)
	}
	return names
}

func artifact(id, content string) domain.Artifact {
	return domain.NewArtifact(id, []byte(content))
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return log
}

func TestArchive_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "in", "lib.jar")
	buildZip(t, srcPath,
		entry{"META-INF/MANIFEST.MF", "Manifest-Version: 1.0\n"},
		entry{"a/", ""},
		entry{"a/A.class", "A0"},
		entry{"a/B.class", "B0"},
		entry{"b/C.class", "C0"},
		entry{"b/D.class", "D0"},
		entry{"res.txt", "R0"},
	)
	contents, err := archive.Read(srcPath)
	require.NoError(t, err)
	src := &domain.SourceUnit{
		Path: srcPath, Kind: domain.KindArchive,
		Entries: contents.Entries, Order: contents.Order, Export: domain.ExportArchive,
	}
	require.Len(t, src.Entries, 6)

	cfg := &domain.Config{OutputDir: filepath.Join(dir, "out"), Suffix: "-remold"}
	artifacts := map[string]domain.Artifact{
		"a/B.class": artifact("t1", "B1"),
		"b/D.class": artifact("t2", "D1"),
	}

	out, err := export.NewArchive(quietLogger(t)).Export(context.Background(), src, artifacts, cfg, "app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "app", "lib-remold.jar"), out)

	got, err := archive.Read(out)
	require.NoError(t, err)
	assert.ElementsMatch(t, contents.Order, got.Order)
	assert.Equal(t, []byte("B1"), got.Entries["a/B.class"])
	assert.Equal(t, []byte("D1"), got.Entries["b/D.class"])
	for _, name := range []string{"META-INF/MANIFEST.MF", "a/A.class", "b/C.class", "res.txt"} {
		assert.Equal(t, contents.Entries[name], got.Entries[name], name)
	}
	assert.Contains(t, zipNames(t, out), "a/")
}

func TestArchive_NoArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := &domain.SourceUnit{Path: filepath.Join(dir, "lib.jar"), Kind: domain.KindArchive}

	out, err := export.NewArchive(quietLogger(t)).Export(context.Background(), src, nil, &domain.Config{OutputDir: dir}, "app")
	require.NoError(t, err)
	assert.Empty(t, out)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArchive_InjectedEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "lib.jar")
	buildZip(t, srcPath, entry{"A.class", "A0"})
	src := &domain.SourceUnit{Path: srcPath, Kind: domain.KindArchive, Entries: map[string][]byte{"A.class": []byte("A0")}}

	artifacts := map[string]domain.Artifact{
		"A.class":       artifact("t1", "A1"),
		"runtime/R.txt": domain.NewArtifact("", []byte("R")),
	}
	out, err := export.NewArchive(quietLogger(t)).Export(context.Background(), src, artifacts, &domain.Config{OutputDir: filepath.Join(dir, "out")}, "app")
	require.NoError(t, err)

	got, err := archive.Read(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("A1"), got.Entries["A.class"])
	assert.Equal(t, []byte("R"), got.Entries["runtime/R.txt"])
}

func TestArchive_RefusesToOverwriteSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "app", "lib.jar")
	buildZip(t, srcPath, entry{"A.class", "A0"})
	src := &domain.SourceUnit{Path: srcPath, Kind: domain.KindArchive}

	_, err := export.NewArchive(quietLogger(t)).Export(
		context.Background(), src,
		map[string]domain.Artifact{"A.class": artifact("t1", "A1")},
		&domain.Config{OutputDir: dir}, "app",
	)
	require.ErrorContains(t, err, "output would overwrite source")
}

func TestArchive_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := &domain.SourceUnit{Path: filepath.Join(dir, "missing.jar"), Kind: domain.KindArchive}

	_, err := export.NewArchive(quietLogger(t)).Export(
		context.Background(), src,
		map[string]domain.Artifact{"A.class": artifact("t1", "A1")},
		&domain.Config{OutputDir: filepath.Join(dir, "out")}, "app",
	)
	require.ErrorContains(t, err, domain.ErrExportFailed.Error())
}

func TestDirectory_Export(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &domain.Config{OutputDir: dir}
	artifacts := map[string]domain.Artifact{
		"pkg/A.class": artifact("t1", "A1"),
		"B.class":     artifact("t2", "B1"),
	}

	out, err := export.NewDirectory().Export(context.Background(), &domain.SourceUnit{Kind: domain.KindDirectory}, artifacts, cfg, "classes")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "classes"), out)

	content, err := os.ReadFile(filepath.Join(dir, "classes", "pkg", "A.class"))
	require.NoError(t, err)
	assert.Equal(t, "A1", string(content))
	content, err = os.ReadFile(filepath.Join(dir, "classes", "B.class"))
	require.NoError(t, err)
	assert.Equal(t, "B1", string(content))
}

func TestDirectory_RejectsEscapingEntry(t *testing.T) {
	t.Parallel()

	_, err := export.NewDirectory().Export(
		context.Background(), &domain.SourceUnit{},
		map[string]domain.Artifact{"../evil": artifact("t1", "x")},
		&domain.Config{OutputDir: t.TempDir()}, "classes",
	)
	require.ErrorContains(t, err, "entry escapes output directory")
}

func TestDirectory_NoArtifacts(t *testing.T) {
	t.Parallel()

	out, err := export.NewDirectory().Export(context.Background(), &domain.SourceUnit{}, map[string]domain.Artifact{}, &domain.Config{OutputDir: t.TempDir()}, "x")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPatchedBaseImage_Export(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	basePath := filepath.Join(dir, "runtime.zip")
	buildZip(t, basePath,
		entry{"classes/java/lang/Thread", "T0"},
		entry{"classes/java/lang/Object", "O0"},
		entry{"remold/bootstrap/Old", "stale"},
	)
	auxPath := filepath.Join(dir, "agent.jar")
	buildZip(t, auxPath,
		entry{"remold/bootstrap/Hook", "H"},
		entry{"remold/bootstrap/Old", "fresh"},
		entry{"remold/other/Ignored", "I"},
	)

	src := &domain.SourceUnit{Path: basePath, Kind: domain.KindBaseImage, Export: domain.ExportPatchedBaseImage}
	cfg := &domain.Config{
		OutputDir:        filepath.Join(dir, "out"),
		BaseImage:        basePath,
		BootstrapArchive: auxPath,
		Suffix:           "-patched",
	}
	artifacts := map[string]domain.Artifact{
		"java/lang/Thread": artifact("t1", "T1"),
	}

	out, err := export.NewPatchedBaseImage(quietLogger(t)).Export(context.Background(), src, artifacts, cfg, "ignored")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", domain.BaseImageLabel, "runtime-patched.zip"), out)

	got, err := archive.Read(out)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"classes/java/lang/Object": []byte("O0"),
		"classes/java/lang/Thread": []byte("T1"),
		"remold/bootstrap/Hook":    []byte("H"),
		"remold/bootstrap/Old":     []byte("fresh"),
	}, got.Entries)
}

func TestPatchedBaseImage_MissingBootstrapArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	basePath := filepath.Join(dir, "runtime.zip")
	buildZip(t, basePath, entry{"classes/A", "A0"})

	_, err := export.NewPatchedBaseImage(quietLogger(t)).Export(
		context.Background(),
		&domain.SourceUnit{Path: basePath, Kind: domain.KindBaseImage},
		map[string]domain.Artifact{"A": artifact("t1", "A1")},
		&domain.Config{OutputDir: filepath.Join(dir, "out"), BootstrapArchive: filepath.Join(dir, "missing.jar")},
		domain.BaseImageLabel,
	)
	require.ErrorContains(t, err, domain.ErrBootstrapExtractFailed.Error())
}

func TestNewSet(t *testing.T) {
	t.Parallel()

	set := export.NewSet(quietLogger(t))
	assert.Len(t, set, 3)
	assert.IsType(t, &export.Directory{}, set[domain.ExportDirectory])
	assert.IsType(t, &export.Archive{}, set[domain.ExportArchive])
	assert.IsType(t, &export.PatchedBaseImage{}, set[domain.ExportPatchedBaseImage])
}
