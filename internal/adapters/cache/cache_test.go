package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/remold/internal/adapters/cache"
	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/remold/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func TestSQLiteCache_RecordsAndInvalidates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "state", "cache.db")
	src := filepath.Join(dir, "lib.jar")
	writeSource(t, src, "v1")

	c, err := cache.OpenSQLite(context.Background(), db, "ctx-a", fs.NewHasher())
	require.NoError(t, err)

	ok, err := c.Contains(src)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.CacheSource(src))
	require.NoError(t, c.CacheSource(src))
	ok, err = c.Contains(src)
	require.NoError(t, err)
	assert.True(t, ok)

	writeSource(t, src, "v2")
	ok, err = c.Contains(src)
	require.NoError(t, err)
	assert.False(t, ok, "changed content must not be cached")
	require.NoError(t, c.Close())
}

func TestSQLiteCache_Durable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "cache.db")
	src := filepath.Join(dir, "lib.jar")
	writeSource(t, src, "v1")

	c, err := cache.OpenSQLite(context.Background(), db, "ctx-a", fs.NewHasher())
	require.NoError(t, err)
	require.NoError(t, c.CacheSource(src))
	require.NoError(t, c.Close())

	reopened, err := cache.OpenSQLite(context.Background(), db, "ctx-a", fs.NewHasher())
	require.NoError(t, err)
	defer reopened.Close()

	ok, err := reopened.Contains(src)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteCache_ContextChangeResets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "cache.db")
	src := filepath.Join(dir, "lib.jar")
	writeSource(t, src, "v1")

	c, err := cache.OpenSQLite(context.Background(), db, "ctx-a", fs.NewHasher())
	require.NoError(t, err)
	require.NoError(t, c.CacheSource(src))
	require.NoError(t, c.Close())

	reset, err := cache.OpenSQLite(context.Background(), db, "ctx-b", fs.NewHasher())
	require.NoError(t, err)
	defer reset.Close()

	ok, err := reset.Contains(src)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteCache_DirectoriesAreNeverCached(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := cache.OpenSQLite(context.Background(), filepath.Join(dir, "cache.db"), "ctx", fs.NewHasher())
	require.NoError(t, err)
	defer c.Close()

	classes := filepath.Join(dir, "classes")
	require.NoError(t, os.MkdirAll(classes, domain.DirPerm))
	require.NoError(t, c.CacheSource(classes))

	ok, err := c.Contains(classes)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteCache_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := cache.OpenSQLite(context.Background(), filepath.Join(dir, "cache.db"), "ctx", fs.NewHasher())
	require.NoError(t, err)
	defer c.Close()

	err = c.CacheSource(filepath.Join(dir, "missing.jar"))
	require.ErrorContains(t, err, domain.ErrChecksumFailed.Error())
}

func TestManifestCache_ShardAndMerge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "cache-manifest.json")
	shards := filepath.Join(dir, "shards")
	a := filepath.Join(dir, "a.jar")
	b := filepath.Join(dir, "b.jar")
	writeSource(t, a, "a")
	writeSource(t, b, "b")

	w1, err := cache.OpenManifest(manifest, shards, "ctx", fs.NewHasher())
	require.NoError(t, err)
	w2, err := cache.OpenManifest(manifest, shards, "ctx", fs.NewHasher())
	require.NoError(t, err)

	require.NoError(t, w1.CacheSource(a))
	require.NoError(t, w2.CacheSource(b))
	require.NoError(t, w1.Close())
	require.NoError(t, w2.Close())

	ok, err := w1.Contains(a)
	require.NoError(t, err)
	assert.True(t, ok, "own records are visible before the merge")

	merged, err := cache.MergeManifest(manifest, shards, "ctx")
	require.NoError(t, err)
	assert.Equal(t, 2, merged)
	assert.NoDirExists(t, shards)

	next, err := cache.OpenManifest(manifest, shards, "ctx", fs.NewHasher())
	require.NoError(t, err)
	for _, src := range []string{a, b} {
		ok, err := next.Contains(src)
		require.NoError(t, err)
		assert.True(t, ok, src)
	}
}

func TestManifestCache_ContextChangeStartsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "cache-manifest.json")
	shards := filepath.Join(dir, "shards")
	a := filepath.Join(dir, "a.jar")
	writeSource(t, a, "a")

	w, err := cache.OpenManifest(manifest, shards, "old", fs.NewHasher())
	require.NoError(t, err)
	require.NoError(t, w.CacheSource(a))
	_, err = cache.MergeManifest(manifest, shards, "old")
	require.NoError(t, err)

	fresh, err := cache.OpenManifest(manifest, shards, "new", fs.NewHasher())
	require.NoError(t, err)
	ok, err := fresh.Contains(a)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMergeManifest_ContextMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "cache-manifest.json")
	shards := filepath.Join(dir, "shards")
	a := filepath.Join(dir, "a.jar")
	writeSource(t, a, "a")

	w, err := cache.OpenManifest(manifest, shards, "worker", fs.NewHasher())
	require.NoError(t, err)
	require.NoError(t, w.CacheSource(a))

	_, err = cache.MergeManifest(manifest, shards, "parent")
	require.ErrorIs(t, err, domain.ErrCacheContextMismatch)
}

func TestMergeManifest_NoShards(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "cache-manifest.json")

	merged, err := cache.MergeManifest(manifest, filepath.Join(dir, "shards"), "ctx")
	require.NoError(t, err)
	assert.Zero(t, merged)
	assert.FileExists(t, manifest)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := filepath.Join(dir, "base.zip")
	inject := filepath.Join(dir, "hook.bin")
	writeSource(t, base, "base-v1")
	writeSource(t, inject, "hook-v1")

	cfg := &domain.Config{
		BaseImage: base,
		Transformers: []domain.TransformerSpec{{
			ID: "t1", Kind: domain.TransformerReplace, Old: "a", New: "b",
			Inject: []domain.Injection{{Entry: "hook.bin", File: inject}},
		}},
	}
	hasher := fs.NewHasher()

	first, err := cache.Fingerprint(cfg, hasher, "1.0.0")
	require.NoError(t, err)
	again, err := cache.Fingerprint(cfg, hasher, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	version, err := cache.Fingerprint(cfg, hasher, "1.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, first, version)

	writeSource(t, inject, "hook-v2")
	injected, err := cache.Fingerprint(cfg, hasher, "1.0.0")
	require.NoError(t, err)
	assert.NotEqual(t, first, injected)

	writeSource(t, base, "base-v2")
	rebased, err := cache.Fingerprint(cfg, hasher, "1.0.0")
	require.NoError(t, err)
	assert.NotEqual(t, injected, rebased)

	cfg.Transformers[0].New = "c"
	changed, err := cache.Fingerprint(cfg, hasher, "1.0.0")
	require.NoError(t, err)
	assert.NotEqual(t, rebased, changed)
}

func TestFingerprint_OutputShapingFields(t *testing.T) {
	t.Parallel()

	base := func() *domain.Config {
		return &domain.Config{
			OutputDir:      "/out",
			Suffix:         "-remolded",
			SignedHandling: domain.SignedSkip,
			Cache:          domain.CacheConfig{Strategy: domain.CacheSQLite},
		}
	}
	hasher := fs.NewHasher()
	reference, err := cache.Fingerprint(base(), hasher, "dev")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(cfg *domain.Config)
	}{
		{name: "output dir", mutate: func(cfg *domain.Config) { cfg.OutputDir = "/elsewhere" }},
		{name: "suffix", mutate: func(cfg *domain.Config) { cfg.Suffix = "-v2" }},
		{name: "signed handling", mutate: func(cfg *domain.Config) { cfg.SignedHandling = domain.SignedTransform }},
		{name: "fail on unresolvable", mutate: func(cfg *domain.Config) { cfg.FailOnUnresolvable = true }},
		{name: "cache strategy", mutate: func(cfg *domain.Config) { cfg.Cache.Strategy = domain.CacheManifest }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base()
			tt.mutate(cfg)
			got, err := cache.Fingerprint(cfg, hasher, "dev")
			require.NoError(t, err)
			assert.NotEqual(t, reference, got)
		})
	}
}

func TestFingerprint_MissingBaseImage(t *testing.T) {
	t.Parallel()

	cfg := &domain.Config{BaseImage: filepath.Join(t.TempDir(), "missing.zip")}
	_, err := cache.Fingerprint(cfg, fs.NewHasher(), "dev")
	require.ErrorContains(t, err, domain.ErrChecksumFailed.Error())
}

func TestManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strategy domain.CacheStrategy
		want     any
	}{
		{name: "sqlite is the default", strategy: "", want: &cache.SQLiteCache{}},
		{name: "manifest", strategy: domain.CacheManifest, want: &cache.ManifestCache{}},
		{name: "none", strategy: domain.CacheNone, want: cache.NoneCache{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			log := mocks.NewMockLogger(ctrl)
			log.EXPECT().Debug(gomock.Any()).AnyTimes()

			m := cache.NewManager(fs.NewHasher(), log, "dev")
			cfg := &domain.Config{OutputDir: t.TempDir(), Cache: domain.CacheConfig{Strategy: tt.strategy}}

			require.NoError(t, m.Prepare(context.Background(), cfg))
			assert.NotEmpty(t, cfg.CacheContext)

			c, err := m.Open(context.Background(), cfg)
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
			require.NoError(t, c.Close())
			require.NoError(t, m.Merge(context.Background(), cfg))
		})
	}
}

func TestManager_ManifestRoundTrip(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	src := filepath.Join(dir, "lib.jar")
	writeSource(t, src, "lib")

	m := cache.NewManager(fs.NewHasher(), log, "dev")
	cfg := &domain.Config{OutputDir: filepath.Join(dir, "out"), Cache: domain.CacheConfig{Strategy: domain.CacheManifest}}
	require.NoError(t, m.Prepare(context.Background(), cfg))

	var c ports.ChecksumCache
	c, err := m.Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, c.CacheSource(src))
	require.NoError(t, c.Close())
	require.NoError(t, m.Merge(context.Background(), cfg))
	assert.FileExists(t, domain.DefaultManifestPath(cfg.OutputDir))

	reopened, err := m.Open(context.Background(), cfg)
	require.NoError(t, err)
	ok, err := reopened.Contains(src)
	require.NoError(t, err)
	assert.True(t, ok)
}
