package orchestrator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/remold/internal/core/ports/mocks"
	"go.trai.ch/remold/internal/engine/orchestrator"
	"go.trai.ch/remold/internal/engine/registry"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type orchestratorMocks struct {
	exporter *mocks.MockExporter
	cache    *mocks.MockChecksumCache
	logger   *mocks.MockLogger
}

func setupOrchestrator(
	t *testing.T,
	reg *registry.Registry,
	opts orchestrator.Options,
) (*orchestrator.Orchestrator, orchestratorMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := orchestratorMocks{
		exporter: mocks.NewMockExporter(ctrl),
		cache:    mocks.NewMockChecksumCache(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	exporters := map[domain.ExportKind]ports.Exporter{domain.ExportArchive: m.exporter}
	return orchestrator.New(reg, exporters, m.cache, m.logger, opts), m
}

func newTransformer(ctrl *gomock.Controller, id string) *mocks.MockTransformer {
	tr := mocks.NewMockTransformer(ctrl)
	tr.EXPECT().ID().Return(id).AnyTimes()
	return tr
}

func archiveSource(entries map[string]string, order ...string) *domain.SourceUnit {
	src := &domain.SourceUnit{
		Path:    "/in/lib.jar",
		Kind:    domain.KindArchive,
		Entries: make(map[string][]byte, len(entries)),
		Order:   order,
		Export:  domain.ExportArchive,
	}
	for k, v := range entries {
		src.Entries[k] = []byte(v)
	}
	return src
}

func TestOrchestrator_NoOp(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t1.EXPECT().Apply(gomock.Any(), "a/A", []byte("a")).Return(nil, nil)

	reg := registry.New()
	o, m := setupOrchestrator(t, reg, orchestrator.Options{Transformers: []ports.Transformer{t1}})

	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Len(0), gomock.Any(), "lib").Return("", nil)
	m.cache.EXPECT().CacheSource("/in/lib.jar").Return(nil).Times(1)

	out, err := o.Process(context.Background(), archiveSource(map[string]string{"a/A": "a"}, "a/A"), &domain.Config{}, "lib")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoOp, out.Status())
	assert.False(t, out.HasFailed())
	assert.Empty(t, out.ArtifactPath())
}

func TestOrchestrator_Completed(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t1.EXPECT().Apply(gomock.Any(), "a/A", []byte("a")).Return([]byte("A!"), nil)
	t1.EXPECT().Apply(gomock.Any(), "a/B", []byte("b")).Return(nil, nil)

	reg := registry.New()
	o, m := setupOrchestrator(t, reg, orchestrator.Options{Transformers: []ports.Transformer{t1}})

	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "lib").DoAndReturn(
		func(_ context.Context, _ *domain.SourceUnit, artifacts map[string]domain.Artifact, _ *domain.Config, _ string) (string, error) {
			require.Len(t, artifacts, 1)
			assert.Equal(t, []byte("A!"), artifacts["a/A"].Content)
			assert.Equal(t, []string{"t1"}, artifacts["a/A"].TransformerIDs())
			return "/out/lib/lib.jar", nil
		},
	)
	m.cache.EXPECT().CacheSource("/in/lib.jar").Return(nil).Times(1)

	src := archiveSource(map[string]string{"a/A": "a", "a/B": "b"}, "a/A", "a/B")
	out, err := o.Process(context.Background(), src, &domain.Config{}, "lib")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, out.Status())
	assert.Equal(t, "/out/lib/lib.jar", out.ArtifactPath())
	assert.Equal(t, 0, reg.Len(), "registry must be cleared after the pass")
}

func TestOrchestrator_ChainFeedsLatestBytes(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t2 := newTransformer(ctrl, "t2")
	gomock.InOrder(
		t1.EXPECT().Apply(gomock.Any(), "A", []byte("v0")).Return([]byte("v1"), nil),
		t2.EXPECT().Apply(gomock.Any(), "A", []byte("v1")).Return([]byte("v2"), nil),
	)

	o, m := setupOrchestrator(t, registry.New(), orchestrator.Options{Transformers: []ports.Transformer{t1, t2}})

	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *domain.SourceUnit, artifacts map[string]domain.Artifact, _ *domain.Config, _ string) (string, error) {
			assert.Equal(t, []byte("v2"), artifacts["A"].Content)
			assert.Equal(t, []string{"t1", "t2"}, artifacts["A"].TransformerIDs())
			return "out", nil
		},
	)
	m.cache.EXPECT().CacheSource(gomock.Any()).Return(nil)

	_, err := o.Process(context.Background(), archiveSource(map[string]string{"A": "v0"}), &domain.Config{}, "lib")
	require.NoError(t, err)
}

func TestOrchestrator_ToleratedUnresolvableDependency(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t2 := newTransformer(ctrl, "t2")

	unresolvable := zerr.Wrap(domain.ErrUnresolvableDependency, "missing type x/Y")
	t1.EXPECT().Apply(gomock.Any(), "A", gomock.Any()).Return(nil, unresolvable)
	t1.EXPECT().Apply(gomock.Any(), "B", gomock.Any()).Return([]byte("b1"), nil)
	// t2 never sees A after t1 gave up on it.
	t2.EXPECT().Apply(gomock.Any(), "B", []byte("b1")).Return(nil, nil)

	o, m := setupOrchestrator(t, registry.New(), orchestrator.Options{
		Transformers:         []ports.Transformer{t1, t2},
		TolerateUnresolvable: true,
	})
	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Len(1), gomock.Any(), gomock.Any()).Return("out", nil)
	m.cache.EXPECT().CacheSource(gomock.Any()).Times(0)

	src := archiveSource(map[string]string{"A": "a", "B": "b"}, "A", "B")
	out, err := o.Process(context.Background(), src, &domain.Config{}, "lib")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWarningOccurred, out.Status())
	assert.True(t, out.HasFailed())
	assert.Equal(t, []string{"A"}, out.FailedEntries())
}

func TestOrchestrator_UnresolvableWithoutToleranceIsFatal(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t1.EXPECT().Apply(gomock.Any(), "A", gomock.Any()).Return(nil, domain.ErrUnresolvableDependency)

	reg := registry.New()
	o, m := setupOrchestrator(t, reg, orchestrator.Options{Transformers: []ports.Transformer{t1}})
	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.cache.EXPECT().CacheSource(gomock.Any()).Times(0)

	_, err := o.Process(context.Background(), archiveSource(map[string]string{"A": "a", "B": "b"}, "A", "B"), &domain.Config{}, "lib")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrUnresolvableDependency)
	assert.Equal(t, 0, reg.Len())
}

func TestOrchestrator_FatalTransformerError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	boom := errors.New("boom")
	t1.EXPECT().Apply(gomock.Any(), "A", gomock.Any()).Return(nil, boom)

	o, m := setupOrchestrator(t, registry.New(), orchestrator.Options{
		Transformers:         []ports.Transformer{t1},
		TolerateUnresolvable: true,
	})
	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := o.Process(context.Background(), archiveSource(map[string]string{"A": "a"}), &domain.Config{}, "lib")
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, domain.ErrTransformFailed.Error())
}

func TestOrchestrator_InjectedDependencies(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t1.EXPECT().Apply(gomock.Any(), "A", gomock.Any()).Return([]byte("A2"), nil)

	injector := mocks.NewMockDependencyInjector(ctrl)
	injector.EXPECT().Drain().Return(map[string][]byte{"support/Helper": []byte("h")})

	o, m := setupOrchestrator(t, registry.New(), orchestrator.Options{
		Transformers: []ports.Transformer{t1},
		Injector:     injector,
	})
	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *domain.SourceUnit, artifacts map[string]domain.Artifact, _ *domain.Config, _ string) (string, error) {
			require.Len(t, artifacts, 2)
			assert.False(t, artifacts["support/Helper"].Attributed())
			return "out", nil
		},
	)
	m.cache.EXPECT().CacheSource(gomock.Any()).Return(nil)

	out, err := o.Process(context.Background(), archiveSource(map[string]string{"A": "a"}), &domain.Config{}, "lib")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, out.Status())
}

func TestOrchestrator_CacheFailureIsFatal(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t1.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("x"), nil)

	o, m := setupOrchestrator(t, registry.New(), orchestrator.Options{Transformers: []ports.Transformer{t1}})
	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("out", nil)
	diskFull := errors.New("disk full")
	m.cache.EXPECT().CacheSource(gomock.Any()).Return(diskFull)

	_, err := o.Process(context.Background(), archiveSource(map[string]string{"A": "a"}), &domain.Config{}, "lib")
	require.ErrorIs(t, err, diskFull)
	assert.ErrorContains(t, err, domain.ErrCacheWriteFailed.Error())
}

func TestOrchestrator_ExportFailureIsFatal(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t1.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("x"), nil)

	o, m := setupOrchestrator(t, registry.New(), orchestrator.Options{Transformers: []ports.Transformer{t1}})
	exportErr := zerr.Wrap(errors.New("no space"), domain.ErrExportFailed.Error())
	m.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", exportErr)
	m.cache.EXPECT().CacheSource(gomock.Any()).Times(0)

	_, err := o.Process(context.Background(), archiveSource(map[string]string{"A": "a"}), &domain.Config{}, "lib")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrExportFailed.Error())
}

func TestOrchestrator_MissingExporter(t *testing.T) {
	t.Parallel()
	o, _ := setupOrchestrator(t, registry.New(), orchestrator.Options{})

	src := archiveSource(map[string]string{"A": "a"})
	src.Export = domain.ExportDirectory

	_, err := o.Process(context.Background(), src, &domain.Config{}, "lib")
	require.ErrorIs(t, err, domain.ErrExporterNotFound)
}

func TestOrchestrator_NormalizesBaseImageEntries(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t1 := newTransformer(ctrl, "t1")
	t1.EXPECT().Apply(gomock.Any(), "java/lang/Thread", gomock.Any()).Return([]byte("patched"), nil)

	reg := registry.New()
	ctrlExp := gomock.NewController(t)
	exporter := mocks.NewMockExporter(ctrlExp)
	cache := mocks.NewMockChecksumCache(ctrlExp)
	logger := mocks.NewMockLogger(ctrlExp)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	o := orchestrator.New(reg, map[domain.ExportKind]ports.Exporter{domain.ExportPatchedBaseImage: exporter}, cache, logger,
		orchestrator.Options{Transformers: []ports.Transformer{t1}})

	exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), domain.BaseImageLabel).DoAndReturn(
		func(_ context.Context, _ *domain.SourceUnit, artifacts map[string]domain.Artifact, _ *domain.Config, _ string) (string, error) {
			_, ok := artifacts["java/lang/Thread"]
			assert.True(t, ok)
			return "out", nil
		},
	)
	cache.EXPECT().CacheSource(gomock.Any()).Return(nil)

	src := &domain.SourceUnit{
		Path:    "/jdk/base.zip",
		Kind:    domain.KindBaseImage,
		Entries: map[string][]byte{"classes/java/lang/Thread": []byte("t")},
		Export:  domain.ExportPatchedBaseImage,
	}
	_, err := o.Process(context.Background(), src, &domain.Config{}, domain.BaseImageLabel)
	require.NoError(t, err)
}
