package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/remold/internal/adapters/config"
	"go.trai.ch/remold/internal/core/domain"
)

func validConfig() *domain.Config {
	cfg := config.Defaults()
	cfg.OutputDir = "/out"
	cfg.Libraries = map[string][]string{"app": {"/a.jar"}}
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		sources bool
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Config) {}, sources: true},
		{name: "missing output dir", mutate: func(c *domain.Config) { c.OutputDir = "" }, wantErr: "outputDir is required"},
		{name: "unknown signed handling", mutate: func(c *domain.Config) { c.SignedHandling = "sign" }, wantErr: "unknown signed handling"},
		{name: "unknown cache order", mutate: func(c *domain.Config) { c.CacheOrder = "never" }, wantErr: "unknown cache order"},
		{name: "unknown cache strategy", mutate: func(c *domain.Config) { c.Cache.Strategy = "redis" }, wantErr: "unknown cache strategy"},
		{name: "negative workers", mutate: func(c *domain.Config) { c.Workers = -1 }, wantErr: "workers must not be negative"},
		{name: "no sources", mutate: func(c *domain.Config) { c.Libraries = nil }, sources: true, wantErr: domain.ErrNoSources.Error()},
		{name: "no sources allowed for clean", mutate: func(c *domain.Config) { c.Libraries = nil }},
		{name: "base image only", mutate: func(c *domain.Config) { c.Libraries = nil; c.BaseImage = "/base.zip" }, sources: true},
		{name: "bootstrap without base image", mutate: func(c *domain.Config) { c.BootstrapArchive = "/agent.jar" }, wantErr: "bootstrap archive requires a base image"},
		{
			name: "reserved library name",
			mutate: func(c *domain.Config) {
				c.BaseImage = "/base.zip"
				c.Libraries["base"] = []string{"/x.jar"}
			},
			wantErr: "library name is reserved",
		},
		{
			name:    "transformer without id",
			mutate:  func(c *domain.Config) { c.Transformers = []domain.TransformerSpec{{Kind: domain.TransformerReplace, Old: "a"}} },
			wantErr: "transformer id is required",
		},
		{
			name: "duplicate transformer id",
			mutate: func(c *domain.Config) {
				c.Transformers = []domain.TransformerSpec{
					{ID: "t", Kind: domain.TransformerReplace, Old: "a"},
					{ID: "t", Kind: domain.TransformerReplace, Old: "b"},
				}
			},
			wantErr: "duplicate transformer id",
		},
		{
			name:    "replace without old",
			mutate:  func(c *domain.Config) { c.Transformers = []domain.TransformerSpec{{ID: "t", Kind: domain.TransformerReplace}} },
			wantErr: "replace transformer requires old",
		},
		{
			name:    "command without cmd",
			mutate:  func(c *domain.Config) { c.Transformers = []domain.TransformerSpec{{ID: "t", Kind: domain.TransformerCommand}} },
			wantErr: "command transformer requires cmd",
		},
		{
			name:    "unknown kind",
			mutate:  func(c *domain.Config) { c.Transformers = []domain.TransformerSpec{{ID: "t", Kind: "rewrite"}} },
			wantErr: "unknown transformer kind",
		},
		{
			name: "bad match pattern",
			mutate: func(c *domain.Config) {
				c.Transformers = []domain.TransformerSpec{{ID: "t", Kind: domain.TransformerReplace, Old: "a", Match: []string{"[x"}}}
			},
			wantErr: "invalid match pattern",
		},
		{
			name: "incomplete inject",
			mutate: func(c *domain.Config) {
				c.Transformers = []domain.TransformerSpec{{ID: "t", Kind: domain.TransformerReplace, Old: "a", Inject: []domain.Injection{{Entry: "x"}}}}
			},
			wantErr: "inject requires entry and file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			err := config.Validate(cfg, tt.sources)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_NoSourcesIsClassified(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Libraries = nil
	require.ErrorIs(t, config.Validate(cfg, true), domain.ErrNoSources)
}
