package transform

import (
	"go.trai.ch/remold/internal/adapters/shell"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TransformerFactory = (*Factory)(nil)

// Factory builds transformer chains from their definitions.
type Factory struct {
	runner *shell.Runner
}

// NewFactory creates a new Factory.
func NewFactory(runner *shell.Runner) *Factory {
	return &Factory{runner: runner}
}

// Build returns the chain in definition order and the injector they share.
func (f *Factory) Build(specs []domain.TransformerSpec) ([]ports.Transformer, ports.DependencyInjector, error) {
	injector, err := NewInjector(specs)
	if err != nil {
		return nil, nil, err
	}

	chain := make([]ports.Transformer, 0, len(specs))
	for _, spec := range specs {
		matcher, err := NewMatcher(spec.Match)
		if err != nil {
			return nil, nil, zerr.With(err, "transformer", spec.ID)
		}

		var t ports.Transformer
		switch spec.Kind {
		case domain.TransformerReplace:
			t = NewReplace(spec.ID, matcher, spec.Old, spec.New)
		case domain.TransformerCommand:
			t = NewCommand(spec, matcher, f.runner)
		default:
			return nil, nil, zerr.With(zerr.Wrap(zerr.New("unknown transformer kind"), domain.ErrInvalidConfig.Error()), "kind", string(spec.Kind))
		}

		if len(spec.Inject) > 0 {
			t = injecting{Transformer: t, injector: injector}
		}
		chain = append(chain, t)
	}

	return chain, injector, nil
}
