package transform

import (
	"context"
	"maps"
	"os"
	"sync"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyInjector = (*Injector)(nil)

// Injector holds the files each transformer contributes when it modifies an
// entry, and the entries pending for the current source.
type Injector struct {
	mu      sync.Mutex
	byID    map[string]map[string][]byte
	pending map[string][]byte
}

// NewInjector reads every injected file up front.
func NewInjector(specs []domain.TransformerSpec) (*Injector, error) {
	inj := &Injector{
		byID:    make(map[string]map[string][]byte),
		pending: make(map[string][]byte),
	}
	for _, spec := range specs {
		for _, item := range spec.Inject {
			content, err := os.ReadFile(item.File) //nolint:gosec // Path comes from the configuration
			if err != nil {
				return nil, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "transformer", spec.ID), "file", item.File)
			}
			if inj.byID[spec.ID] == nil {
				inj.byID[spec.ID] = make(map[string][]byte)
			}
			inj.byID[spec.ID][domain.NormalizeEntryName(domain.KindArchive, item.Entry)] = content
		}
	}
	return inj, nil
}

// Trigger queues the files of transformer id.
func (i *Injector) Trigger(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	maps.Copy(i.pending, i.byID[id])
}

// Drain returns the queued entries and forgets them.
func (i *Injector) Drain() map[string][]byte {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.pending
	i.pending = make(map[string][]byte)
	return out
}

// injecting triggers the injector whenever the wrapped transformer modifies an entry.
type injecting struct {
	ports.Transformer
	injector *Injector
}

func (t injecting) Apply(ctx context.Context, entryName string, content []byte) ([]byte, error) {
	out, err := t.Transformer.Apply(ctx, entryName, content)
	if err == nil && out != nil {
		t.injector.Trigger(t.ID())
	}
	return out, err
}
