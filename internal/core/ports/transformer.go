package ports

import (
	"context"

	"go.trai.ch/remold/internal/core/domain"
)

// Transformer rewrites the content of a single entry.
//
//go:generate mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks
type Transformer interface {
	// ID returns the stable identifier recorded on artifacts this transformer writes.
	ID() string

	// Apply transforms content of the entry with the given normalized name.
	// It returns nil bytes when the entry is left unchanged.
	// Errors matching domain.ErrUnresolvableDependency are recoverable; any other error is fatal.
	Apply(ctx context.Context, entryName string, content []byte) ([]byte, error)
}

// DependencyInjector collects entries that transformers require alongside their output.
type DependencyInjector interface {
	// Drain returns the pending injected entries and forgets them.
	Drain() map[string][]byte
}

// TransformerFactory builds the transformer chain of one pipeline.
type TransformerFactory interface {
	// Build returns the chain in definition order and the injector the chain feeds.
	Build(specs []domain.TransformerSpec) ([]Transformer, DependencyInjector, error)
}
