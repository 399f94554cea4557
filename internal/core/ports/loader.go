package ports

import (
	"context"

	"go.trai.ch/remold/internal/core/domain"
)

// SourceLoader turns a path into a SourceUnit.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type SourceLoader interface {
	// Load reads every entry of the source at path.
	Load(ctx context.Context, path string, cfg *domain.Config) (*domain.SourceUnit, error)
}

// SignedSourceHandlingStrategy decides whether a signed source is processed.
type SignedSourceHandlingStrategy interface {
	// ShouldSkip reports whether a source with the given status must be left untouched.
	ShouldSkip(status domain.SigningStatus) bool
}
