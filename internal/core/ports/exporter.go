package ports

import (
	"context"

	"go.trai.ch/remold/internal/core/domain"
)

// Exporter packages the artifacts of one source.
//
//go:generate mockgen -source=exporter.go -destination=mocks/mock_exporter.go -package=mocks
type Exporter interface {
	// Export writes a deliverable for src and returns its path.
	// It returns "" without writing anything when artifacts is empty.
	Export(
		ctx context.Context,
		src *domain.SourceUnit,
		artifacts map[string]domain.Artifact,
		cfg *domain.Config,
		label string,
	) (string, error)
}
