package loader

import (
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
)

// SkipSignedStrategy leaves validly signed sources untouched.
type SkipSignedStrategy struct{}

// ShouldSkip reports true for validly signed sources.
func (SkipSignedStrategy) ShouldSkip(status domain.SigningStatus) bool {
	return status == domain.SignedValid
}

// TransformSignedStrategy processes every source.
type TransformSignedStrategy struct{}

// ShouldSkip always reports false.
func (TransformSignedStrategy) ShouldSkip(domain.SigningStatus) bool {
	return false
}

// NewSigningStrategy returns the strategy for the configured handling.
func NewSigningStrategy(handling domain.SignedHandling) ports.SignedSourceHandlingStrategy {
	if handling == domain.SignedTransform {
		return TransformSignedStrategy{}
	}
	return SkipSignedStrategy{}
}
