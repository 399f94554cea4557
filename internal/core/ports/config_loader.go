package ports

import "go.trai.ch/remold/internal/core/domain"

// ConfigLoader defines the interface for loading the run configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and returns the resolved configuration.
	// An empty path loads the default file from the working directory.
	Load(path string) (*domain.Config, error)
}
