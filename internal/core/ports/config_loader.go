package ports

import "github.com/lotoze/ktrun/internal/core/domain"

// ConfigLoader loads the test target manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given path.
	Load(path string) (*domain.Manifest, error)
}
