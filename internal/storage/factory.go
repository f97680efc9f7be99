package storage

import (
	"fmt"

	"ragdocs/internal/config"
)

// New builds the backend selected by cfg.Driver.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverAzure:
		return NewAzureBlob(cfg.Azure)
	case config.StorageDriverMinIO:
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
