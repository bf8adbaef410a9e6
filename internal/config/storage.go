package config

import (
	"fmt"
	"slices"
)

const (
	StorageFile      = "file"
	StorageRedis     = "redis"
	StoragePostgres  = "postgres"
	StorageS3        = "s3"
	StorageFirestore = "firestore"
	StorageHybrid    = "hybrid"
)

type Storage struct {
	Mode          string `env:"STORAGE_MODE" envDefault:"file"`
	HybridPrimary string `env:"HYBRID_PRIMARY" envDefault:"redis"`
	Dir           string `env:"STORAGE_DIR" envDefault:"."`
}

func (s Storage) Validate() error {
	backends := []string{StorageRedis, StoragePostgres, StorageS3, StorageFirestore}

	if s.Mode != StorageFile && s.Mode != StorageHybrid && !slices.Contains(backends, s.Mode) {
		return fmt.Errorf("unknown STORAGE_MODE %q", s.Mode)
	}

	if s.Mode == StorageHybrid && !slices.Contains(backends, s.HybridPrimary) {
		return fmt.Errorf("unknown HYBRID_PRIMARY %q", s.HybridPrimary)
	}

	return nil
}

// Backend returns the non-file backend in use, or StorageFile.
func (s Storage) Backend() string {
	if s.Mode == StorageHybrid {
		return s.HybridPrimary
	}

	return s.Mode
}
