package config

import (
	"fmt"
	"time"

	"github.com/rotaboard/rotaboard/internal/env"
)

// WorkerConfig holds all configuration for the snapshot worker binary.
type WorkerConfig struct {
	Storage       StorageConfig
	Schedule      ScheduleConfig
	Observability ObservabilityConfig

	// Interval between checks for a missing day snapshot.
	Interval time.Duration `env:"ROTA_SNAPSHOT_INTERVAL" default:"1h"`

	// OperationTimeout bounds a single snapshot run.
	OperationTimeout time.Duration `env:"ROTA_SNAPSHOT_OPERATION_TIMEOUT" default:"30s"`
}

// LoadWorkerConfig loads and validates worker configuration from environment.
func LoadWorkerConfig() (*WorkerConfig, error) {
	cfg := &WorkerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load worker config: %w", err)
	}

	return cfg, nil
}
