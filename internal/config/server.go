package config

import (
	"fmt"
	"time"

	"github.com/rotaboard/rotaboard/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Storage         StorageConfig
	HTTP            HTTPConfig
	Schedule        ScheduleConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"ROTA_SHUTDOWN_TIMEOUT" default:"30s"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"ROTA_HTTP_HOST"`
	Port              string        `env:"ROTA_HTTP_PORT"`
	ReadTimeout       time.Duration `env:"ROTA_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"ROTA_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"ROTA_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"ROTA_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"ROTA_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"ROTA_HTTP_MAX_BODY_BYTES"`
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"ROTA_OTEL_ENABLED"`
	ServiceName string `env:"OTEL_SERVICE_NAME"`
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
