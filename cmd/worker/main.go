package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotaboard/rotaboard/internal/application/snapshot"
	"github.com/rotaboard/rotaboard/internal/config"
	"github.com/rotaboard/rotaboard/internal/infrastructure/persistence"
	"github.com/rotaboard/rotaboard/internal/schedule"
	"github.com/rotaboard/rotaboard/pkg/observability"
)

const defaultServiceName = "rotaboard-worker"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serviceName := cfg.Observability.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	lp, logger, err := observability.InitLogger(ctx, serviceName, cfg.Observability.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown logger provider", "error", err)
		}
	}()
	slog.SetDefault(logger)

	zone, err := schedule.LoadZone(cfg.Schedule.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load business timezone: %w", err)
	}

	store, err := persistence.NewStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	w := snapshot.New(store, zone,
		snapshot.WithInterval(cfg.Interval),
		snapshot.WithOperationTimeout(cfg.OperationTimeout),
	)

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker error: %w", err)
	}
	return nil
}
