package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/BrandishShop/internal/config"
	"github.com/osse101/BrandishShop/internal/event"
	"github.com/osse101/BrandishShop/internal/metrics"
)

// InitializeEventSystem creates the in-memory bus, subscribes the metrics
// collector to it and wraps it in a resilient publisher that retries with
// exponential backoff and dead-letters what it cannot deliver.
func InitializeEventSystem(cfg *config.Config) (*event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	collector := metrics.NewEventMetricsCollector()
	collector.Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, EventDefaultMaxRetries, EventDefaultRetryDelay, cfg.DeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", cfg.DeadLetterPath)

	return publisher, nil
}
