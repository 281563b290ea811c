package bootstrap

import (
	"context"
	"log/slog"
)

type stoppable interface {
	Stop(context.Context) error
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

type closer interface {
	Close() error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             stoppable
	EconomyService     shutdownableService
	ResilientPublisher shutdownableService
	Journal            closer
	DBPool             interface{ Close() }
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Economy service (drain in-flight trades, including compensations)
// 3. Event publisher (flush pending retries to the dead letter)
// 4. Reconciliation journal
// 5. Database pool
//
// Errors during shutdown are logged but do not stop the sequence. The first
// error is returned.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) error {
	var firstErr error
	note := func(msg string, err error) {
		if err == nil {
			return
		}
		slog.Error(msg, "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		note(LogMsgServerForcedShutdown, components.Server.Stop(ctx))
	}

	if components.EconomyService != nil {
		note(ServiceNameEconomy+LogMsgServiceShutdownFailed, components.EconomyService.Shutdown(ctx))
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		note(LogMsgResilientPublisherFailed, components.ResilientPublisher.Shutdown(ctx))
	}

	if components.Journal != nil {
		note(LogMsgJournalCloseFailed, components.Journal.Close())
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
	return firstErr
}
