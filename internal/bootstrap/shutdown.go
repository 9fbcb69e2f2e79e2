package bootstrap

import (
	"context"
	"log/slog"

	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/scheduler"
	"github.com/kovertlabs/deepcover/internal/server"
	"github.com/kovertlabs/deepcover/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server              *server.Server
	DailyRotationWorker *worker.DailyRotationWorker
	Scheduler           *scheduler.Scheduler
	WorkerPool          *worker.Pool
	ResilientPublisher  *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components,
// in order:
// 1. HTTP server (stop accepting new requests)
// 2. Rotation worker and scheduler (cancel pending timers and tickers)
// 3. Worker pool (finish queued jobs)
// 4. Event publisher (drain pending retries so no event is lost)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.DailyRotationWorker != nil {
		if err := components.DailyRotationWorker.Shutdown(ctx); err != nil {
			slog.Error("Daily rotation worker shutdown failed", "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	components.ResilientPublisher.Wait()

	slog.Info(LogMsgServerStopped)
}
