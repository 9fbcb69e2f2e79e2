package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/eventlog"
	"github.com/kovertlabs/deepcover/internal/glitch"
)

// EventHandlerDependencies holds the dependencies needed for event handler
// registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	GlitchService   glitch.Service
	EventLogService eventlog.Service
}

// RegisterEventHandlers sets up all event subscribers:
// - Glitch trigger evaluators (discover secret codes from gameplay events)
// - Event logger (persists events to the audit log)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	deps.GlitchService.Attach(deps.EventBus)
	slog.Info(LogMsgGlitchTriggersAttached)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}
