package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kovertlabs/deepcover/internal/event"
)

// InitializeEventSystem creates the in-memory event bus and wraps it in a
// resilient publisher. Services publish through the publisher so a transient
// subscriber failure never loses an event: failed publishes are retried with
// backoff and finally parked in the dead-letter file.
// Returns the raw bus (for subscribing) and the publisher (for publishing).
func InitializeEventSystem() (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := EventDefaultDeadLetterPath

	// Ensure dead-letter directory exists
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher := event.NewResilientPublisher(eventBus, event.DefaultResilientConfig(deadLetterPath))

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", event.RetryMaxAttempts,
		"retry_delay", event.RetryInitialDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, publisher, nil
}
