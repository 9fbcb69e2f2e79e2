package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// DefaultResilientConfig returns the standard retry settings.
func DefaultResilientConfig(deadLetterPath string) ResilientConfig {
	return ResilientConfig{
		MaxRetries:     RetryMaxAttempts,
		RetryDelay:     RetryInitialDelay,
		DeadLetterPath: deadLetterPath,
	}
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter
// queuing. Callers are decoupled from the retry mechanism: Publish returns
// nil once the event is accepted, even if the first attempt failed.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex // Protects dead-letter file writes
	wg     sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// Publish attempts to publish an event, falling back to a background retry
// loop on failure.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	slog.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event)

	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Wait blocks until all background retry loops have drained. Used on shutdown.
func (p *ResilientPublisher) Wait() {
	p.wg.Wait()
}

func (p *ResilientPublisher) retryLoop(event Event) {
	defer p.wg.Done()

	// Detached context: the originating request may already be cancelled
	ctx := context.Background()

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.config.RetryDelay, attempt))

		if err := p.inner.Publish(ctx, event); err == nil {
			slog.Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", attempt)
			return
		} else {
			slog.Warn(LogMsgEventRetryFailed,
				"event_type", event.Type,
				"attempt", attempt,
				"error", err)
		}
	}

	p.writeToDeadLetter(event)
}

func (p *ResilientPublisher) writeToDeadLetter(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error(LogMsgDeadLetterFailed, "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	type deadLetterEntry struct {
		Timestamp time.Time `json:"timestamp"`
		Event     Event     `json:"event"`
	}

	entry := deadLetterEntry{Timestamp: time.Now(), Event: event}
	if err := json.NewEncoder(f).Encode(entry); err != nil {
		slog.Error(LogMsgDeadLetterFailed, "error", err)
		return
	}
	slog.Info(LogMsgDeadLetterWrite, "event_type", event.Type)
}
