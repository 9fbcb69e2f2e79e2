package worker

import (
	"context"
	"sync"
	"time"

	"github.com/kovertlabs/deepcover/internal/daily"
	"github.com/kovertlabs/deepcover/internal/logger"
)

// DailyRotationWorker generates a fresh combo and cipher event at 00:00 UTC.
// Player-side daily state (tap counters, combo purchases) resets lazily on
// the next request, so the worker only has to swap the event itself.
type DailyRotationWorker struct {
	dailyService daily.Service
	timer        *time.Timer
	shutdown     chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex
}

// NewDailyRotationWorker creates a new DailyRotationWorker
func NewDailyRotationWorker(dailyService daily.Service) *DailyRotationWorker {
	return &DailyRotationWorker{
		dailyService: dailyService,
		shutdown:     make(chan struct{}),
	}
}

// Start initializes the worker and schedules the first rotation
func (w *DailyRotationWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next UTC midnight and schedules
// the rotation
func (w *DailyRotationWorker) scheduleNext() {
	duration := timeUntilNextRotation()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent "tight loop" rescheduling caused by early triggers
	if duration > 1*time.Hour {
		// Stage 1: Long-range (Standby). Wake up 45 minutes before rotation.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		nextCheck := time.Now().UTC().Add(waitDuration)
		log.Info(LogMsgDailyRotationStandby, "next_check_at", nextCheck)
		return
	}

	// Stage 2: Final approach. Schedule the actual rotation.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Jitter protection: if the timer triggered early (jitter > 10s),
		// simply reschedule for the remaining time.
		// If duration is > 23h, it means we are actually on time or slightly LATE.
		rem := timeUntilNextRotation()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeRotation()
		w.scheduleNext() // This will now calculate ~24h and jump back to Stage 1
	})
	w.mu.Unlock()

	nextRotation := time.Now().UTC().Add(duration)
	log.Info(LogMsgDailyRotationApproach, "next_rotation_at", nextRotation)
}

// executeRotation performs the rotation in a tracked goroutine
func (w *DailyRotationWorker) executeRotation() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgDailyRotationStarting)

		event, err := w.dailyService.Rotate(ctx, time.Now().UTC())
		if err != nil {
			log.Error(LogMsgDailyRotationFailed, "error", err)
			return
		}

		log.Info(LogMsgDailyRotationCompleted, "day", event.Day)
	}()
}

// Shutdown gracefully shuts down the rotation worker
// Cancels the pending timer and waits for any in-flight rotations to complete
func (w *DailyRotationWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down daily rotation worker")

	// Signal shutdown to timer callback (safe to close once)
	select {
	case <-w.shutdown:
		// Already closed, nothing to do
	default:
		close(w.shutdown)
	}

	// Cancel pending timer
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		log.Info("Cancelled pending daily rotation")
	}
	w.mu.Unlock()

	// Wait for any in-flight rotations to complete
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Daily rotation worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Daily rotation worker shutdown timeout, a rotation may still be running")
		return ctx.Err()
	}
}

// timeUntilNextRotation calculates the duration until the next 00:00 UTC
func timeUntilNextRotation() time.Duration {
	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
