package eventlog

import (
	"context"
	"encoding/json"

	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all events
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	// Subscribe to all domain event types
	eventTypes := []event.Type{
		event.PlayerLoggedIn,
		event.PlayerTapped,
		event.MetaTapped,
		event.UpgradePurchased,
		event.BalanceChanged,
		event.GlitchDiscovered,
		event.DailyEventRotated,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent processes and logs events to the database
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Payloads are typed structs; serialize once for storage and id extraction
	data, err := json.Marshal(evt.Payload)
	if err != nil {
		log.Debug(LogMsgEventPayloadNotSerializable, LogFieldType, evt.Type)
		return nil
	}

	// Extract player_id if the payload carries one
	var ids struct {
		PlayerID *int64 `json:"player_id"`
	}
	_ = json.Unmarshal(data, &ids)

	// Log event to database
	if err := s.repo.LogEvent(ctx, string(evt.Type), ids.PlayerID, data); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldPlayerID, ids.PlayerID)
	return nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
