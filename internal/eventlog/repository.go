package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Event represents a logged event
type Event struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	PlayerID  *int64          `json:"player_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventFilter filters events for queries
type EventFilter struct {
	PlayerID  *int64
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event in the database
	LogEvent(ctx context.Context, eventType string, playerID *int64, payload []byte) error

	// GetEvents retrieves events based on filter criteria
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// GetEventsByPlayer retrieves events for a specific player
	GetEventsByPlayer(ctx context.Context, playerID int64, limit int) ([]Event, error)

	// GetEventsByType retrieves events of a specific type
	GetEventsByType(ctx context.Context, eventType string, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
