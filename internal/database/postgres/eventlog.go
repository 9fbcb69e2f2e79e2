package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kovertlabs/deepcover/internal/eventlog"
)

// EventLogRepository implements event log persistence for PostgreSQL
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

// LogEvent appends one event row.
func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, playerID *int64, payload []byte) error {
	query := `
		INSERT INTO event_log (event_type, player_id, payload)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.Exec(ctx, query, eventType, playerID, payload); err != nil {
		return fmt.Errorf("failed to log event %s: %w", eventType, err)
	}
	return nil
}

// GetEvents retrieves events matching the filter, newest first.
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var (
		conditions []string
		args       []interface{}
	)
	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.PlayerID != nil {
		addCondition("player_id = $%d", *filter.PlayerID)
	}
	if filter.EventType != nil {
		addCondition("event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		addCondition("created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		addCondition("created_at < $%d", *filter.Until)
	}

	query := `SELECT id, event_type, player_id, payload, created_at FROM event_log`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetEventsByPlayer retrieves the most recent events for one player.
func (r *EventLogRepository) GetEventsByPlayer(ctx context.Context, playerID int64, limit int) ([]eventlog.Event, error) {
	return r.GetEvents(ctx, eventlog.EventFilter{PlayerID: &playerID, Limit: limit})
}

// GetEventsByType retrieves the most recent events of one type.
func (r *EventLogRepository) GetEventsByType(ctx context.Context, eventType string, limit int) ([]eventlog.Event, error) {
	return r.GetEvents(ctx, eventlog.EventFilter{EventType: &eventType, Limit: limit})
}

// CleanupOldEvents deletes events older than retentionDays and reports how
// many rows went away.
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM event_log
		WHERE created_at < NOW() - ($1 * INTERVAL '1 day')
	`
	tag, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]eventlog.Event, error) {
	var events []eventlog.Event
	for rows.Next() {
		var evt eventlog.Event
		var createdAt time.Time
		if err := rows.Scan(&evt.ID, &evt.EventType, &evt.PlayerID, &evt.Payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		evt.CreatedAt = createdAt
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event rows: %w", err)
	}
	return events, nil
}
