package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kovertlabs/deepcover/internal/domain"
)

// configRowID is the primary key of the singleton game_config row.
const configRowID = 1

// ConfigRepository implements game config and daily event persistence for PostgreSQL
type ConfigRepository struct {
	db *pgxpool.Pool
}

// NewConfigRepository creates a new ConfigRepository
func NewConfigRepository(db *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetConfig loads the current config snapshot.
func (r *ConfigRepository) GetConfig(ctx context.Context) (*domain.GameConfig, error) {
	query := `
		SELECT doc, version
		FROM game_config
		WHERE id = $1
	`
	var (
		doc     []byte
		version int64
	)
	err := r.db.QueryRow(ctx, query, configRowID).Scan(&doc, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get game config: %w", err)
	}

	var cfg domain.GameConfig
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode game config: %w", err)
	}
	cfg.Version = version
	return &cfg, nil
}

// SaveConfig replaces the singleton config document with the given snapshot.
// The caller owns version numbering; the row stores whatever cfg.Version says.
func (r *ConfigRepository) SaveConfig(ctx context.Context, cfg *domain.GameConfig) error {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode game config: %w", err)
	}

	query := `
		INSERT INTO game_config (id, doc, version, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET doc = EXCLUDED.doc, version = EXCLUDED.version, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, configRowID, doc, cfg.Version); err != nil {
		return fmt.Errorf("failed to save game config: %w", err)
	}
	return nil
}

// GetDailyEvent returns the event for the given UTC day, or nil when none
// was generated yet.
func (r *ConfigRepository) GetDailyEvent(ctx context.Context, day string) (*domain.DailyEvent, error) {
	query := `
		SELECT doc
		FROM daily_events
		WHERE day = $1
	`
	var doc []byte
	err := r.db.QueryRow(ctx, query, day).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily event for %s: %w", day, err)
	}

	var event domain.DailyEvent
	if err := json.Unmarshal(doc, &event); err != nil {
		return nil, fmt.Errorf("failed to decode daily event for %s: %w", day, err)
	}
	return &event, nil
}

// UpsertDailyEvent stores the event for its day, replacing any previous one.
func (r *ConfigRepository) UpsertDailyEvent(ctx context.Context, event *domain.DailyEvent) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode daily event for %s: %w", event.Day, err)
	}

	query := `
		INSERT INTO daily_events (day, doc)
		VALUES ($1, $2)
		ON CONFLICT (day) DO UPDATE
		SET doc = EXCLUDED.doc
	`
	if _, err := r.db.Exec(ctx, query, event.Day, doc); err != nil {
		return fmt.Errorf("failed to upsert daily event for %s: %w", event.Day, err)
	}
	return nil
}
