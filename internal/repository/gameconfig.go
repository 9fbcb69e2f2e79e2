package repository

import (
	"context"

	"github.com/kovertlabs/deepcover/internal/domain"
)

// GameConfig defines persistence for the singleton config document and the
// per-day daily events.
type GameConfig interface {
	// GetConfig loads the current config snapshot.
	// Returns domain.ErrConfigNotFound when the game was never seeded.
	GetConfig(ctx context.Context) (*domain.GameConfig, error)

	// SaveConfig replaces the singleton config document and bumps its version.
	SaveConfig(ctx context.Context, cfg *domain.GameConfig) error

	// GetDailyEvent returns the event for the given UTC day (YYYY-MM-DD),
	// or nil when none was generated yet.
	GetDailyEvent(ctx context.Context, day string) (*domain.DailyEvent, error)

	// UpsertDailyEvent stores the event for its day, replacing any previous one.
	UpsertDailyEvent(ctx context.Context, event *domain.DailyEvent) error
}
