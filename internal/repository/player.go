package repository

import (
	"context"

	"github.com/kovertlabs/deepcover/internal/domain"
)

// Player defines the interface for player document persistence.
type Player interface {
	// GetPlayer loads the document, including its version counter.
	// Returns domain.ErrPlayerNotFound for an unknown id.
	GetPlayer(ctx context.Context, id int64) (*domain.PlayerState, error)

	// CreatePlayer inserts a fresh document at version 1.
	CreatePlayer(ctx context.Context, p *domain.PlayerState) error

	// SavePlayer writes the document guarded by its version counter and
	// increments it on success. A stale version fails with domain.ErrConflict
	// so a concurrent session's progress is never silently discarded.
	SavePlayer(ctx context.Context, p *domain.PlayerState) error

	// CreditReferral atomically applies the referral bonus to the referrer:
	// balance += bonus, referrals += 1, in a single statement. Avoids the
	// read-modify-write race on concurrent referral credits. Returns the
	// referrer's balance after the credit.
	CreditReferral(ctx context.Context, referrerID int64, bonus float64) (float64, error)

	// TopBalances returns the highest-balance players for the leaderboard.
	TopBalances(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
