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

// PlayerRepository implements the player repository for PostgreSQL.
//
// The player state lives in a single JSONB document guarded by a version
// counter. Username, balance and profit/hour are denormalized into their own
// columns on every write so the leaderboard and cell profit aggregation can
// use plain indexed queries instead of JSONB extraction.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetPlayer loads the player document and its version counter.
func (r *PlayerRepository) GetPlayer(ctx context.Context, id int64) (*domain.PlayerState, error) {
	query := `
		SELECT doc, version
		FROM players
		WHERE player_id = $1
	`
	var (
		doc     []byte
		version int64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&doc, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", domain.ErrPlayerNotFound, id)
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}

	var p domain.PlayerState
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("failed to decode player %d document: %w", id, err)
	}
	p.Version = version
	return &p, nil
}

// CreatePlayer inserts a fresh player document at version 1.
func (r *PlayerRepository) CreatePlayer(ctx context.Context, p *domain.PlayerState) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode player %d document: %w", p.ID, err)
	}

	query := `
		INSERT INTO players (player_id, username, balance, profit_per_hour, doc, version)
		VALUES ($1, $2, $3, $4, $5, 1)
	`
	_, err = r.db.Exec(ctx, query, p.ID, p.Username, p.Balance, p.ProfitPerHour, doc)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player %d already exists", domain.ErrConflict, p.ID)
		}
		return fmt.Errorf("failed to insert player %d: %w", p.ID, err)
	}
	p.Version = 1
	return nil
}

// SavePlayer writes the document guarded by its version counter. A stale
// version means another session saved first; the caller gets ErrConflict and
// must reload.
func (r *PlayerRepository) SavePlayer(ctx context.Context, p *domain.PlayerState) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode player %d document: %w", p.ID, err)
	}

	query := `
		UPDATE players
		SET doc = $2,
		    username = $3,
		    balance = $4,
		    profit_per_hour = $5,
		    version = version + 1,
		    updated_at = NOW()
		WHERE player_id = $1 AND version = $6
	`
	tag, err := r.db.Exec(ctx, query, p.ID, doc, p.Username, p.Balance, p.ProfitPerHour, p.Version)
	if err != nil {
		return fmt.Errorf("failed to save player %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a stale version.
		var exists bool
		checkErr := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM players WHERE player_id = $1)", p.ID).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("failed to save player %d: %w", p.ID, checkErr)
		}
		if !exists {
			return fmt.Errorf("%w: id %d", domain.ErrPlayerNotFound, p.ID)
		}
		return fmt.Errorf("%w: player %d at version %d", domain.ErrConflict, p.ID, p.Version)
	}
	p.Version++
	return nil
}

// CreditReferral applies the referral bonus to the referrer in a single
// statement. The document and the denormalized balance column are updated
// together so the two never drift. Returns the referrer's balance after the
// credit so callers can announce the change.
func (r *PlayerRepository) CreditReferral(ctx context.Context, referrerID int64, bonus float64) (float64, error) {
	query := `
		UPDATE players
		SET doc = jsonb_set(
		        jsonb_set(doc, '{balance}', to_jsonb((doc->>'balance')::double precision + $2)),
		        '{referrals}', to_jsonb(COALESCE((doc->>'referrals')::int, 0) + 1)),
		    balance = balance + $2,
		    version = version + 1,
		    updated_at = NOW()
		WHERE player_id = $1
		RETURNING balance
	`
	var newBalance float64
	if err := r.db.QueryRow(ctx, query, referrerID, bonus).Scan(&newBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: referrer %d", domain.ErrPlayerNotFound, referrerID)
		}
		return 0, fmt.Errorf("failed to credit referral for player %d: %w", referrerID, err)
	}
	return newBalance, nil
}

// TopBalances returns the highest-balance players for the leaderboard.
func (r *PlayerRepository) TopBalances(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT player_id, username, balance
		FROM players
		ORDER BY balance DESC, player_id ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Username, &e.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard rows: %w", err)
	}
	return entries, nil
}
