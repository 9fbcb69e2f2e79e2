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

// CellRepository implements cell and membership persistence for PostgreSQL.
//
// The cell itself is a JSONB document with the invite code denormalized for
// lookup. Membership is a separate join table so profit aggregation can run
// as a single SQL join against the players table.
type CellRepository struct {
	db *pgxpool.Pool
}

// NewCellRepository creates a new CellRepository
func NewCellRepository(db *pgxpool.Pool) *CellRepository {
	return &CellRepository{db: db}
}

// CreateCell inserts a new cell document.
func (r *CellRepository) CreateCell(ctx context.Context, cell *domain.Cell) error {
	doc, err := json.Marshal(cell)
	if err != nil {
		return fmt.Errorf("failed to encode cell %s: %w", cell.ID, err)
	}

	query := `
		INSERT INTO cells (cell_id, invite_code, doc)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.Exec(ctx, query, cell.ID, cell.InviteCode, doc); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cell %s already exists", domain.ErrConflict, cell.ID)
		}
		return fmt.Errorf("failed to insert cell %s: %w", cell.ID, err)
	}
	return nil
}

// GetCellByID loads a cell document by id.
func (r *CellRepository) GetCellByID(ctx context.Context, id string) (*domain.Cell, error) {
	return r.getCell(ctx, "cell_id", id)
}

// GetCellByInviteCode loads a cell document by invite code.
func (r *CellRepository) GetCellByInviteCode(ctx context.Context, inviteCode string) (*domain.Cell, error) {
	return r.getCell(ctx, "invite_code", inviteCode)
}

func (r *CellRepository) getCell(ctx context.Context, column, key string) (*domain.Cell, error) {
	query := fmt.Sprintf(`SELECT doc FROM cells WHERE %s = $1`, column)
	var doc []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCellNotFound, key)
		}
		return nil, fmt.Errorf("failed to get cell by %s %s: %w", column, key, err)
	}

	var cell domain.Cell
	if err := json.Unmarshal(doc, &cell); err != nil {
		return nil, fmt.Errorf("failed to decode cell %s: %w", key, err)
	}
	return &cell, nil
}

// UpdateCell replaces the cell document.
func (r *CellRepository) UpdateCell(ctx context.Context, cell *domain.Cell) error {
	doc, err := json.Marshal(cell)
	if err != nil {
		return fmt.Errorf("failed to encode cell %s: %w", cell.ID, err)
	}

	query := `
		UPDATE cells
		SET doc = $2, invite_code = $3
		WHERE cell_id = $1
	`
	tag, err := r.db.Exec(ctx, query, cell.ID, doc, cell.InviteCode)
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", cell.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCellNotFound, cell.ID)
	}
	return nil
}

// ListCellIDs returns every cell id, for the periodic settlement job.
func (r *CellRepository) ListCellIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT cell_id FROM cells ORDER BY cell_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cell ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cell id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cell id rows: %w", err)
	}
	return ids, nil
}

// AddMember adds a player to a cell. A player can belong to one cell at a
// time; the unique constraint on player_id enforces that at the storage layer.
func (r *CellRepository) AddMember(ctx context.Context, cellID string, playerID int64) error {
	query := `
		INSERT INTO cell_members (cell_id, player_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.Exec(ctx, query, cellID, playerID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player %d", domain.ErrAlreadyInCell, playerID)
		}
		return fmt.Errorf("failed to add player %d to cell %s: %w", playerID, cellID, err)
	}
	return nil
}

// RemoveMember removes a player from a cell.
func (r *CellRepository) RemoveMember(ctx context.Context, cellID string, playerID int64) error {
	query := `
		DELETE FROM cell_members
		WHERE cell_id = $1 AND player_id = $2
	`
	tag, err := r.db.Exec(ctx, query, cellID, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player %d from cell %s: %w", playerID, cellID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: player %d", domain.ErrNotInCell, playerID)
	}
	return nil
}

// ListMemberIDs returns the player ids belonging to a cell.
func (r *CellRepository) ListMemberIDs(ctx context.Context, cellID string) ([]int64, error) {
	query := `
		SELECT player_id
		FROM cell_members
		WHERE cell_id = $1
		ORDER BY player_id
	`
	rows, err := r.db.Query(ctx, query, cellID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of cell %s: %w", cellID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read member rows: %w", err)
	}
	return ids, nil
}

// SumMemberProfit returns the summed profit/hour of all cell members, before
// the informant multiplier is applied.
func (r *CellRepository) SumMemberProfit(ctx context.Context, cellID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.profit_per_hour), 0)
		FROM cell_members cm
		JOIN players p ON p.player_id = cm.player_id
		WHERE cm.cell_id = $1
	`
	var total float64
	if err := r.db.QueryRow(ctx, query, cellID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum member profit for cell %s: %w", cellID, err)
	}
	return total, nil
}
