package repository

import (
	"context"

	"github.com/kovertlabs/deepcover/internal/domain"
)

// Cell defines persistence for guilds and their membership.
type Cell interface {
	CreateCell(ctx context.Context, cell *domain.Cell) error
	GetCellByID(ctx context.Context, id string) (*domain.Cell, error)
	GetCellByInviteCode(ctx context.Context, inviteCode string) (*domain.Cell, error)
	UpdateCell(ctx context.Context, cell *domain.Cell) error

	// ListCellIDs returns every cell id, for the periodic settlement job.
	ListCellIDs(ctx context.Context) ([]string, error)

	AddMember(ctx context.Context, cellID string, playerID int64) error
	RemoveMember(ctx context.Context, cellID string, playerID int64) error
	ListMemberIDs(ctx context.Context, cellID string) ([]int64, error)

	// SumMemberProfit returns the summed profit/hour of all members, before
	// the informant multiplier is applied.
	SumMemberProfit(ctx context.Context, cellID string) (float64, error)
}
