package cell

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kovertlabs/deepcover/internal/concurrency"
	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/economy"
	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/logger"
	"github.com/kovertlabs/deepcover/internal/repository"
)

// Service owns the guild layer: creating and joining cells by invite code,
// hiring informants, and the periodic ticket/battle settlement.
type Service interface {
	Create(ctx context.Context, playerID int64, name string) (*domain.CellView, error)
	Join(ctx context.Context, playerID int64, inviteCode string) (*domain.CellView, error)
	Leave(ctx context.Context, playerID int64) error
	View(ctx context.Context, playerID int64) (*domain.CellView, error)
	HireInformant(ctx context.Context, playerID int64, name string) (*domain.CellView, error)

	// SettleBattleRound runs one settlement pass over every cell: tickets
	// accrue, an hour of aggregate profit is banked, and battle score grows
	// with the banked amount. Invoked by the scheduler.
	SettleBattleRound(ctx context.Context) error
}

type service struct {
	cells   repository.Cell
	players repository.Player
	bus     event.Bus
	locks   *concurrency.LockManager // Per-cell locks for read-modify-write on cell docs
	now     func() time.Time         // Injected for deterministic tests
	newID   func() string            // Injected for deterministic ids
}

// NewService creates a new cell service
func NewService(cells repository.Cell, players repository.Player, bus event.Bus) Service {
	return &service{
		cells:   cells,
		players: players,
		bus:     bus,
		locks:   concurrency.NewLockManager(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *service) Create(ctx context.Context, playerID int64, name string) (*domain.CellView, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: cell name is required", domain.ErrInvalidInput)
	}

	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p.CellID != "" {
		return nil, domain.ErrAlreadyInCell
	}

	now := s.now()
	c := &domain.Cell{
		ID:         s.newID(),
		Name:       name,
		InviteCode: s.inviteCode(),
		OwnerID:    playerID,
		CreatedAt:  now.UnixMilli(),
	}
	if err := s.cells.CreateCell(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create cell: %w", err)
	}
	if err := s.cells.AddMember(ctx, c.ID, playerID); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	p.CellID = c.ID
	if err := s.players.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	log.Info("Cell created", "cell_id", c.ID, "owner_id", playerID)
	return s.buildView(ctx, c)
}

func (s *service) Join(ctx context.Context, playerID int64, inviteCode string) (*domain.CellView, error) {
	log := logger.FromContext(ctx)

	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p.CellID != "" {
		return nil, domain.ErrAlreadyInCell
	}

	c, err := s.cells.GetCellByInviteCode(ctx, strings.TrimSpace(inviteCode))
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if err := s.cells.AddMember(ctx, c.ID, playerID); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	p.CellID = c.ID
	if err := s.players.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	log.Info("Player joined cell", "cell_id", c.ID, "player_id", playerID)
	return s.buildView(ctx, c)
}

func (s *service) Leave(ctx context.Context, playerID int64) error {
	log := logger.FromContext(ctx)

	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}
	if p.CellID == "" {
		return domain.ErrNotInCell
	}

	cellID := p.CellID
	if err := s.cells.RemoveMember(ctx, cellID, playerID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	p.CellID = ""
	if err := s.players.SavePlayer(ctx, p); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	log.Info("Player left cell", "cell_id", cellID, "player_id", playerID)
	return nil
}

func (s *service) View(ctx context.Context, playerID int64) (*domain.CellView, error) {
	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p.CellID == "" {
		return nil, domain.ErrNotInCell
	}

	c, err := s.cells.GetCellByID(ctx, p.CellID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cell: %w", err)
	}
	return s.buildView(ctx, c)
}

// HireInformant adds an informant to the player's cell, paid from the
// player's own balance. Each informant raises the whole cell's profit
// multiplier by one percent.
func (s *service) HireInformant(ctx context.Context, playerID int64, name string) (*domain.CellView, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: informant name is required", domain.ErrInvalidInput)
	}

	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p.CellID == "" {
		return nil, domain.ErrNotInCell
	}

	lock := s.locks.GetLock(p.CellID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.cells.GetCellByID(ctx, p.CellID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cell: %w", err)
	}

	now := s.now()
	// Captured before settlement so the event spans passive income too.
	oldBalance := p.Balance
	economy.Settle(p, now)

	cost := InformantCost(len(c.Informants))
	if p.Balance < cost {
		return nil, fmt.Errorf("%w: need %.0f, have %.0f", domain.ErrInsufficientFunds, cost, p.Balance)
	}
	p.Balance -= cost

	c.Informants = append(c.Informants, domain.Informant{
		ID:       s.newID(),
		Name:     name,
		HireCost: cost,
		HiredAt:  now.UnixMilli(),
	})

	if err := s.players.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}
	if err := s.cells.UpdateCell(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update cell: %w", err)
	}

	if p.Balance != oldBalance && s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance)); err != nil {
			log.Warn("Failed to publish event", "event_type", event.BalanceChanged, "error", err)
		}
	}

	log.Info("Informant hired", "cell_id", c.ID, "player_id", playerID, "cost", cost)
	return s.buildView(ctx, c)
}

func (s *service) SettleBattleRound(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ids, err := s.cells.ListCellIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cells: %w", err)
	}

	for _, id := range ids {
		s.settleCell(ctx, id)
	}

	log.Info("Battle settlement round finished", "cells", len(ids))
	return nil
}

func (s *service) settleCell(ctx context.Context, id string) {
	log := logger.FromContext(ctx)

	lock := s.locks.GetLock(id)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.cells.GetCellByID(ctx, id)
	if err != nil {
		log.Warn("Skipping cell during settlement", "cell_id", id, "error", err)
		return
	}

	profit, err := s.cells.SumMemberProfit(ctx, id)
	if err != nil {
		log.Warn("Skipping cell during settlement", "cell_id", id, "error", err)
		return
	}
	banked := profit * c.ProfitMultiplier()

	c.TicketCount += TicketsPerRound
	c.Balance += banked
	c.BattleScore += int(math.Floor(banked * ScorePerProfitBanked))

	if err := s.cells.UpdateCell(ctx, c); err != nil {
		log.Warn("Failed to settle cell", "cell_id", id, "error", err)
	}
}

func (s *service) buildView(ctx context.Context, c *domain.Cell) (*domain.CellView, error) {
	members, err := s.cells.ListMemberIDs(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	profit, err := s.cells.SumMemberProfit(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum member profit: %w", err)
	}

	return &domain.CellView{
		Cell:          *c,
		MemberCount:   len(members),
		ProfitPerHour: profit * c.ProfitMultiplier(),
		MemberIDs:     members,
	}, nil
}

func (s *service) inviteCode() string {
	code := strings.ReplaceAll(s.newID(), "-", "")
	if len(code) > InviteCodeLength {
		code = code[:InviteCodeLength]
	}
	return strings.ToUpper(code)
}

// InformantCost returns the hire price for the next informant given how many
// the cell already employs.
func InformantCost(hired int) float64 {
	return math.Floor(InformantBaseCost * math.Pow(InformantCostGrowth, float64(hired)))
}
