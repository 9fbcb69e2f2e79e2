package lootbox

import (
	"context"
	"fmt"
	"time"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/economy"
	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/i18n"
	"github.com/kovertlabs/deepcover/internal/logger"
	"github.com/kovertlabs/deepcover/internal/metrics"
	"github.com/kovertlabs/deepcover/internal/repository"
	"github.com/kovertlabs/deepcover/internal/utils"
)

// ConfigProvider supplies the current immutable game config snapshot.
type ConfigProvider interface {
	Snapshot(ctx context.Context) (*domain.GameConfig, error)
}

// BoxView is a lootbox definition annotated for display.
type BoxView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Currency string  `json:"currency"`
	Cost     float64 `json:"cost"`
}

// OpenResult contains the outcome of opening a lootbox
type OpenResult struct {
	LootboxID     string               `json:"lootbox_id"`
	Reward        domain.LootboxReward `json:"reward"`
	Balance       float64              `json:"balance"`
	Stars         int                  `json:"stars"`
	ProfitPerHour int                  `json:"profit_per_hour"`
}

// Service opens lootboxes: the cost is deducted in the box's currency and
// one reward is drawn uniformly from the configured pool.
type Service interface {
	List(ctx context.Context, playerID int64) ([]BoxView, error)
	Open(ctx context.Context, playerID int64, lootboxID string) (*OpenResult, error)
}

type service struct {
	repo    repository.Player
	config  ConfigProvider
	bus     event.Bus
	now     func() time.Time       // Injected for deterministic tests
	randInt func(min, max int) int // Injected for deterministic pool draws
}

// NewService creates a new lootbox service
func NewService(repo repository.Player, config ConfigProvider, bus event.Bus) Service {
	return &service{
		repo:    repo,
		config:  config,
		bus:     bus,
		now:     time.Now,
		randInt: utils.RandomInt,
	}
}

func (s *service) List(ctx context.Context, playerID int64) ([]BoxView, error) {
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	views := make([]BoxView, 0, len(cfg.Lootboxes))
	for i := range cfg.Lootboxes {
		def := &cfg.Lootboxes[i]
		views = append(views, BoxView{
			ID:       def.ID,
			Name:     i18n.Pick(def.Name, p.Locale),
			Currency: def.Currency,
			Cost:     def.Cost,
		})
	}
	return views, nil
}

func (s *service) Open(ctx context.Context, playerID int64, lootboxID string) (*OpenResult, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	def := cfg.LootboxByID(lootboxID)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrLootboxNotFound, lootboxID)
	}
	if len(def.Pool) == 0 {
		return nil, fmt.Errorf("%w: lootbox %s has an empty pool", domain.ErrInvalidInput, lootboxID)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	// Captured before settlement so the event spans passive income too.
	oldBalance := p.Balance
	economy.Settle(p, s.now())

	switch def.Currency {
	case domain.CurrencyStars:
		if p.Stars < int(def.Cost) {
			return nil, fmt.Errorf("%w: need %.0f stars, have %d", domain.ErrInsufficientStars, def.Cost, p.Stars)
		}
		p.Stars -= int(def.Cost)
	default:
		if p.Balance < def.Cost {
			return nil, fmt.Errorf("%w: need %.0f, have %.0f", domain.ErrInsufficientFunds, def.Cost, p.Balance)
		}
		p.Balance -= def.Cost
	}

	reward := def.Pool[s.randInt(0, len(def.Pool)-1)]
	switch reward.Type {
	case domain.RewardProfit:
		p.ProfitBonus += reward.Amount
		p.ProfitPerHour += reward.Amount
	case RewardStars:
		p.Stars += reward.Amount
	default:
		p.Balance += float64(reward.Amount)
	}

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.LootboxesOpened.WithLabelValues(lootboxID).Inc()
	if p.Balance != oldBalance && s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance)); err != nil {
			log.Warn("Failed to publish event", "event_type", event.BalanceChanged, "error", err)
		}
	}

	log.Info("Lootbox opened", "player_id", playerID, "lootbox_id", lootboxID, "reward_type", reward.Type, "reward_amount", reward.Amount)
	return &OpenResult{
		LootboxID:     lootboxID,
		Reward:        reward,
		Balance:       p.Balance,
		Stars:         p.Stars,
		ProfitPerHour: p.ProfitPerHour,
	}, nil
}
