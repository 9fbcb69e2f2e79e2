package boost

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/economy"
	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/i18n"
	"github.com/kovertlabs/deepcover/internal/logger"
	"github.com/kovertlabs/deepcover/internal/metrics"
	"github.com/kovertlabs/deepcover/internal/repository"
)

// ConfigProvider supplies the current immutable game config snapshot.
type ConfigProvider interface {
	Snapshot(ctx context.Context) (*domain.GameConfig, error)
}

// BoostView is a boost definition annotated with the player's level and the
// next purchase cost.
type BoostView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Currency       string  `json:"currency"`
	Cost           float64 `json:"cost"`
	Level          int     `json:"level,omitempty"`
	Permanent      bool    `json:"permanent"`
	PurchasesToday int     `json:"purchases_today,omitempty"`
	DailyLimit     int     `json:"daily_limit,omitempty"`
}

// BuyResult contains the outcome of a boost purchase
type BuyResult struct {
	BoostID            string  `json:"boost_id"`
	NewLevel           int     `json:"new_level,omitempty"`
	CostPaid           float64 `json:"cost_paid"`
	Balance            float64 `json:"balance"`
	Stars              int     `json:"stars"`
	Energy             float64 `json:"energy"`
	CoinsPerTap        int     `json:"coins_per_tap"`
	TapMultiplierUntil int64   `json:"tap_multiplier_until,omitempty"`
}

// Service sells boosts. Consumables (full_energy, tap_multiplier) apply
// their effect immediately; permanent boosts (tap_guru, energy_limit,
// suspicion_limit) raise a level with a geometric cost curve. Daily purchase
// limits reset with the day rollover.
type Service interface {
	List(ctx context.Context, playerID int64) ([]BoostView, error)
	Buy(ctx context.Context, playerID int64, boostID string) (*BuyResult, error)
}

type service struct {
	repo   repository.Player
	config ConfigProvider
	bus    event.Bus
	now    func() time.Time // Injected for deterministic tests
}

// NewService creates a new boost service
func NewService(repo repository.Player, config ConfigProvider, bus event.Bus) Service {
	return &service{
		repo:   repo,
		config: config,
		bus:    bus,
		now:    time.Now,
	}
}

// Cost returns the purchase price of a boost at the given owned level.
// Permanent boosts grow geometrically per level; consumables are flat.
func Cost(def *domain.Boost, level int) float64 {
	if !def.Permanent || def.CostGrowth <= 0 {
		return def.BaseCost
	}
	return math.Floor(def.BaseCost * math.Pow(def.CostGrowth, float64(level)))
}

func (s *service) List(ctx context.Context, playerID int64) ([]BoostView, error) {
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	economy.Settle(p, s.now())

	views := make([]BoostView, 0, len(cfg.Boosts))
	for i := range cfg.Boosts {
		def := &cfg.Boosts[i]
		level := p.BoostLevels[def.ID]
		views = append(views, BoostView{
			ID:             def.ID,
			Name:           i18n.Pick(def.Name, p.Locale),
			Currency:       def.Currency,
			Cost:           Cost(def, level),
			Level:          level,
			Permanent:      def.Permanent,
			PurchasesToday: p.BoostDailyPurchases[def.ID],
			DailyLimit:     def.DailyLimit,
		})
	}
	return views, nil
}

func (s *service) Buy(ctx context.Context, playerID int64, boostID string) (*BuyResult, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	def := cfg.BoostByID(boostID)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBoostNotFound, boostID)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	now := s.now()
	// Captured before settlement so the event spans passive income too.
	oldBalance := p.Balance
	economy.Settle(p, now)

	if def.DailyLimit > 0 && p.BoostDailyPurchases[boostID] >= def.DailyLimit {
		return nil, fmt.Errorf("%w: %s limited to %d per day", domain.ErrDailyLimitReached, boostID, def.DailyLimit)
	}

	level := p.BoostLevels[boostID]
	cost := Cost(def, level)

	switch def.Currency {
	case domain.CurrencyStars:
		if p.Stars < int(cost) {
			return nil, fmt.Errorf("%w: need %.0f stars, have %d", domain.ErrInsufficientStars, cost, p.Stars)
		}
		p.Stars -= int(cost)
	default:
		if p.Balance < cost {
			return nil, fmt.Errorf("%w: need %.0f, have %.0f", domain.ErrInsufficientFunds, cost, p.Balance)
		}
		p.Balance -= cost
	}

	if def.Permanent {
		p.BoostLevels[boostID] = level + 1
	} else {
		switch boostID {
		case domain.BoostFullEnergy:
			p.Energy = p.EffectiveMaxEnergy()
		case domain.BoostTapMultiplier:
			p.TapMultiplier = def.Multiplier
			p.TapMultiplierUntil = now.UnixMilli() + int64(def.DurationSec)*1000
		default:
			return nil, fmt.Errorf("%w: boost %s has no effect", domain.ErrInvalidInput, boostID)
		}
	}
	p.BoostDailyPurchases[boostID]++
	p.ClampResources()

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.BoostsPurchased.WithLabelValues(boostID).Inc()
	if p.Balance != oldBalance && s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance)); err != nil {
			log.Warn("Failed to publish event", "event_type", event.BalanceChanged, "error", err)
		}
	}
	log.Info("Boost purchased", "player_id", playerID, "boost_id", boostID, "cost", cost)

	return &BuyResult{
		BoostID:            boostID,
		NewLevel:           p.BoostLevels[boostID],
		CostPaid:           cost,
		Balance:            p.Balance,
		Stars:              p.Stars,
		Energy:             p.Energy,
		CoinsPerTap:        p.EffectiveCoinsPerTap(now.UnixMilli()),
		TapMultiplierUntil: p.TapMultiplierUntil,
	}, nil
}
