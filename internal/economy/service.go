package economy

import (
	"context"
	"fmt"
	"time"

	"github.com/kovertlabs/deepcover/internal/domain"
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

// TapResult contains the result of a tap batch
type TapResult struct {
	TapsApplied int     `json:"taps_applied"`
	CoinsGained float64 `json:"coins_gained"`
	Balance     float64 `json:"balance"`
	Energy      float64 `json:"energy"`
	DailyTaps   int     `json:"daily_taps"`
}

// PurchaseResult contains the result of an upgrade purchase
type PurchaseResult struct {
	UpgradeID     string  `json:"upgrade_id"`
	NewLevel      int     `json:"new_level"`
	PricePaid     float64 `json:"price_paid"`
	Balance       float64 `json:"balance"`
	ProfitPerHour int     `json:"profit_per_hour"`
	Suspicion     float64 `json:"suspicion"`
	NextPrice     float64 `json:"next_price"`
}

// UpgradeView is a single upgrade annotated with the player's derived values.
type UpgradeView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Icon          string  `json:"icon,omitempty"`
	Level         int     `json:"level"`
	Price         float64 `json:"price"`
	ProfitPerHour int     `json:"profit_per_hour"`
	NextProfit    int     `json:"next_profit"`
}

// Service defines the interface for economy operations
type Service interface {
	Tap(ctx context.Context, playerID int64, count int) (*TapResult, error)
	MetaTap(ctx context.Context, playerID int64, count int) error
	BuyUpgrade(ctx context.Context, playerID int64, upgradeID string) (*PurchaseResult, error)
	ListUpgrades(ctx context.Context, playerID int64) ([]UpgradeView, error)
}

type service struct {
	repo   repository.Player
	config ConfigProvider
	bus    event.Bus
	now    func() time.Time // Injected for deterministic tests
}

// NewService creates a new economy service
func NewService(repo repository.Player, config ConfigProvider, bus event.Bus) Service {
	return &service{
		repo:   repo,
		config: config,
		bus:    bus,
		now:    time.Now,
	}
}

func (s *service) Tap(ctx context.Context, playerID int64, count int) (*TapResult, error) {
	log := logger.FromContext(ctx)

	if count <= 0 || count > MaxTapsPerCommand {
		return nil, fmt.Errorf("%w: tap count %d", domain.ErrInvalidInput, count)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	now := s.now()
	// The event must span the settlement too, or a passive-income crossing
	// of a balance threshold would be invisible to subscribers.
	oldBalance := p.Balance
	Settle(p, now)

	yield := p.EffectiveCoinsPerTap(now.UnixMilli())
	applied := 0
	gained := 0.0
	for i := 0; i < count; i++ {
		// A tap spends its own yield in energy; below that the tap is a no-op.
		if p.Energy < float64(yield) {
			break
		}
		p.Balance += float64(yield)
		p.Energy -= float64(yield)
		p.DailyTaps++
		gained += float64(yield)
		applied++
	}

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.TapsApplied.Add(float64(applied))

	if applied > 0 {
		s.publish(ctx, event.NewPlayerTappedEvent(p.ID, applied))
	}
	if p.Balance != oldBalance {
		s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))
	}

	log.Debug("Tap batch applied", "player_id", playerID, "requested", count, "applied", applied)

	return &TapResult{
		TapsApplied: applied,
		CoinsGained: gained,
		Balance:     p.Balance,
		Energy:      p.Energy,
		DailyTaps:   p.DailyTaps,
	}, nil
}

func (s *service) MetaTap(ctx context.Context, playerID int64, count int) error {
	if count <= 0 || count > MaxTapsPerCommand {
		return fmt.Errorf("%w: meta tap count %d", domain.ErrInvalidInput, count)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}

	oldBalance := p.Balance
	Settle(p, s.now())
	p.MetaTapCount += count

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	s.publish(ctx, event.NewMetaTappedEvent(p.ID, p.MetaTapCount))
	if p.Balance != oldBalance {
		s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))
	}
	return nil
}

func (s *service) BuyUpgrade(ctx context.Context, playerID int64, upgradeID string) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}

	def := cfg.UpgradeByID(upgradeID)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpgradeNotFound, upgradeID)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	oldBalance := p.Balance
	Settle(p, s.now())

	// Special-category assets draw attention; a blown suspicion cap blocks them.
	if def.Category == domain.CategorySpecial && p.Suspicion >= p.EffectiveMaxSuspicion() {
		return nil, fmt.Errorf("%w: suspicion too high for special upgrades", domain.ErrNotYetEligible)
	}

	level := p.UpgradeLevel(upgradeID)
	price := EffectivePrice(def.BasePrice, level)
	if p.Balance < price {
		return nil, fmt.Errorf("%w: need %.0f, have %.0f", domain.ErrInsufficientFunds, price, p.Balance)
	}

	// Single state transition: no partial effects are ever persisted.
	p.Balance -= price
	p.Upgrades[upgradeID] = level + 1
	p.ProfitPerHour = TotalProfitPerHour(cfg, p.Upgrades) + p.ProfitBonus
	p.Suspicion += def.SuspicionModifier
	p.ClampResources()
	p.DailyUpgrades, _ = domain.AddID(p.DailyUpgrades, upgradeID)

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.UpgradesBought.WithLabelValues(upgradeID).Inc()

	s.publish(ctx, event.NewUpgradePurchasedEvent(p.ID, upgradeID, level+1))
	s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))

	log.Info("Upgrade purchased",
		"player_id", playerID,
		"upgrade_id", upgradeID,
		"new_level", level+1,
		"price", price)

	return &PurchaseResult{
		UpgradeID:     upgradeID,
		NewLevel:      level + 1,
		PricePaid:     price,
		Balance:       p.Balance,
		ProfitPerHour: p.ProfitPerHour,
		Suspicion:     p.Suspicion,
		NextPrice:     EffectivePrice(def.BasePrice, level+1),
	}, nil
}

func (s *service) ListUpgrades(ctx context.Context, playerID int64) ([]UpgradeView, error) {
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	views := make([]UpgradeView, 0, len(cfg.Upgrades))
	for _, def := range cfg.Upgrades {
		level := p.UpgradeLevel(def.ID)
		views = append(views, UpgradeView{
			ID:            def.ID,
			Name:          i18n.Pick(def.Name, p.Locale),
			Category:      def.Category,
			Icon:          def.Icon,
			Level:         level,
			Price:         EffectivePrice(def.BasePrice, level),
			ProfitPerHour: EffectiveProfit(def.BaseProfitPerHour, level),
			NextProfit:    EffectiveProfit(def.BaseProfitPerHour, level+1),
		})
	}
	return views, nil
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", e.Type, "error", err)
	}
}
