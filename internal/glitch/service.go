package glitch

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// DiscoveryView is a discovered glitch the client has not acknowledged yet.
type DiscoveryView struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// ClaimResult contains the outcome of a glitch code submission
type ClaimResult struct {
	Code          string            `json:"code"`
	Reward        domain.TaskReward `json:"reward"`
	Balance       float64           `json:"balance"`
	ProfitPerHour int               `json:"profit_per_hour"`
}

// Service resolves the hidden glitch-code easter eggs. Discovery happens as
// a side effect of normal play (triggers are evaluated against the event
// stream); claiming requires the player to submit the discovered code, at
// most once per code.
type Service interface {
	// Attach subscribes the trigger evaluators to the bus. Call once at
	// bootstrap, before the server starts taking traffic.
	Attach(bus event.Bus)

	// PendingDiscoveries lists discovered codes the player has not been
	// shown yet.
	PendingDiscoveries(ctx context.Context, playerID int64) ([]DiscoveryView, error)

	// MarkShown records that the discovery notifications were rendered so
	// they are not replayed on another device.
	MarkShown(ctx context.Context, playerID int64, codes []string) error

	// SubmitCode claims a discovered code and grants its reward.
	SubmitCode(ctx context.Context, playerID int64, code string) (*ClaimResult, error)
}

type service struct {
	repo   repository.Player
	config ConfigProvider
	bus    event.Bus
	now    func() time.Time // Injected for deterministic tests
}

// NewService creates a new glitch service
func NewService(repo repository.Player, config ConfigProvider, bus event.Bus) Service {
	return &service{
		repo:   repo,
		config: config,
		bus:    bus,
		now:    time.Now,
	}
}

func (s *service) Attach(bus event.Bus) {
	bus.Subscribe(event.PlayerLoggedIn, s.onLogin)
	bus.Subscribe(event.BalanceChanged, s.onBalanceChanged)
	bus.Subscribe(event.UpgradePurchased, s.onUpgradePurchased)
	bus.Subscribe(event.MetaTapped, s.onMetaTapped)
}

func (s *service) onLogin(ctx context.Context, e event.Event) error {
	payload, ok := e.Payload.(event.PlayerLoggedInPayloadV1)
	if !ok {
		return nil
	}
	at := time.UnixMilli(payload.LoginAt).UTC()
	return s.evaluate(ctx, payload.PlayerID, func(t domain.GlitchTrigger) bool {
		return t.Type == domain.GlitchTriggerLoginAtTime &&
			t.Hour == at.Hour() && t.Minute == at.Minute()
	})
}

func (s *service) onBalanceChanged(ctx context.Context, e event.Event) error {
	payload, ok := e.Payload.(event.BalanceChangedPayloadV1)
	if !ok {
		return nil
	}
	return s.evaluate(ctx, payload.PlayerID, func(t domain.GlitchTrigger) bool {
		// Upward crossing only: spending back below and re-crossing later
		// is covered by discovery idempotence.
		return t.Type == domain.GlitchTriggerBalanceEquals &&
			payload.OldBalance < t.Balance && payload.NewBalance >= t.Balance
	})
}

func (s *service) onUpgradePurchased(ctx context.Context, e event.Event) error {
	payload, ok := e.Payload.(event.UpgradePurchasedPayloadV1)
	if !ok {
		return nil
	}
	return s.evaluate(ctx, payload.PlayerID, func(t domain.GlitchTrigger) bool {
		return t.Type == domain.GlitchTriggerUpgradePurchased && t.UpgradeID == payload.UpgradeID
	})
}

func (s *service) onMetaTapped(ctx context.Context, e event.Event) error {
	payload, ok := e.Payload.(event.MetaTappedPayloadV1)
	if !ok {
		return nil
	}
	return s.evaluate(ctx, payload.PlayerID, func(t domain.GlitchTrigger) bool {
		return t.Type == domain.GlitchTriggerMetaTap && payload.Count >= t.Taps
	})
}

// evaluate runs the predicate over all configured glitches and records any
// matches as discovered. Re-evaluating an already discovered trigger is a
// no-op, so handlers are safe to fire on every event.
func (s *service) evaluate(ctx context.Context, playerID int64, match func(domain.GlitchTrigger) bool) error {
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load game config: %w", err)
	}

	var hits []string
	for i := range cfg.Glitches {
		if match(cfg.Glitches[i].Trigger) {
			hits = append(hits, cfg.Glitches[i].Code)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get player: %w", err)
	}

	changed := false
	var discovered []string
	for _, code := range hits {
		var added bool
		p.DiscoveredGlitchCodes, added = domain.AddID(p.DiscoveredGlitchCodes, code)
		if added {
			discovered = append(discovered, code)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	log := logger.FromContext(ctx)
	for _, code := range discovered {
		log.Info("Glitch discovered", "player_id", playerID, "code", code)
		if s.bus != nil {
			if err := s.bus.Publish(ctx, event.NewGlitchDiscoveredEvent(playerID, code)); err != nil {
				log.Warn("Failed to publish event", "event_type", event.GlitchDiscovered, "error", err)
			}
		}
	}
	return nil
}

func (s *service) PendingDiscoveries(ctx context.Context, playerID int64) ([]DiscoveryView, error) {
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var views []DiscoveryView
	for _, code := range p.DiscoveredGlitchCodes {
		if domain.ContainsID(p.ShownGlitchCodes, code) {
			continue
		}
		view := DiscoveryView{Code: code}
		if def := cfg.GlitchByCode(code); def != nil {
			view.Message = i18n.Pick(def.Message, p.Locale)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) MarkShown(ctx context.Context, playerID int64, codes []string) error {
	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}

	changed := false
	for _, code := range codes {
		// Only codes the player actually discovered are recorded.
		if !domain.ContainsID(p.DiscoveredGlitchCodes, code) {
			continue
		}
		var added bool
		p.ShownGlitchCodes, added = domain.AddID(p.ShownGlitchCodes, code)
		changed = changed || added
	}
	if !changed {
		return nil
	}

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

func (s *service) SubmitCode(ctx context.Context, playerID int64, code string) (*ClaimResult, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	def := cfg.GlitchByCode(code)
	if def == nil {
		return nil, domain.ErrInvalidCode
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	// An already claimed code is indistinguishable from an unknown one so
	// probing reveals nothing.
	if domain.ContainsID(p.ClaimedGlitchCodes, code) {
		return nil, domain.ErrInvalidCode
	}

	oldBalance := p.Balance
	switch def.Reward.Type {
	case domain.RewardProfit:
		p.ProfitBonus += def.Reward.Amount
		p.ProfitPerHour += def.Reward.Amount
	default:
		p.Balance += float64(def.Reward.Amount)
	}
	p.DiscoveredGlitchCodes, _ = domain.AddID(p.DiscoveredGlitchCodes, code)
	p.ClaimedGlitchCodes, _ = domain.AddID(p.ClaimedGlitchCodes, code)

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.GlitchesClaimed.Inc()
	if p.Balance != oldBalance && s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance)); err != nil {
			log.Warn("Failed to publish event", "event_type", event.BalanceChanged, "error", err)
		}
	}

	log.Info("Glitch code claimed", "player_id", playerID, "code", code)
	return &ClaimResult{
		Code:          code,
		Reward:        def.Reward,
		Balance:       p.Balance,
		ProfitPerHour: p.ProfitPerHour,
	}, nil
}
