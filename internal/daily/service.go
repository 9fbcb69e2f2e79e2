package daily

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/economy"
	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/logger"
	"github.com/kovertlabs/deepcover/internal/metrics"
	"github.com/kovertlabs/deepcover/internal/repository"
	"github.com/kovertlabs/deepcover/internal/utils"
)

// ConfigProvider supplies the current immutable game config snapshot.
type ConfigProvider interface {
	Snapshot(ctx context.Context) (*domain.GameConfig, error)
}

// ClaimResult contains the outcome of a combo or cipher claim
type ClaimResult struct {
	Reward  int     `json:"reward"`
	Balance float64 `json:"balance"`
}

// Service defines daily event operations: serving the event of the day,
// resolving combo/cipher claims, and rotating the event at the day boundary.
type Service interface {
	CurrentEvent(ctx context.Context) (*domain.DailyEvent, error)
	ClaimCombo(ctx context.Context, playerID int64) (*ClaimResult, error)
	ClaimCipher(ctx context.Context, playerID int64, word string) (*ClaimResult, error)
	Rotate(ctx context.Context, day time.Time) (*domain.DailyEvent, error)
}

type service struct {
	players repository.Player
	events  repository.GameConfig
	config  ConfigProvider
	bus     event.Bus
	now     func() time.Time
	randInt func(min, max int) int // For combo/cipher selection
}

// NewService creates a new daily event service
func NewService(players repository.Player, events repository.GameConfig, config ConfigProvider, bus event.Bus) Service {
	return &service{
		players: players,
		events:  events,
		config:  config,
		bus:     bus,
		now:     time.Now,
		randInt: utils.RandomInt,
	}
}

// CurrentEvent returns today's event, generating one on first access if the
// rotation worker has not run yet.
func (s *service) CurrentEvent(ctx context.Context) (*domain.DailyEvent, error) {
	now := s.now()
	day := now.UTC().Format(DayFormat)

	ev, err := s.events.GetDailyEvent(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily event: %w", err)
	}
	if ev != nil {
		return ev, nil
	}
	return s.Rotate(ctx, now)
}

func (s *service) ClaimCombo(ctx context.Context, playerID int64) (*ClaimResult, error) {
	log := logger.FromContext(ctx)

	ev, err := s.CurrentEvent(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	// Captured before settlement so the event spans passive income too.
	oldBalance := p.Balance
	economy.Settle(p, s.now())

	if p.ClaimedComboToday {
		return nil, domain.ErrAlreadyCompleted
	}
	if !ev.ComboActive() {
		return nil, fmt.Errorf("%w: no active combo today", domain.ErrComboNotEligible)
	}
	for _, id := range ev.ComboIDs {
		if !domain.ContainsID(p.DailyUpgrades, id) {
			return nil, fmt.Errorf("%w: %s not upgraded today", domain.ErrComboNotEligible, id)
		}
	}

	p.Balance += float64(ev.ComboReward)
	p.ClaimedComboToday = true

	if err := s.players.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.CombosClaimed.Inc()
	s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))

	log.Info("Daily combo claimed", "player_id", playerID, "reward", ev.ComboReward)
	return &ClaimResult{Reward: ev.ComboReward, Balance: p.Balance}, nil
}

func (s *service) ClaimCipher(ctx context.Context, playerID int64, word string) (*ClaimResult, error) {
	log := logger.FromContext(ctx)

	ev, err := s.CurrentEvent(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	oldBalance := p.Balance
	economy.Settle(p, s.now())

	if p.ClaimedCipherToday {
		return nil, domain.ErrAlreadyCompleted
	}
	if ev.CipherWord == "" || !strings.EqualFold(strings.TrimSpace(word), ev.CipherWord) {
		return nil, domain.ErrCipherMismatch
	}

	p.Balance += float64(ev.CipherReward)
	p.ClaimedCipherToday = true

	if err := s.players.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.CiphersClaimed.Inc()
	s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))

	log.Info("Daily cipher claimed", "player_id", playerID, "reward", ev.CipherReward)
	return &ClaimResult{Reward: ev.CipherReward, Balance: p.Balance}, nil
}

// Rotate generates and stores the event for the given day: three distinct
// random upgrade ids and a cipher word from the rotation pool.
func (s *service) Rotate(ctx context.Context, day time.Time) (*domain.DailyEvent, error) {
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}

	ev := &domain.DailyEvent{
		Day:          day.UTC().Format(DayFormat),
		ComboReward:  DefaultComboReward,
		CipherWord:   cipherWords[s.randInt(0, len(cipherWords)-1)],
		CipherReward: DefaultCipherReward,
	}

	if len(cfg.Upgrades) >= domain.ComboSize {
		picked := make(map[int]struct{}, domain.ComboSize)
		for len(picked) < domain.ComboSize {
			picked[s.randInt(0, len(cfg.Upgrades)-1)] = struct{}{}
		}
		for idx := range picked {
			ev.ComboIDs = append(ev.ComboIDs, cfg.Upgrades[idx].ID)
		}
	}

	if err := s.events.UpsertDailyEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to store daily event: %w", err)
	}

	s.publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.DailyEventRotated,
		Payload: event.DailyEventRotatedPayloadV1{Day: ev.Day},
	})

	logger.FromContext(ctx).Info("Daily event rotated", "day", ev.Day, "combo_ids", ev.ComboIDs)
	return ev, nil
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", e.Type, "error", err)
	}
}
