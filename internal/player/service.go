package player

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/economy"
	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/logger"
	"github.com/kovertlabs/deepcover/internal/metrics"
	"github.com/kovertlabs/deepcover/internal/repository"
)

// ConfigProvider supplies the current immutable game config snapshot.
type ConfigProvider interface {
	Snapshot(ctx context.Context) (*domain.GameConfig, error)
}

// LoginInput carries the identity facts supplied by the Telegram bridge.
type LoginInput struct {
	PlayerID   int64
	Username   string
	Locale     string
	ReferrerID int64 // Optional, only honored at first-ever creation
}

// StateView is the authoritative player document plus derived caps.
type StateView struct {
	Player       *domain.PlayerState `json:"player"`
	MaxEnergy    float64             `json:"max_energy"`
	MaxSuspicion float64             `json:"max_suspicion"`
	CoinsPerTap  int                 `json:"coins_per_tap"`
	Created      bool                `json:"created,omitempty"`
}

// SyncRequest is a legacy full-document submission used to reconcile taps
// made while the client was offline. All derived values in it are verified
// against a server-side recomputation before anything is accepted.
type SyncRequest struct {
	Balance       float64        `json:"balance" validate:"gte=0"`
	ProfitPerHour int            `json:"profit_per_hour" validate:"gte=0"`
	DailyTaps     int            `json:"daily_taps" validate:"gte=0"`
	Upgrades      map[string]int `json:"upgrades"`
}

// Service owns the player lifecycle: login with get-or-create semantics,
// settled state reads, and the legacy document sync.
type Service interface {
	Login(ctx context.Context, in LoginInput) (*StateView, error)
	GetState(ctx context.Context, playerID int64) (*StateView, error)
	SyncState(ctx context.Context, playerID int64, req SyncRequest) (*StateView, error)
}

type service struct {
	repo   repository.Player
	config ConfigProvider
	bus    event.Bus
	now    func() time.Time // Injected for deterministic tests
}

// NewService creates a new player service
func NewService(repo repository.Player, config ConfigProvider, bus event.Bus) Service {
	return &service{
		repo:   repo,
		config: config,
		bus:    bus,
		now:    time.Now,
	}
}

// Login loads the player, creating the account on first contact. The
// referral bonus is credited to the referrer exactly once, at creation;
// a referrer id supplied on a later login is ignored.
func (s *service) Login(ctx context.Context, in LoginInput) (*StateView, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.repo.GetPlayer(ctx, in.PlayerID)
	created := false
	switch {
	case err == nil:
		// Captured before settlement so the event spans passive income too.
		oldBalance := p.Balance
		economy.Settle(p, now)
		p.LastLoginAt = now.UnixMilli()
		if in.Username != "" {
			p.Username = in.Username
		}
		if in.Locale != "" {
			p.Locale = in.Locale
		}
		if err := s.repo.SavePlayer(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to save player: %w", err)
		}
		if p.Balance != oldBalance {
			s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))
		}

	case errors.Is(err, domain.ErrPlayerNotFound):
		p = domain.NewPlayerState(in.PlayerID, in.Username, now.UnixMilli())
		p.Locale = in.Locale
		if in.ReferrerID != 0 && in.ReferrerID != in.PlayerID {
			p.ReferrerID = in.ReferrerID
		}
		if err := s.repo.CreatePlayer(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		created = true
		metrics.PlayersCreated.Inc()

		if p.ReferrerID != 0 {
			// Atomic increment on the referrer row, never read-modify-write.
			refBalance, err := s.repo.CreditReferral(ctx, p.ReferrerID, domain.ReferralBonus)
			if err != nil {
				if !errors.Is(err, domain.ErrPlayerNotFound) {
					return nil, fmt.Errorf("failed to credit referral: %w", err)
				}
				log.Warn("Referrer does not exist", "player_id", in.PlayerID, "referrer_id", p.ReferrerID)
			} else {
				s.publish(ctx, event.NewBalanceChangedEvent(p.ReferrerID, refBalance-domain.ReferralBonus, refBalance))
				log.Info("Referral credited", "referrer_id", p.ReferrerID, "referred_id", in.PlayerID)
			}
		}

	default:
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	s.publish(ctx, event.NewPlayerLoggedInEvent(p.ID, now))

	log.Info("Player logged in", "player_id", p.ID, "created", created)
	view := s.view(p, now)
	view.Created = created
	return view, nil
}

// GetState returns the settled authoritative document. The settlement is
// persisted so repeated reads do not re-accrue the same elapsed time.
func (s *service) GetState(ctx context.Context, playerID int64) (*StateView, error) {
	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	now := s.now()
	oldBalance := p.Balance
	economy.Settle(p, now)
	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}
	if p.Balance != oldBalance {
		s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))
	}
	return s.view(p, now), nil
}

// SyncState reconciles a full client document. The server recomputes every
// derived value from owned facts; a document whose claims diverge beyond the
// rounding tolerance is rejected wholesale with ErrStateIntegrity. On
// success only the offline tap progress is applied, energy-gated exactly
// like the live tap command.
func (s *service) SyncState(ctx context.Context, playerID int64, req SyncRequest) (*StateView, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	now := s.now()
	oldBalance := p.Balance
	economy.Settle(p, now)

	// Levels are owned facts mutated only by purchase commands; a document
	// claiming different levels was fabricated.
	if len(req.Upgrades) != len(p.Upgrades) {
		return nil, s.reject(ctx, playerID, "upgrade set size mismatch")
	}
	for id, level := range req.Upgrades {
		if p.Upgrades[id] != level {
			return nil, s.reject(ctx, playerID, fmt.Sprintf("upgrade %s level mismatch", id))
		}
	}

	expectedProfit := economy.TotalProfitPerHour(cfg, p.Upgrades) + p.ProfitBonus
	if math.Abs(float64(req.ProfitPerHour-expectedProfit)) > domain.SyncTolerance {
		return nil, s.reject(ctx, playerID, fmt.Sprintf("profit %d, recomputed %d", req.ProfitPerHour, expectedProfit))
	}

	// Replay the claimed offline taps under the server's energy budget.
	tapsDelta := req.DailyTaps - p.DailyTaps
	if tapsDelta < 0 {
		return nil, s.reject(ctx, playerID, "daily tap counter went backwards")
	}
	yield := p.EffectiveCoinsPerTap(now.UnixMilli())
	for i := 0; i < tapsDelta; i++ {
		if p.Energy < float64(yield) {
			break
		}
		p.Balance += float64(yield)
		p.Energy -= float64(yield)
		p.DailyTaps++
	}

	if math.Abs(req.Balance-p.Balance) > domain.SyncTolerance {
		return nil, s.reject(ctx, playerID, fmt.Sprintf("balance %.2f, recomputed %.2f", req.Balance, p.Balance))
	}

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	if p.Balance != oldBalance {
		s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))
	}

	log.Debug("State synced", "player_id", playerID, "taps_replayed", p.DailyTaps)
	return s.view(p, now), nil
}

func (s *service) reject(ctx context.Context, playerID int64, reason string) error {
	metrics.SyncRejected.Inc()
	logger.FromContext(ctx).Warn("State sync rejected", "player_id", playerID, "reason", reason)
	return fmt.Errorf("%w: %s", domain.ErrStateIntegrity, reason)
}

func (s *service) view(p *domain.PlayerState, now time.Time) *StateView {
	return &StateView{
		Player:       p,
		MaxEnergy:    p.EffectiveMaxEnergy(),
		MaxSuspicion: p.EffectiveMaxSuspicion(),
		CoinsPerTap:  p.EffectiveCoinsPerTap(now.UnixMilli()),
	}
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", e.Type, "error", err)
	}
}
