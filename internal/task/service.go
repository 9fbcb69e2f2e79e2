package task

import (
	"context"
	"fmt"
	"strings"
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

// TaskView is a task definition annotated with the player's progress.
type TaskView struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Type         string            `json:"type"`
	Reward       domain.TaskReward `json:"reward"`
	RequiredTaps int               `json:"required_taps,omitempty"`
	URL          string            `json:"url,omitempty"`
	PriceStars   int               `json:"price_stars,omitempty"`
	Purchased    bool              `json:"purchased,omitempty"`
	Completed    bool              `json:"completed"`
}

// ClaimResult contains the outcome of a task claim
type ClaimResult struct {
	TaskID        string            `json:"task_id"`
	Reward        domain.TaskReward `json:"reward"`
	Balance       float64           `json:"balance"`
	ProfitPerHour int               `json:"profit_per_hour"`
	Stars         int               `json:"stars"`
}

// Service defines task operations for both namespaces. Daily task
// completions reset with the day; special (airdrop) tasks complete at most
// once and may be gated behind a star purchase that is independent from the
// completion step.
type Service interface {
	ListDaily(ctx context.Context, playerID int64) ([]TaskView, error)
	ListSpecial(ctx context.Context, playerID int64) ([]TaskView, error)
	ClaimDaily(ctx context.Context, playerID int64, taskID, code string) (*ClaimResult, error)
	PurchaseSpecial(ctx context.Context, playerID int64, taskID string) (*ClaimResult, error)
	ClaimSpecial(ctx context.Context, playerID int64, taskID, code string) (*ClaimResult, error)
}

type service struct {
	repo   repository.Player
	config ConfigProvider
	bus    event.Bus
	now    func() time.Time // Injected for deterministic tests
}

// NewService creates a new task service
func NewService(repo repository.Player, config ConfigProvider, bus event.Bus) Service {
	return &service{
		repo:   repo,
		config: config,
		bus:    bus,
		now:    time.Now,
	}
}

func (s *service) ListDaily(ctx context.Context, playerID int64) ([]TaskView, error) {
	cfg, p, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(cfg.DailyTasks))
	for i := range cfg.DailyTasks {
		def := &cfg.DailyTasks[i]
		views = append(views, TaskView{
			ID:           def.ID,
			Name:         i18n.Pick(def.Name, p.Locale),
			Description:  i18n.Pick(def.Description, p.Locale),
			Type:         def.Type,
			Reward:       def.Reward,
			RequiredTaps: def.RequiredTaps,
			URL:          def.URL,
			Completed:    domain.ContainsID(p.CompletedDailyTaskIDs, def.ID),
		})
	}
	return views, nil
}

func (s *service) ListSpecial(ctx context.Context, playerID int64) ([]TaskView, error) {
	cfg, p, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(cfg.SpecialTasks))
	for i := range cfg.SpecialTasks {
		def := &cfg.SpecialTasks[i]
		views = append(views, TaskView{
			ID:          def.ID,
			Name:        i18n.Pick(def.Name, p.Locale),
			Description: i18n.Pick(def.Description, p.Locale),
			Type:        def.Type,
			Reward:      def.Reward,
			URL:         def.URL,
			PriceStars:  def.PriceStars,
			Purchased:   def.PriceStars == 0 || domain.ContainsID(p.PurchasedSpecialTaskIDs, def.ID),
			Completed:   domain.ContainsID(p.CompletedSpecialTaskIDs, def.ID),
		})
	}
	return views, nil
}

// ClaimDaily resolves a daily task claim. Taps-type tasks require the
// player's tap counter for the current day to have reached the threshold;
// video_code tasks require the secret code, matched case-insensitively.
// Link tasks (telegram_join, social_follow, video_watch) grant on claim
// since the external action cannot be verified server-side.
func (s *service) ClaimDaily(ctx context.Context, playerID int64, taskID, code string) (*ClaimResult, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	def := cfg.DailyTaskByID(taskID)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	// Captured before settlement so the event spans passive income too.
	oldBalance := p.Balance
	economy.Settle(p, s.now())

	if domain.ContainsID(p.CompletedDailyTaskIDs, taskID) {
		return nil, domain.ErrAlreadyCompleted
	}

	switch def.Type {
	case domain.TaskTypeTaps:
		if p.DailyTaps < def.RequiredTaps {
			return nil, fmt.Errorf("%w: %d/%d taps", domain.ErrNotYetEligible, p.DailyTaps, def.RequiredTaps)
		}
	case domain.TaskTypeVideoCode:
		if !codeMatches(code, def.SecretCode) {
			return nil, domain.ErrInvalidCode
		}
	}

	applyReward(p, def.Reward)
	p.CompletedDailyTaskIDs, _ = domain.AddID(p.CompletedDailyTaskIDs, taskID)

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.TasksClaimed.WithLabelValues(NamespaceDaily, taskID).Inc()
	if p.Balance != oldBalance {
		s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))
	}

	log.Info("Daily task claimed", "player_id", playerID, "task_id", taskID)
	return s.result(taskID, def.Reward, p), nil
}

// PurchaseSpecial unlocks a star-gated special task. Purchasing does not
// complete the task; the claim is a separate step.
func (s *service) PurchaseSpecial(ctx context.Context, playerID int64, taskID string) (*ClaimResult, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	def := cfg.SpecialTaskByID(taskID)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	if def.PriceStars <= 0 {
		return nil, fmt.Errorf("%w: task %s is not purchasable", domain.ErrInvalidInput, taskID)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	economy.Settle(p, s.now())

	if domain.ContainsID(p.PurchasedSpecialTaskIDs, taskID) {
		return nil, domain.ErrAlreadyCompleted
	}
	if p.Stars < def.PriceStars {
		return nil, fmt.Errorf("%w: need %d stars, have %d", domain.ErrInsufficientStars, def.PriceStars, p.Stars)
	}

	p.Stars -= def.PriceStars
	p.PurchasedSpecialTaskIDs, _ = domain.AddID(p.PurchasedSpecialTaskIDs, taskID)

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	log.Info("Special task purchased", "player_id", playerID, "task_id", taskID, "stars_paid", def.PriceStars)
	return s.result(taskID, domain.TaskReward{}, p), nil
}

// ClaimSpecial completes a one-time airdrop task. Star-gated tasks must have
// been purchased first, no matter whether the external action already
// happened.
func (s *service) ClaimSpecial(ctx context.Context, playerID int64, taskID, code string) (*ClaimResult, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	def := cfg.SpecialTaskByID(taskID)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}

	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	oldBalance := p.Balance
	economy.Settle(p, s.now())

	if domain.ContainsID(p.CompletedSpecialTaskIDs, taskID) {
		return nil, domain.ErrAlreadyCompleted
	}
	if def.PriceStars > 0 && !domain.ContainsID(p.PurchasedSpecialTaskIDs, taskID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPurchased, taskID)
	}
	if def.Type == domain.TaskTypeVideoCode && !codeMatches(code, def.SecretCode) {
		return nil, domain.ErrInvalidCode
	}

	applyReward(p, def.Reward)
	p.CompletedSpecialTaskIDs, _ = domain.AddID(p.CompletedSpecialTaskIDs, taskID)

	if err := s.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	metrics.TasksClaimed.WithLabelValues(NamespaceSpecial, taskID).Inc()
	if p.Balance != oldBalance {
		s.publish(ctx, event.NewBalanceChangedEvent(p.ID, oldBalance, p.Balance))
	}

	log.Info("Special task claimed", "player_id", playerID, "task_id", taskID)
	return s.result(taskID, def.Reward, p), nil
}

func (s *service) load(ctx context.Context, playerID int64) (*domain.GameConfig, *domain.PlayerState, error) {
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load game config: %w", err)
	}
	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player: %w", err)
	}
	return cfg, p, nil
}

func (s *service) result(taskID string, reward domain.TaskReward, p *domain.PlayerState) *ClaimResult {
	return &ClaimResult{
		TaskID:        taskID,
		Reward:        reward,
		Balance:       p.Balance,
		ProfitPerHour: p.ProfitPerHour,
		Stars:         p.Stars,
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

// applyReward credits a task reward: coins raise the balance, profit raises
// profitPerHour permanently on top of the upgrade-derived total.
func applyReward(p *domain.PlayerState, r domain.TaskReward) {
	switch r.Type {
	case domain.RewardProfit:
		p.ProfitBonus += r.Amount
		p.ProfitPerHour += r.Amount
	default:
		p.Balance += float64(r.Amount)
	}
}

func codeMatches(submitted, expected string) bool {
	return expected != "" && strings.EqualFold(strings.TrimSpace(submitted), expected)
}
