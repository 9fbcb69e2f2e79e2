package task

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kovertlabs/deepcover/internal/domain"
)

// MockPlayerRepo implements repository.Player for testing
type MockPlayerRepo struct {
	mock.Mock
}

func (m *MockPlayerRepo) GetPlayer(ctx context.Context, id int64) (*domain.PlayerState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerState), args.Error(1)
}

func (m *MockPlayerRepo) CreatePlayer(ctx context.Context, p *domain.PlayerState) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlayerRepo) SavePlayer(ctx context.Context, p *domain.PlayerState) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlayerRepo) CreditReferral(ctx context.Context, referrerID int64, bonus float64) (float64, error) {
	args := m.Called(ctx, referrerID, bonus)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPlayerRepo) TopBalances(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

// MockConfigProvider implements ConfigProvider for testing
type MockConfigProvider struct {
	mock.Mock
}

func (m *MockConfigProvider) Snapshot(ctx context.Context) (*domain.GameConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameConfig), args.Error(1)
}

// Test fixtures

func testConfig() *domain.GameConfig {
	return &domain.GameConfig{
		Version: 1,
		DailyTasks: []domain.DailyTask{
			{
				ID:           "tap_quota",
				Name:         domain.LocalizedString{"en": "Field Exercise"},
				Type:         domain.TaskTypeTaps,
				Reward:       domain.TaskReward{Type: domain.RewardCoins, Amount: 1000},
				RequiredTaps: 100,
			},
			{
				ID:         "briefing_video",
				Name:       domain.LocalizedString{"en": "Watch the Briefing"},
				Type:       domain.TaskTypeVideoCode,
				Reward:     domain.TaskReward{Type: domain.RewardProfit, Amount: 200},
				URL:        "https://example.com/briefing",
				SecretCode: "MOLE",
			},
			{
				ID:     "join_channel",
				Name:   domain.LocalizedString{"en": "Join the Channel"},
				Type:   domain.TaskTypeTelegramJoin,
				Reward: domain.TaskReward{Type: domain.RewardCoins, Amount: 500},
				URL:    "https://t.me/example",
			},
		},
		SpecialTasks: []domain.SpecialTask{
			{
				ID:         "vip_drop",
				Name:       domain.LocalizedString{"en": "VIP Drop"},
				Type:       domain.TaskTypeSocialFollow,
				Reward:     domain.TaskReward{Type: domain.RewardCoins, Amount: 25000},
				URL:        "https://example.com/vip",
				PriceStars: 5,
			},
			{
				ID:     "open_drop",
				Name:   domain.LocalizedString{"en": "Open Drop"},
				Type:   domain.TaskTypeVideoWatch,
				Reward: domain.TaskReward{Type: domain.RewardCoins, Amount: 2000},
				URL:    "https://example.com/open",
			},
		},
	}
}

func testPlayer(now time.Time) *domain.PlayerState {
	p := domain.NewPlayerState(42, "agent42", now.UnixMilli())
	p.Balance = 10000
	p.Stars = 10
	return p
}
