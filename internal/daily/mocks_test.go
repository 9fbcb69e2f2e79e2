package daily

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

// MockEventRepo implements repository.GameConfig for testing
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) GetConfig(ctx context.Context) (*domain.GameConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameConfig), args.Error(1)
}

func (m *MockEventRepo) SaveConfig(ctx context.Context, cfg *domain.GameConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockEventRepo) GetDailyEvent(ctx context.Context, day string) (*domain.DailyEvent, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyEvent), args.Error(1)
}

func (m *MockEventRepo) UpsertDailyEvent(ctx context.Context, event *domain.DailyEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
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
		Upgrades: []domain.Upgrade{
			{ID: "fake_passport", BasePrice: 100, BaseProfitPerHour: 50, Category: domain.CategoryDocuments},
			{ID: "tax_lawyer", BasePrice: 500, BaseProfitPerHour: 200, Category: domain.CategoryLegal},
			{ID: "safehouse", BasePrice: 2000, BaseProfitPerHour: 700, Category: domain.CategorySpecial},
			{ID: "burner_phone", BasePrice: 250, BaseProfitPerHour: 90, Category: domain.CategoryDocuments},
		},
	}
}

func testPlayer(now time.Time) *domain.PlayerState {
	nowMs := now.UnixMilli()
	p := domain.NewPlayerState(42, "agent42", nowMs)
	p.Balance = 100000
	return p
}

func testEvent(day time.Time) *domain.DailyEvent {
	return &domain.DailyEvent{
		Day:          day.UTC().Format(DayFormat),
		ComboIDs:     []string{"fake_passport", "tax_lawyer", "safehouse"},
		ComboReward:  DefaultComboReward,
		CipherWord:   "AGENT",
		CipherReward: DefaultCipherReward,
	}
}
