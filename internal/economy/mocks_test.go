package economy

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/event"
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
		Upgrades: []domain.Upgrade{
			{
				ID:                "fake_passport",
				Name:              domain.LocalizedString{"en": "Forged Passport"},
				BasePrice:         100,
				BaseProfitPerHour: 50,
				Category:          domain.CategoryDocuments,
				SuspicionModifier: 2,
			},
			{
				ID:                "tax_lawyer",
				Name:              domain.LocalizedString{"en": "Tax Lawyer"},
				BasePrice:         500,
				BaseProfitPerHour: 200,
				Category:          domain.CategoryLegal,
				SuspicionModifier: -5,
			},
			{
				ID:                "safehouse",
				Name:              domain.LocalizedString{"en": "Safehouse"},
				BasePrice:         2000,
				BaseProfitPerHour: 700,
				Category:          domain.CategorySpecial,
				SuspicionModifier: 10,
			},
		},
	}
}

func testPlayer(id int64, balance float64) *domain.PlayerState {
	p := domain.NewPlayerState(id, "agent47", 0)
	p.Balance = balance
	return p
}

var _ event.Bus = (*event.MemoryBus)(nil)
