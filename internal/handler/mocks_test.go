package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kovertlabs/deepcover/internal/boost"
	"github.com/kovertlabs/deepcover/internal/daily"
	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/economy"
	"github.com/kovertlabs/deepcover/internal/event"
	"github.com/kovertlabs/deepcover/internal/glitch"
	"github.com/kovertlabs/deepcover/internal/league"
	"github.com/kovertlabs/deepcover/internal/lootbox"
	"github.com/kovertlabs/deepcover/internal/player"
	"github.com/kovertlabs/deepcover/internal/task"
)

// In-package mocks for the service interfaces the handlers depend on.

type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) Login(ctx context.Context, in player.LoginInput) (*player.StateView, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*player.StateView), args.Error(1)
}

func (m *MockPlayerService) GetState(ctx context.Context, playerID int64) (*player.StateView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*player.StateView), args.Error(1)
}

func (m *MockPlayerService) SyncState(ctx context.Context, playerID int64, req player.SyncRequest) (*player.StateView, error) {
	args := m.Called(ctx, playerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*player.StateView), args.Error(1)
}

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) Tap(ctx context.Context, playerID int64, count int) (*economy.TapResult, error) {
	args := m.Called(ctx, playerID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.TapResult), args.Error(1)
}

func (m *MockEconomyService) MetaTap(ctx context.Context, playerID int64, count int) error {
	args := m.Called(ctx, playerID, count)
	return args.Error(0)
}

func (m *MockEconomyService) BuyUpgrade(ctx context.Context, playerID int64, upgradeID string) (*economy.PurchaseResult, error) {
	args := m.Called(ctx, playerID, upgradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.PurchaseResult), args.Error(1)
}

func (m *MockEconomyService) ListUpgrades(ctx context.Context, playerID int64) ([]economy.UpgradeView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]economy.UpgradeView), args.Error(1)
}

type MockDailyService struct {
	mock.Mock
}

func (m *MockDailyService) CurrentEvent(ctx context.Context) (*domain.DailyEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyEvent), args.Error(1)
}

func (m *MockDailyService) ClaimCombo(ctx context.Context, playerID int64) (*daily.ClaimResult, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*daily.ClaimResult), args.Error(1)
}

func (m *MockDailyService) ClaimCipher(ctx context.Context, playerID int64, word string) (*daily.ClaimResult, error) {
	args := m.Called(ctx, playerID, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*daily.ClaimResult), args.Error(1)
}

func (m *MockDailyService) Rotate(ctx context.Context, day time.Time) (*domain.DailyEvent, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyEvent), args.Error(1)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListDaily(ctx context.Context, playerID int64) ([]task.TaskView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.TaskView), args.Error(1)
}

func (m *MockTaskService) ListSpecial(ctx context.Context, playerID int64) ([]task.TaskView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.TaskView), args.Error(1)
}

func (m *MockTaskService) ClaimDaily(ctx context.Context, playerID int64, taskID, code string) (*task.ClaimResult, error) {
	args := m.Called(ctx, playerID, taskID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.ClaimResult), args.Error(1)
}

func (m *MockTaskService) PurchaseSpecial(ctx context.Context, playerID int64, taskID string) (*task.ClaimResult, error) {
	args := m.Called(ctx, playerID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.ClaimResult), args.Error(1)
}

func (m *MockTaskService) ClaimSpecial(ctx context.Context, playerID int64, taskID, code string) (*task.ClaimResult, error) {
	args := m.Called(ctx, playerID, taskID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.ClaimResult), args.Error(1)
}

type MockLootboxService struct {
	mock.Mock
}

func (m *MockLootboxService) List(ctx context.Context, playerID int64) ([]lootbox.BoxView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lootbox.BoxView), args.Error(1)
}

func (m *MockLootboxService) Open(ctx context.Context, playerID int64, lootboxID string) (*lootbox.OpenResult, error) {
	args := m.Called(ctx, playerID, lootboxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lootbox.OpenResult), args.Error(1)
}

type MockBoostService struct {
	mock.Mock
}

func (m *MockBoostService) List(ctx context.Context, playerID int64) ([]boost.BoostView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]boost.BoostView), args.Error(1)
}

func (m *MockBoostService) Buy(ctx context.Context, playerID int64, boostID string) (*boost.BuyResult, error) {
	args := m.Called(ctx, playerID, boostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*boost.BuyResult), args.Error(1)
}

type MockGlitchService struct {
	mock.Mock
}

func (m *MockGlitchService) Attach(bus event.Bus) {
	m.Called(bus)
}

func (m *MockGlitchService) PendingDiscoveries(ctx context.Context, playerID int64) ([]glitch.DiscoveryView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]glitch.DiscoveryView), args.Error(1)
}

func (m *MockGlitchService) MarkShown(ctx context.Context, playerID int64, codes []string) error {
	args := m.Called(ctx, playerID, codes)
	return args.Error(0)
}

func (m *MockGlitchService) SubmitCode(ctx context.Context, playerID int64, code string) (*glitch.ClaimResult, error) {
	args := m.Called(ctx, playerID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*glitch.ClaimResult), args.Error(1)
}

type MockCellService struct {
	mock.Mock
}

func (m *MockCellService) Create(ctx context.Context, playerID int64, name string) (*domain.CellView, error) {
	args := m.Called(ctx, playerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CellView), args.Error(1)
}

func (m *MockCellService) Join(ctx context.Context, playerID int64, inviteCode string) (*domain.CellView, error) {
	args := m.Called(ctx, playerID, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CellView), args.Error(1)
}

func (m *MockCellService) Leave(ctx context.Context, playerID int64) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *MockCellService) View(ctx context.Context, playerID int64) (*domain.CellView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CellView), args.Error(1)
}

func (m *MockCellService) HireInformant(ctx context.Context, playerID int64, name string) (*domain.CellView, error) {
	args := m.Called(ctx, playerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CellView), args.Error(1)
}

func (m *MockCellService) SettleBattleRound(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockLeagueService struct {
	mock.Mock
}

func (m *MockLeagueService) PlayerLeague(ctx context.Context, playerID int64) (*league.LeagueView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*league.LeagueView), args.Error(1)
}

func (m *MockLeagueService) ListForPlayer(ctx context.Context, playerID int64) ([]league.LeagueView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]league.LeagueView), args.Error(1)
}

func (m *MockLeagueService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}
