package glitch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/event"
)

var testNow = time.Date(2025, 6, 15, 4, 20, 0, 0, time.UTC)

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

func testConfig() *domain.GameConfig {
	return &domain.GameConfig{
		Version: 1,
		Glitches: []domain.GlitchEvent{
			{
				Code:    "NIGHTOWL",
				Trigger: domain.GlitchTrigger{Type: domain.GlitchTriggerLoginAtTime, Hour: 4, Minute: 20},
				Message: domain.LocalizedString{"en": "The static clears for a moment."},
				Reward:  domain.TaskReward{Type: domain.RewardCoins, Amount: 7777},
			},
			{
				Code:    "MILLION",
				Trigger: domain.GlitchTrigger{Type: domain.GlitchTriggerBalanceEquals, Balance: 1000000},
				Reward:  domain.TaskReward{Type: domain.RewardProfit, Amount: 500},
			},
			{
				Code:    "SAFECRACK",
				Trigger: domain.GlitchTrigger{Type: domain.GlitchTriggerUpgradePurchased, UpgradeID: "safehouse"},
				Reward:  domain.TaskReward{Type: domain.RewardCoins, Amount: 5000},
			},
			{
				Code:    "STATIC",
				Trigger: domain.GlitchTrigger{Type: domain.GlitchTriggerMetaTap, Taps: 10},
				Reward:  domain.TaskReward{Type: domain.RewardCoins, Amount: 1000},
			},
		},
	}
}

func testPlayer() *domain.PlayerState {
	p := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())
	p.Balance = 5000
	return p
}

func newTestService(players *MockPlayerRepo, config *MockConfigProvider, bus event.Bus) *service {
	svc := NewService(players, config, bus).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestLoginTriggerDiscovers(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)
	svc.Attach(bus)

	p := testPlayer()
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	err := bus.Publish(context.Background(), event.NewPlayerLoggedInEvent(42, testNow))

	assert.NoError(t, err)
	assert.Contains(t, p.DiscoveredGlitchCodes, "NIGHTOWL")
	assert.Empty(t, p.ClaimedGlitchCodes, "discovery never claims")
}

func TestLoginTriggerWrongTimeIsNoop(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)
	svc.Attach(bus)

	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	at := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	err := bus.Publish(context.Background(), event.NewPlayerLoggedInEvent(42, at))

	assert.NoError(t, err)
	players.AssertNotCalled(t, "GetPlayer", mock.Anything, mock.Anything)
}

func TestBalanceCrossingDiscoversOnce(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)
	svc.Attach(bus)

	p := testPlayer()
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	// Upward crossing discovers.
	err := bus.Publish(context.Background(), event.NewBalanceChangedEvent(42, 999999, 1000050))
	assert.NoError(t, err)
	assert.Contains(t, p.DiscoveredGlitchCodes, "MILLION")

	// Re-crossing is idempotent: no second save.
	err = bus.Publish(context.Background(), event.NewBalanceChangedEvent(42, 999000, 1000001))
	assert.NoError(t, err)
	assert.Len(t, p.DiscoveredGlitchCodes, 1)
	players.AssertNumberOfCalls(t, "SavePlayer", 1)
}

func TestBalanceBelowThresholdIsNoop(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)
	svc.Attach(bus)

	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	err := bus.Publish(context.Background(), event.NewBalanceChangedEvent(42, 100, 200))

	assert.NoError(t, err)
	players.AssertNotCalled(t, "GetPlayer", mock.Anything, mock.Anything)
}

func TestUpgradeTriggerDiscovers(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)
	svc.Attach(bus)

	p := testPlayer()
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	err := bus.Publish(context.Background(), event.NewUpgradePurchasedEvent(42, "safehouse", 1))

	assert.NoError(t, err)
	assert.Contains(t, p.DiscoveredGlitchCodes, "SAFECRACK")
}

func TestMetaTapTriggerThreshold(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)
	svc.Attach(bus)

	p := testPlayer()
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	err := bus.Publish(context.Background(), event.NewMetaTappedEvent(42, 9))
	assert.NoError(t, err)
	assert.Empty(t, p.DiscoveredGlitchCodes)

	err = bus.Publish(context.Background(), event.NewMetaTappedEvent(42, 10))
	assert.NoError(t, err)
	assert.Contains(t, p.DiscoveredGlitchCodes, "STATIC")
}

func TestSubmitCodeClaims(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := testPlayer()
	p.DiscoveredGlitchCodes = []string{"NIGHTOWL"}

	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	res, err := svc.SubmitCode(context.Background(), 42, "nightowl")

	assert.NoError(t, err)
	assert.Equal(t, "NIGHTOWL", res.Code)
	assert.Equal(t, 5000+7777.0, res.Balance)
	assert.Equal(t, []string{"NIGHTOWL"}, p.ClaimedGlitchCodes)
}

func TestSubmitCodeTwiceFails(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := testPlayer()
	p.DiscoveredGlitchCodes = []string{"NIGHTOWL"}
	p.ClaimedGlitchCodes = []string{"NIGHTOWL"}

	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)

	_, err := svc.SubmitCode(context.Background(), 42, "NIGHTOWL")

	assert.ErrorIs(t, err, domain.ErrInvalidCode)
	assert.Equal(t, []string{"NIGHTOWL"}, p.ClaimedGlitchCodes, "no duplicate entry")
	players.AssertNotCalled(t, "SavePlayer", mock.Anything, mock.Anything)
}

func TestSubmitUnknownCodeFails(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	_, err := svc.SubmitCode(context.Background(), 42, "BOGUS")

	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestSubmitProfitRewardCode(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := testPlayer()

	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	res, err := svc.SubmitCode(context.Background(), 42, "MILLION")

	assert.NoError(t, err)
	assert.Equal(t, 500, res.ProfitPerHour)
	assert.Equal(t, 500, p.ProfitBonus)
	assert.Equal(t, 5000.0, p.Balance, "profit rewards leave balance alone")
}

func TestPendingDiscoveriesAndMarkShown(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := testPlayer()
	p.DiscoveredGlitchCodes = []string{"NIGHTOWL", "STATIC"}
	p.ShownGlitchCodes = []string{"STATIC"}

	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	views, err := svc.PendingDiscoveries(context.Background(), 42)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "NIGHTOWL", views[0].Code)
	assert.Equal(t, "The static clears for a moment.", views[0].Message)

	err = svc.MarkShown(context.Background(), 42, []string{"NIGHTOWL", "BOGUS"})
	assert.NoError(t, err)
	assert.Contains(t, p.ShownGlitchCodes, "NIGHTOWL")
	assert.NotContains(t, p.ShownGlitchCodes, "BOGUS")
}
