package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/event"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

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
		Upgrades: []domain.Upgrade{
			{ID: "fake_passport", BasePrice: 100, BaseProfitPerHour: 50, Category: domain.CategoryDocuments},
			{ID: "tax_lawyer", BasePrice: 500, BaseProfitPerHour: 200, Category: domain.CategoryLegal},
		},
	}
}

func newTestService(players *MockPlayerRepo, config *MockConfigProvider, bus event.Bus) *service {
	svc := NewService(players, config, bus).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestLoginCreatesPlayer(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	players.On("GetPlayer", mock.Anything, int64(42)).Return(nil, domain.ErrPlayerNotFound)
	players.On("CreatePlayer", mock.Anything, mock.Anything).Return(nil)

	view, err := svc.Login(context.Background(), LoginInput{PlayerID: 42, Username: "agent42", Locale: "de"})

	assert.NoError(t, err)
	assert.True(t, view.Created)
	assert.Equal(t, int64(42), view.Player.ID)
	assert.Equal(t, "de", view.Player.Locale)
	assert.Equal(t, float64(domain.BaseMaxEnergy), view.Player.Energy)
	players.AssertNotCalled(t, "CreditReferral", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginCreditsReferralOnce(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	players.On("GetPlayer", mock.Anything, int64(42)).Return(nil, domain.ErrPlayerNotFound)
	players.On("CreatePlayer", mock.Anything, mock.Anything).Return(nil)
	players.On("CreditReferral", mock.Anything, int64(7), float64(domain.ReferralBonus)).Return(float64(domain.ReferralBonus), nil)

	view, err := svc.Login(context.Background(), LoginInput{PlayerID: 42, Username: "agent42", ReferrerID: 7})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), view.Player.ReferrerID)
	players.AssertExpectations(t)
}

func TestLoginAnnouncesReferralCredit(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)

	var got event.Event
	bus.Subscribe(event.BalanceChanged, func(ctx context.Context, e event.Event) error {
		got = e
		return nil
	})

	players.On("GetPlayer", mock.Anything, int64(42)).Return(nil, domain.ErrPlayerNotFound)
	players.On("CreatePlayer", mock.Anything, mock.Anything).Return(nil)
	players.On("CreditReferral", mock.Anything, int64(7), float64(domain.ReferralBonus)).
		Return(2000+float64(domain.ReferralBonus), nil)

	_, err := svc.Login(context.Background(), LoginInput{PlayerID: 42, Username: "agent42", ReferrerID: 7})

	assert.NoError(t, err)
	payload, ok := got.Payload.(event.BalanceChangedPayloadV1)
	assert.True(t, ok)
	assert.Equal(t, int64(7), payload.PlayerID)
	assert.Equal(t, 2000.0, payload.OldBalance)
	assert.Equal(t, 2000+float64(domain.ReferralBonus), payload.NewBalance)
}

func TestLoginIgnoresSelfReferral(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	players.On("GetPlayer", mock.Anything, int64(42)).Return(nil, domain.ErrPlayerNotFound)
	players.On("CreatePlayer", mock.Anything, mock.Anything).Return(nil)

	view, err := svc.Login(context.Background(), LoginInput{PlayerID: 42, ReferrerID: 42})

	assert.NoError(t, err)
	assert.Zero(t, view.Player.ReferrerID)
	players.AssertNotCalled(t, "CreditReferral", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginDoesNotReapplyReferral(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	existing := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())
	existing.ReferrerID = 7

	players.On("GetPlayer", mock.Anything, int64(42)).Return(existing, nil)
	players.On("SavePlayer", mock.Anything, existing).Return(nil)

	// Referrer id present on a later login must not credit again.
	view, err := svc.Login(context.Background(), LoginInput{PlayerID: 42, Username: "agent42", ReferrerID: 7})

	assert.NoError(t, err)
	assert.False(t, view.Created)
	players.AssertNotCalled(t, "CreditReferral", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginPublishesEvent(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)

	var got event.Event
	bus.Subscribe(event.PlayerLoggedIn, func(ctx context.Context, e event.Event) error {
		got = e
		return nil
	})

	existing := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())
	players.On("GetPlayer", mock.Anything, int64(42)).Return(existing, nil)
	players.On("SavePlayer", mock.Anything, existing).Return(nil)

	_, err := svc.Login(context.Background(), LoginInput{PlayerID: 42})

	assert.NoError(t, err)
	payload, ok := got.Payload.(event.PlayerLoggedInPayloadV1)
	assert.True(t, ok)
	assert.Equal(t, int64(42), payload.PlayerID)
	assert.Equal(t, testNow.UnixMilli(), payload.LoginAt)
}

func TestGetStateSettlesPassiveIncome(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	// Last settled two hours ago with 600 profit/hour.
	p := domain.NewPlayerState(42, "agent42", testNow.Add(-2*time.Hour).UnixMilli())
	p.Balance = 1000
	p.ProfitPerHour = 600

	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	view, err := svc.GetState(context.Background(), 42)

	assert.NoError(t, err)
	assert.InDelta(t, 2200.0, view.Player.Balance, 0.01)
	assert.Equal(t, testNow.UnixMilli(), view.Player.LastSettledAt)
}

func TestGetStateAnnouncesSettledIncome(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	bus := event.NewMemoryBus()
	svc := newTestService(players, config, bus)

	var got event.Event
	bus.Subscribe(event.BalanceChanged, func(ctx context.Context, e event.Event) error {
		got = e
		return nil
	})

	p := domain.NewPlayerState(42, "agent42", testNow.Add(-time.Hour).UnixMilli())
	p.Balance = 990
	p.ProfitPerHour = 600

	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	_, err := svc.GetState(context.Background(), 42)

	// The published span starts at the pre-settlement balance so threshold
	// crossings driven purely by passive income are observable.
	assert.NoError(t, err)
	payload, ok := got.Payload.(event.BalanceChangedPayloadV1)
	assert.True(t, ok)
	assert.Equal(t, 990.0, payload.OldBalance)
	assert.InDelta(t, 1590.0, payload.NewBalance, 0.01)
}

func TestSyncAcceptsHonestDocument(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())
	p.Balance = 1000
	p.Upgrades = map[string]int{"fake_passport": 2}
	p.ProfitPerHour = 57 // floor(50 * 1.07^2)

	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	// 50 offline taps at 1 coin each.
	view, err := svc.SyncState(context.Background(), 42, SyncRequest{
		Balance:       1050,
		ProfitPerHour: 57,
		DailyTaps:     50,
		Upgrades:      map[string]int{"fake_passport": 2},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1050.0, view.Player.Balance)
	assert.Equal(t, 50, view.Player.DailyTaps)
}

func TestSyncRejectsFabricatedProfit(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())
	p.Upgrades = map[string]int{"fake_passport": 2}
	p.ProfitPerHour = 57

	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	_, err := svc.SyncState(context.Background(), 42, SyncRequest{
		Balance:       0,
		ProfitPerHour: 999999,
		Upgrades:      map[string]int{"fake_passport": 2},
	})

	assert.ErrorIs(t, err, domain.ErrStateIntegrity)
	players.AssertNotCalled(t, "SavePlayer", mock.Anything, mock.Anything)
}

func TestSyncRejectsFabricatedBalance(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())
	p.Balance = 1000

	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	_, err := svc.SyncState(context.Background(), 42, SyncRequest{
		Balance:   5000000, // No taps can explain this
		DailyTaps: 10,
		Upgrades:  map[string]int{},
	})

	assert.ErrorIs(t, err, domain.ErrStateIntegrity)
}

func TestSyncRejectsFabricatedLevels(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())
	p.Upgrades = map[string]int{"fake_passport": 1}
	p.ProfitPerHour = 53

	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	_, err := svc.SyncState(context.Background(), 42, SyncRequest{
		ProfitPerHour: 53,
		Upgrades:      map[string]int{"fake_passport": 5},
	})

	assert.ErrorIs(t, err, domain.ErrStateIntegrity)
}

func TestSyncEnergyGatesOfflineTaps(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())
	p.Balance = 0
	p.Energy = 10

	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	// Client claims 500 taps but only 10 energy is available, so the
	// recomputed balance stops at 10 and the claimed 500 diverges.
	_, err := svc.SyncState(context.Background(), 42, SyncRequest{
		Balance:   500,
		DailyTaps: 500,
		Upgrades:  map[string]int{},
	})

	assert.ErrorIs(t, err, domain.ErrStateIntegrity)
}

func TestSyncConflictPropagates(t *testing.T) {
	players := new(MockPlayerRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, config, nil)

	p := domain.NewPlayerState(42, "agent42", testNow.UnixMilli())

	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(domain.ErrConflict)
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	_, err := svc.SyncState(context.Background(), 42, SyncRequest{Upgrades: map[string]int{}})

	assert.ErrorIs(t, err, domain.ErrConflict)
}
