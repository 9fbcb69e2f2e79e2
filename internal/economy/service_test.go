package economy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/event"
)

func newTestService(repo *MockPlayerRepo, cfg *MockConfigProvider, now time.Time) *service {
	svc := NewService(repo, cfg, event.NewMemoryBus()).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestTap(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("applies full batch", func(t *testing.T) {
		repo := new(MockPlayerRepo)
		p := testPlayer(1, 0)
		p.LastSettledAt = now.UnixMilli()
		p.LastDailyReset = now.UnixMilli()
		p.Energy = 100

		repo.On("GetPlayer", mock.Anything, int64(1)).Return(p, nil)
		repo.On("SavePlayer", mock.Anything, p).Return(nil)

		svc := newTestService(repo, new(MockConfigProvider), now)
		result, err := svc.Tap(context.Background(), 1, 50)

		require.NoError(t, err)
		assert.Equal(t, 50, result.TapsApplied)
		assert.Equal(t, 50.0, result.CoinsGained)
		assert.Equal(t, 50.0, result.Balance)
		assert.Equal(t, 50.0, result.Energy)
		assert.Equal(t, 50, result.DailyTaps)
		repo.AssertExpectations(t)
	})

	t.Run("stops when energy runs out", func(t *testing.T) {
		repo := new(MockPlayerRepo)
		p := testPlayer(1, 0)
		p.LastSettledAt = now.UnixMilli()
		p.LastDailyReset = now.UnixMilli()
		p.Energy = 10

		repo.On("GetPlayer", mock.Anything, int64(1)).Return(p, nil)
		repo.On("SavePlayer", mock.Anything, p).Return(nil)

		svc := newTestService(repo, new(MockConfigProvider), now)
		result, err := svc.Tap(context.Background(), 1, 500)

		require.NoError(t, err)
		assert.Equal(t, 10, result.TapsApplied)
		assert.Equal(t, 0.0, result.Energy)
		assert.GreaterOrEqual(t, result.Energy, 0.0, "energy never goes negative")
	})

	t.Run("rejects invalid count", func(t *testing.T) {
		svc := newTestService(new(MockPlayerRepo), new(MockConfigProvider), now)

		_, err := svc.Tap(context.Background(), 1, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Tap(context.Background(), 1, MaxTapsPerCommand+1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("tap guru boost raises yield", func(t *testing.T) {
		repo := new(MockPlayerRepo)
		p := testPlayer(1, 0)
		p.LastSettledAt = now.UnixMilli()
		p.LastDailyReset = now.UnixMilli()
		p.Energy = 100
		p.BoostLevels[domain.BoostTapGuru] = 4 // yield 5

		repo.On("GetPlayer", mock.Anything, int64(1)).Return(p, nil)
		repo.On("SavePlayer", mock.Anything, p).Return(nil)

		svc := newTestService(repo, new(MockConfigProvider), now)
		result, err := svc.Tap(context.Background(), 1, 10)

		require.NoError(t, err)
		assert.Equal(t, 50.0, result.CoinsGained)
		assert.Equal(t, 50.0, result.Energy)
	})
}

func TestTapBalanceEventSpansPassiveIncome(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	repo := new(MockPlayerRepo)
	p := testPlayer(1, 990)
	// 3600/hour accrues 1 coin per second; 100s elapsed carries the balance
	// past 1000 during settlement, before the tap itself lands.
	p.ProfitPerHour = 3600
	p.LastSettledAt = now.Add(-100 * time.Second).UnixMilli()
	p.LastDailyReset = now.UnixMilli()
	p.Energy = 100

	repo.On("GetPlayer", mock.Anything, int64(1)).Return(p, nil)
	repo.On("SavePlayer", mock.Anything, p).Return(nil)

	bus := event.NewMemoryBus()
	var got event.Event
	bus.Subscribe(event.BalanceChanged, func(ctx context.Context, e event.Event) error {
		got = e
		return nil
	})

	svc := NewService(repo, new(MockConfigProvider), bus).(*service)
	svc.now = func() time.Time { return now }

	_, err := svc.Tap(context.Background(), 1, 1)
	require.NoError(t, err)

	payload, ok := got.Payload.(event.BalanceChangedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, 990.0, payload.OldBalance)
	assert.InDelta(t, 1091.0, payload.NewBalance, 0.01)
	// An upward crossing of 1000 is visible to subscribers.
	assert.Less(t, payload.OldBalance, 1000.0)
	assert.GreaterOrEqual(t, payload.NewBalance, 1000.0)
}

func TestBuyUpgrade(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	setup := func(balance float64) (*MockPlayerRepo, *MockConfigProvider, *domain.PlayerState) {
		repo := new(MockPlayerRepo)
		cfg := new(MockConfigProvider)
		cfg.On("Snapshot", mock.Anything).Return(testConfig(), nil)

		p := testPlayer(1, balance)
		p.LastSettledAt = now.UnixMilli()
		p.LastDailyReset = now.UnixMilli()
		repo.On("GetPlayer", mock.Anything, int64(1)).Return(p, nil)
		return repo, cfg, p
	}

	t.Run("success", func(t *testing.T) {
		repo, cfg, p := setup(1000)
		repo.On("SavePlayer", mock.Anything, p).Return(nil)

		svc := newTestService(repo, cfg, now)
		result, err := svc.BuyUpgrade(context.Background(), 1, "fake_passport")

		require.NoError(t, err)
		assert.Equal(t, 1, result.NewLevel)
		assert.Equal(t, 100.0, result.PricePaid)
		assert.Equal(t, 900.0, result.Balance)
		assert.Equal(t, 53, result.ProfitPerHour) // floor(50 * 1.07)
		assert.Equal(t, 115.0, result.NextPrice)
		assert.Contains(t, p.DailyUpgrades, "fake_passport")
		assert.Equal(t, 2.0, p.Suspicion)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		repo, cfg, _ := setup(99)

		svc := newTestService(repo, cfg, now)
		_, err := svc.BuyUpgrade(context.Background(), 1, "fake_passport")

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		repo.AssertNotCalled(t, "SavePlayer", mock.Anything, mock.Anything)
	})

	t.Run("unknown upgrade", func(t *testing.T) {
		repo := new(MockPlayerRepo)
		cfg := new(MockConfigProvider)
		cfg.On("Snapshot", mock.Anything).Return(testConfig(), nil)

		svc := newTestService(repo, cfg, now)
		_, err := svc.BuyUpgrade(context.Background(), 1, "nonexistent")

		assert.ErrorIs(t, err, domain.ErrUpgradeNotFound)
	})

	t.Run("special category blocked at max suspicion", func(t *testing.T) {
		repo, cfg, p := setup(100000)
		p.Suspicion = p.EffectiveMaxSuspicion()

		svc := newTestService(repo, cfg, now)
		_, err := svc.BuyUpgrade(context.Background(), 1, "safehouse")

		assert.ErrorIs(t, err, domain.ErrNotYetEligible)
	})

	t.Run("price grows with level", func(t *testing.T) {
		repo, cfg, p := setup(1000)
		p.Upgrades["fake_passport"] = 2
		repo.On("SavePlayer", mock.Anything, p).Return(nil)

		svc := newTestService(repo, cfg, now)
		result, err := svc.BuyUpgrade(context.Background(), 1, "fake_passport")

		require.NoError(t, err)
		assert.Equal(t, 3, result.NewLevel)
		assert.Equal(t, 132.0, result.PricePaid) // floor(100 * 1.15^2)
	})

	t.Run("negative suspicion modifier launders suspicion", func(t *testing.T) {
		repo, cfg, p := setup(1000)
		p.Suspicion = 50
		repo.On("SavePlayer", mock.Anything, p).Return(nil)

		svc := newTestService(repo, cfg, now)
		result, err := svc.BuyUpgrade(context.Background(), 1, "tax_lawyer")

		require.NoError(t, err)
		assert.Equal(t, 45.0, result.Suspicion)
	})
}

func TestListUpgrades(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	repo := new(MockPlayerRepo)
	cfg := new(MockConfigProvider)
	cfg.On("Snapshot", mock.Anything).Return(testConfig(), nil)

	p := testPlayer(1, 0)
	p.Upgrades["fake_passport"] = 2
	repo.On("GetPlayer", mock.Anything, int64(1)).Return(p, nil)

	svc := newTestService(repo, cfg, now)
	views, err := svc.ListUpgrades(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "fake_passport", views[0].ID)
	assert.Equal(t, "Forged Passport", views[0].Name)
	assert.Equal(t, 2, views[0].Level)
	assert.Equal(t, 132.0, views[0].Price)
	assert.Equal(t, 57, views[0].ProfitPerHour)
	assert.Equal(t, 0, views[1].Level)
	assert.Equal(t, 0, views[1].ProfitPerHour, "unowned upgrades display zero profit")
}
