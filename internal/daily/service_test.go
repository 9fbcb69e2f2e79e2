package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kovertlabs/deepcover/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(players *MockPlayerRepo, events *MockEventRepo, config *MockConfigProvider) *service {
	svc := NewService(players, events, config, nil).(*service)
	svc.now = func() time.Time { return testNow }
	calls := 0
	svc.randInt = func(min, max int) int {
		calls++
		return min + (calls-1)%(max-min+1)
	}
	return svc
}

func TestCurrentEventReturnsStoredEvent(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	stored := testEvent(testNow)
	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(stored, nil)

	ev, err := svc.CurrentEvent(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, stored, ev)
	events.AssertExpectations(t)
}

func TestCurrentEventRotatesWhenMissing(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(nil, nil)
	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	events.On("UpsertDailyEvent", mock.Anything, mock.Anything).Return(nil)

	ev, err := svc.CurrentEvent(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "2025-06-15", ev.Day)
	assert.Len(t, ev.ComboIDs, domain.ComboSize)
	assert.NotEmpty(t, ev.CipherWord)
	events.AssertExpectations(t)
}

func TestClaimComboSuccess(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	p := testPlayer(testNow)
	p.DailyUpgrades = []string{"fake_passport", "tax_lawyer", "safehouse"}

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(testEvent(testNow), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	res, err := svc.ClaimCombo(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, DefaultComboReward, res.Reward)
	assert.Equal(t, 100000+float64(DefaultComboReward), res.Balance)
	assert.True(t, p.ClaimedComboToday)
	players.AssertExpectations(t)
}

func TestClaimComboTwiceFails(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	p := testPlayer(testNow)
	p.DailyUpgrades = []string{"fake_passport", "tax_lawyer", "safehouse"}
	p.ClaimedComboToday = true

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(testEvent(testNow), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)

	_, err := svc.ClaimCombo(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	players.AssertNotCalled(t, "SavePlayer", mock.Anything, mock.Anything)
}

func TestClaimComboMissingUpgrade(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	p := testPlayer(testNow)
	p.DailyUpgrades = []string{"fake_passport", "tax_lawyer"} // Safehouse missing

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(testEvent(testNow), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)

	_, err := svc.ClaimCombo(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrComboNotEligible)
}

func TestClaimComboUpgradesFromYesterdayDoNotCount(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	// Player bought all three combo upgrades yesterday; the rollover inside
	// the claim clears DailyUpgrades before eligibility is checked.
	yesterday := testNow.Add(-24 * time.Hour)
	p := testPlayer(yesterday)
	p.DailyUpgrades = []string{"fake_passport", "tax_lawyer", "safehouse"}

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(testEvent(testNow), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)

	_, err := svc.ClaimCombo(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrComboNotEligible)
	assert.Empty(t, p.DailyUpgrades)
}

func TestClaimComboInactiveEvent(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	ev := testEvent(testNow)
	ev.ComboIDs = nil

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(ev, nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(testPlayer(testNow), nil)

	_, err := svc.ClaimCombo(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrComboNotEligible)
}

func TestClaimCipherSuccess(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	p := testPlayer(testNow)

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(testEvent(testNow), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)
	players.On("SavePlayer", mock.Anything, p).Return(nil)

	res, err := svc.ClaimCipher(context.Background(), 42, "agent")

	assert.NoError(t, err)
	assert.Equal(t, DefaultCipherReward, res.Reward)
	assert.True(t, p.ClaimedCipherToday)
	players.AssertExpectations(t)
}

func TestClaimCipherWrongWord(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(testEvent(testNow), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(testPlayer(testNow), nil)

	_, err := svc.ClaimCipher(context.Background(), 42, "GHOST")

	assert.ErrorIs(t, err, domain.ErrCipherMismatch)
	players.AssertNotCalled(t, "SavePlayer", mock.Anything, mock.Anything)
}

func TestClaimCipherTwiceFails(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	p := testPlayer(testNow)
	p.ClaimedCipherToday = true

	events.On("GetDailyEvent", mock.Anything, "2025-06-15").Return(testEvent(testNow), nil)
	players.On("GetPlayer", mock.Anything, int64(42)).Return(p, nil)

	_, err := svc.ClaimCipher(context.Background(), 42, "AGENT")

	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
}

func TestRotatePicksDistinctComboIDs(t *testing.T) {
	players := new(MockPlayerRepo)
	events := new(MockEventRepo)
	config := new(MockConfigProvider)
	svc := newTestService(players, events, config)

	config.On("Snapshot", mock.Anything).Return(testConfig(), nil)
	events.On("UpsertDailyEvent", mock.Anything, mock.Anything).Return(nil)

	ev, err := svc.Rotate(context.Background(), testNow)

	assert.NoError(t, err)
	assert.Len(t, ev.ComboIDs, domain.ComboSize)
	seen := map[string]bool{}
	for _, id := range ev.ComboIDs {
		assert.False(t, seen[id], "combo ids must be distinct")
		seen[id] = true
	}
	assert.Contains(t, cipherWords, ev.CipherWord)
	assert.Equal(t, "2025-06-15", ev.Day)
	events.AssertExpectations(t)
}
