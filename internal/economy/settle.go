package economy

import (
	"time"

	"github.com/kovertlabs/deepcover/internal/domain"
)

// Settle brings a player document up to the current instant: it rolls the
// daily counters over if a new UTC day has started, then credits passive
// income and regenerates energy / decays suspicion for the elapsed time.
// Every command applies Settle before mutating state, which replaces the
// client's 1-second tick with an equivalent lazy computation.
func Settle(p *domain.PlayerState, now time.Time) {
	nowMillis := now.UnixMilli()

	DailyRollover(p, now)

	elapsed := float64(nowMillis-p.LastSettledAt) / 1000.0
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > MaxSettleGapSeconds {
		elapsed = MaxSettleGapSeconds
	}

	p.Balance += float64(p.ProfitPerHour) * elapsed / SecondsPerHour
	p.Energy += domain.EnergyRegenPerSec * elapsed
	p.Suspicion -= domain.SuspicionDecayPerSec * elapsed
	p.ClampResources()

	if p.TapMultiplier > 1 && nowMillis >= p.TapMultiplierUntil {
		p.TapMultiplier = 0
		p.TapMultiplierUntil = 0
	}

	p.LastSettledAt = nowMillis
}

// DailyRollover clears the day-scoped counters when the document's
// lastDailyReset falls on an earlier UTC calendar day than now. Balance,
// stars, and permanent upgrade levels are untouched. Returns whether a
// rollover happened.
func DailyRollover(p *domain.PlayerState, now time.Time) bool {
	if SameUTCDay(time.UnixMilli(p.LastDailyReset), now) {
		return false
	}

	p.DailyTaps = 0
	p.DailyUpgrades = nil
	p.CompletedDailyTaskIDs = nil
	p.ClaimedComboToday = false
	p.ClaimedCipherToday = false
	p.BoostDailyPurchases = make(map[string]int)
	p.LastDailyReset = now.UnixMilli()
	return true
}

// SameUTCDay reports whether two instants fall on the same UTC calendar day.
func SameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
