package domain

// PlayerState is the authoritative per-player document. It is persisted as a
// single JSONB document keyed by the Telegram user id, with an optimistic
// version counter; a stale write fails with ErrConflict instead of silently
// losing updates.
type PlayerState struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Locale   string `json:"locale,omitempty"`

	Balance       float64 `json:"balance"`
	Energy        float64 `json:"energy"`
	Suspicion     float64 `json:"suspicion"`
	ProfitPerHour int     `json:"profit_per_hour"`
	// ProfitBonus is flat profit/hour granted by task, lootbox, and glitch
	// rewards. It is kept separate from the upgrade-derived total so
	// recomputing ProfitPerHour from levels does not erase earned bonuses.
	ProfitBonus int `json:"profit_bonus,omitempty"`
	CoinsPerTap int `json:"coins_per_tap"`
	Stars       int `json:"stars"`

	// Upgrades maps upgrade id to owned level. Levels never decrease.
	Upgrades map[string]int `json:"upgrades"`

	Referrals  int   `json:"referrals"`
	ReferrerID int64 `json:"referrer_id,omitempty"`

	CompletedDailyTaskIDs   []string `json:"completed_daily_task_ids"`
	PurchasedSpecialTaskIDs []string `json:"purchased_special_task_ids"`
	CompletedSpecialTaskIDs []string `json:"completed_special_task_ids"`

	DailyTaps          int      `json:"daily_taps"`
	DailyUpgrades      []string `json:"daily_upgrades"`
	ClaimedComboToday  bool     `json:"claimed_combo_today"`
	ClaimedCipherToday bool     `json:"claimed_cipher_today"`

	DiscoveredGlitchCodes []string `json:"discovered_glitch_codes"`
	ClaimedGlitchCodes    []string `json:"claimed_glitch_codes"`
	// ShownGlitchCodes tracks which discovery notifications the player has
	// already seen, server-side, so the state survives device changes.
	ShownGlitchCodes []string `json:"shown_glitch_codes"`
	MetaTapCount     int      `json:"meta_tap_count"`

	// BoostLevels holds permanent boost levels (tap_guru, energy_limit,
	// suspicion_limit). BoostDailyPurchases is cleared on daily reset.
	BoostLevels         map[string]int `json:"boost_levels"`
	BoostDailyPurchases map[string]int `json:"boost_daily_purchases"`
	// TapMultiplierUntil is the expiry of a timed tap multiplier, epoch ms.
	TapMultiplierUntil int64 `json:"tap_multiplier_until,omitempty"`
	TapMultiplier      int   `json:"tap_multiplier,omitempty"`

	CellID string `json:"cell_id,omitempty"`

	LastLoginAt    int64 `json:"last_login_at"`    // epoch ms
	LastDailyReset int64 `json:"last_daily_reset"` // epoch ms
	LastSettledAt  int64 `json:"last_settled_at"`  // epoch ms

	CreatedAt int64 `json:"created_at"` // epoch ms

	// Version is the optimistic concurrency token. It is incremented by the
	// repository on every successful save.
	Version int64 `json:"-"`
}

// NewPlayerState returns a fresh player document with baseline values.
func NewPlayerState(id int64, username string, nowMillis int64) *PlayerState {
	return &PlayerState{
		ID:                  id,
		Username:            username,
		Energy:              BaseMaxEnergy,
		CoinsPerTap:         BaseCoinsPerTap,
		Upgrades:            make(map[string]int),
		BoostLevels:         make(map[string]int),
		BoostDailyPurchases: make(map[string]int),
		LastLoginAt:         nowMillis,
		LastDailyReset:      nowMillis,
		LastSettledAt:       nowMillis,
		CreatedAt:           nowMillis,
	}
}

// EffectiveMaxEnergy returns the energy cap including permanent boost levels.
func (p *PlayerState) EffectiveMaxEnergy() float64 {
	return BaseMaxEnergy + float64(p.BoostLevels[BoostEnergyLimit]*EnergyLimitStepPerLevel)
}

// EffectiveMaxSuspicion returns the suspicion cap including permanent boost levels.
func (p *PlayerState) EffectiveMaxSuspicion() float64 {
	return BaseMaxSuspicion + float64(p.BoostLevels[BoostSuspicionLimit]*SuspicionLimitStepPerLevel)
}

// EffectiveCoinsPerTap returns the tap yield including the tap-guru permanent
// boost and any active timed multiplier.
func (p *PlayerState) EffectiveCoinsPerTap(nowMillis int64) int {
	yield := p.CoinsPerTap + p.BoostLevels[BoostTapGuru]*TapGuruBonusPerLevel
	if p.TapMultiplier > 1 && nowMillis < p.TapMultiplierUntil {
		yield *= p.TapMultiplier
	}
	return yield
}

// UpgradeLevel returns the player's owned level for an upgrade, 0 if unowned.
func (p *PlayerState) UpgradeLevel(upgradeID string) int {
	return p.Upgrades[upgradeID]
}

// ClampResources clamps energy and suspicion into their legal ranges.
func (p *PlayerState) ClampResources() {
	if max := p.EffectiveMaxEnergy(); p.Energy > max {
		p.Energy = max
	}
	if p.Energy < 0 {
		p.Energy = 0
	}
	if max := p.EffectiveMaxSuspicion(); p.Suspicion > max {
		p.Suspicion = max
	}
	if p.Suspicion < 0 {
		p.Suspicion = 0
	}
}

// LeaderboardEntry is a single row of the balance leaderboard.
type LeaderboardEntry struct {
	PlayerID int64   `json:"player_id"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	League   string  `json:"league,omitempty"`
}
