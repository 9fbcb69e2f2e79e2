package domain

// Economy curve constants. The per-level geometric model is used everywhere:
// a single upgrade's displayed profit and the aggregate total are computed
// from the same formula so client prediction and server state cannot drift.
const (
	// PriceGrowthRate is the geometric growth applied to an upgrade's price per level
	PriceGrowthRate = 1.15

	// ProfitBoostRate is the geometric growth applied to an upgrade's profit per level
	ProfitBoostRate = 1.07
)

// Player baseline values for a freshly created account
const (
	BaseCoinsPerTap   = 1
	BaseMaxEnergy     = 1000
	BaseMaxSuspicion  = 100
	EnergyRegenPerSec = 3.0
	SuspicionDecayPerSec = 0.5

	// ReferralBonus is credited to the referrer exactly once, at the
	// referred player's account creation
	ReferralBonus = 5000
)

// Permanent boost effects per level
const (
	TapGuruBonusPerLevel     = 1   // +1 coin per tap per level
	EnergyLimitStepPerLevel  = 500 // +500 max energy per level
	SuspicionLimitStepPerLevel = 25 // +25 max suspicion per level
)

// Permanent boost identifiers. These key into PlayerState.BoostLevels and
// must match the boost ids shipped in configs/boosts.json.
const (
	BoostTapGuru        = "tap_guru"
	BoostEnergyLimit    = "energy_limit"
	BoostSuspicionLimit = "suspicion_limit"
	BoostFullEnergy     = "full_energy"
	BoostTapMultiplier  = "tap_multiplier"
)

// Upgrade categories
const (
	CategoryDocuments = "documents"
	CategoryLegal     = "legal"
	CategoryLifestyle = "lifestyle"
	CategorySpecial   = "special"
)

// Task types
const (
	TaskTypeTaps         = "taps"
	TaskTypeTelegramJoin = "telegram_join"
	TaskTypeSocialFollow = "social_follow"
	TaskTypeVideoWatch   = "video_watch"
	TaskTypeVideoCode    = "video_code"
)

// Reward types
const (
	RewardCoins  = "coins"
	RewardProfit = "profit"
)

// Glitch trigger types
const (
	GlitchTriggerLoginAtTime      = "login_at_time"
	GlitchTriggerBalanceEquals    = "balance_equals"
	GlitchTriggerUpgradePurchased = "upgrade_purchased"
	GlitchTriggerMetaTap          = "meta_tap"
)

// Currency identifiers for boost and lootbox costs
const (
	CurrencyCoins = "coins"
	CurrencyStars = "stars"
)

// ComboSize is the exact number of upgrade ids a daily combo must name.
// A combo with any other cardinality is treated as inactive.
const ComboSize = 3

// SyncTolerance is the maximum divergence, in coins, allowed between a
// client-submitted derived value and the server-side recomputation before
// the document is rejected with ErrStateIntegrity.
const SyncTolerance = 1.0
