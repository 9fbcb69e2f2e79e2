package domain

// LocalizedString maps a BCP 47 language tag to a translation. The i18n
// package picks the best match for a player's locale hint.
type LocalizedString map[string]string

// Upgrade is an admin-defined, purchasable passive-income source. Config
// definitions are immutable per snapshot version; per-player price and profit
// are derived from the player's owned level.
type Upgrade struct {
	ID                string          `json:"id"`
	Name              LocalizedString `json:"name"`
	BasePrice         float64         `json:"base_price"`
	BaseProfitPerHour float64         `json:"base_profit_per_hour"`
	Category          string          `json:"category"`
	Icon              string          `json:"icon,omitempty"`
	// SuspicionModifier is added to the player's suspicion on every purchase.
	// Negative values launder suspicion away.
	SuspicionModifier float64 `json:"suspicion_modifier"`
}

// TaskReward describes what claiming a task grants.
type TaskReward struct {
	Type   string `json:"type"` // coins | profit
	Amount int    `json:"amount"`
}

// DailyTask resets every calendar day; completion is tracked in
// CompletedDailyTaskIDs.
type DailyTask struct {
	ID           string          `json:"id"`
	Name         LocalizedString `json:"name"`
	Description  LocalizedString `json:"description,omitempty"`
	Type         string          `json:"type"`
	Reward       TaskReward      `json:"reward"`
	RequiredTaps int             `json:"required_taps,omitempty"`
	URL          string          `json:"url,omitempty"`
	SecretCode   string          `json:"secret_code,omitempty"`
}

// SpecialTask lives in the one-time airdrop namespace. A non-zero PriceStars
// gates the claim behind a separate purchase step.
type SpecialTask struct {
	ID          string          `json:"id"`
	Name        LocalizedString `json:"name"`
	Description LocalizedString `json:"description,omitempty"`
	Type        string          `json:"type"`
	Reward      TaskReward      `json:"reward"`
	URL         string          `json:"url,omitempty"`
	SecretCode  string          `json:"secret_code,omitempty"`
	PriceStars  int             `json:"price_stars,omitempty"`
}

// Boost is a purchasable consumable or permanent modifier. Permanent boosts
// (tap_guru, energy_limit, suspicion_limit) level up with a geometric cost
// curve; consumables (full_energy, tap_multiplier) apply immediately.
type Boost struct {
	ID         string          `json:"id"`
	Name       LocalizedString `json:"name"`
	Currency   string          `json:"currency"` // coins | stars
	BaseCost   float64         `json:"base_cost"`
	CostGrowth float64         `json:"cost_growth,omitempty"` // per-level multiplier, permanent boosts only
	DailyLimit int             `json:"daily_limit,omitempty"` // 0 means unlimited
	Permanent  bool            `json:"permanent"`
	// Multiplier and DurationSec apply to the timed tap_multiplier boost.
	Multiplier  int `json:"multiplier,omitempty"`
	DurationSec int `json:"duration_sec,omitempty"`
}

// LootboxReward is a single entry of a lootbox pool.
type LootboxReward struct {
	Type   string `json:"type"` // coins | profit | stars
	Amount int    `json:"amount"`
	Label  string `json:"label,omitempty"`
}

// Lootbox is opened for a coin or star cost and yields one reward drawn
// uniformly from the pool.
type Lootbox struct {
	ID       string          `json:"id"`
	Name     LocalizedString `json:"name"`
	Currency string          `json:"currency"`
	Cost     float64         `json:"cost"`
	Pool     []LootboxReward `json:"pool"`
}

// League is a balance-threshold tier. Leagues are ordered by ascending
// MinBalance in config.
type League struct {
	ID         string          `json:"id"`
	Name       LocalizedString `json:"name"`
	MinBalance float64         `json:"min_balance"`
}

// GlitchTrigger describes the hidden condition that discovers a glitch code.
type GlitchTrigger struct {
	Type string `json:"type"`
	// Hour/Minute for login_at_time triggers (wall clock, UTC).
	Hour   int `json:"hour,omitempty"`
	Minute int `json:"minute,omitempty"`
	// Balance threshold for balance_equals triggers.
	Balance float64 `json:"balance,omitempty"`
	// UpgradeID for upgrade_purchased triggers.
	UpgradeID string `json:"upgrade_id,omitempty"`
	// Taps for meta_tap triggers (N taps on a disguised hotspot).
	Taps int `json:"taps,omitempty"`
}

// GlitchEvent is a hidden easter-egg trigger/code pair. Lifecycle:
// discovered once the trigger fires, claimed at most once on code submission.
type GlitchEvent struct {
	Code    string          `json:"code"`
	Trigger GlitchTrigger   `json:"trigger"`
	Message LocalizedString `json:"message,omitempty"`
	Reward  TaskReward      `json:"reward"`
}

// GameConfig is the immutable, versioned configuration snapshot consumed by
// the game services. Admin edits produce a new snapshot; running code never
// mutates one.
type GameConfig struct {
	Version      int64         `json:"version"`
	Upgrades     []Upgrade     `json:"upgrades"`
	DailyTasks   []DailyTask   `json:"daily_tasks"`
	SpecialTasks []SpecialTask `json:"special_tasks"`
	Boosts       []Boost       `json:"boosts"`
	Lootboxes    []Lootbox     `json:"lootboxes"`
	Leagues      []League      `json:"leagues"`
	Glitches     []GlitchEvent `json:"glitches"`
}

// UpgradeByID returns the upgrade definition, or nil if unknown.
func (c *GameConfig) UpgradeByID(id string) *Upgrade {
	for i := range c.Upgrades {
		if c.Upgrades[i].ID == id {
			return &c.Upgrades[i]
		}
	}
	return nil
}

// DailyTaskByID returns the daily task definition, or nil if unknown.
func (c *GameConfig) DailyTaskByID(id string) *DailyTask {
	for i := range c.DailyTasks {
		if c.DailyTasks[i].ID == id {
			return &c.DailyTasks[i]
		}
	}
	return nil
}

// SpecialTaskByID returns the special task definition, or nil if unknown.
func (c *GameConfig) SpecialTaskByID(id string) *SpecialTask {
	for i := range c.SpecialTasks {
		if c.SpecialTasks[i].ID == id {
			return &c.SpecialTasks[i]
		}
	}
	return nil
}

// BoostByID returns the boost definition, or nil if unknown.
func (c *GameConfig) BoostByID(id string) *Boost {
	for i := range c.Boosts {
		if c.Boosts[i].ID == id {
			return &c.Boosts[i]
		}
	}
	return nil
}

// LootboxByID returns the lootbox definition, or nil if unknown.
func (c *GameConfig) LootboxByID(id string) *Lootbox {
	for i := range c.Lootboxes {
		if c.Lootboxes[i].ID == id {
			return &c.Lootboxes[i]
		}
	}
	return nil
}

// GlitchByCode returns the glitch definition, or nil if unknown.
func (c *GameConfig) GlitchByCode(code string) *GlitchEvent {
	for i := range c.Glitches {
		if c.Glitches[i].Code == code {
			return &c.Glitches[i]
		}
	}
	return nil
}
