package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameTapsApplied     = "taps_applied_total"
	MetricNameUpgradesBought  = "upgrades_bought_total"
	MetricNameTasksClaimed    = "tasks_claimed_total"
	MetricNameLootboxesOpened = "lootboxes_opened_total"
	MetricNameBoostsPurchased = "boosts_purchased_total"
	MetricNameCombosClaimed   = "daily_combos_claimed_total"
	MetricNameCiphersClaimed  = "daily_ciphers_claimed_total"
	MetricNameGlitchesClaimed = "glitches_claimed_total"
	MetricNamePlayersCreated  = "players_created_total"
	MetricNameSyncRejected    = "state_sync_rejected_total"
	MetricNameSaveConflicts   = "player_save_conflicts_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextTapsApplied     = "Total number of taps applied to player balances"
	HelpTextUpgradesBought  = "Total number of upgrade purchases"
	HelpTextTasksClaimed    = "Total number of task rewards claimed"
	HelpTextLootboxesOpened = "Total number of lootboxes opened"
	HelpTextBoostsPurchased = "Total number of boosts purchased"
	HelpTextCombosClaimed   = "Total number of daily combo rewards claimed"
	HelpTextCiphersClaimed  = "Total number of daily cipher rewards claimed"
	HelpTextGlitchesClaimed = "Total number of glitch codes claimed"
	HelpTextPlayersCreated  = "Total number of player accounts created"
	HelpTextSyncRejected    = "Total number of state sync documents rejected for integrity violations"
	HelpTextSaveConflicts   = "Total number of optimistic-lock conflicts on player saves"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelUpgrade   = "upgrade"
	LabelTask      = "task"
	LabelNamespace = "namespace"
	LabelLootbox   = "lootbox"
	LabelBoost     = "boost"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
