package gameconfig

// Config file names under the configs directory
const (
	FileUpgrades     = "upgrades.json"
	FileDailyTasks   = "daily_tasks.json"
	FileSpecialTasks = "special_tasks.json"
	FileBoosts       = "boosts.json"
	FileLootboxes    = "lootboxes.json"
	FileLeagues      = "leagues.json"
	FileGlitches     = "glitches.json"
)

// DefaultConfigDir is where the game definition files ship.
const DefaultConfigDir = "configs"

// SchemaDir is the subdirectory of the config dir holding JSON schemas.
// A definition file without a matching schema skips structural validation.
const SchemaDir = "schemas"

// SnapshotCacheSize bounds how many historical config versions the provider
// keeps resolvable after reloads.
const SnapshotCacheSize = 8
