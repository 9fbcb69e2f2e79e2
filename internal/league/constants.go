package league

// Leaderboard size bounds
const (
	DefaultLeaderboardSize = 100
	MaxLeaderboardSize     = 500
)
