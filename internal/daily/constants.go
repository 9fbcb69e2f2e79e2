package daily

// Default rewards for a generated daily event. Admin-rotated events may
// override both.
const (
	DefaultComboReward  = 50000
	DefaultCipherReward = 10000
)

// DayFormat is the UTC calendar-day key for daily events.
const DayFormat = "2006-01-02"

// cipherWords is the rotation pool for the daily Morse cipher. Uppercase A-Z
// only; the decoder has no table entries for anything else.
var cipherWords = []string{
	"AGENT", "ASSET", "CIPHER", "COVER", "DROP", "GHOST",
	"INTEL", "MOLE", "RELAY", "SAFE", "SHADOW", "SIGNAL",
	"SLEEPER", "VAULT", "WIRE",
}
