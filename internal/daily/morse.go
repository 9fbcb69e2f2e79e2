package daily

import "strings"

// Morse timing thresholds, in milliseconds. A press shorter than
// DashThresholdMillis is a dot; at or above it, a dash. A pause of
// CharGapMillis or more since the last release closes the current character.
const (
	DashThresholdMillis = 350
	CharGapMillis       = 1500
)

// morseTable maps dot/dash patterns to letters A-Z.
var morseTable = map[string]rune{
	".-": 'A', "-...": 'B', "-.-.": 'C', "-..": 'D', ".": 'E',
	"..-.": 'F', "--.": 'G', "....": 'H', "..": 'I', ".---": 'J',
	"-.-": 'K', ".-..": 'L', "--": 'M', "-.": 'N', "---": 'O',
	".--.": 'P', "--.-": 'Q', ".-.": 'R', "...": 'S', "-": 'T',
	"..-": 'U', "...-": 'V', ".--": 'W', "-..-": 'X', "-.--": 'Y',
	"--..": 'Z',
}

// Symbol classifies a single press duration as a dot or a dash.
func Symbol(pressMillis int64) byte {
	if pressMillis >= DashThresholdMillis {
		return '-'
	}
	return '.'
}

// DecodePattern resolves a dot/dash pattern to its letter.
func DecodePattern(pattern string) (rune, bool) {
	r, ok := morseTable[pattern]
	return r, ok
}

// Decoder accumulates tap presses into a cipher word. A mismatched or
// unknown character discards only the in-progress pattern; letters already
// committed to the word are kept, so the player retries one character, not
// the whole word.
type Decoder struct {
	word    strings.Builder
	pattern strings.Builder
}

// Press records one tap of the given duration.
func (d *Decoder) Press(durationMillis int64) {
	d.pattern.WriteByte(Symbol(durationMillis))
}

// Pattern returns the in-progress dot/dash pattern.
func (d *Decoder) Pattern() string {
	return d.pattern.String()
}

// CommitChar closes the current character. A valid pattern appends its
// letter to the word and returns it; an unknown pattern is discarded and
// the word is left untouched.
func (d *Decoder) CommitChar() (rune, bool) {
	pattern := d.pattern.String()
	d.pattern.Reset()
	if pattern == "" {
		return 0, false
	}
	r, ok := morseTable[pattern]
	if !ok {
		return 0, false
	}
	d.word.WriteRune(r)
	return r, true
}

// CommitCharExpect closes the current character and appends it only when it
// decodes to the expected letter. On mismatch the pattern is discarded and
// the word does not advance.
func (d *Decoder) CommitCharExpect(expected rune) bool {
	pattern := d.pattern.String()
	d.pattern.Reset()
	r, ok := morseTable[pattern]
	if !ok || r != expected {
		return false
	}
	d.word.WriteRune(r)
	return true
}

// Word returns the letters committed so far.
func (d *Decoder) Word() string {
	return d.word.String()
}

// Press is a single key press with absolute down/up timestamps in epoch ms.
type Press struct {
	DownMillis int64 `json:"down_millis"`
	UpMillis   int64 `json:"up_millis"`
}

// DecodePresses replays a timed press sequence: presses separated by a gap of
// CharGapMillis or more belong to different characters. Unknown characters
// are dropped, matching the per-character retry behavior.
func DecodePresses(presses []Press) string {
	var d Decoder
	var lastUp int64
	for i, p := range presses {
		if i > 0 && p.DownMillis-lastUp >= CharGapMillis {
			d.CommitChar()
		}
		d.Press(p.UpMillis - p.DownMillis)
		lastUp = p.UpMillis
	}
	d.CommitChar()
	return d.Word()
}
