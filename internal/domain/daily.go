package domain

// DailyEvent is the server-computed event for one calendar day: a 3-upgrade
// combo and a Morse cipher word.
type DailyEvent struct {
	// Day is the UTC calendar day in YYYY-MM-DD form.
	Day          string   `json:"day"`
	ComboIDs     []string `json:"combo_ids"`
	ComboReward  int      `json:"combo_reward"`
	CipherWord   string   `json:"cipher_word"`
	CipherReward int      `json:"cipher_reward"`
}

// ComboActive reports whether the combo half of the event is playable.
// A combo is active only with exactly ComboSize distinct upgrade ids.
func (e *DailyEvent) ComboActive() bool {
	if len(e.ComboIDs) != ComboSize {
		return false
	}
	seen := make(map[string]struct{}, ComboSize)
	for _, id := range e.ComboIDs {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}
