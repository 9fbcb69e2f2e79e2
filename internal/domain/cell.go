package domain

// Informant is a hired cell member granting a flat profit bonus to the whole
// cell. Each informant adds InformantBonusRate to the aggregate multiplier.
type Informant struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	HireCost float64 `json:"hire_cost"`
	HiredAt  int64   `json:"hired_at"` // epoch ms
}

// InformantBonusRate is the flat per-informant bonus applied to the cell's
// aggregate member profit (+1% each).
const InformantBonusRate = 0.01

// Cell is a player guild with a shared bank, battle tickets, and informants.
type Cell struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	InviteCode  string      `json:"invite_code"`
	OwnerID     int64       `json:"owner_id"`
	Balance     float64     `json:"balance"`
	TicketCount int         `json:"ticket_count"`
	Informants  []Informant `json:"informants"`
	BattleScore int         `json:"battle_score"`
	CreatedAt   int64       `json:"created_at"` // epoch ms
}

// ProfitMultiplier returns the informant bonus multiplier for the cell.
func (c *Cell) ProfitMultiplier() float64 {
	return 1.0 + float64(len(c.Informants))*InformantBonusRate
}

// CellView is a cell plus the derived values the profile screen renders.
type CellView struct {
	Cell            Cell    `json:"cell"`
	MemberCount     int     `json:"member_count"`
	ProfitPerHour   float64 `json:"profit_per_hour"`
	MemberIDs       []int64 `json:"member_ids,omitempty"`
}
