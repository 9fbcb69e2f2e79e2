package cell

// Informant hiring cost curve: the first informant costs the base, each
// further one doubles.
const (
	InformantBaseCost   = 100000.0
	InformantCostGrowth = 2.0
)

// InviteCodeLength is the number of uuid characters used for invite codes.
const InviteCodeLength = 8

// Battle settlement tuning. Each settlement round grants every cell one
// ticket, banks one hour of the cell's aggregate profit, and converts the
// banked hour into battle score.
const (
	TicketsPerRound      = 1
	ScorePerProfitBanked = 0.001
)
