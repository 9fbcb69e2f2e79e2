package economy

import (
	"math"

	"github.com/kovertlabs/deepcover/internal/domain"
)

// EffectivePrice returns the price of the next level of an upgrade:
// floor(base * 1.15^level). Strictly increasing in level.
func EffectivePrice(basePrice float64, level int) float64 {
	if level < 0 {
		level = 0
	}
	return math.Floor(basePrice * math.Pow(domain.PriceGrowthRate, float64(level)))
}

// EffectiveProfit returns an upgrade's profit/hour contribution at the given
// owned level: floor(base * 1.07^level) for level >= 1, 0 for an unowned
// upgrade. The same geometric model feeds TotalProfitPerHour so a single
// upgrade's displayed profit always sums to the aggregate.
func EffectiveProfit(baseProfit float64, level int) int {
	if level <= 0 {
		return 0
	}
	return int(math.Floor(baseProfit * math.Pow(domain.ProfitBoostRate, float64(level))))
}

// TotalProfitPerHour aggregates the profit contribution of every owned
// upgrade under the config snapshot. Unknown upgrade ids contribute nothing.
func TotalProfitPerHour(cfg *domain.GameConfig, owned map[string]int) int {
	total := 0
	for id, level := range owned {
		def := cfg.UpgradeByID(id)
		if def == nil {
			continue
		}
		total += EffectiveProfit(def.BaseProfitPerHour, level)
	}
	return total
}
