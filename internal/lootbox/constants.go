package lootbox

// RewardStars is the pool reward type that grants the secondary currency.
// Coin and profit rewards reuse the shared domain reward types.
const RewardStars = "stars"
