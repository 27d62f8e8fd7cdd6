package catalog

// Tier is one fixed points-to-OWT exchange rate. Larger conversions carry a
// bonus percentage on top of the base OWT amount.
type Tier struct {
	ID             string  `json:"id"`
	PointsRequired int64   `json:"pointsRequired"`
	OWTAmount      float64 `json:"owtAmount"`
	BonusPercent   int     `json:"bonusPercent,omitempty"`
}

// conversionTiers lists all tiers in ascending points order.
var conversionTiers = []Tier{
	{ID: "tier-100", PointsRequired: 100, OWTAmount: 1},
	{ID: "tier-500", PointsRequired: 500, OWTAmount: 5, BonusPercent: 5},
	{ID: "tier-1000", PointsRequired: 1000, OWTAmount: 10, BonusPercent: 10},
	{ID: "tier-5000", PointsRequired: 5000, OWTAmount: 50, BonusPercent: 15},
	{ID: "tier-10000", PointsRequired: 10000, OWTAmount: 100, BonusPercent: 20},
}

// Tiers returns all conversion tiers in ascending points order.
func Tiers() []Tier {
	out := make([]Tier, len(conversionTiers))
	copy(out, conversionTiers)
	return out
}

// TierByID returns the tier with the given id.
func TierByID(id string) (Tier, bool) {
	for _, t := range conversionTiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}
