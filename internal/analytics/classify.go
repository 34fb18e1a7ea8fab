package analytics

import "remit-analytics/internal/domain"

// Classification ladders. Each ladder is an ordered guard chain evaluated
// top to bottom, first match wins. The thresholds overlap on purpose
// (e.g. growth > 20 also satisfies > 15), so the order must not change.

// gtPtr reports whether p is present and strictly greater than threshold.
func gtPtr(p *float64, threshold float64) bool {
	return p != nil && *p > threshold
}

// ltPtr reports whether p is present and strictly less than threshold.
func ltPtr(p *float64, threshold float64) bool {
	return p != nil && *p < threshold
}

// GrowthCategory maps a rounded revenue growth percentage to its label.
// The input must be the same rounded value exposed as revenue_growth_pct,
// so the label can never disagree with the displayed number.
func GrowthCategory(revenueGrowthPct *float64) string {
	switch {
	case gtPtr(revenueGrowthPct, 20):
		return domain.GrowthHighGrowth
	case ltPtr(revenueGrowthPct, -5):
		return domain.GrowthDeclining
	default:
		return domain.GrowthStable
	}
}

// InvestmentPriority classifies a market from its rounded displayed metrics.
func InvestmentPriority(revenueGrowthPct, tier3Concentration, successRate *float64) string {
	switch {
	case gtPtr(revenueGrowthPct, 20) && gtPtr(tier3Concentration, 15):
		return domain.PriorityMarket
	case gtPtr(revenueGrowthPct, 15) && gtPtr(successRate, 90):
		return domain.GrowthMarket
	case ltPtr(revenueGrowthPct, -5):
		return domain.AtRiskMarket
	default:
		return domain.CoreMarket
	}
}

// UserSegment classifies a user from completed-transaction count and total
// USD value. Counts and values come from rate-matched transactions only.
func UserSegment(completedCount int, totalValueUSD float64) string {
	switch {
	case completedCount >= 10 || totalValueUSD >= 10000:
		return domain.SegmentHighValue
	case completedCount >= 5:
		return domain.SegmentRegular
	case completedCount >= 1:
		return domain.SegmentOccasional
	default:
		return domain.SegmentDormant
	}
}

// FunnelHealth maps a cohort activation rate (percent) to its label.
func FunnelHealth(activationRate float64) string {
	switch {
	case activationRate < 50:
		return domain.FunnelNeedsImprovement
	case activationRate < 70:
		return domain.FunnelModerate
	default:
		return domain.FunnelStrong
	}
}

// PricingRecommendation maps an effective fee rate (a ratio, not a percent)
// to a recommendation. A nil rate falls through to the optimal branch.
func PricingRecommendation(effectiveFeeRate *float64) string {
	switch {
	case ltPtr(effectiveFeeRate, 0.02):
		return domain.PricingFeeIncrease
	case gtPtr(effectiveFeeRate, 0.04):
		return domain.PricingVolumeDiscount
	default:
		return domain.PricingOptimal
	}
}
