package domain

import "time"

// MarketMonthMetric is one row of the market performance report,
// keyed by (country_code, report_month).
// Corresponds to the market_month_metrics table in ClickHouse.
// Nullable ratios and lag values use pointers; nil means no value
// (zero denominator or no preceding month), never a fabricated zero.
type MarketMonthMetric struct {
	CountryCode string
	ReportMonth time.Time // first instant of the calendar month, UTC

	// Counts
	TotalUsers            int
	ApprovedUsers         int
	Tier1Users            int
	Tier2Users            int
	Tier3Users            int
	TotalTransactions     int
	CompletedTransactions int
	PaymentMethodsUsed    int // distinct methods across the group

	// Sums, gated to completed transactions
	TotalVolumeUSD  float64
	TotalFeesUSD    float64
	TotalRevenueUSD float64

	// Ratios (percent, rounded to 2 decimals)
	ApprovalRate       *float64
	SuccessRate        *float64
	Tier3Concentration *float64

	// Prior-month raw aggregates (nil on the first observed month per country)
	PrevUsers        *float64
	PrevTransactions *float64
	PrevVolumeUSD    *float64
	PrevRevenueUSD   *float64

	// Growth rates (percent, rounded to 2 decimals; nil when previous is nil or zero)
	UserGrowthPct        *float64
	TransactionGrowthPct *float64
	VolumeGrowthPct      *float64
	RevenueGrowthPct     *float64

	GrowthCategory     string
	InvestmentPriority string
}

// Growth category labels
const (
	GrowthHighGrowth = "High Growth"
	GrowthDeclining  = "Declining"
	GrowthStable     = "Stable"
)

// Investment priority labels
const (
	PriorityMarket = "Priority Market"
	GrowthMarket   = "Growth Market"
	AtRiskMarket   = "At-Risk Market"
	CoreMarket     = "Core Market"
)
