package reporting

import (
	"fmt"
	"strings"

	"remit-analytics/internal/domain"
)

// monthLayout is how report months appear in CSV and Markdown output.
const monthLayout = "2006-01"

// fmtOpt formats a nullable float with the given precision; nil renders
// as an empty cell, never as 0.
func fmtOpt(p *float64, precision int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.*f", precision, *p)
}

func fmtOptStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// RenderMarketCSV renders market performance rows as CSV string.
func RenderMarketCSV(metrics []*domain.MarketMonthMetric) string {
	var sb strings.Builder

	sb.WriteString("country_code,report_month,total_users,approved_users,tier1_users,tier2_users,tier3_users,")
	sb.WriteString("total_transactions,completed_transactions,payment_methods_used,")
	sb.WriteString("total_volume_usd,total_fees_usd,total_revenue_usd,")
	sb.WriteString("approval_rate,success_rate,tier3_concentration,")
	sb.WriteString("prev_users,prev_transactions,prev_volume_usd,prev_revenue_usd,")
	sb.WriteString("user_growth_pct,transaction_growth_pct,volume_growth_pct,revenue_growth_pct,")
	sb.WriteString("growth_category,investment_priority\n")

	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%d,%d,%d,%d,%d,%d,%.2f,%.2f,%.2f,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			m.CountryCode,
			m.ReportMonth.Format(monthLayout),
			m.TotalUsers, m.ApprovedUsers, m.Tier1Users, m.Tier2Users, m.Tier3Users,
			m.TotalTransactions, m.CompletedTransactions, m.PaymentMethodsUsed,
			m.TotalVolumeUSD, m.TotalFeesUSD, m.TotalRevenueUSD,
			fmtOpt(m.ApprovalRate, 2), fmtOpt(m.SuccessRate, 2), fmtOpt(m.Tier3Concentration, 2),
			fmtOpt(m.PrevUsers, 0), fmtOpt(m.PrevTransactions, 0),
			fmtOpt(m.PrevVolumeUSD, 2), fmtOpt(m.PrevRevenueUSD, 2),
			fmtOpt(m.UserGrowthPct, 2), fmtOpt(m.TransactionGrowthPct, 2),
			fmtOpt(m.VolumeGrowthPct, 2), fmtOpt(m.RevenueGrowthPct, 2),
			m.GrowthCategory, m.InvestmentPriority,
		))
	}

	return sb.String()
}

// RenderCorridorCSV renders transaction revenue rows as CSV string.
func RenderCorridorCSV(metrics []*domain.CorridorMonthMetric) string {
	var sb strings.Builder

	sb.WriteString("currency_pair,month,transaction_count,unique_users,")
	sb.WriteString("total_volume_usd,total_converted_usd,total_fees_usd,total_revenue_usd,")
	sb.WriteString("avg_transaction_usd,effective_fee_rate,")
	sb.WriteString("configured_fee_type,configured_fee_value,pricing_recommendation\n")

	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%.2f,%.2f,%.2f,%.2f,%s,%s,%s,%s,%s\n",
			m.CurrencyPair,
			m.Month.Format(monthLayout),
			m.TransactionCount, m.UniqueUsers,
			m.TotalVolumeUSD, m.TotalConvertedUSD, m.TotalFeesUSD, m.TotalRevenueUSD,
			fmtOpt(m.AvgTransactionUSD, 2), fmtOpt(m.EffectiveFeeRate, 4),
			fmtOptStr(m.ConfiguredFeeType), fmtOpt(m.ConfiguredFeeValue, 2),
			m.PricingRecommendation,
		))
	}

	return sb.String()
}

// RenderCohortCSV renders user acquisition rows as CSV string.
func RenderCohortCSV(metrics []*domain.CohortMetric) string {
	var sb strings.Builder

	sb.WriteString("acquisition_month,country_code,acquisition_channel,verification_level,")
	sb.WriteString("cohort_size,activated_users,activation_rate,avg_days_to_activation,funnel_health\n")

	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%d,%d,%d,%s,%s,%s\n",
			m.AcquisitionMonth.Format(monthLayout),
			m.CountryCode, m.AcquisitionChannel, m.VerificationLevel,
			m.CohortSize, m.ActivatedUsers,
			fmtOpt(m.ActivationRate, 2), fmtOpt(m.AvgDaysToActivation, 2),
			m.FunnelHealth,
		))
	}

	return sb.String()
}
