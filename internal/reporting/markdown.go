package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the combined report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Transfer Analytics Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Snapshot: `%s`\n\n", r.SnapshotID))

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Users | %d |\n", r.DataSummary.TotalUsers))
	sb.WriteString(fmt.Sprintf("| Verification Records | %d |\n", r.DataSummary.TotalVerifications))
	sb.WriteString(fmt.Sprintf("| Total Transactions | %d |\n", r.DataSummary.TotalTransactions))
	sb.WriteString(fmt.Sprintf("| Completed Transactions | %d |\n", r.DataSummary.CompletedTransactions))
	sb.WriteString(fmt.Sprintf("| Countries | %d |\n", r.DataSummary.Countries))
	sb.WriteString(fmt.Sprintf("| Corridors | %d |\n", r.DataSummary.Corridors))
	if !r.DataSummary.DateRangeStart.IsZero() {
		sb.WriteString(fmt.Sprintf("| Date Range Start | %s |\n", r.DataSummary.DateRangeStart.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("| Date Range End | %s |\n", r.DataSummary.DateRangeEnd.Format(time.RFC3339)))
	}
	sb.WriteString("\n")

	// Data Quality
	sb.WriteString("## Data Quality\n\n")
	if len(r.QualityNotes) > 0 {
		for _, note := range r.QualityNotes {
			sb.WriteString(fmt.Sprintf("- %s\n", note))
		}
	} else {
		sb.WriteString("No rows excluded or dropped.\n")
	}
	sb.WriteString("\n")

	// Market Performance
	sb.WriteString("## Market Performance\n\n")
	if len(r.Market) > 0 {
		sb.WriteString("| Country | Month | Users | Approved | Txns | Completed | Volume USD | Revenue USD | Approval% | Success% | Revenue Growth% | Category | Priority |\n")
		sb.WriteString("|---------|-------|-------|----------|------|-----------|------------|-------------|-----------|----------|-----------------|----------|----------|\n")
		for _, m := range r.Market {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d | %d | %.2f | %.2f | %s | %s | %s | %s | %s |\n",
				m.CountryCode, m.ReportMonth.Format(monthLayout),
				m.TotalUsers, m.ApprovedUsers,
				m.TotalTransactions, m.CompletedTransactions,
				m.TotalVolumeUSD, m.TotalRevenueUSD,
				mdOpt(m.ApprovalRate, 2), mdOpt(m.SuccessRate, 2), mdOpt(m.RevenueGrowthPct, 2),
				m.GrowthCategory, m.InvestmentPriority))
		}
	} else {
		sb.WriteString("No market metrics available.\n")
	}
	sb.WriteString("\n")

	// Transaction Revenue
	sb.WriteString("## Transaction Revenue\n\n")
	if len(r.Corridors) > 0 {
		sb.WriteString("| Corridor | Month | Txns | Users | Volume USD | Fees USD | Revenue USD | Avg Txn | Fee Rate | Recommendation |\n")
		sb.WriteString("|----------|-------|------|-------|------------|----------|-------------|---------|----------|----------------|\n")
		for _, c := range r.Corridors {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.2f | %.2f | %.2f | %s | %s | %s |\n",
				c.CurrencyPair, c.Month.Format(monthLayout),
				c.TransactionCount, c.UniqueUsers,
				c.TotalVolumeUSD, c.TotalFeesUSD, c.TotalRevenueUSD,
				mdOpt(c.AvgTransactionUSD, 2), mdOpt(c.EffectiveFeeRate, 4),
				c.PricingRecommendation))
		}
	} else {
		sb.WriteString("No corridor metrics available.\n")
	}
	sb.WriteString("\n")

	// User Segments
	sb.WriteString("## User Segments\n\n")
	if len(r.Segments) > 0 {
		sb.WriteString("| Segment | Users | Total Value USD |\n")
		sb.WriteString("|---------|-------|----------------|\n")
		for _, s := range r.Segments {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2f |\n", s.Segment, s.UserCount, s.TotalValueUSD))
		}
	} else {
		sb.WriteString("No segmentation data available.\n")
	}
	sb.WriteString("\n")

	// User Acquisition
	sb.WriteString("## User Acquisition\n\n")
	if len(r.Cohorts) > 0 {
		sb.WriteString("| Month | Country | Channel | Level | Cohort | Activated | Rate% | Avg Days | Funnel |\n")
		sb.WriteString("|-------|---------|---------|-------|--------|-----------|-------|----------|--------|\n")
		for _, c := range r.Cohorts {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %d | %s | %s | %s |\n",
				c.AcquisitionMonth.Format(monthLayout),
				c.CountryCode, c.AcquisitionChannel, c.VerificationLevel,
				c.CohortSize, c.ActivatedUsers,
				mdOpt(c.ActivationRate, 2), mdOpt(c.AvgDaysToActivation, 2),
				c.FunnelHealth))
		}
	} else {
		sb.WriteString("No cohort metrics available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// mdOpt renders a nullable float for Markdown cells; nil shows as a dash.
func mdOpt(p *float64, precision int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", precision, *p)
}
