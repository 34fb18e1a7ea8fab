package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"remit-analytics/internal/domain"
)

// marketAccum accumulates raw aggregates for one (country, month) group.
// Monetary sums stay in decimal until the row is built.
type marketAccum struct {
	countryCode string
	month       time.Time

	users     map[int64]struct{}
	approved  map[int64]struct{}
	tierUsers [3]map[int64]struct{} // index = verification level - 1
	methods   map[string]struct{}   // distinct method names

	totalTxs     int
	completedTxs int
	volume       decimal.Decimal
	fees         decimal.Decimal
	revenue      decimal.Decimal
}

func newMarketAccum(countryCode string, month time.Time) *marketAccum {
	a := &marketAccum{
		countryCode: countryCode,
		month:       month,
		users:       make(map[int64]struct{}),
		approved:    make(map[int64]struct{}),
		methods:     make(map[string]struct{}),
	}
	for i := range a.tierUsers {
		a.tierUsers[i] = make(map[int64]struct{})
	}
	return a
}

// ComputeMarketMetrics builds the market performance table from a snapshot.
// Transactions are the primary fact: a (country, month) group exists iff at
// least one transaction of any status joins to a non-test user. Verification
// and payment method joins are optional; a missing match contributes nothing.
// Sums are gated to completed transactions, so a group with zero completed
// rows still appears with zero sums.
func ComputeMarketMetrics(
	users []*domain.User,
	verifications []*domain.UserVerification,
	transactions []*domain.Transaction,
	paymentMethods []*domain.PaymentMethod,
) []*domain.MarketMonthMetric {
	usersByID := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		if u.IsTestUser() {
			continue
		}
		usersByID[u.ID] = u
	}

	verByUser := make(map[int64]*domain.UserVerification, len(verifications))
	for _, v := range verifications {
		verByUser[v.UserID] = v
	}

	methodByID := make(map[int64]*domain.PaymentMethod, len(paymentMethods))
	for _, m := range paymentMethods {
		methodByID[m.ID] = m
	}

	groups := make(map[string]*marketAccum)
	for _, tx := range transactions {
		u, ok := usersByID[tx.UserID]
		if !ok {
			continue
		}

		month := TruncateMonth(tx.InitiatedAt)
		key := u.CountryCode + "|" + MonthKey(month)
		acc, ok := groups[key]
		if !ok {
			acc = newMarketAccum(u.CountryCode, month)
			groups[key] = acc
		}

		acc.users[u.ID] = struct{}{}
		if v, ok := verByUser[u.ID]; ok {
			if v.KYCStatus == domain.KYCApproved {
				acc.approved[u.ID] = struct{}{}
			}
			if v.VerificationLevel >= 1 && v.VerificationLevel <= 3 {
				acc.tierUsers[v.VerificationLevel-1][u.ID] = struct{}{}
			}
		}

		acc.totalTxs++
		if tx.Status == domain.StatusCompleted {
			acc.completedTxs++
			acc.volume = acc.volume.Add(CentsToUSD(tx.SourceAmount))
			acc.fees = acc.fees.Add(CentsToUSD(tx.FeeAmount))
			acc.revenue = acc.revenue.Add(decimal.NewFromFloat(tx.RevenueUSD))
		}
		if tx.PaymentMethodID != nil {
			if pm, ok := methodByID[*tx.PaymentMethodID]; ok {
				acc.methods[pm.MethodName] = struct{}{}
			}
		}
	}

	metrics := make([]*domain.MarketMonthMetric, 0, len(groups))
	for _, acc := range groups {
		metrics = append(metrics, buildMarketRow(acc))
	}

	deriveMarketGrowth(metrics)

	// Final output order: country ASC, month ASC, priority DESC.
	sort.Slice(metrics, func(i, j int) bool {
		a, b := metrics[i], metrics[j]
		if a.CountryCode != b.CountryCode {
			return a.CountryCode < b.CountryCode
		}
		if !a.ReportMonth.Equal(b.ReportMonth) {
			return a.ReportMonth.Before(b.ReportMonth)
		}
		return a.InvestmentPriority > b.InvestmentPriority
	})

	return metrics
}

func buildMarketRow(acc *marketAccum) *domain.MarketMonthMetric {
	m := &domain.MarketMonthMetric{
		CountryCode:           acc.countryCode,
		ReportMonth:           acc.month,
		TotalUsers:            len(acc.users),
		ApprovedUsers:         len(acc.approved),
		Tier1Users:            len(acc.tierUsers[0]),
		Tier2Users:            len(acc.tierUsers[1]),
		Tier3Users:            len(acc.tierUsers[2]),
		TotalTransactions:     acc.totalTxs,
		CompletedTransactions: acc.completedTxs,
		PaymentMethodsUsed:    len(acc.methods),
		TotalVolumeUSD:        acc.volume.Round(2).InexactFloat64(),
		TotalFeesUSD:          acc.fees.Round(2).InexactFloat64(),
		TotalRevenueUSD:       acc.revenue.Round(2).InexactFloat64(),
	}

	m.ApprovalRate = SafePercent(float64(m.ApprovedUsers), float64(m.TotalUsers))
	m.SuccessRate = SafePercent(float64(m.CompletedTransactions), float64(m.TotalTransactions))
	m.Tier3Concentration = SafePercent(float64(m.Tier3Users), float64(m.TotalUsers))

	return m
}

// deriveMarketGrowth attaches prior-month raw aggregates and growth rates
// per country partition. Rows are ordered chronologically within each
// country; the first row per country keeps nil lag and growth fields.
// Lag values come from raw aggregates, not rounded percentages, so rounding
// error never compounds across months.
func deriveMarketGrowth(metrics []*domain.MarketMonthMetric) {
	byCountry := make(map[string][]*domain.MarketMonthMetric)
	for _, m := range metrics {
		byCountry[m.CountryCode] = append(byCountry[m.CountryCode], m)
	}

	for _, rows := range byCountry {
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].ReportMonth.Before(rows[j].ReportMonth)
		})

		for i, m := range rows {
			if i == 0 {
				m.GrowthCategory = GrowthCategory(nil)
				m.InvestmentPriority = InvestmentPriority(nil, m.Tier3Concentration, m.SuccessRate)
				continue
			}
			prev := rows[i-1]

			prevUsers := float64(prev.TotalUsers)
			prevTxs := float64(prev.TotalTransactions)
			prevVolume := prev.TotalVolumeUSD
			prevRevenue := prev.TotalRevenueUSD
			m.PrevUsers = &prevUsers
			m.PrevTransactions = &prevTxs
			m.PrevVolumeUSD = &prevVolume
			m.PrevRevenueUSD = &prevRevenue

			m.UserGrowthPct = GrowthPct(float64(m.TotalUsers), m.PrevUsers)
			m.TransactionGrowthPct = GrowthPct(float64(m.TotalTransactions), m.PrevTransactions)
			m.VolumeGrowthPct = GrowthPct(m.TotalVolumeUSD, m.PrevVolumeUSD)
			m.RevenueGrowthPct = GrowthPct(m.TotalRevenueUSD, m.PrevRevenueUSD)

			// Both ladders read the same rounded value that is displayed.
			m.GrowthCategory = GrowthCategory(m.RevenueGrowthPct)
			m.InvestmentPriority = InvestmentPriority(m.RevenueGrowthPct, m.Tier3Concentration, m.SuccessRate)
		}
	}
}
