package clickhouse

import (
	"context"
	"fmt"

	"remit-analytics/internal/domain"
	"remit-analytics/internal/storage"
)

// MarketMetricStore implements storage.MarketMetricStore using ClickHouse.
type MarketMetricStore struct {
	conn *Conn
}

// NewMarketMetricStore creates a new MarketMetricStore.
func NewMarketMetricStore(conn *Conn) *MarketMetricStore {
	return &MarketMetricStore{conn: conn}
}

// Compile-time interface check.
var _ storage.MarketMetricStore = (*MarketMetricStore)(nil)

const insertMarketMetricQuery = `
	INSERT INTO market_month_metrics (
		country_code, report_month,
		total_users, approved_users, tier1_users, tier2_users, tier3_users,
		total_transactions, completed_transactions, payment_methods_used,
		total_volume_usd, total_fees_usd, total_revenue_usd,
		approval_rate, success_rate, tier3_concentration,
		prev_users, prev_transactions, prev_volume_usd, prev_revenue_usd,
		user_growth_pct, transaction_growth_pct, volume_growth_pct, revenue_growth_pct,
		growth_category, investment_priority
	)
`

// InsertBulk adds metric rows. Fails entire batch on duplicate (country_code, report_month).
// ClickHouse MergeTree does not enforce uniqueness, so duplicates are
// detected with an explicit existence check before inserting.
func (s *MarketMetricStore) InsertBulk(ctx context.Context, metrics []*domain.MarketMonthMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(metrics))
	for _, m := range metrics {
		key := m.CountryCode + "|" + m.ReportMonth.UTC().Format("2006-01")
		if _, exists := seen[key]; exists {
			return storage.ErrDuplicateKey
		}
		seen[key] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, m := range metrics {
		exists, err := s.exists(ctx, m)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, insertMarketMetricQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, m := range metrics {
		err = batch.Append(
			m.CountryCode, m.ReportMonth,
			int64(m.TotalUsers), int64(m.ApprovedUsers),
			int64(m.Tier1Users), int64(m.Tier2Users), int64(m.Tier3Users),
			int64(m.TotalTransactions), int64(m.CompletedTransactions), int64(m.PaymentMethodsUsed),
			m.TotalVolumeUSD, m.TotalFeesUSD, m.TotalRevenueUSD,
			m.ApprovalRate, m.SuccessRate, m.Tier3Concentration,
			m.PrevUsers, m.PrevTransactions, m.PrevVolumeUSD, m.PrevRevenueUSD,
			m.UserGrowthPct, m.TransactionGrowthPct, m.VolumeGrowthPct, m.RevenueGrowthPct,
			m.GrowthCategory, m.InvestmentPriority,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func (s *MarketMetricStore) exists(ctx context.Context, m *domain.MarketMonthMetric) (bool, error) {
	query := `
		SELECT count() FROM market_month_metrics
		WHERE country_code = ? AND report_month = ?
	`
	var count uint64
	if err := s.conn.QueryRow(ctx, query, m.CountryCode, m.ReportMonth).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAll retrieves all rows ordered by country_code ASC, report_month ASC,
// investment_priority DESC.
func (s *MarketMetricStore) GetAll(ctx context.Context) ([]*domain.MarketMonthMetric, error) {
	query := `
		SELECT country_code, report_month,
		       total_users, approved_users, tier1_users, tier2_users, tier3_users,
		       total_transactions, completed_transactions, payment_methods_used,
		       total_volume_usd, total_fees_usd, total_revenue_usd,
		       approval_rate, success_rate, tier3_concentration,
		       prev_users, prev_transactions, prev_volume_usd, prev_revenue_usd,
		       user_growth_pct, transaction_growth_pct, volume_growth_pct, revenue_growth_pct,
		       growth_category, investment_priority
		FROM market_month_metrics
		ORDER BY country_code ASC, report_month ASC, investment_priority DESC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query market metrics: %w", err)
	}
	defer rows.Close()

	var result []*domain.MarketMonthMetric
	for rows.Next() {
		var (
			m                               domain.MarketMonthMetric
			totalUsers, approvedUsers       int64
			tier1, tier2, tier3             int64
			totalTxs, completedTxs, methods int64
		)
		if err := rows.Scan(
			&m.CountryCode, &m.ReportMonth,
			&totalUsers, &approvedUsers, &tier1, &tier2, &tier3,
			&totalTxs, &completedTxs, &methods,
			&m.TotalVolumeUSD, &m.TotalFeesUSD, &m.TotalRevenueUSD,
			&m.ApprovalRate, &m.SuccessRate, &m.Tier3Concentration,
			&m.PrevUsers, &m.PrevTransactions, &m.PrevVolumeUSD, &m.PrevRevenueUSD,
			&m.UserGrowthPct, &m.TransactionGrowthPct, &m.VolumeGrowthPct, &m.RevenueGrowthPct,
			&m.GrowthCategory, &m.InvestmentPriority,
		); err != nil {
			return nil, fmt.Errorf("scan market metric: %w", err)
		}
		m.TotalUsers = int(totalUsers)
		m.ApprovedUsers = int(approvedUsers)
		m.Tier1Users = int(tier1)
		m.Tier2Users = int(tier2)
		m.Tier3Users = int(tier3)
		m.TotalTransactions = int(totalTxs)
		m.CompletedTransactions = int(completedTxs)
		m.PaymentMethodsUsed = int(methods)
		m.ReportMonth = m.ReportMonth.UTC()
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate market metrics: %w", err)
	}
	return result, nil
}
